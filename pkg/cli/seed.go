package cli

import (
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/driftindex/adictl/pkg/data"
)

var seedCmd = &cli.Command{
	Name:   "seed",
	Usage:  "Load the historical snapshot log and baseline trajectories",
	Action: cmdSeed,
}

func cmdSeed(c *cli.Context) error {
	cfg := getConfig(c)

	n, err := data.Seed(cfg.DB, cfg.Conf.Baselines)
	if err != nil {
		return err
	}

	log.Infof("seeded %d historical snapshots and %d baselines", n, len(cfg.Conf.Baselines))
	return nil
}
