package cli

import (
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	forceFlag = &cli.BoolFlag{
		Name:  "force",
		Usage: "Recompute even when sources show no meaningful change",
	}

	updateCmd = &cli.Command{
		Name:    "update",
		Aliases: []string{"u"},
		Usage:   "Fetch sources, score events, and record the daily snapshot",
		Action:  cmdUpdate,
		Flags: []cli.Flag{
			forceFlag,
		},
	}
)

func cmdUpdate(c *cli.Context) error {
	cfg := getConfig(c)

	t, err := getTracker(c.Context, cfg)
	if err != nil {
		return err
	}

	res, err := t.Update(c.Context, c.Bool(forceFlag.Name))
	if err != nil {
		return err
	}

	if !res.Changed {
		log.Info("no meaningful change since last run, use --force to recompute")
	} else if res.Snapshot != nil {
		log.Infof("score: %.2f (level %d - %s), %d new events",
			res.Snapshot.Score, res.Snapshot.ShoeLevel, res.Snapshot.Status, res.NewEvents)
	}

	return encode(res)
}
