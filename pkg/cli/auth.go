package cli

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/driftindex/adictl/pkg/auth"
)

var (
	tokenFlag = &cli.StringFlag{
		Name:     "token",
		Usage:    "Headlines API token",
		Required: true,
	}

	authCmd = &cli.Command{
		Name:  "auth",
		Usage: "Manage the headlines API token in the OS keyring",
		Subcommands: []*cli.Command{
			{
				Name:   "set",
				Usage:  "Store the API token",
				Action: cmdAuthSet,
				Flags:  []cli.Flag{tokenFlag},
			},
			{
				Name:   "delete",
				Usage:  "Remove the stored API token",
				Action: cmdAuthDelete,
			},
			{
				Name:   "status",
				Usage:  "Show whether a token is stored",
				Action: cmdAuthStatus,
			},
		},
	}
)

func cmdAuthSet(c *cli.Context) error {
	token := c.String(tokenFlag.Name)
	if token == "" {
		return errors.New("token required")
	}
	if err := auth.SaveToken(token); err != nil {
		return err
	}
	log.Info("token saved")
	return nil
}

func cmdAuthDelete(c *cli.Context) error {
	if err := auth.DeleteToken(); err != nil {
		return err
	}
	log.Info("token deleted")
	return nil
}

func cmdAuthStatus(c *cli.Context) error {
	token, err := auth.GetToken()
	if err != nil {
		return err
	}
	return encode(map[string]bool{"token_set": token != ""})
}
