// Package cli implements the adictl command surface.
package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"time"

	log "github.com/sirupsen/logrus"
	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/driftindex/adictl/pkg/auth"
	"github.com/driftindex/adictl/pkg/checkpoint"
	"github.com/driftindex/adictl/pkg/config"
	"github.com/driftindex/adictl/pkg/data"
	"github.com/driftindex/adictl/pkg/index"
	"github.com/driftindex/adictl/pkg/source"
	"github.com/driftindex/adictl/pkg/tracker"
)

const (
	name         = "adictl"
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	outputFormat = formatJSON

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	dbFilePathFlag = &urfave.StringFlag{
		Name:  "db",
		Usage: "Path to the Sqlite database file",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	initLogging(false)

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

type appConfig struct {
	HomeDir string
	DBPath  string
	Debug   bool
	Conf    *config.Config
	DB      *sql.DB
}

func getConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 name,
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "Authoritarian Drift Index tracker",
		Flags: []urfave.Flag{
			debugFlag,
			dbFilePathFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			updateCmd,
			queryCmd,
			seedCmd,
			authCmd,
			serverCmd,
		},
		Before: func(c *urfave.Context) error {
			if c.Bool(debugFlag.Name) {
				initLogging(true)
			}

			f := c.String(formatFlag.Name)
			if f == formatYAML || f == "yml" {
				outputFormat = formatYAML
			}

			home, err := config.GetOrCreateHomeDir(name)
			if err != nil {
				return fmt.Errorf("resolving home dir: %w", err)
			}

			conf, err := config.ReadOrCreate(home)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			dbPath := c.String(dbFilePathFlag.Name)
			if dbPath == "" {
				dbPath = path.Join(home, data.DataFileName)
			}

			if err := data.Init(dbPath); err != nil {
				return fmt.Errorf("initializing database: %w", err)
			}

			db, err := data.GetDB(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}

			c.App.Metadata[appConfigKey] = &appConfig{
				HomeDir: home,
				DBPath:  dbPath,
				Debug:   c.Bool(debugFlag.Name),
				Conf:    conf,
				DB:      db,
			}
			return nil
		},
		After: func(c *urfave.Context) error {
			if cfg, ok := c.App.Metadata[appConfigKey].(*appConfig); ok && cfg.DB != nil {
				cfg.DB.Close()
			}
			return nil
		},
	}
}

// getTracker assembles the tracker from the app config: scoring engine,
// checkpoint, and the configured sources.
func getTracker(ctx context.Context, cfg *appConfig) (*tracker.Tracker, error) {
	calc, err := index.NewCalculator(cfg.Conf.Weights, cfg.Conf.Rules, cfg.Conf.DecayFactor)
	if err != nil {
		return nil, err
	}

	check, err := checkpoint.New(path.Join(cfg.HomeDir, checkpoint.CacheFileName))
	if err != nil {
		return nil, err
	}

	fetchers := make([]source.Fetcher, 0, 3)
	if len(cfg.Conf.Feeds) > 0 {
		fetchers = append(fetchers, source.NewFeedFetcher(cfg.Conf.Feeds))
	}
	if cfg.Conf.ActionsURL != "" {
		fetchers = append(fetchers, source.NewActionsFetcher(cfg.Conf.ActionsURL))
	}

	if cfg.Conf.HeadlinesURL != "" {
		token, err := auth.GetToken()
		if err != nil {
			log.Warnf("error reading api token, skipping headlines source: %v", err)
		} else if token != "" {
			h, err := source.NewHeadlinesFetcher(ctx, cfg.Conf.HeadlinesURL, token)
			if err != nil {
				return nil, err
			}
			fetchers = append(fetchers, h)
		}
	}

	return tracker.New(cfg.DB, calc, check, fetchers...)
}

func initLogging(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:          false,
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	if debug {
		log.SetLevel(log.DebugLevel)
	}
}

func encode(v any) error {
	if outputFormat == formatYAML {
		return yaml.NewEncoder(os.Stdout).Encode(v)
	}
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
