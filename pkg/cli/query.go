package cli

import (
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/driftindex/adictl/pkg/data"
)

const queryResultLimitDefault = 100

var (
	queryLimitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "Limits number of results returned",
		Value: queryResultLimitDefault,
	}

	querySinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Start date (YYYY-MM-DD)",
	}

	queryCategoryFlag = &cli.StringFlag{
		Name:  "category",
		Usage: "Event category",
	}

	queryDaysFlag = &cli.IntFlag{
		Name:  "days",
		Usage: "Number of trailing days to include",
		Value: 30,
	}

	queryCmd = &cli.Command{
		Name:    "query",
		Aliases: []string{"q"},
		Usage:   "Query the recorded index data",
		Subcommands: []*cli.Command{
			{
				Name:   "score",
				Usage:  "Latest index snapshot",
				Action: cmdQueryScore,
			},
			{
				Name:   "trend",
				Usage:  "Daily snapshots for the trailing window",
				Action: cmdQueryTrend,
				Flags:  []cli.Flag{queryDaysFlag},
			},
			{
				Name:   "forecast",
				Usage:  "Trend projection at 3 and 6 months",
				Action: cmdQueryForecast,
			},
			{
				Name:   "compare",
				Usage:  "Position on the historical baseline trajectories",
				Action: cmdQueryCompare,
			},
			{
				Name:   "events",
				Usage:  "Recorded events",
				Action: cmdQueryEvents,
				Flags:  []cli.Flag{querySinceFlag, queryCategoryFlag, queryLimitFlag},
			},
			{
				Name:   "categories",
				Usage:  "Point totals per category",
				Action: cmdQueryCategories,
				Flags:  []cli.Flag{querySinceFlag},
			},
		},
	}
)

func cmdQueryScore(c *cli.Context) error {
	cfg := getConfig(c)

	s, err := data.GetLatestSnapshot(cfg.DB)
	if err != nil {
		return err
	}
	if s == nil {
		return errors.New("no snapshots recorded yet, run update or seed first")
	}
	return encode(s)
}

func cmdQueryTrend(c *cli.Context) error {
	cfg := getConfig(c)

	days := c.Int(queryDaysFlag.Name)
	since := time.Now().UTC().AddDate(0, 0, -days).Format(data.DateFormat)

	list, err := data.GetSnapshots(cfg.DB, since)
	if err != nil {
		return err
	}
	return encode(list)
}

func cmdQueryForecast(c *cli.Context) error {
	cfg := getConfig(c)

	t, err := getTracker(c.Context, cfg)
	if err != nil {
		return err
	}

	f, err := t.Forecast(cfg.Conf.ForecastDays)
	if err != nil {
		return err
	}
	return encode(f)
}

func cmdQueryCompare(c *cli.Context) error {
	cfg := getConfig(c)

	t, err := getTracker(c.Context, cfg)
	if err != nil {
		return err
	}

	comps, err := t.Compare()
	if err != nil {
		return err
	}
	return encode(comps)
}

func cmdQueryEvents(c *cli.Context) error {
	cfg := getConfig(c)

	list, err := data.GetEvents(cfg.DB,
		c.String(querySinceFlag.Name),
		c.String(queryCategoryFlag.Name),
		c.Int(queryLimitFlag.Name))
	if err != nil {
		return err
	}
	return encode(list)
}

func cmdQueryCategories(c *cli.Context) error {
	cfg := getConfig(c)

	totals, err := data.GetCategoryTotals(cfg.DB, c.String(querySinceFlag.Name))
	if err != nil {
		return err
	}
	return encode(totals)
}
