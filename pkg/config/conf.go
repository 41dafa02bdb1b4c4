// Package config manages the app configuration file in the user home dir.
package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/driftindex/adictl/pkg/index"
	"github.com/driftindex/adictl/pkg/trend"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600
)

// Config represents the app config object.
type Config struct {
	// Feeds are tried in order until one returns entries.
	Feeds []string `yaml:"feeds"`

	// ActionsURL is the executive actions page to scrape.
	ActionsURL string `yaml:"actions_url"`

	// HeadlinesURL is the authenticated headlines API endpoint, used only
	// when an API token has been stored.
	HeadlinesURL string `yaml:"headlines_url"`

	DecayFactor  float64            `yaml:"decay_factor"`
	ForecastDays int                `yaml:"forecast_days"`
	Weights      map[string]float64 `yaml:"weights"`
	Rules        []index.Rule       `yaml:"rules"`
	Baselines    []trend.Baseline   `yaml:"baselines"`
}

func getDefaultConfig() *Config {
	return &Config{
		Feeds: []string{
			"https://feeds.reuters.com/Reuters/PoliticsNews",
			"http://feeds.bbci.co.uk/news/world/us_and_canada/rss.xml",
			"https://apnews.com/hub/ap-top-news?format=atom",
		},
		ActionsURL:   "https://www.whitehouse.gov/presidential-actions/",
		HeadlinesURL: "https://newsapi.org/v2/top-headlines?country=us&category=politics",
		DecayFactor:  index.DecayFactorDefault,
		ForecastDays: trend.WindowDaysDefault,
		Weights:      index.DefaultWeights(),
		Rules:        index.DefaultRules(),
		Baselines:    trend.DefaultBaselines(),
	}
}

// Save writes the config into the given directory.
func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", path)
	}
	return nil
}

// ReadOrCreate reads the app config from the directory, creating it with
// defaults when missing.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dirPath, dirMode); err != nil {
			return nil, errors.Wrapf(err, "failed to create dir: %s", dirPath)
		}
	}

	path := filepath.Join(dirPath, configFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(dirPath, getDefaultConfig()); err != nil {
			return nil, errors.Wrap(err, "failed to create default config")
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file: %s", path)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}
	if err := c.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config: %s", path)
	}
	return &c, nil
}

func (c *Config) validate() error {
	if len(c.Feeds) == 0 && c.ActionsURL == "" {
		return errors.New("at least one feed or actions_url required")
	}
	if len(c.Weights) > 0 {
		var sum float64
		for _, w := range c.Weights {
			sum += w
		}
		if math.Abs(sum-1.0) > 0.001 {
			return errors.Errorf("weights must sum to 1.0, got %.3f", sum)
		}
	}
	if c.DecayFactor < 0 || c.DecayFactor > 1 {
		return errors.Errorf("decay_factor must be between 0 and 1, got %.3f", c.DecayFactor)
	}
	return nil
}

// GetOrCreateHomeDir returns the app home directory for the current user,
// creating it when missing.
func GetOrCreateHomeDir(name string) (string, error) {
	if name == "" {
		return "", errors.New("name cannot be empty")
	}
	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home dir")
	}

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		log.Debugf("creating dir: %s", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", errors.Wrapf(err, "failed to create dir: %s", dir)
		}
	}
	return dir, nil
}
