package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/theoremus-urban-solutions/trainboard/feed"
	"github.com/theoremus-urban-solutions/trainboard/predictor"
	"gopkg.in/yaml.v3"
)

// Defaults applied to zero values after loading.
const (
	DefaultFeedTimeout    = 10 * time.Second
	DefaultBoardCount     = 3
	DefaultRefreshSeconds = 180
	DefaultMaxRetries     = 5
	DefaultPort           = 16181
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
)

// Config is the global application configuration
var Config AppConfig

var searchPaths = []string{"config.yml", "./config/config.yml"}

// LoadAppConfig loads and validates the application configuration from the
// first config.yml found on the search path.
func LoadAppConfig() error {
	var lastErr error
	for _, p := range searchPaths {
		if _, err := os.Stat(p); err != nil {
			lastErr = err
			continue
		}
		return LoadAppConfigFromFile(p)
	}
	return fmt.Errorf("no config file found: %w", lastErr)
}

// LoadAppConfigFromFile loads, validates and installs the configuration at path.
func LoadAppConfigFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	Config = cfg
	return nil
}

// Parse decodes YAML, validates it and fills in defaults. It does not touch Config.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *AppConfig) validate() error {
	v := validator.New()
	if c.Feed.URL == "" && len(c.Feeds) == 0 {
		return errors.New("feed.url is required when no feeds are listed")
	}
	if c.Feed.URL != "" {
		if err := v.Struct(c.Feed); err != nil {
			return fmt.Errorf("feed: %w", err)
		}
	}
	// feeds are optional; if present validate each
	for _, f := range c.Feeds {
		if err := v.Struct(f); err != nil {
			return fmt.Errorf("feeds[%s]: %w", f.Name, err)
		}
	}
	for _, s := range []any{c.Predictor, c.Board, c.Server, c.Log} {
		if err := v.Struct(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *AppConfig) applyDefaults() {
	feedDefaults(&c.Feed)
	for i := range c.Feeds {
		feedDefaults(&c.Feeds[i].Feed)
	}
	if c.Board.Count == 0 {
		c.Board.Count = DefaultBoardCount
	}
	if c.Board.RefreshSeconds == 0 {
		c.Board.RefreshSeconds = DefaultRefreshSeconds
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

func feedDefaults(f *FeedConfig) {
	if f.URL == "" {
		return
	}
	if f.Format == "" {
		f.Format = string(feed.FormatJSONAPI)
	}
	if f.TimeoutMS == 0 {
		f.TimeoutMS = int(DefaultFeedTimeout / time.Millisecond)
	}
}

// SelectFeed chooses a feed by name; fallback to the top-level feed, then the first listed one.
func SelectFeed(name string) FeedConfig {
	if name != "" {
		for _, f := range Config.Feeds {
			if f.Name == name {
				return f.Feed
			}
		}
	}
	if Config.Feed.URL != "" || len(Config.Feeds) == 0 {
		return Config.Feed
	}
	return Config.Feeds[0].Feed
}

// Timeout is the HTTP timeout for fetching this feed.
func (f FeedConfig) Timeout() time.Duration {
	if f.TimeoutMS <= 0 {
		return DefaultFeedTimeout
	}
	return time.Duration(f.TimeoutMS) * time.Millisecond
}

// FeedFormat returns the decoder to use for this feed.
func (f FeedConfig) FeedFormat() feed.Format {
	if f.Format == "" {
		return feed.FormatJSONAPI
	}
	return feed.Format(f.Format)
}

// Headers returns request headers for this feed.
func (f FeedConfig) Headers() map[string]string {
	if f.APIKey == "" {
		return nil
	}
	return map[string]string{"x-api-key": f.APIKey}
}

// Retries is the number of retries after a failed fetch.
func (b BoardConfig) Retries() int {
	if b.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *b.MaxRetries
}

// RefreshInterval is the pause between board refreshes.
func (b BoardConfig) RefreshInterval() time.Duration {
	return time.Duration(b.RefreshSeconds) * time.Second
}

// PredictorOptions converts the predictor section into predictor.Options,
// keeping defaults for anything left unset.
func (c AppConfig) PredictorOptions() predictor.Options {
	opts := predictor.DefaultOptions()
	p := c.Predictor
	opts.Offsets.Inbound = p.Inbound.apply(opts.Offsets.Inbound)
	opts.Offsets.Outbound = p.Outbound.apply(opts.Offsets.Outbound)
	if p.WarningLeadSeconds != nil {
		opts.WarningLead = seconds(*p.WarningLeadSeconds)
	}
	if p.StalenessSeconds != nil {
		opts.Staleness = seconds(*p.StalenessSeconds)
	}
	if p.ContinuityCapacity > 0 {
		opts.ContinuityCapacity = p.ContinuityCapacity
	}
	if p.ArrivedCapacity > 0 {
		opts.ArrivedCapacity = p.ArrivedCapacity
	}
	return opts
}

func (d DirectionConfig) apply(o predictor.Offset) predictor.Offset {
	if d.OffsetSeconds != nil {
		o.Average = seconds(*d.OffsetSeconds)
	}
	if d.StdDevSeconds != nil {
		o.StdDev = seconds(*d.StdDevSeconds)
	}
	return o
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
