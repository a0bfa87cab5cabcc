package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theoremus-urban-solutions/trainboard/feed"
	"github.com/theoremus-urban-solutions/trainboard/predictor"
)

const minimalYAML = `
feed:
  url: https://api-v3.mbta.com/schedules?filter%5Bstop%5D=place-FB-0275
`

// restoreConfig snapshots the global config and working directory for the test.
func restoreConfig(t *testing.T) {
	t.Helper()
	orig := Config
	dir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		Config = orig
		_ = os.Chdir(dir)
	})
}

func TestLoadAppConfig_RepoConfig(t *testing.T) {
	restoreConfig(t)
	require.NoError(t, os.Chdir(".."))

	require.NoError(t, LoadAppConfig())
	assert.Equal(t, "jsonapi", Config.Feed.Format)
	assert.Equal(t, 3, Config.Board.Count)
	assert.Equal(t, DefaultPort, Config.Server.Port)
	require.Len(t, Config.Feeds, 1)
	assert.Equal(t, "franklin-gtfsrt", Config.Feeds[0].Name)
}

func TestLoadAppConfig_MissingFile(t *testing.T) {
	restoreConfig(t)
	require.NoError(t, os.Chdir(t.TempDir()))

	assert.Error(t, LoadAppConfig())
}

func TestLoadAppConfig_ConfigDir(t *testing.T) {
	restoreConfig(t)
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yml"), []byte(minimalYAML), 0o644))
	require.NoError(t, os.Chdir(dir))

	require.NoError(t, LoadAppConfig())
	assert.Contains(t, Config.Feed.URL, "place-FB-0275")
}

func TestLoadAppConfigFromFile_InvalidYAML(t *testing.T) {
	restoreConfig(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: [[["), 0o644))

	err := LoadAppConfigFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, string(feed.FormatJSONAPI), cfg.Feed.Format)
	assert.Equal(t, DefaultFeedTimeout, cfg.Feed.Timeout())
	assert.Equal(t, DefaultBoardCount, cfg.Board.Count)
	assert.Equal(t, 180*time.Second, cfg.Board.RefreshInterval())
	assert.Equal(t, DefaultMaxRetries, cfg.Board.Retries())
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Nil(t, cfg.Feed.Headers())
	assert.Equal(t, predictor.DefaultOptions(), cfg.PredictorOptions())
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no feed", "board:\n  count: 3\n"},
		{"bad url", "feed:\n  url: not a url\n"},
		{"unknown format", "feed:\n  url: https://example.com/feed\n  format: xml\n"},
		{"gtfsrt without stop", "feed:\n  url: https://example.com/feed.pb\n  format: gtfsrt\n"},
		{"negative std dev", minimalYAML + "predictor:\n  inbound:\n    stdDevSeconds: -1\n"},
		{"unknown log level", minimalYAML + "log:\n  level: chatty\n"},
		{"port out of range", minimalYAML + "server:\n  port: 70000\n"},
		{"unnamed alt feed", minimalYAML + "feeds:\n  - feed:\n      url: https://example.com/x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParse_RetriesCanBeDisabled(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML + "board:\n  maxRetries: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Board.Retries())

	cfg, err = Parse([]byte(minimalYAML + "board:\n  maxRetries: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Board.Retries())

	_, err = Parse([]byte(minimalYAML + "board:\n  maxRetries: -1\n"))
	assert.Error(t, err)
}

func TestPredictorOptions_Overrides(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML + `
predictor:
  inbound:
    offsetSeconds: -50.5
  outbound:
    stdDevSeconds: 12
  warningLeadSeconds: 0
  stalenessSeconds: 45
  continuityCapacity: 4
`))
	require.NoError(t, err)

	opts := cfg.PredictorOptions()
	assert.Equal(t, -50500*time.Millisecond, opts.Offsets.Inbound.Average)
	assert.Equal(t, predictor.DefaultStdDev, opts.Offsets.Inbound.StdDev)
	assert.Equal(t, predictor.DefaultOutboundOffset, opts.Offsets.Outbound.Average)
	assert.Equal(t, 12*time.Second, opts.Offsets.Outbound.StdDev)
	assert.Equal(t, time.Duration(0), opts.WarningLead)
	assert.Equal(t, 45*time.Second, opts.Staleness)
	assert.Equal(t, 4, opts.ContinuityCapacity)
	assert.Equal(t, predictor.DefaultArrivedCapacity, opts.ArrivedCapacity)
}

func TestSelectFeed(t *testing.T) {
	restoreConfig(t)
	cfg, err := Parse([]byte(minimalYAML + `
feeds:
  - name: rt
    feed:
      url: https://example.com/TripUpdates.pb
      format: gtfsrt
      stopID: FB-0275-01
      apiKey: secret
`))
	require.NoError(t, err)
	Config = cfg

	rt := SelectFeed("rt")
	assert.Equal(t, feed.FormatGTFSRT, rt.FeedFormat())
	assert.Equal(t, "FB-0275-01", rt.StopID)
	assert.Equal(t, map[string]string{"x-api-key": "secret"}, rt.Headers())

	assert.Equal(t, Config.Feed, SelectFeed(""))
	assert.Equal(t, Config.Feed, SelectFeed("missing"))

	Config.Feed = FeedConfig{}
	assert.Equal(t, rt, SelectFeed(""))
}
