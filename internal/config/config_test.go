package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.Crawler.MaxPages)
	assert.Equal(t, 10, cfg.Crawler.Workers)
	assert.False(t, cfg.Crawler.IncludeExternal)
	assert.True(t, cfg.Crawler.FollowRedirects)
	assert.Equal(t, 12*time.Second, cfg.Crawler.PageTimeout)
	assert.Equal(t, 8*time.Second, cfg.Crawler.CheckTimeout)
	assert.Equal(t, "all", cfg.Output.View)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
crawler:
  max_pages: 120
  workers: 6
  include_external: true
  follow_redirects: false
  delay: 0s
output:
  view: broken
  csv_path: out.csv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Crawler.MaxPages)
	assert.Equal(t, 6, cfg.Crawler.Workers)
	assert.True(t, cfg.Crawler.IncludeExternal)
	assert.False(t, cfg.Crawler.FollowRedirects)
	assert.Equal(t, time.Duration(0), cfg.Crawler.Delay)
	assert.Equal(t, "broken", cfg.Output.View)
	assert.Equal(t, "out.csv", cfg.Output.CSVPath)

	assert.NoError(t, cfg.Validate())
}

func TestValidateBounds(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "page budget too small", mutate: func(c *Config) { c.Crawler.MaxPages = 5 }},
		{name: "page budget too large", mutate: func(c *Config) { c.Crawler.MaxPages = 500 }},
		{name: "too few workers", mutate: func(c *Config) { c.Crawler.Workers = 1 }},
		{name: "too many workers", mutate: func(c *Config) { c.Crawler.Workers = 50 }},
		{name: "zero page timeout", mutate: func(c *Config) { c.Crawler.PageTimeout = 0 }},
		{name: "zero check timeout", mutate: func(c *Config) { c.Crawler.CheckTimeout = 0 }},
		{name: "negative delay", mutate: func(c *Config) { c.Crawler.Delay = -time.Second }},
		{name: "unknown view", mutate: func(c *Config) { c.Output.View = "bogus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
