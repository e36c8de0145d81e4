package main

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/Adda-Baaj/newsdesk/internal/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		HTTP:    config.HTTPConfig{Timeout: time.Second},
		Storage: config.StorageConfig{Path: "b.db"},
		Log:     config.LogConfig{Level: "info"},
		UI:      config.UIConfig{Theme: config.ThemeAuto},
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := baseConfig()
	assert.Equal(t, nil, applyOverrides(cfg, "", ""))
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, config.ThemeAuto, cfg.UI.Theme)

	assert.Equal(t, nil, applyOverrides(cfg, "debug", config.ThemeDark))
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, config.ThemeDark, cfg.UI.Theme)

	assert.NotEqual(t, nil, applyOverrides(baseConfig(), "", "neon"))
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := rootCommand(&runtime{})
	names := map[string]bool{}
	for _, c := range root.Commands {
		names[c.Name] = true
	}
	for _, want := range []string{"browse", "headlines", "search", "bookmarks", "publish"} {
		assert.Equal(t, true, names[want])
	}
	assert.Equal(t, "breaking-news, business, technology, sports, health", categoryKeys())
}
