package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GNEWS_API_KEY", "")
	t.Setenv("NEXT_PUBLIC_GNEWS_API_KEY", "")
	t.Setenv("NEWSDESK_GNEWS_API_KEY", "")

	cfg, err := Load(Options{})
	assert.Equal(t, nil, err)
	assert.Equal(t, "gnews", cfg.GNews.Provider)
	assert.Equal(t, "https://gnews.io/api/v4", cfg.GNews.BaseURL)
	assert.Equal(t, "", cfg.GNews.APIKey)
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, ThemeAuto, cfg.UI.Theme)
	assert.Equal(t, true, cfg.Detail.Enrich)
	assert.NotEqual(t, "", cfg.Storage.Path)
}

func TestLoadReadsEnvFileAndLegacyKey(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GNEWS_API_KEY", "")
	t.Setenv("NEWSDESK_GNEWS_API_KEY", "")
	os.Unsetenv("NEXT_PUBLIC_GNEWS_API_KEY")
	t.Cleanup(func() { os.Unsetenv("NEXT_PUBLIC_GNEWS_API_KEY") })

	envFile := writeFile(t, dir, "local.env", "NEXT_PUBLIC_GNEWS_API_KEY=from-dotenv\n")

	cfg, err := Load(Options{EnvFile: envFile})
	assert.Equal(t, nil, err)
	assert.Equal(t, "from-dotenv", cfg.GNews.APIKey)
	assert.Equal(t, "gnews", cfg.Provider().ID)
	assert.Equal(t, "from-dotenv", cfg.Provider().APIKey)
}

func TestLoadMissingExplicitEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(Options{EnvFile: "does-not-exist.env"})
	assert.NotEqual(t, nil, err)
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("NEWSDESK_LOG_LEVEL", "debug")

	path := writeFile(t, dir, "newsdesk.yaml", `
gnews:
  base_url: http://localhost:9999/api/v4
  api_key: file-key
  headers:
    X-Client: newsdesk-test
http:
  timeout: 3s
storage:
  path: /tmp/newsdesk-test.db
log:
  level: warn
ui:
  theme: Dark
  timezone: Asia/Tokyo
detail:
  enrich: false
`)

	cfg, err := Load(Options{ConfigFile: path})
	assert.Equal(t, nil, err)
	assert.Equal(t, "http://localhost:9999/api/v4", cfg.GNews.BaseURL)
	assert.Equal(t, map[string]string{"x-client": "newsdesk-test"}, cfg.Provider().Headers)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "/tmp/newsdesk-test.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ThemeDark, cfg.UI.Theme)
	assert.Equal(t, false, cfg.Detail.Enrich)

	loc, err := cfg.Location()
	assert.Equal(t, nil, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}

func TestValidate(t *testing.T) {
	base := Config{
		HTTP:    HTTPConfig{Timeout: time.Second},
		Storage: StorageConfig{Path: "x.db"},
		UI:      UIConfig{Theme: ThemeLight},
	}
	assert.Equal(t, nil, base.Validate())

	bad := base
	bad.UI.Theme = "sepia"
	assert.NotEqual(t, nil, bad.Validate())

	bad = base
	bad.HTTP.Timeout = 0
	assert.NotEqual(t, nil, bad.Validate())

	bad = base
	bad.UI.Timezone = "Mars/Olympus"
	assert.NotEqual(t, nil, bad.Validate())
}
