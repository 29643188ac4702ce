package glassblog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "CoolBlog", cfg.Name)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "data/posts.json", cfg.DataSource)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.Watch)
	assert.Equal(t, log.InfoLevel, cfg.Level())
	assert.Equal(t, 120, cfg.RateLimit)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Glass
url: https://blog.example.com/
data_source: https://cdn.example.com/posts.json
cache_ttl: 30s
watch: false
log_level: debug
rate_limit: -1
`), 0o644))
	t.Setenv("GLASSBLOG_ADDR", ":8080")
	t.Setenv("GLASSBLOG_NAME", "FromEnv")
	t.Setenv("GLASSBLOG_AUTHOR", "Ada")
	t.Setenv("GLASSBLOG_DESCRIPTION", "Notes on glass")

	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", cfg.Name)
	assert.Equal(t, "Ada", cfg.Author)
	assert.Equal(t, "Notes on glass", cfg.Description)
	assert.Equal(t, "https://blog.example.com", cfg.URL)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "https://cdn.example.com/posts.json", cfg.DataSource)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.False(t, cfg.Watch)
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, -1, cfg.RateLimit)
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := LoadConfig(v)
	assert.Error(t, err)
}

func TestLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, log.InfoLevel, SiteConfig{LogLevel: "loud"}.Level())
}
