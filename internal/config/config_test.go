package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrklmrrr/TODOIST/internal/task"
	"github.com/mrklmrrr/TODOIST/internal/tasklist"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, DefaultAddr, c.Server.Addr)
	assert.Equal(t, DefaultShutdownTimeout, c.Server.ShutdownTimeout)
	assert.Equal(t, DefaultGenerateCount, c.UI.GenerateCount)
	assert.Equal(t, task.SeverityMedium, c.DefaultSeverity())
	assert.True(t, c.ShowDone())
	assert.True(t, c.UI.HumanizeAges)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
	require.NoError(t, c.Validate())
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todoist.yml")
	body := `
server:
  addr: ":9000"
  shutdown_timeout: 3s
ui:
  title: "My tasks"
  generate_count: 25
  default_severity: high
  show_done: false
  humanize_ages: false
log:
  level: debug
  format: text
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, ":9000", c.Server.Addr)
	assert.Equal(t, 3*time.Second, c.Server.ShutdownTimeout)
	assert.Equal(t, "My tasks", c.UI.Title)
	assert.Equal(t, 25, c.UI.GenerateCount)
	assert.Equal(t, task.SeverityHigh, c.DefaultSeverity())
	assert.False(t, c.ShowDone())
	assert.False(t, c.UI.HumanizeAges)
	assert.Equal(t, task.DefaultTimeLayout, c.UI.TimeFormat)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format)
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("ui: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative generate count", func(c *Config) { c.UI.GenerateCount = -1 }},
		{"generate count too large", func(c *Config) { c.UI.GenerateCount = MaxGenerateCount + 1 }},
		{"bad severity", func(c *Config) { c.UI.DefaultSeverity = "urgent" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TODOIST_ADDR", ":7000")
	t.Setenv("TODOIST_LOG_LEVEL", "WARN")
	t.Setenv("TODOIST_GENERATE_COUNT", "50")
	t.Setenv("TODOIST_DEV_STATIC", "yes")
	t.Setenv("TODOIST_TIME_FORMAT", "")

	c := Default()
	c.ApplyEnv()

	assert.Equal(t, ":7000", c.Server.Addr)
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, 50, c.UI.GenerateCount)
	assert.True(t, c.Server.DevStatic)
	assert.Equal(t, task.DefaultTimeLayout, c.UI.TimeFormat)
}

func TestApplyEnv_IgnoresGarbage(t *testing.T) {
	t.Setenv("TODOIST_GENERATE_COUNT", "lots")
	t.Setenv("TODOIST_DEV_STATIC", "maybe")

	c := Default()
	c.ApplyEnv()

	assert.Equal(t, DefaultGenerateCount, c.UI.GenerateCount)
	assert.False(t, c.Server.DevStatic)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TODOIST_TEST_DOTENV=from-file\n"), 0o644))
	t.Setenv("TODOIST_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("TODOIST_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("TODOIST_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestNewStore_SeedsConfiguredDefaults(t *testing.T) {
	c, err := Parse([]byte("ui:\n  default_severity: high\n  show_done: false\n"))
	require.NoError(t, err)

	st := c.NewStore(tasklist.DefaultEnv(), nil).Snapshot()

	assert.Empty(t, st.Tasks)
	assert.Equal(t, task.SeverityHigh, st.Drafts.Severity)
	assert.Equal(t, task.SeverityAll, st.Filters.Severity)
	assert.False(t, st.Filters.ShowDone)
	assert.Empty(t, st.Filters.Search)
}
