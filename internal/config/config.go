package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/mrklmrrr/TODOIST/internal/task"
	"github.com/mrklmrrr/TODOIST/internal/tasklist"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultAddr            = ":8080"
	DefaultGenerateCount   = 1000
	MaxGenerateCount       = tasklist.MaxGenerateCount
	DefaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	Server ServerConfig `yaml:"server" json:"server"`
	UI     UIConfig     `yaml:"ui" json:"ui"`
	Log    LogConfig    `yaml:"log" json:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" json:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	DevStatic       bool          `yaml:"dev_static" json:"dev_static"`
	StaticDir       string        `yaml:"static_dir" json:"static_dir"`
}

type UIConfig struct {
	Title           string `yaml:"title" json:"title"`
	GenerateCount   int    `yaml:"generate_count" json:"generate_count"`
	DefaultSeverity string `yaml:"default_severity" json:"default_severity"`
	// ShowDone is a pointer so an explicit false in YAML survives ApplyDefaults.
	ShowDone     *bool  `yaml:"show_done" json:"show_done"`
	TimeFormat   string `yaml:"time_format" json:"time_format"`
	HumanizeAges bool   `yaml:"humanize_ages" json:"humanize_ages"`
}

type LogConfig struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"`
	File       string `yaml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

func Default() *Config {
	c := &Config{}
	c.UI.HumanizeAges = true
	c.ApplyDefaults()
	return c
}

func (s *ServerConfig) ApplyDefaults() {
	if strings.TrimSpace(s.Addr) == "" {
		s.Addr = DefaultAddr
	}
	if s.ShutdownTimeout <= 0 {
		s.ShutdownTimeout = DefaultShutdownTimeout
	}
	if strings.TrimSpace(s.StaticDir) == "" {
		s.StaticDir = "static"
	}
}

func (u *UIConfig) ApplyDefaults() {
	if strings.TrimSpace(u.Title) == "" {
		u.Title = "Task list"
	}
	if u.GenerateCount == 0 {
		u.GenerateCount = DefaultGenerateCount
	}
	if strings.TrimSpace(u.DefaultSeverity) == "" {
		u.DefaultSeverity = string(task.SeverityMedium)
	}
	if u.ShowDone == nil {
		v := true
		u.ShowDone = &v
	}
	if strings.TrimSpace(u.TimeFormat) == "" {
		u.TimeFormat = task.DefaultTimeLayout
	}
}

func (l *LogConfig) ApplyDefaults() {
	if strings.TrimSpace(l.Level) == "" {
		l.Level = "info"
	}
	if strings.TrimSpace(l.Format) == "" {
		l.Format = "json"
	}
	if l.MaxSizeMB == 0 {
		l.MaxSizeMB = 10
	}
	if l.MaxBackups == 0 {
		l.MaxBackups = 3
	}
	if l.MaxAgeDays == 0 {
		l.MaxAgeDays = 28
	}
}

func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.UI.ApplyDefaults()
	c.Log.ApplyDefaults()
}

func (c *Config) Validate() error {
	if c.UI.GenerateCount < 1 || c.UI.GenerateCount > MaxGenerateCount {
		return fmt.Errorf("%w: ui.generate_count must be between 1 and %d, got %d", ErrInvalidConfig, MaxGenerateCount, c.UI.GenerateCount)
	}
	if _, err := task.ParseSeverity(c.UI.DefaultSeverity); err != nil {
		return fmt.Errorf("%w: ui.default_severity %q", ErrInvalidConfig, c.UI.DefaultSeverity)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("%w: log.format must be json or text, got %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// DefaultSeverity is the parsed ui.default_severity; call Validate first.
func (c *Config) DefaultSeverity() task.Severity {
	s, err := task.ParseSeverity(c.UI.DefaultSeverity)
	if err != nil {
		return task.SeverityMedium
	}
	return s
}

func (c *Config) ShowDone() bool {
	return c.UI.ShowDone == nil || *c.UI.ShowDone
}

// NewStore builds a task store seeded with the configured draft severity and show-done
// default. Both front ends start from it.
func (c *Config) NewStore(env tasklist.Env, logger logrus.FieldLogger) *tasklist.Store {
	store := tasklist.NewStore(env, logger)
	filters := tasklist.DefaultFilters()
	filters.ShowDone = c.ShowDone()
	store.Seed(tasklist.Drafts{Severity: c.DefaultSeverity()}, filters)
	return store
}

// Load reads a YAML file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

func Parse(b []byte) (*Config, error) {
	r := Config{UI: UIConfig{HumanizeAges: true}}
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}
