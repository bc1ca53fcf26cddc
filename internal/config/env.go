package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given .env files into the process environment.
// Missing files are ignored; variables already set are not overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnv overrides file values with TODOIST_* environment variables.
func (c *Config) ApplyEnv() {
	if v := getEnv("TODOIST_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getEnv("TODOIST_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := getEnv("TODOIST_LOG_FORMAT"); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	if v := getEnv("TODOIST_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if val := getEnvInt("TODOIST_GENERATE_COUNT"); val > 0 {
		c.UI.GenerateCount = val
	}
	if v := getEnv("TODOIST_TIME_FORMAT"); v != "" {
		c.UI.TimeFormat = v
	}
	if v, ok := getEnvBool("TODOIST_DEV_STATIC"); ok {
		c.Server.DevStatic = v
	}
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getEnvInt(key string) int {
	val := getEnv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvBool(key string) (bool, bool) {
	switch strings.ToLower(getEnv(key)) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	default:
		return false, false
	}
}
