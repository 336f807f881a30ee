package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	// Remote API
	APIURL string `yaml:"api_url"`

	// Session state directory (browser-profile equivalent)
	StateDir string `yaml:"state_dir"`

	// Logging
	LogFile  string     `yaml:"log_file"`
	LogLevel slog.Level `yaml:"-"`

	// Raw level string from file/env, parsed into LogLevel
	LogLevelName string `yaml:"log_level"`
}

// Load reads configuration in precedence order: defaults, then the YAML
// config file, then .env, then environment variables.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		APIURL:       "http://localhost:8080/api",
		StateDir:     defaultStateDir(),
		LogFile:      filepath.Join(os.TempDir(), "helpdesk.log"),
		LogLevelName: "INFO",
	}

	cfg.applyFile(configFilePath())

	cfg.APIURL = getEnv("HELPDESK_API_URL", cfg.APIURL)
	cfg.StateDir = getEnv("HELPDESK_STATE_DIR", cfg.StateDir)
	cfg.LogFile = getEnv("HELPDESK_LOG_FILE", cfg.LogFile)
	cfg.LogLevelName = getEnv("HELPDESK_LOG_LEVEL", cfg.LogLevelName)
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)

	return cfg
}

// applyFile overlays values from a YAML config file, if one exists.
func (c *Config) applyFile(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return
	}
	if fileCfg.APIURL != "" {
		c.APIURL = fileCfg.APIURL
	}
	if fileCfg.StateDir != "" {
		c.StateDir = fileCfg.StateDir
	}
	if fileCfg.LogFile != "" {
		c.LogFile = fileCfg.LogFile
	}
	if fileCfg.LogLevelName != "" {
		c.LogLevelName = fileCfg.LogLevelName
	}
}

// configFilePath returns $XDG_CONFIG_HOME/helpdesk/config.yaml or its
// home-directory fallback. Overridable via HELPDESK_CONFIG.
func configFilePath() string {
	if p := os.Getenv("HELPDESK_CONFIG"); p != "" {
		return p
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "helpdesk", "config.yaml")
}

// defaultStateDir is where the session token and identity live.
func defaultStateDir() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ".helpdesk"
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "helpdesk")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
