package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. STYLESENSE_API_URL.
const EnvPrefix = "STYLESENSE_"

// Config holds application-level configuration.
type Config struct {
	APIURL         string        `koanf:"api_url"`         // e.g. "https://api.stylesense.app"
	AuthDir        string        `koanf:"auth_dir"`        // Holds the session token and user record
	LogPath        string        `koanf:"log_path"`        // The TUI owns stdout, so logs go to a file
	LogLevel       string        `koanf:"log_level"`       // logrus level name
	RequestTimeout time.Duration `koanf:"request_timeout"` // Bounds every API call, including confirmations
	FeedLimit      int           `koanf:"feed_limit"`      // Posts per community page
}

// TokenPath is the file holding the bearer token.
func (c Config) TokenPath() string { return filepath.Join(c.AuthDir, "token") }

// UserPath is the file holding the signed-in user's record.
func (c Config) UserPath() string { return filepath.Join(c.AuthDir, "user.json") }

// DefaultPath returns ~/.config/stylesense/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "stylesense", "config.toml"), nil
}

// Load builds the configuration from defaults, the TOML file at path (skipped
// when it does not exist), a .env file in the working directory and
// STYLESENSE_* environment variables, in increasing precedence.
//
//	STYLESENSE_API_URL          API base URL (default: http://localhost:8000)
//	STYLESENSE_AUTH_DIR         Session directory (default: ~/.config/stylesense)
//	STYLESENSE_LOG_PATH         Log file (default: <auth dir>/stylesense.log)
//	STYLESENSE_LOG_LEVEL        Log level (default: "info")
//	STYLESENSE_REQUEST_TIMEOUT  Per-request timeout (default: "20s")
//	STYLESENSE_FEED_LIMIT       Community page size, 1-100 (default: 50)
func Load(path string) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	baseDir := filepath.Join(home, ".config", "stylesense")

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"api_url":         "http://localhost:8000",
		"auth_dir":        baseDir,
		"log_level":       "info",
		"request_timeout": "20s",
		"feed_limit":      50,
	}, "."), nil); err != nil {
		return Config{}, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return Config{}, fmt.Errorf("loading %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	// A missing .env is the common case.
	_ = godotenv.Load()

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(cfg.AuthDir, "stylesense.log")
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	parsed, err := url.Parse(c.APIURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid api_url %q: must be an absolute URL", c.APIURL)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("invalid api_url %q: only http and https are allowed", c.APIURL)
	}
	c.APIURL = strings.TrimRight(parsed.String(), "/")

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request_timeout %s: must be positive", c.RequestTimeout)
	}
	if c.FeedLimit < 1 || c.FeedLimit > 100 {
		return fmt.Errorf("invalid feed_limit %d: must be between 1 and 100", c.FeedLimit)
	}
	if strings.TrimSpace(c.AuthDir) == "" {
		return errors.New("invalid auth_dir: must not be empty")
	}
	return nil
}

const sample = `# StyleSense terminal client

api_url = "http://localhost:8000"
log_level = "info"
request_timeout = "20s"
feed_limit = 50
`

// Init writes a sample configuration file to path. It refuses to overwrite.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sample), 0o600)
}
