package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"zippgo/internal/credstore"
)

// Config holds the client's tunables. All of it has working defaults so the
// binary runs with no config file at all.
type Config struct {
	Server struct {
		BaseURL string        // e.g. http://localhost:5000/api
		WSURL   string        // derived from BaseURL when empty
		Timeout time.Duration // per-request timeout
	}
	Credentials struct {
		Path string
	}
	Log struct {
		Level string
	}
	Tracking struct {
		Enabled bool
	}
}

// Load reads the YAML config at path, applies defaults and validates.
// A missing file is not an error: defaults apply. server.base_url is
// overridden by the ZIPPGO_SERVER env var, and that in turn by a non-empty
// serverOverride (the --server flag).
func Load(path, serverOverride string) (*Config, error) {
	var cfg Config

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := parseYAML(file, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// no file, defaults only
	default:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	if env := strings.TrimSpace(os.Getenv("ZIPPGO_SERVER")); env != "" {
		cfg.Server.BaseURL = strings.TrimRight(env, "/")
	}
	if serverOverride = strings.TrimSpace(serverOverride); serverOverride != "" {
		cfg.Server.BaseURL = strings.TrimRight(serverOverride, "/")
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultPath is ~/.config/zippgo/config.yaml (per-OS user config dir).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return dir + string(os.PathSeparator) + "zippgo" + string(os.PathSeparator) + "config.yaml"
}

// applyDefaults sets safe defaults for unset fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:5000/api"
	}
	cfg.Server.BaseURL = strings.TrimRight(cfg.Server.BaseURL, "/")

	if cfg.Server.WSURL == "" {
		cfg.Server.WSURL = deriveWSURL(cfg.Server.BaseURL)
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 15 * time.Second
	}
	if cfg.Credentials.Path == "" {
		cfg.Credentials.Path = credstore.DefaultPath()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// deriveWSURL maps the HTTP base to the service's websocket root:
// http(s)://host[/api] -> ws(s)://host/ws.
func deriveWSURL(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	return u.String()
}

// validate checks required fields and basic ranges.
func (c *Config) validate() error {
	var problems []string

	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		problems = append(problems, "server.base_url must be an http(s) URL")
	}
	if c.Server.Timeout < time.Second {
		problems = append(problems, "server.timeout must be at least 1s")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, "log.level must be one of debug|info|warn|error")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
