package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultDBURL = "missioncontrol.db"
	DefaultPort  = "8080"
)

// Google holds the optional OAuth client. Login with Google is off unless
// both id and secret are set.
type Google struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

func (g Google) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

type Config struct {
	DBURL     string
	JWTSecret string
	Port      string
	LogLevel  slog.Level
	Google    Google
}

// Addr is the listen address derived from Port.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Load reads .env files when present, then the process environment.
// Values already in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBURL:     orDefault(getenv("DB_URL"), DefaultDBURL),
		JWTSecret: getenv("JWT_SECRET"),
		Port:      orDefault(getenv("PORT"), DefaultPort),
		Google: Google{
			ClientID:     getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: getenv("GOOGLE_CLIENT_SECRET"),
			CallbackURL:  getenv("GOOGLE_CALLBACK_URL"),
		},
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	level, err := ParseLevel(getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.Google.Enabled() && cfg.Google.CallbackURL == "" {
		cfg.Google.CallbackURL = "http://localhost" + cfg.Addr() + "/api/auth/google/callback"
	}
	return cfg, nil
}

// ParseLevel maps LOG_LEVEL to a slog level. Empty means debug.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelDebug, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}
