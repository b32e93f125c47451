package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"
)

// EnvPrefix prefixes every environment override, e.g. SWITCHBOARD_LOG_LEVEL.
const EnvPrefix = "SWITCHBOARD_"

// Config holds all application configuration.
type Config struct {
	DiscordToken        string
	DiscordAppID        string
	DiscordGuildID      string
	LogLevel            string
	LogFormat           string
	IntervalGranularity int
	RateLimitInterval   time.Duration
	RateLimitBurst      int
	ModalSubmitDispatch bool
	Dir                 string
}

// jsonConfig is an intermediate struct for JSON unmarshalling.
// Pointer types distinguish "missing" (nil) from "zero".
type jsonConfig struct {
	DiscordToken        string `json:"discord_token"`
	DiscordAppID        string `json:"discord_app_id"`
	DiscordGuildID      string `json:"discord_guild_id"`
	LogLevel            string `json:"log_level"`
	LogFormat           string `json:"log_format"`
	IntervalGranularity *int   `json:"interval_granularity"`
	RateLimitIntervalMS *int   `json:"rate_limit_interval_ms"`
	RateLimitBurst      *int   `json:"rate_limit_burst"`
	ModalSubmitDispatch *bool  `json:"modal_submit_dispatch"`
}

// envConfig holds overrides read from the environment and the .env file.
type envConfig struct {
	DiscordToken        *string        `env:"DISCORD_TOKEN"`
	DiscordAppID        *string        `env:"DISCORD_APP_ID"`
	DiscordGuildID      *string        `env:"DISCORD_GUILD_ID"`
	LogLevel            *string        `env:"LOG_LEVEL"`
	LogFormat           *string        `env:"LOG_FORMAT"`
	IntervalGranularity *int           `env:"INTERVAL_GRANULARITY"`
	RateLimitInterval   *time.Duration `env:"RATE_LIMIT_INTERVAL"`
	RateLimitBurst      *int           `env:"RATE_LIMIT_BURST"`
	ModalSubmitDispatch *bool          `env:"MODAL_SUBMIT_DISPATCH"`
}

// userHomeDir is a package-level variable to allow overriding in tests.
var userHomeDir = os.UserHomeDir

// readFile is a package-level variable to allow overriding in tests.
var readFile = os.ReadFile

// readDotEnv parses a .env file without touching the process environment.
var readDotEnv = func(path string) (map[string]string, error) {
	return godotenv.Read(path)
}

// environ is a package-level variable to allow overriding in tests.
var environ = os.Environ

// Load reads ~/.switchboard/config.json, then applies overrides from
// ~/.switchboard/.env and from SWITCHBOARD_* environment variables, in that
// order. A missing config file is not an error.
func Load() (*Config, error) {
	home, err := userHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	dir := filepath.Join(home, ".switchboard")

	jc, err := readConfigFile(filepath.Join(dir, "config.json"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DiscordToken:        jc.DiscordToken,
		DiscordAppID:        jc.DiscordAppID,
		DiscordGuildID:      jc.DiscordGuildID,
		LogLevel:            stringDefault(jc.LogLevel, "info"),
		LogFormat:           stringDefault(jc.LogFormat, "text"),
		IntervalGranularity: intPtrDefault(jc.IntervalGranularity, 2),
		RateLimitInterval:   time.Duration(intPtrDefault(jc.RateLimitIntervalMS, 2000)) * time.Millisecond,
		RateLimitBurst:      intPtrDefault(jc.RateLimitBurst, 3),
		ModalSubmitDispatch: boolPtrDefault(jc.ModalSubmitDispatch, false),
		Dir:                 dir,
	}

	if err := applyEnv(cfg, filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}

	var missing []string
	if cfg.DiscordToken == "" {
		missing = append(missing, "discord_token")
	}
	if cfg.DiscordAppID == "" {
		missing = append(missing, "discord_app_id")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required config fields: %v", missing)
	}
	if cfg.IntervalGranularity < 1 {
		return nil, fmt.Errorf("interval_granularity must be at least 1, got %d", cfg.IntervalGranularity)
	}

	return cfg, nil
}

func readConfigFile(path string) (*jsonConfig, error) {
	var jc jsonConfig

	data, err := readFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &jc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	standardJSON, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := json.Unmarshal(standardJSON, &jc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &jc, nil
}

func applyEnv(cfg *Config, dotEnvPath string) error {
	vars, err := readDotEnv(dotEnvPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading env file: %w", err)
	}
	if vars == nil {
		vars = make(map[string]string)
	}
	for _, kv := range environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: EnvPrefix, Environment: vars}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}

	setIf(&cfg.DiscordToken, ec.DiscordToken)
	setIf(&cfg.DiscordAppID, ec.DiscordAppID)
	setIf(&cfg.DiscordGuildID, ec.DiscordGuildID)
	setIf(&cfg.LogLevel, ec.LogLevel)
	setIf(&cfg.LogFormat, ec.LogFormat)
	setIf(&cfg.IntervalGranularity, ec.IntervalGranularity)
	setIf(&cfg.RateLimitInterval, ec.RateLimitInterval)
	setIf(&cfg.RateLimitBurst, ec.RateLimitBurst)
	setIf(&cfg.ModalSubmitDispatch, ec.ModalSubmitDispatch)
	return nil
}

func setIf[T any](dst *T, val *T) {
	if val != nil {
		*dst = *val
	}
}

func stringDefault(val, def string) string {
	if val != "" {
		return val
	}
	return def
}

func intPtrDefault(val *int, def int) int {
	if val != nil {
		return *val
	}
	return def
}

func boolPtrDefault(val *bool, def bool) bool {
	if val != nil {
		return *val
	}
	return def
}
