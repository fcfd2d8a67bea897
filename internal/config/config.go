package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds dex's runtime settings.
type Config struct {
	APIBase          string
	Locale           string
	FallbackLocale   string
	SearchDebounce   time.Duration
	RequestTimeout   time.Duration
	PrefetchWorkers  int
	PrefetchInterval time.Duration
	LogFile          string
	LogLevel         string
}

const (
	defaultConfigPath     = "~/.config/dex/config.toml"
	defaultLogFile        = "~/.local/state/dex/dex.log"
	defaultAPIBase        = "https://pokeapi.co/api/v2"
	defaultFallbackLocale = "en"
	defaultLogLevel       = "info"
	defaultDebounceMS     = 300
	defaultTimeoutSeconds = 10
	defaultPrefetchWorker = 2
	defaultPrefetchMS     = 150
)

var logLevels = []any{"debug", "info", "warn", "error"}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:          defaultAPIBase,
		Locale:           LocaleFromEnv(),
		FallbackLocale:   defaultFallbackLocale,
		SearchDebounce:   defaultDebounceMS * time.Millisecond,
		RequestTimeout:   defaultTimeoutSeconds * time.Second,
		PrefetchWorkers:  defaultPrefetchWorker,
		PrefetchInterval: defaultPrefetchMS * time.Millisecond,
		LogFile:          mustExpand(defaultLogFile),
		LogLevel:         defaultLogLevel,
	}
}

type rawConfig struct {
	APIBase               string `toml:"api_base"`
	Locale                string `toml:"locale"`
	FallbackLocale        string `toml:"fallback_locale"`
	SearchDebounceMS      *int   `toml:"search_debounce_ms"`
	RequestTimeoutSeconds *int   `toml:"request_timeout_seconds"`
	PrefetchWorkers       *int   `toml:"prefetch_workers"`
	PrefetchIntervalMS    *int   `toml:"prefetch_interval_ms"`
	LogFile               string `toml:"log_file"`
	LogLevel              string `toml:"log_level"`
}

// Load reads the dex config at path (or the default location), falling back
// to defaults when the file is missing. The result is validated.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.Locale); v != "" {
		cfg.Locale = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.FallbackLocale); v != "" {
		cfg.FallbackLocale = strings.ToLower(v)
	}
	if raw.SearchDebounceMS != nil {
		cfg.SearchDebounce = time.Duration(*raw.SearchDebounceMS) * time.Millisecond
	}
	if raw.RequestTimeoutSeconds != nil {
		cfg.RequestTimeout = time.Duration(*raw.RequestTimeoutSeconds) * time.Second
	}
	if raw.PrefetchWorkers != nil {
		cfg.PrefetchWorkers = *raw.PrefetchWorkers
	}
	if raw.PrefetchIntervalMS != nil {
		cfg.PrefetchInterval = time.Duration(*raw.PrefetchIntervalMS) * time.Millisecond
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", resolved, err)
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIBase, validation.Required),
		validation.Field(&c.FallbackLocale, validation.Required),
		validation.Field(&c.SearchDebounce, validation.Min(time.Duration(0)), validation.Max(5*time.Second)),
		validation.Field(&c.RequestTimeout, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.PrefetchWorkers, validation.Min(0), validation.Max(16)),
		validation.Field(&c.PrefetchInterval, validation.Min(time.Duration(0))),
		validation.Field(&c.LogFile, validation.Required),
		validation.Field(&c.LogLevel, validation.Required, validation.In(logLevels...)),
	)
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// LocaleFromEnv derives a two-letter language code from LC_ALL, LC_MESSAGES
// or LANG, in that order. "C", "POSIX" and unset variables yield "".
func LocaleFromEnv() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if lang := languageCode(os.Getenv(name)); lang != "" {
			return lang
		}
	}
	return ""
}

// languageCode reduces "pt_BR.UTF-8@euro" to "pt".
func languageCode(value string) string {
	v := strings.TrimSpace(value)
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	if i := strings.IndexAny(v, "_-"); i >= 0 {
		v = v[:i]
	}
	v = strings.ToLower(v)
	if v == "c" || v == "posix" {
		return ""
	}
	return v
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
