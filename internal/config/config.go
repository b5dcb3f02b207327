package config

import (
	"errors"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/adrg/xdg"
)

var (
	errConfigWrite   = errors.New("failed to write config file")
	errConfigRead    = errors.New("failed to read config file")
	errConfigInvalid = errors.New("invalid config value")
	errLoggerInit    = errors.New("failed to initialize logger")
)

const (
	ConfigDirName      = "stattrackr"
	DefaultConfigName  = "stattrackr"
	DefaultDBName      = "stattrackr.db"
	DefaultLogName     = "stattrackr.log"
	CacheDirName       = "cache"
	EnvPrefix          = "stattrackr"
	DefaultHTTPTimeout = 15 * time.Second
	DefaultAPIBaseURL  = "http://localhost:8000/api"
	DefaultPageSize    = 10
)

type Config struct {
	// APIBaseURL is the root of the REST API, all endpoint paths are joined onto it.
	APIBaseURL       string `mapstructure:"api_base_url"`
	HTTPTimeoutMs    int    `mapstructure:"http_timeout_ms"`
	PageSize         int    `mapstructure:"page_size"`
	CacheMaxAgeHours int    `mapstructure:"cache_max_age_hours"`
	// Username is remembered after a successful login to prefill the login form.
	Username string `mapstructure:"username"`
	Debug    bool   `mapstructure:"debug"`
}

func (c Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutMs <= 0 {
		return DefaultHTTPTimeout
	}

	return time.Duration(c.HTTPTimeoutMs) * time.Millisecond
}

func (c Config) CacheMaxAge() time.Duration {
	return time.Duration(max(0, c.CacheMaxAgeHours)) * time.Hour
}

// Validate checks the values that would otherwise fail much later with confusing errors.
func (c Config) Validate() error {
	parsed, errURL := url.Parse(c.APIBaseURL)
	if errURL != nil {
		return errors.Join(errURL, errConfigInvalid)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.Join(errors.New("api_base_url must be a http(s) url"), errConfigInvalid)
	}

	if c.PageSize <= 0 {
		return errors.Join(errors.New("page_size must be positive"), errConfigInvalid)
	}

	return nil
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

func PathCache(name string) string {
	cacheDir, found := os.LookupEnv("CACHE_DIR")
	if found && cacheDir != "" {
		return cacheDir
	}

	return path.Join(xdg.CacheHome, ConfigDirName, name)
}

// LoggerInit sets up the slog global handler to use a log file as we cant print to the console.
func LoggerInit(logPath string, level slog.Level) (io.Closer, error) {
	logFile, errLogFile := os.Create(path.Join(xdg.ConfigHome, ConfigDirName, logPath))
	if errLogFile != nil {
		return nil, errors.Join(errLogFile, errLoggerInit)
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logFile, nil
}
