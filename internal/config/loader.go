package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Writer persists user facing config changes, such as the last used username.
type Writer interface {
	Write(config Config) error
	Path() string
}

// Loader handles setting up viper, loading configuration from files, and broadcasting configuration changes.
type Loader struct {
	*viper.Viper
	changes chan<- Config
}

// NewLoader creates a loader. When configFile is empty the standard xdg config dir and the
// working directory are searched.
func NewLoader(changes chan<- Config, configFile string) *Loader {
	loader := Loader{changes: changes, Viper: viper.New()}
	loader.SetDefault("api_base_url", DefaultAPIBaseURL)
	loader.SetDefault("http_timeout_ms", int(DefaultHTTPTimeout.Milliseconds()))
	loader.SetDefault("page_size", DefaultPageSize)
	loader.SetDefault("cache_max_age_hours", 24)
	loader.SetDefault("username", "")
	loader.SetDefault("debug", false)
	loader.SetConfigType("yaml")
	loader.SetEnvPrefix(EnvPrefix)

	if configFile != "" {
		loader.SetConfigFile(configFile)
	} else {
		loader.SetConfigName(DefaultConfigName)
		loader.AddConfigPath(Path(""))
		loader.AddConfigPath(".")
	}

	loader.AutomaticEnv()

	if changes != nil {
		loader.WatchConfig()
		loader.OnConfigChange(loader.onConfigChange)
	}

	return &loader
}

func (cl *Loader) Path() string {
	return cl.ConfigFileUsed()
}

func (cl *Loader) onConfigChange(in fsnotify.Event) {
	if !in.Has(fsnotify.Write) && !in.Has(fsnotify.Rename) {
		return
	}

	slog.Debug("External config reload triggered")
	config, err := cl.Read()
	if err != nil {
		slog.Error("Error reading config", slog.String("error", err.Error()))

		return
	}

	cl.changes <- config
}

func (cl *Loader) Write(config Config) error {
	cl.Set("api_base_url", config.APIBaseURL)
	cl.Set("http_timeout_ms", config.HTTPTimeoutMs)
	cl.Set("page_size", config.PageSize)
	cl.Set("cache_max_age_hours", config.CacheMaxAgeHours)
	cl.Set("username", config.Username)
	cl.Set("debug", config.Debug)

	if cl.ConfigFileUsed() == "" {
		if err := cl.SafeWriteConfigAs(Path(DefaultConfigName + ".yaml")); err != nil {
			return errors.Join(err, errConfigWrite)
		}

		return nil
	}

	if err := cl.WriteConfig(); err != nil {
		return errors.Join(err, errConfigWrite)
	}

	return nil
}

// Read loads the config file, falling back to defaults when no file exists yet.
func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(err, errConfigRead)
		}

		slog.Debug("No config file found, using defaults")
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	if err := config.Validate(); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	return config, nil
}
