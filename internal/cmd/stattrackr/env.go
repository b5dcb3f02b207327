package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"

	"github.com/adrg/xdg"
	"github.com/stattrackr/stattrackr/internal/api"
	"github.com/stattrackr/stattrackr/internal/cache"
	"github.com/stattrackr/stattrackr/internal/config"
	"github.com/stattrackr/stattrackr/internal/directory"
	"github.com/stattrackr/stattrackr/internal/session"
	"github.com/stattrackr/stattrackr/internal/store"
)

// environment holds everything a command needs to talk to the api.
type environment struct {
	config    config.Config
	loader    *config.Loader
	logFile   io.Closer
	database  *sql.DB
	client    *api.Client
	directory *directory.Directory
	cachePath string
}

// setup loads the config and opens the logger, credential store, api client and cache. Config changes
// are only watched when configUpdates is non nil. Auth failures are delivered without blocking.
func setup(ctx context.Context, configUpdates chan<- config.Config, authFailures chan<- error) (*environment, error) {
	// Make sure our config & data home exists.
	if err := os.MkdirAll(path.Join(xdg.ConfigHome, config.ConfigDirName), 0o750); err != nil {
		return nil, errors.Join(err, errApp)
	}

	env := &environment{loader: config.NewLoader(configUpdates, cfgFile)}

	userConfig, errConfig := env.loader.Read()
	if errConfig != nil {
		return nil, errors.Join(errApp, errConfig)
	}

	if apiBaseURL != "" {
		userConfig.APIBaseURL = apiBaseURL
		if err := userConfig.Validate(); err != nil {
			return nil, errors.Join(errApp, err)
		}
	}

	env.config = userConfig

	level := slog.LevelInfo
	if userConfig.Debug {
		level = slog.LevelDebug
	}

	// Setup file based logger. This is very useful for us as our console is taken over by the ui.
	logFile, errLogger := config.LoggerInit(config.DefaultLogName, level)
	if errLogger != nil {
		return nil, errors.Join(errLogger, errApp)
	}
	env.logFile = logFile

	// Setup the sqlite database holding the session tokens.
	database, errDB := store.Open(ctx, config.Path(config.DefaultDBName))
	if errDB != nil {
		env.Close()

		return nil, errors.Join(errDB, errApp)
	}
	env.database = database

	// Tokens are stored per api so switching servers does not leak credentials.
	sess, errSession := session.NewPersistent(ctx, store.New(database), userConfig.APIBaseURL)
	if errSession != nil {
		env.Close()

		return nil, errors.Join(errSession, errApp)
	}

	httpClient := &http.Client{Timeout: userConfig.HTTPTimeout()}
	client, errClient := api.New(userConfig.APIBaseURL, sess,
		api.WithHTTPClient(httpClient),
		api.WithUserAgent("stattrackr/"+BuildVersion),
		api.WithAuthFailureHandler(func(err error) {
			if authFailures == nil {
				return
			}

			select {
			case authFailures <- err:
			default:
			}
		}))
	if errClient != nil {
		env.Close()

		return nil, errors.Join(errClient, errApp)
	}
	env.client = client

	// Setup the filesystem cache, creating any necessary directories.
	env.cachePath = config.PathCache(config.CacheDirName)
	entityCache, errCache := cache.New(env.cachePath, userConfig.CacheMaxAge())
	if errCache != nil {
		env.Close()

		return nil, errors.Join(errCache, errApp)
	}

	env.directory = directory.New(client, entityCache)

	return env, nil
}

func (e *environment) Close() {
	if e.database != nil {
		if err := e.database.Close(); err != nil {
			slog.Error("Error closing database", slog.String("error", err.Error()))
		}
	}

	if e.logFile != nil {
		if err := e.logFile.Close(); err != nil {
			slog.Error("Failed to close log file", slog.String("error", err.Error()))
		}
	}
}
