package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stattrackr/stattrackr/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoaderDefaults(t *testing.T) {
	loader := config.NewLoader(nil, filepath.Join(t.TempDir(), "missing.yaml"))

	conf, err := loader.Read()
	require.NoError(t, err)
	require.Equal(t, config.DefaultAPIBaseURL, conf.APIBaseURL)
	require.Equal(t, config.DefaultPageSize, conf.PageSize)
	require.Equal(t, config.DefaultHTTPTimeout, conf.HTTPTimeout())
	require.Equal(t, 24*time.Hour, conf.CacheMaxAge())
}

func TestLoaderReadFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "stattrackr.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
api_base_url: https://stats.example.com/api
page_size: 25
http_timeout_ms: 2500
username: gunner
`), 0o600))

	conf, err := config.NewLoader(nil, configPath).Read()
	require.NoError(t, err)
	require.Equal(t, "https://stats.example.com/api", conf.APIBaseURL)
	require.Equal(t, 25, conf.PageSize)
	require.Equal(t, 2500*time.Millisecond, conf.HTTPTimeout())
	require.Equal(t, "gunner", conf.Username)
}

func TestLoaderWrite(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "stattrackr.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("page_size: 5\n"), 0o600))

	loader := config.NewLoader(nil, configPath)
	conf, err := loader.Read()
	require.NoError(t, err)

	conf.Username = "keeper"
	require.NoError(t, loader.Write(conf))

	reread, errReread := config.NewLoader(nil, configPath).Read()
	require.NoError(t, errReread)
	require.Equal(t, "keeper", reread.Username)
	require.Equal(t, 5, reread.PageSize)
}

func TestLoaderInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "stattrackr.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("api_base_url: ftp://nope\n"), 0o600))

	_, err := config.NewLoader(nil, configPath).Read()
	require.Error(t, err)
}
