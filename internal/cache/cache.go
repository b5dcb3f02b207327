// Package cache implements a very trivial filesystem cache.
package cache

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache miss error")
	errCacheSet  = errors.New("cache set error")
	errCacheDir  = errors.New("cache dir error")
)

type Cache interface {
	Get(kind Kind, key string) ([]byte, error)
	Set(kind Kind, key string, content []byte) error
	Delete(kind Kind, key string) error
}

type Kind string

const (
	KindPlayer Kind = "player"
	KindClub   Kind = "club"
)

// Filesystem implements the default filesystem based Cache interface.
type Filesystem struct {
	cacheDir string
	// How long until a entry is considered stale. Zero disables expiry.
	maxAge time.Duration
}

func New(cacheDir string, maxAge time.Duration) (Filesystem, error) {
	if err := os.MkdirAll(cacheDir, 0o700); err != nil {
		slog.Error("Failed to make cache root", slog.String("error", err.Error()),
			slog.String("path", cacheDir))

		return Filesystem{}, errors.Join(err, errCacheDir)
	}

	return Filesystem{cacheDir: cacheDir, maxAge: maxAge}, nil
}

func (c Filesystem) Set(kind Kind, key string, content []byte) error {
	file, errFile := os.Create(c.fullPath(kind, key))
	if errFile != nil {
		return errors.Join(errFile, errCacheSet)
	}

	defer func(file io.Closer) {
		if err := file.Close(); err != nil {
			slog.Error("Failed to close cache file", slog.String("error", err.Error()))
		}
	}(file)

	if _, err := file.Write(content); err != nil {
		return errors.Join(err, errCacheSet)
	}

	return nil
}

func (c Filesystem) Get(kind Kind, key string) ([]byte, error) {
	fullPath := c.fullPath(kind, key)

	file, errFile := os.Open(fullPath)
	if errFile != nil {
		return nil, errors.Join(errFile, ErrCacheMiss)
	}

	stat, errStat := file.Stat()
	if errStat != nil {
		if err := file.Close(); err != nil {
			return nil, errors.Join(errStat, err, ErrCacheMiss)
		}

		return nil, errors.Join(errStat, ErrCacheMiss)
	}

	if c.maxAge > 0 && time.Since(stat.ModTime()) > c.maxAge {
		if err := file.Close(); err != nil {
			return nil, errors.Join(err, ErrCacheMiss)
		}

		if err := os.Remove(fullPath); err != nil {
			return nil, errors.Join(err, ErrCacheMiss)
		}

		return nil, ErrCacheMiss
	}

	body, errRead := io.ReadAll(file)
	if errRead != nil {
		if err := file.Close(); err != nil {
			return nil, errors.Join(err, ErrCacheMiss)
		}

		return nil, errors.Join(errRead, ErrCacheMiss)
	}

	if err := file.Close(); err != nil {
		return nil, errors.Join(err, ErrCacheMiss)
	}

	return body, nil
}

// Delete removes an entry, a missing entry is not an error.
func (c Filesystem) Delete(kind Kind, key string) error {
	if err := os.Remove(c.fullPath(kind, key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(err, errCacheSet)
	}

	return nil
}

func (c Filesystem) fullPath(kind Kind, key string) string {
	return path.Join(c.cacheDir, cacheName(kind, key))
}

// cacheName flattens the key so ids containing separators cannot escape the cache dir.
func cacheName(kind Kind, key string) string {
	safe := make([]rune, 0, len(key))
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			safe = append(safe, r)
		default:
			safe = append(safe, '_')
		}
	}

	return string(kind) + "_" + string(safe) + ".json"
}
