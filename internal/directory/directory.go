// Package directory looks up players and clubs by id, serving from the local cache when
// possible and fetching the rest from the api.
package directory

import (
	"context"
	"errors"
	"log/slog"

	"github.com/stattrackr/stattrackr/internal/cache"
	"github.com/stattrackr/stattrackr/internal/encoding"
	"github.com/stattrackr/stattrackr/internal/stats"
	"golang.org/x/sync/errgroup"
)

const fetchConcurrency = 4

var ErrLookup = errors.New("failed to look up entity")

// API is the subset of the api client used for lookups.
type API interface {
	Player(ctx context.Context, id stats.ID) (stats.Player, error)
	Club(ctx context.Context, id stats.ID) (stats.Club, error)
}

func New(client API, store cache.Cache) *Directory {
	return &Directory{client: client, cache: store}
}

type Directory struct {
	client API
	cache  cache.Cache
}

// Players returns the players for ids in the same order.
func (d *Directory) Players(ctx context.Context, ids ...stats.ID) ([]stats.Player, error) {
	return lookup(ctx, d.cache, cache.KindPlayer, ids, d.client.Player)
}

func (d *Directory) Clubs(ctx context.Context, ids ...stats.ID) ([]stats.Club, error) {
	return lookup(ctx, d.cache, cache.KindClub, ids, d.client.Club)
}

// Invalidate forgets any cached copy so the next lookup hits the api.
func (d *Directory) Invalidate(kind cache.Kind, id stats.ID) {
	if err := d.cache.Delete(kind, string(id)); err != nil {
		slog.Warn("Failed to invalidate cache entry", slog.String("error", err.Error()))
	}
}

func lookup[T any](ctx context.Context, store cache.Cache, kind cache.Kind, ids []stats.ID,
	fetch func(context.Context, stats.ID) (T, error),
) ([]T, error) {
	results := make([]T, len(ids))
	var missing []int //nolint:prealloc

	for idx, id := range ids {
		body, errGet := store.Get(kind, string(id))
		if errGet != nil {
			if !errors.Is(errGet, cache.ErrCacheMiss) {
				return nil, errors.Join(errGet, ErrLookup)
			}

			missing = append(missing, idx)

			continue
		}

		cached, errDecode := encoding.UnmarshalBytes[T](body)
		if errDecode != nil {
			missing = append(missing, idx)

			continue
		}

		results[idx] = cached
	}

	if len(missing) == 0 {
		return results, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(fetchConcurrency)

	for _, idx := range missing {
		group.Go(func() error {
			entity, errFetch := fetch(groupCtx, ids[idx])
			if errFetch != nil {
				return errors.Join(errFetch, ErrLookup)
			}

			results[idx] = entity

			body, errEncode := encoding.MarshalJSON(entity)
			if errEncode != nil {
				return errors.Join(errEncode, ErrLookup)
			}

			if errSet := store.Set(kind, string(ids[idx]), body); errSet != nil {
				slog.Warn("Failed to cache entity", slog.String("error", errSet.Error()))
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
