package directory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stattrackr/stattrackr/internal/cache"
	"github.com/stattrackr/stattrackr/internal/directory"
	"github.com/stattrackr/stattrackr/internal/stats"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("not found")

type countingAPI struct {
	mu      sync.Mutex
	players map[stats.ID]int
}

func (c *countingAPI) Player(_ context.Context, id stats.ID) (stats.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id == "404" {
		return stats.Player{}, errNotFound
	}

	c.players[id]++

	return stats.Player{ID: id, Name: "player " + string(id), Position: stats.Forward}, nil
}

func (c *countingAPI) Club(_ context.Context, id stats.ID) (stats.Club, error) {
	return stats.Club{ID: id, Name: "club " + string(id)}, nil
}

func TestPlayersCached(t *testing.T) {
	fsCache, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	client := &countingAPI{players: map[stats.ID]int{}}
	dir := directory.New(client, fsCache)

	players, errPlayers := dir.Players(t.Context(), "1", "2", "3")
	require.NoError(t, errPlayers)
	require.Equal(t, []string{"player 1", "player 2", "player 3"},
		[]string{players[0].Name, players[1].Name, players[2].Name})

	again, errAgain := dir.Players(t.Context(), "3", "1")
	require.NoError(t, errAgain)
	require.Equal(t, stats.ID("3"), again[0].ID)
	require.Equal(t, stats.Forward, again[0].Position)
	require.Equal(t, 1, client.players["1"])
	require.Equal(t, 1, client.players["3"])

	dir.Invalidate(cache.KindPlayer, "1")
	_, errRefetch := dir.Players(t.Context(), "1")
	require.NoError(t, errRefetch)
	require.Equal(t, 2, client.players["1"])
}

func TestLookupError(t *testing.T) {
	fsCache, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	dir := directory.New(&countingAPI{players: map[stats.ID]int{}}, fsCache)

	_, errLookup := dir.Players(t.Context(), "1", "404")
	require.ErrorIs(t, errLookup, directory.ErrLookup)
	require.ErrorIs(t, errLookup, errNotFound)

	clubs, errClubs := dir.Clubs(t.Context(), "9")
	require.NoError(t, errClubs)
	require.Equal(t, "club 9", clubs[0].Name)
}
