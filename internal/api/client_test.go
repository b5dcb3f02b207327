package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stattrackr/stattrackr/internal/api"
	"github.com/stattrackr/stattrackr/internal/session"
	"github.com/stattrackr/stattrackr/internal/stats"
	"github.com/stretchr/testify/require"
)

// fakeAPI emulates the stats api. Only validAccess is accepted and validRefresh is exchanged
// for freshAccess.
type fakeAPI struct {
	validAccess    atomic.Value
	refreshCalls   atomic.Int32
	refreshDelay   atomic.Int64
	playerRequests atomic.Int32
	logoutStatus   atomic.Int32
	lastQuery      atomic.Value
	lastCSRF       atomic.Value
}

const (
	validRefresh = "refresh-ok"
	freshAccess  = "access-fresh"
)

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func (f *fakeAPI) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.validAccess.Load().(string) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})

			return
		}

		next(w, r)
	}
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()

	fake := &fakeAPI{}
	fake.logoutStatus.Store(http.StatusOK)
	fake.validAccess.Store(freshAccess)
	fake.lastQuery.Store("")
	fake.lastCSRF.Store("")

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Get("/players/", func(w http.ResponseWriter, r *http.Request) {
			fake.playerRequests.Add(1)
			fake.authed(func(w http.ResponseWriter, r *http.Request) {
				fake.lastQuery.Store(r.URL.RawQuery)
				writeJSON(w, http.StatusOK, map[string]any{
					"count":   1,
					"results": []map[string]any{{"id": 7, "name": "Saka", "position": "FW"}},
				})
			})(w, r)
		})
		r.Get("/players/{id}/", fake.authed(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"id": chi.URLParam(r, "id"), "name": "Rice", "position": "MF"})
		}))
		r.Get("/clubs/{id}/stats/", fake.authed(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"wins": 10, "losses": 5})
		}))
		r.Get("/search/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("q") == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Query parameter is required"})

				return
			}

			writeJSON(w, http.StatusOK, map[string]any{"players": []any{}, "clubs": []map[string]any{{"id": 1, "name": "Arsenal"}}})
		})
		r.Post("/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
			fake.refreshCalls.Add(1)
			time.Sleep(time.Duration(fake.refreshDelay.Load()))

			var req struct {
				Refresh string `json:"refresh"`
			}

			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh != validRefresh {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})

				return
			}

			writeJSON(w, http.StatusOK, map[string]string{"access": freshAccess})
		})
		r.Get("/auth/csrf/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"csrfToken": "csrf-123"})
		})
		r.Post("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
			fake.lastCSRF.Store(r.Header.Get("X-CSRFToken"))

			var req struct {
				Username string `json:"username"`
				Password string `json:"password"`
			}

			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != "hunter2" {
				writeJSON(w, http.StatusBadRequest, map[string][]string{"non_field_errors": {"Unable to log in with provided credentials."}})

				return
			}

			writeJSON(w, http.StatusOK, map[string]string{"access": freshAccess, "refresh": validRefresh})
		})
		r.Post("/auth/registration/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string][]string{"username": {"A user with that username already exists."}})
		})
		r.Post("/auth/logout/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, int(fake.logoutStatus.Load()), map[string]string{"detail": "Successfully logged out."})
		})
		r.Get("/auth/user/", fake.authed(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"pk": 3, "username": "gunner", "email": "g@example.com"})
		}))
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return fake, server
}

func newClient(t *testing.T, server *httptest.Server, sess session.Session, failures *atomic.Int32) *api.Client {
	t.Helper()

	client, err := api.New(server.URL+"/api", sess,
		api.WithHTTPClient(server.Client()),
		api.WithAuthFailureHandler(func(error) {
			failures.Add(1)
		}))
	require.NoError(t, err)

	return client
}

func TestRefreshRecovery(t *testing.T) {
	fake, server := newFakeAPI(t)
	sess := session.NewMemory("access-expired", validRefresh)

	var failures atomic.Int32

	client := newClient(t, server, sess, &failures)

	page, err := client.Players(t.Context(), api.ListParams{})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	require.Equal(t, stats.ID("7"), page.Results[0].ID)

	require.Equal(t, int32(1), fake.refreshCalls.Load())
	require.Equal(t, int32(2), fake.playerRequests.Load())
	require.Equal(t, freshAccess, sess.Access())
	require.Equal(t, validRefresh, sess.Refresh())
	require.Zero(t, failures.Load())
}

func TestRefreshFailureClearsSession(t *testing.T) {
	fake, server := newFakeAPI(t)
	sess := session.NewMemory("access-expired", "refresh-revoked")

	var failures atomic.Int32

	client := newClient(t, server, sess, &failures)

	_, err := client.Players(t.Context(), api.ListParams{})
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, api.StatusCode(err))
	require.Equal(t, "Given token not valid for any token type", api.Message(err))

	require.Equal(t, int32(1), fake.refreshCalls.Load())
	require.Equal(t, int32(1), fake.playerRequests.Load())
	require.Empty(t, sess.Access())
	require.Empty(t, sess.Refresh())
	require.Equal(t, int32(1), failures.Load())
}

func TestRefreshOutlivesCancelledRequest(t *testing.T) {
	fake, server := newFakeAPI(t)
	fake.refreshDelay.Store(int64(200 * time.Millisecond))
	sess := session.NewMemory("access-expired", validRefresh)

	var failures atomic.Int32

	client := newClient(t, server, sess, &failures)

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Players(ctx, api.ListParams{})
	require.Equal(t, http.StatusUnauthorized, api.StatusCode(err))
	require.Equal(t, validRefresh, sess.Refresh())
	require.Zero(t, failures.Load())

	require.Eventually(t, func() bool {
		return sess.Access() == freshAccess
	}, 2*time.Second, 10*time.Millisecond)

	page, errRetry := client.Players(t.Context(), api.ListParams{})
	require.NoError(t, errRetry)
	require.Len(t, page.Results, 1)
	require.Equal(t, int32(1), fake.refreshCalls.Load())
	require.Zero(t, failures.Load())
}

type failingRefreshDoer struct {
	next api.HTTPRequestDoer
}

func (d failingRefreshDoer) Do(req *http.Request) (*http.Response, error) {
	if req.URL.Path == "/api/auth/refresh/" {
		return nil, errors.New("connection reset by peer")
	}

	return d.next.Do(req)
}

func TestRefreshNetworkErrorKeepsSession(t *testing.T) {
	_, server := newFakeAPI(t)
	sess := session.NewMemory("access-expired", validRefresh)

	var failures atomic.Int32

	client, errClient := api.New(server.URL+"/api", sess,
		api.WithHTTPClient(failingRefreshDoer{next: server.Client()}),
		api.WithAuthFailureHandler(func(error) {
			failures.Add(1)
		}))
	require.NoError(t, errClient)

	_, err := client.Players(t.Context(), api.ListParams{})
	require.Equal(t, http.StatusUnauthorized, api.StatusCode(err))
	require.Equal(t, "access-expired", sess.Access())
	require.Equal(t, validRefresh, sess.Refresh())
	require.Zero(t, failures.Load())
}

func TestRefreshWithoutToken(t *testing.T) {
	fake, server := newFakeAPI(t)
	sess := session.NewMemory("", "")

	var failures atomic.Int32

	client := newClient(t, server, sess, &failures)

	_, err := client.User(t.Context())
	require.Equal(t, http.StatusUnauthorized, api.StatusCode(err))
	require.Zero(t, fake.refreshCalls.Load())
	require.Equal(t, int32(1), failures.Load())
}

func TestRetriedRequestFailsOnce(t *testing.T) {
	fake, server := newFakeAPI(t)
	fake.validAccess.Store("never-issued")
	sess := session.NewMemory("access-expired", validRefresh)

	var failures atomic.Int32

	client := newClient(t, server, sess, &failures)

	_, err := client.User(t.Context())
	require.Equal(t, http.StatusUnauthorized, api.StatusCode(err))
	require.Equal(t, int32(1), fake.refreshCalls.Load())
	require.Zero(t, failures.Load())
}

func TestListParams(t *testing.T) {
	fake, server := newFakeAPI(t)

	var failures atomic.Int32

	client := newClient(t, server, session.NewMemory(freshAccess, validRefresh), &failures)

	search, position, ordering, page := "ode gaard", "MF", "-stats__goals", 2
	_, err := client.Players(t.Context(), api.ListParams{Search: &search, Position: &position, Ordering: &ordering, Page: &page})
	require.NoError(t, err)
	require.Equal(t, "ordering=-stats__goals&page=2&position=MF&search=ode+gaard", fake.lastQuery.Load())

	player, errPlayer := client.Player(t.Context(), "42")
	require.NoError(t, errPlayer)
	require.Equal(t, stats.ID("42"), player.ID)

	clubStats, errStats := client.ClubStats(t.Context(), "1")
	require.NoError(t, errStats)
	require.Equal(t, "10", stats.FromInt(clubStats.Wins).String())
}

func TestSearch(t *testing.T) {
	_, server := newFakeAPI(t)

	var failures atomic.Int32

	client := newClient(t, server, session.NewMemory("", ""), &failures)

	_, errEmpty := client.Search(t.Context(), "  ")
	require.ErrorIs(t, errEmpty, api.ErrEmptyQuery)

	results, err := client.Search(t.Context(), "ars")
	require.NoError(t, err)
	require.Len(t, results.Clubs, 1)
	require.Empty(t, results.Players)

	_, errCategory := client.TopPlayers(t.Context(), "fouls", 5)
	require.ErrorIs(t, errCategory, api.ErrInvalidCategory)
}

func TestHTTPErrorMessage(t *testing.T) {
	_, server := newFakeAPI(t)

	var failures atomic.Int32

	client := newClient(t, server, session.NewMemory("", ""), &failures)

	_, err := client.Request(t.Context(), http.MethodGet, "/search/", api.Options{})
	require.Equal(t, http.StatusBadRequest, api.StatusCode(err))
	require.Equal(t, "Query parameter is required", api.Message(err))

	_, errMissing := client.Request(t.Context(), http.MethodGet, "/nope/", api.Options{})
	require.Equal(t, http.StatusNotFound, api.StatusCode(errMissing))
}

func TestNetworkError(t *testing.T) {
	_, server := newFakeAPI(t)

	var failures atomic.Int32

	client := newClient(t, server, session.NewMemory("", ""), &failures)
	server.Close()

	_, err := client.Dashboard(t.Context())

	var httpErr *api.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.True(t, httpErr.Network())
	require.Zero(t, httpErr.Status)
}

func TestLogin(t *testing.T) {
	fake, server := newFakeAPI(t)
	sess := session.NewMemory("", "")

	var failures atomic.Int32

	client := newClient(t, server, sess, &failures)

	errBad := client.Login(t.Context(), "gunner", "wrong")
	require.Equal(t, "Unable to log in with provided credentials.", api.Message(errBad))
	require.Empty(t, sess.Access())
	require.Zero(t, fake.refreshCalls.Load())

	require.NoError(t, client.Login(t.Context(), "gunner", "hunter2"))
	require.Equal(t, "csrf-123", fake.lastCSRF.Load())
	require.Equal(t, freshAccess, sess.Access())
	require.Equal(t, validRefresh, sess.Refresh())

	user, errUser := client.User(t.Context())
	require.NoError(t, errUser)
	require.Equal(t, "gunner", user.Username)

	fake.logoutStatus.Store(http.StatusInternalServerError)
	require.NoError(t, client.Logout(t.Context()))
	require.Empty(t, sess.Access())
	require.Empty(t, sess.Refresh())
}

func TestRegister(t *testing.T) {
	_, server := newFakeAPI(t)

	var failures atomic.Int32

	client := newClient(t, server, session.NewMemory("", ""), &failures)

	errMismatch := client.Register(t.Context(), api.Registration{
		Username: "gunner", Email: "g@example.com", Password1: "a", Password2: "b",
	})
	require.ErrorIs(t, errMismatch, api.ErrPasswordMismatch)

	errTaken := client.Register(t.Context(), api.Registration{
		Username: "gunner", Email: "g@example.com", Password1: "a", Password2: "a",
	})
	require.Equal(t, "username: A user with that username already exists.", api.Message(errTaken))
}
