package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/oapi-codegen/runtime"
	"github.com/stattrackr/stattrackr/internal/resource"
	"github.com/stattrackr/stattrackr/internal/stats"
)

const (
	PathPlayers      = "/players/"
	PathClubs        = "/clubs/"
	PathDashboard    = "/dashboard/"
	PathSearch       = "/search/"
	PathTopPlayers   = "/players/top_performers/"
	PathTopClubs     = "/clubs/top_clubs/"
	PathLogin        = "/auth/login/"
	PathLogout       = "/auth/logout/"
	PathRegistration = "/auth/registration/"
	PathRefresh      = "/auth/refresh/"
	PathCSRF         = "/auth/csrf/"
	PathUser         = "/auth/user/"
)

var (
	// PlayerOrdering maps player table columns to the api ordering fields.
	PlayerOrdering = map[string]string{ //nolint:gochecknoglobals
		"goals":        "stats__goals",
		"assists":      "stats__assists",
		"appearances":  "stats__appearances",
		"shots":        "stats__shots",
		"passes":       "stats__passes",
		"tackles":      "stats__tackles",
		"clean_sheets": "stats__clean_sheets",
	}

	ClubOrdering = map[string]string{ //nolint:gochecknoglobals
		"wins":         "stats__wins",
		"losses":       "stats__losses",
		"goals":        "stats__goals",
		"clean_sheets": "stats__clean_sheets",
		"tackles":      "stats__tackles",
	}

	PlayerCategories = []string{"goals", "assists", "passes", "shots", "tackles", "clean_sheets"} //nolint:gochecknoglobals
	ClubCategories   = []string{"wins", "goals", "clean_sheets", "tackles"}                       //nolint:gochecknoglobals
)

// ListParams are the filters accepted by the player and club list endpoints.
type ListParams struct {
	Search   *string
	Position *string
	Ordering *string
	Page     *int
}

// Values encodes the set parameters as query values.
func (p ListParams) Values() (url.Values, error) {
	values := url.Values{}

	if p.Search != nil && *p.Search != "" {
		if err := addQueryParam(values, "search", *p.Search); err != nil {
			return nil, err
		}
	}

	if p.Position != nil && *p.Position != "" {
		if err := addQueryParam(values, "position", *p.Position); err != nil {
			return nil, err
		}
	}

	if p.Ordering != nil && *p.Ordering != "" {
		if err := addQueryParam(values, "ordering", *p.Ordering); err != nil {
			return nil, err
		}
	}

	if p.Page != nil && *p.Page > 1 {
		if err := addQueryParam(values, "page", *p.Page); err != nil {
			return nil, err
		}
	}

	return values, nil
}

func addQueryParam(values url.Values, name string, value any) error {
	queryFrag, errStyle := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if errStyle != nil {
		return errors.Join(errStyle, errRequest)
	}

	parsed, errParse := url.ParseQuery(queryFrag)
	if errParse != nil {
		return errors.Join(errParse, errRequest)
	}

	for key, entries := range parsed {
		for _, entry := range entries {
			values.Add(key, entry)
		}
	}

	return nil
}

// entityPath renders collection/{id}/suffix with the id escaped as a path segment.
func entityPath(collection string, id stats.ID, suffix string) (string, error) {
	pathParam, errStyle := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, string(id))
	if errStyle != nil {
		return "", errors.Join(errStyle, errRequest)
	}

	return strings.TrimSuffix(collection, "/") + "/" + pathParam + "/" + suffix, nil
}

// Fetcher adapts Get for use as a resource fetcher.
func Fetcher[T any](client *Client) resource.Fetcher[T] {
	return func(ctx context.Context, endpoint string, params url.Values) (T, error) {
		return Get[T](ctx, client, endpoint, params)
	}
}

func (c *Client) Players(ctx context.Context, params ListParams) (stats.Page[stats.Player], error) {
	values, err := params.Values()
	if err != nil {
		return stats.Page[stats.Player]{}, err
	}

	return Get[stats.Page[stats.Player]](ctx, c, PathPlayers, values)
}

func (c *Client) Clubs(ctx context.Context, params ListParams) (stats.Page[stats.Club], error) {
	values, err := params.Values()
	if err != nil {
		return stats.Page[stats.Club]{}, err
	}

	return Get[stats.Page[stats.Club]](ctx, c, PathClubs, values)
}

func (c *Client) Player(ctx context.Context, id stats.ID) (stats.Player, error) {
	path, err := entityPath(PathPlayers, id, "")
	if err != nil {
		return stats.Player{}, err
	}

	return Get[stats.Player](ctx, c, path, nil)
}

func (c *Client) Club(ctx context.Context, id stats.ID) (stats.Club, error) {
	path, err := entityPath(PathClubs, id, "")
	if err != nil {
		return stats.Club{}, err
	}

	return Get[stats.Club](ctx, c, path, nil)
}

func (c *Client) PlayerStats(ctx context.Context, id stats.ID) (stats.PlayerStats, error) {
	path, err := entityPath(PathPlayers, id, "stats/")
	if err != nil {
		return stats.PlayerStats{}, err
	}

	return Get[stats.PlayerStats](ctx, c, path, nil)
}

func (c *Client) ClubStats(ctx context.Context, id stats.ID) (stats.ClubStats, error) {
	path, err := entityPath(PathClubs, id, "stats/")
	if err != nil {
		return stats.ClubStats{}, err
	}

	return Get[stats.ClubStats](ctx, c, path, nil)
}

func (c *Client) Dashboard(ctx context.Context) (stats.Dashboard, error) {
	return Get[stats.Dashboard](ctx, c, PathDashboard, nil)
}

// Search matches players and clubs by name. The api caps each list at 10 entries.
func (c *Client) Search(ctx context.Context, query string) (stats.SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return stats.SearchResults{}, ErrEmptyQuery
	}

	values := url.Values{}
	if err := addQueryParam(values, "q", query); err != nil {
		return stats.SearchResults{}, err
	}

	return Get[stats.SearchResults](ctx, c, PathSearch, values)
}

// TopPlayers ranks players by category, which must be one of PlayerCategories.
func (c *Client) TopPlayers(ctx context.Context, category string, limit int) ([]stats.Player, error) {
	values, err := topParams(PlayerCategories, category, limit)
	if err != nil {
		return nil, err
	}

	return Get[[]stats.Player](ctx, c, PathTopPlayers, values)
}

func (c *Client) TopClubs(ctx context.Context, category string, limit int) ([]stats.Club, error) {
	values, err := topParams(ClubCategories, category, limit)
	if err != nil {
		return nil, err
	}

	return Get[[]stats.Club](ctx, c, PathTopClubs, values)
}

func topParams(valid []string, category string, limit int) (url.Values, error) {
	if !slices.Contains(valid, category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	values := url.Values{}
	values.Set("category", category)

	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	return values, nil
}
