// Package session holds the credential pair used to authenticate against the api.
//
// Writes are visible to the next read immediately, which the refresh flow relies on when
// replaying a request with a freshly issued access token.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stattrackr/stattrackr/internal/store"
)

var (
	ErrNotJWT       = errors.New("token is not a jwt")
	errSessionStore = errors.New("failed to persist session")
	errSessionLoad  = errors.New("failed to load session")
)

type Session interface {
	Access() string
	Refresh() string
	SetAccess(ctx context.Context, access string) error
	SetTokens(ctx context.Context, access string, refresh string) error
	Clear(ctx context.Context) error
}

// Memory is a Session that only lives as long as the process.
type Memory struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func NewMemory(access string, refresh string) *Memory {
	return &Memory{access: access, refresh: refresh}
}

func (m *Memory) Access() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.access
}

func (m *Memory) Refresh() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.refresh
}

func (m *Memory) SetAccess(_ context.Context, access string) error {
	m.mu.Lock()
	m.access = access
	m.mu.Unlock()

	return nil
}

func (m *Memory) SetTokens(_ context.Context, access string, refresh string) error {
	m.mu.Lock()
	m.access = access
	m.refresh = refresh
	m.mu.Unlock()

	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.access = ""
	m.refresh = ""
	m.mu.Unlock()

	return nil
}

// Persistent mirrors the tokens into the sqlite store so logins survive restarts.
type Persistent struct {
	Memory
	queries *store.Queries
	profile string
}

// NewPersistent loads any tokens previously stored for profile.
func NewPersistent(ctx context.Context, queries *store.Queries, profile string) (*Persistent, error) {
	sess := &Persistent{queries: queries, profile: profile}

	creds, err := queries.GetCredentials(ctx, profile)
	if err != nil {
		if errors.Is(err, store.ErrNoCredentials) {
			return sess, nil
		}

		return nil, errors.Join(err, errSessionLoad)
	}

	sess.access = creds.AccessToken
	sess.refresh = creds.RefreshToken

	return sess, nil
}

func (p *Persistent) SetAccess(ctx context.Context, access string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.access = access

	return p.save(ctx)
}

func (p *Persistent) SetTokens(ctx context.Context, access string, refresh string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.access = access
	p.refresh = refresh

	return p.save(ctx)
}

func (p *Persistent) Clear(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.access = ""
	p.refresh = ""

	if err := p.queries.DeleteCredentials(ctx, p.profile); err != nil {
		return errors.Join(err, errSessionStore)
	}

	return nil
}

// save must be called with the lock held. The in memory value is already updated so a
// failed write only costs the login on the next start.
func (p *Persistent) save(ctx context.Context) error {
	if err := p.queries.SaveCredentials(ctx, store.Credentials{
		Profile:      p.profile,
		AccessToken:  p.access,
		RefreshToken: p.refresh,
		UpdatedOn:    time.Now(),
	}); err != nil {
		slog.Error("Failed to save credentials", slog.String("error", err.Error()))

		return errors.Join(err, errSessionStore)
	}

	return nil
}

// Claims are the display relevant fields of an access token.
type Claims struct {
	Username  string
	Subject   string
	ExpiresAt time.Time
}

func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseClaims decodes the token payload without verifying the signature. The result must
// only be used for display, the server remains the authority on validity.
func ParseClaims(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrNotJWT
	}

	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mapClaims); err != nil {
		return Claims{}, errors.Join(err, ErrNotJWT)
	}

	var claims Claims
	if exp, errExp := mapClaims.GetExpirationTime(); errExp == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	if sub, errSub := mapClaims.GetSubject(); errSub == nil {
		claims.Subject = sub
	}

	if username, ok := mapClaims["username"].(string); ok {
		claims.Username = username
	}

	return claims, nil
}

// AccessClaims is ParseClaims applied to the current access token of sess.
func AccessClaims(sess Session) (Claims, error) {
	return ParseClaims(sess.Access())
}
