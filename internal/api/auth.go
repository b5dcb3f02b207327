package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/stattrackr/stattrackr/internal/stats"
)

var errLogout = errors.New("failed to clear session")

type csrfResponse struct {
	CSRFToken string `json:"csrfToken"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse covers both token auth ({key}) and jwt auth ({access, refresh}).
type loginResponse struct {
	Key     string `json:"key"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Registration is the signup form. Password2 is the confirmation of Password1.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

// Validate runs the checks that do not need the server.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Username) == "" || r.Password1 == "" {
		return ErrMissingField
	}

	if r.Password1 != r.Password2 {
		return ErrPasswordMismatch
	}

	return nil
}

func (c *Client) CSRFToken(ctx context.Context) (string, error) {
	resp, err := Do[csrfResponse](ctx, c, http.MethodGet, PathCSRF, Options{Anonymous: true})
	if err != nil {
		return "", err
	}

	return resp.CSRFToken, nil
}

// Login authenticates and stores the returned tokens in the session.
func (c *Client) Login(ctx context.Context, username string, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrMissingField
	}

	headers := http.Header{}

	token, errCSRF := c.CSRFToken(ctx)
	if errCSRF != nil {
		slog.Debug("Continuing login without csrf token", slog.String("error", errCSRF.Error()))
	} else if token != "" {
		headers.Set("X-CSRFToken", token)
	}

	resp, errLogin := Do[loginResponse](ctx, c, http.MethodPost, PathLogin, Options{
		Body:      loginRequest{Username: username, Password: password},
		Headers:   headers,
		Anonymous: true,
	})
	if errLogin != nil {
		return errLogin
	}

	access := resp.Access
	if access == "" {
		access = resp.Key
	}

	if access == "" {
		return ErrNoToken
	}

	return c.session.SetTokens(ctx, access, resp.Refresh)
}

// Register creates an account. It does not log in, the caller should prompt for a login.
func (c *Client) Register(ctx context.Context, registration Registration) error {
	if err := registration.Validate(); err != nil {
		return err
	}

	_, err := c.Request(ctx, http.MethodPost, PathRegistration, Options{Body: registration, Anonymous: true})

	return err
}

// User returns the account of the current session.
func (c *Client) User(ctx context.Context) (stats.User, error) {
	return Get[stats.User](ctx, c, PathUser, nil)
}

// Logout tells the server to drop the session and always clears the local one.
func (c *Client) Logout(ctx context.Context) error {
	if c.session.Access() != "" {
		// Sent without refresh recovery, an expired session is already logged out.
		if _, err := c.do(ctx, http.MethodPost, PathLogout, Options{}, nil); err != nil {
			slog.Debug("Server logout failed", slog.String("error", err.Error()))
		}
	}

	if err := c.session.Clear(ctx); err != nil {
		return errors.Join(err, errLogout)
	}

	return nil
}
