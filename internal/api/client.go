// Package api is the client for the stats REST api.
//
// Every request carries the session access token as a bearer credential. A 401 response
// triggers a single recovery: the refresh token is exchanged for a new access token and the
// original request is sent once more. When the api rejects the exchange the session is
// cleared and the auth failure handler is notified. Either way a failed exchange returns the
// original error.
package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stattrackr/stattrackr/internal/encoding"
	"github.com/stattrackr/stattrackr/internal/session"
	"golang.org/x/sync/singleflight"
)

const (
	maxBodySize    = 10 * 1024 * 1024
	refreshTimeout = 10 * time.Second
)

// HTTPRequestDoer performs HTTP requests.
type HTTPRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption allows setting custom parameters during construction.
type ClientOption func(*Client) error

func WithHTTPClient(doer HTTPRequestDoer) ClientOption {
	return func(c *Client) error {
		c.client = doer

		return nil
	}
}

// WithAuthFailureHandler is called after a failed token refresh cleared the session.
func WithAuthFailureHandler(handler func(err error)) ClientOption {
	return func(c *Client) error {
		c.onAuthFailure = handler

		return nil
	}
}

func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) error {
		c.userAgent = userAgent

		return nil
	}
}

type Client struct {
	// Base url of the api, always ending in a slash. Request paths are appended to it.
	server        string
	client        HTTPRequestDoer
	session       session.Session
	onAuthFailure func(err error)
	userAgent     string
	refreshGroup  singleflight.Group
}

func New(server string, sess session.Session, opts ...ClientOption) (*Client, error) {
	parsed, errURL := url.Parse(server)
	if errURL != nil || parsed.Host == "" {
		return nil, errors.Join(errURL, errClientInit)
	}

	client := Client{
		server:        strings.TrimSuffix(server, "/") + "/",
		session:       sess,
		onAuthFailure: func(error) {},
		userAgent:     "stattrackr",
	}

	for _, opt := range opts {
		if err := opt(&client); err != nil {
			return nil, errors.Join(err, errClientInit)
		}
	}

	if client.client == nil {
		client.client = &http.Client{}
	}

	return &client, nil
}

func (c *Client) Session() session.Session {
	return c.session
}

func (c *Client) Server() string {
	return c.server
}

// Options are the optional parts of a request.
type Options struct {
	Params  url.Values
	Body    any
	Headers http.Header
	// Anonymous requests carry no bearer token and never attempt a refresh.
	Anonymous bool
}

// Request sends the request and returns the raw body of a 2xx response.
func (c *Client) Request(ctx context.Context, method string, path string, opts Options) ([]byte, error) {
	body, errBody := encoding.MarshalJSON(opts.Body)
	if errBody != nil {
		return nil, errors.Join(errBody, errRequest)
	}

	resp, errResp := c.do(ctx, method, path, opts, body)
	if errResp == nil || opts.Anonymous || StatusCode(errResp) != http.StatusUnauthorized {
		return resp, errResp
	}

	if errRefresh := c.refresh(ctx); errRefresh != nil {
		return nil, errResp
	}

	slog.Debug("Retrying request with refreshed token", slog.String("path", path))

	return c.do(ctx, method, path, opts, body)
}

// refresh exchanges the refresh token for a new access token. Concurrent 401s share a
// single exchange, which runs detached from ctx so an abandoned request cannot fail it.
func (c *Client) refresh(ctx context.Context) error {
	result := c.refreshGroup.DoChan("refresh", func() (any, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()

		return nil, c.renewAccess(refreshCtx)
	})

	select {
	case <-ctx.Done():
		return errors.Join(ctx.Err(), ErrRefresh)
	case res := <-result:
		return res.Err
	}
}

// renewAccess stores a new access token. The session is only cleared when the refresh
// endpoint rejected the exchange, transport failures keep the stored credentials.
func (c *Client) renewAccess(ctx context.Context) error {
	access, errExchange := c.exchangeRefresh(ctx)
	if errExchange == nil {
		if errSet := c.session.SetAccess(ctx, access); errSet != nil {
			slog.Warn("Failed to persist refreshed token", slog.String("error", errSet.Error()))
		}

		return nil
	}

	if transient(errExchange) {
		slog.Warn("Token refresh did not complete, keeping session", slog.String("error", errExchange.Error()))

		return errExchange
	}

	slog.Warn("Token refresh failed, clearing session", slog.String("error", errExchange.Error()))

	if errClear := c.session.Clear(ctx); errClear != nil {
		slog.Error("Failed to clear session", slog.String("error", errClear.Error()))
	}

	c.onAuthFailure(errExchange)

	return errExchange
}

// transient reports errors where the api never answered.
func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var httpErr *HTTPError

	return errors.As(err, &httpErr) && httpErr.Network()
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

func (c *Client) exchangeRefresh(ctx context.Context) (string, error) {
	refreshToken := c.session.Refresh()
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	body, errBody := encoding.MarshalJSON(refreshRequest{Refresh: refreshToken})
	if errBody != nil {
		return "", errors.Join(errBody, ErrRefresh)
	}

	resp, errResp := c.do(ctx, http.MethodPost, PathRefresh, Options{Anonymous: true}, body)
	if errResp != nil {
		return "", errors.Join(errResp, ErrRefresh)
	}

	token, errDecode := encoding.UnmarshalBytes[refreshResponse](resp)
	if errDecode != nil {
		return "", errors.Join(errDecode, ErrRefresh)
	}

	if token.Access == "" {
		return "", errors.Join(ErrNoToken, ErrRefresh)
	}

	return token.Access, nil
}

func (c *Client) do(ctx context.Context, method string, path string, opts Options, body []byte) ([]byte, error) {
	req, errReq := c.newRequest(ctx, method, path, opts, body)
	if errReq != nil {
		return nil, errReq
	}

	resp, errDo := c.client.Do(req)
	if errDo != nil {
		return nil, &HTTPError{Message: errDo.Error(), Err: errDo}
	}

	defer func(closer io.Closer) {
		if err := closer.Close(); err != nil {
			slog.Error("Failed to close response body", slog.String("error", err.Error()))
		}
	}(resp.Body)

	respBody, errRead := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if errRead != nil {
		return nil, &HTTPError{Message: errRead.Error(), Err: errRead}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		slog.Debug("Request failed", slog.String("method", method), slog.String("path", path),
			slog.Int("status", resp.StatusCode), slog.String("request_id", req.Header.Get("X-Request-ID")))

		return nil, &HTTPError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, respBody)}
	}

	return respBody, nil
}

func (c *Client) newRequest(ctx context.Context, method string, path string, opts Options, body []byte) (*http.Request, error) {
	target := c.server + strings.TrimPrefix(path, "/")
	if len(opts.Params) > 0 {
		target += "?" + opts.Params.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, errReq := http.NewRequestWithContext(ctx, method, target, reader)
	if errReq != nil {
		return nil, errors.Join(errReq, errRequest)
	}

	for key, values := range opts.Headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if !opts.Anonymous {
		if access := c.session.Access(); access != "" {
			req.Header.Set("Authorization", "Bearer "+access)
		}
	}

	return req, nil
}

// Get fetches path and decodes the json body into T.
func Get[T any](ctx context.Context, client *Client, path string, params url.Values) (T, error) {
	return Do[T](ctx, client, http.MethodGet, path, Options{Params: params})
}

func Do[T any](ctx context.Context, client *Client, method string, path string, opts Options) (T, error) {
	var value T

	body, err := client.Request(ctx, method, path, opts)
	if err != nil {
		return value, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return value, nil
	}

	return encoding.UnmarshalBytes[T](body)
}
