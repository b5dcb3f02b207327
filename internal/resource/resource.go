// Package resource tracks the loading, error and data state of a remote endpoint.
//
// Every fetch is tagged with a generation. Starting a fetch cancels the previous one and only
// the newest generation may commit its result, so a slow stale response can never overwrite
// fresher state.
package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"
)

var (
	ErrClosed     = errors.New("resource closed")
	errFetchPanic = errors.New("fetch panicked")
)

// Fetcher loads endpoint with the given query parameters.
type Fetcher[T any] func(ctx context.Context, endpoint string, params url.Values) (T, error)

type Phase int

const (
	Idle Phase = iota
	Fetching
	Settled
)

func (p Phase) String() string {
	switch p {
	case Fetching:
		return "fetching"
	case Settled:
		return "settled"
	case Idle:
		fallthrough
	default:
		return "idle"
	}
}

// State is a snapshot of a resource. Once settled, exactly one of Err or Data is set.
type State[T any] struct {
	Data       T
	HasData    bool
	Loading    bool
	Err        error
	Phase      Phase
	Generation uint64
	UpdatedOn  time.Time
}

func (s State[T]) IsLoading() bool {
	return s.Loading
}

func (s State[T]) IsError() bool {
	return !s.Loading && s.Err != nil
}

func (s State[T]) IsSuccess() bool {
	return !s.Loading && s.Err == nil && s.Phase == Settled
}

type Resource[T any] struct {
	mu       sync.Mutex
	parent   context.Context //nolint:containedctx
	fetch    Fetcher[T]
	endpoint string
	params   url.Values
	cancel   context.CancelFunc
	state    State[T]
	changes  chan struct{}
	// inflight counts running fetches. idle is closed whenever it drops to zero.
	inflight int
	idle     chan struct{}
	closed   bool
}

// New creates an idle resource. Fetches run under ctx until Close is called.
func New[T any](ctx context.Context, fetch Fetcher[T], endpoint string, params url.Values) *Resource[T] {
	return &Resource[T]{
		parent:   ctx,
		fetch:    fetch,
		endpoint: endpoint,
		params:   cloneValues(params),
		changes:  make(chan struct{}, 1),
	}
}

// Changes receives a value after every state change. Notifications are coalesced, a reader
// should call State to observe the latest snapshot. Closed by Close.
func (r *Resource[T]) Changes() <-chan struct{} {
	return r.changes
}

func (r *Resource[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

func (r *Resource[T]) Params() url.Values {
	r.mu.Lock()
	defer r.mu.Unlock()

	return cloneValues(r.params)
}

func (r *Resource[T]) Endpoint() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.endpoint
}

// Fetch performs the initial load. It does nothing once a fetch has been started.
func (r *Resource[T]) Fetch() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Phase != Idle {
		return false
	}

	return r.startLocked()
}

// Refetch forces a fetch with the current endpoint and params.
func (r *Resource[T]) Refetch() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.startLocked()
}

// SetParams replaces the query parameters, fetching only when their encoded form changed.
func (r *Resource[T]) SetParams(params url.Values) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if params.Encode() == r.params.Encode() && r.state.Phase != Idle {
		return false
	}

	r.params = cloneValues(params)

	return r.startLocked()
}

func (r *Resource[T]) SetEndpoint(endpoint string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if endpoint == r.endpoint && r.state.Phase != Idle {
		return false
	}

	r.endpoint = endpoint

	return r.startLocked()
}

// Wait blocks until no fetch is running or ctx is done. Fetches started while waiting are
// waited for as well.
func (r *Resource[T]) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		if r.inflight == 0 {
			r.mu.Unlock()

			return nil
		}
		idle := r.idle
		r.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close cancels any in-flight fetch and closes the Changes channel.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	r.closed = true
	if r.cancel != nil {
		r.cancel()
	}

	r.state.Loading = false
	close(r.changes)
}

func (r *Resource[T]) startLocked() bool {
	if r.closed {
		return false
	}

	if r.cancel != nil {
		r.cancel()
	}

	ctx, cancel := context.WithCancel(r.parent)
	r.cancel = cancel

	r.state.Generation++
	r.state.Loading = true
	r.state.Phase = Fetching

	generation := r.state.Generation
	endpoint := r.endpoint
	params := cloneValues(r.params)

	if r.inflight == 0 {
		r.idle = make(chan struct{})
	}
	r.inflight++

	go r.run(ctx, cancel, generation, endpoint, params)

	r.notifyLocked()

	return true
}

func (r *Resource[T]) run(ctx context.Context, cancel context.CancelFunc, generation uint64, endpoint string, params url.Values) {
	var (
		data T
		err  error
	)

	defer r.finish()
	defer cancel()
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%w: %v", errFetchPanic, recovered)
		}

		r.settle(generation, data, err)
	}()

	data, err = r.fetch(ctx, endpoint, params)
}

func (r *Resource[T]) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.inflight--
	if r.inflight == 0 {
		close(r.idle)
	}
}

func (r *Resource[T]) settle(generation uint64, data T, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	if generation != r.state.Generation {
		slog.Debug("Dropped stale result", slog.String("endpoint", r.endpoint),
			slog.Uint64("generation", generation), slog.Uint64("current", r.state.Generation))

		return
	}

	var zero T

	r.state.Loading = false
	r.state.Phase = Settled
	r.state.UpdatedOn = time.Now()

	if err != nil {
		r.state.Data = zero
		r.state.HasData = false
		r.state.Err = err
	} else {
		r.state.Data = data
		r.state.HasData = true
		r.state.Err = nil
	}

	r.notifyLocked()
}

func (r *Resource[T]) notifyLocked() {
	select {
	case r.changes <- struct{}{}:
	default:
	}
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for key, value := range values {
		out[key] = append([]string(nil), value...)
	}

	return out
}
