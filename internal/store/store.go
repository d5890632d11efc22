package store

import (
	"context"
	"sync"

	"github.com/rshade/catalogctl/internal/api"
	"github.com/rshade/catalogctl/internal/logging"
)

// Status is the lifecycle of a list.
type Status int

// List lifecycle states.
const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the snapshot of one list screen.
type State struct {
	Status Status
	// Data is the most recent successful result. It survives failed fetches.
	Data api.ListResult
	// HasData is set once any fetch has succeeded.
	HasData bool
	// Err is the error of the most recent failed fetch.
	Err error
	// Filter and Page are the parameters of the latest request.
	Filter string
	Page   api.Page
	// RequestID identifies the latest request. Results of older requests
	// are dropped.
	RequestID uint64
}

// IsLoading reports whether a request is in flight.
func (s State) IsLoading() bool {
	return s.Status == StatusLoading
}

// Items returns the items of the current result.
func (s State) Items() []api.Item {
	return s.Data.Items
}

// Action is a state transition request.
type Action interface {
	isAction()
}

// FetchRequested starts a request.
type FetchRequested struct {
	RequestID uint64
	Filter    string
	Page      api.Page
}

// FetchSucceeded completes a request with data.
type FetchSucceeded struct {
	RequestID uint64
	Result    api.ListResult
}

// FetchFailed completes a request with an error.
type FetchFailed struct {
	RequestID uint64
	Err       error
}

func (FetchRequested) isAction() {}
func (FetchSucceeded) isAction() {}
func (FetchFailed) isAction()    {}

// Reduce returns the state that follows s after a. Completions that do not
// match the latest request id leave s unchanged.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case FetchRequested:
		s.Status = StatusLoading
		s.Err = nil
		s.Filter = act.Filter
		s.Page = act.Page
		s.RequestID = act.RequestID
	case FetchSucceeded:
		if act.RequestID != s.RequestID {
			return s
		}
		s.Status = StatusLoaded
		s.Data = act.Result
		s.HasData = true
		s.Err = nil
	case FetchFailed:
		if act.RequestID != s.RequestID {
			return s
		}
		s.Status = StatusError
		s.Err = act.Err
	}
	return s
}

// Listener is notified with the new state after each dispatch.
type Listener func(State)

// Store is a mutex-guarded single-writer container for State.
type Store struct {
	mu        sync.Mutex
	state     State
	nextID    uint64
	listeners map[int]Listener
	nextSub   int
}

// New returns an idle store.
func New() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// State returns a snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// NextRequestID allocates a request id greater than any allocated before.
func (s *Store) NextRequestID() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}

// Dispatch applies a and notifies subscribers. Listeners run outside the lock.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	state := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
	return state
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Begin dispatches FetchRequested for a new request and returns its id.
func (s *Store) Begin(filter string, page api.Page) uint64 {
	id := s.NextRequestID()
	s.Dispatch(FetchRequested{RequestID: id, Filter: filter, Page: page})
	return id
}

// Complete dispatches the outcome of request id.
func (s *Store) Complete(id uint64, result api.ListResult, err error) State {
	if err != nil {
		return s.Dispatch(FetchFailed{RequestID: id, Err: err})
	}
	return s.Dispatch(FetchSucceeded{RequestID: id, Result: result})
}

// Fetch runs one request through the store and returns the fetch outcome.
// The returned error is the fetch error even when the result was dropped
// because a newer request superseded it.
func (s *Store) Fetch(ctx context.Context, f api.Fetcher, filter string, page api.Page) (api.ListResult, error) {
	id := s.Begin(filter, page)
	log := logging.FromContext(ctx)

	result, err := f.Fetch(ctx, filter, page)
	state := s.Complete(id, result, err)
	if state.RequestID != id {
		log.Debug().Ctx(ctx).
			Uint64("request_id", id).
			Uint64("latest_request_id", state.RequestID).
			Msg("dropping superseded list result")
	}
	return result, err
}
