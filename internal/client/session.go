package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"specfinder/internal/domain"
)

// State is the lifecycle phase of a search session.
type State string

const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateSuccess   State = "success"
	StateError     State = "error"
)

// ErrSuperseded is returned when a search's response arrived after a newer
// search had already started. The stale result is discarded.
var ErrSuperseded = errors.New("search superseded by a newer query")

// Session tracks the search state of one results view. Searches may be
// started concurrently; each takes a generation number, and a finished
// search only updates the session while its generation is still the
// newest. Responses arriving out of order therefore cannot overwrite a
// newer query's result.
type Session struct {
	client *Client
	gen    atomic.Uint64

	mu     sync.Mutex
	state  State
	query  string
	result *Result
}

// NewSession creates an idle session backed by the given client.
func NewSession(c *Client) *Session {
	return &Session{
		client: c,
		state:  StateIdle,
	}
}

// Search runs one search and applies its outcome to the session unless a
// newer search started in the meantime, in which case ErrSuperseded is
// returned and the session is left untouched.
func (s *Session) Search(ctx context.Context, rawQuery string) (*Result, error) {
	if domain.NormalizeQuery(rawQuery) == "" {
		return nil, ErrEmptyQuery
	}

	res, gen, err := s.begin(ctx, rawQuery)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen.Load() {
		return nil, ErrSuperseded
	}

	s.result = res
	s.query = res.Query
	if res.Failed() {
		s.state = StateError
	} else {
		s.state = StateSuccess
	}
	return res, nil
}

// begin claims a generation, marks the session as searching, and performs
// the request outside the session lock.
func (s *Session) begin(ctx context.Context, rawQuery string) (*Result, uint64, error) {
	gen := s.gen.Add(1)

	s.mu.Lock()
	s.state = StateSearching
	s.mu.Unlock()

	res, err := s.client.Search(ctx, rawQuery)
	if err != nil {
		return nil, 0, err
	}
	return res, gen, nil
}

// Clear resets the session to idle and discards any in-flight search by
// advancing the generation.
func (s *Session) Clear() {
	s.gen.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.query = ""
	s.result = nil
}

// Snapshot returns the current state, query, and result. The result is nil
// unless the session is in the success or error state.
func (s *Session) Snapshot() (State, string, *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.query, s.result
}
