package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"specfinder/internal/domain"
)

func TestSessionLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		envelopeHandler(t, domain.OKEnvelope(q, []domain.Specialist{
			{ID: "1", Name: "Dr. Eve Moran", Specialty: q},
		}))(w, r)
	}))
	defer srv.Close()

	s := NewSession(New(WithBaseURL(srv.URL)))

	state, query, result := s.Snapshot()
	if state != StateIdle || query != "" || result != nil {
		t.Fatalf("new session not idle: %v %q %v", state, query, result)
	}

	res, err := s.Search(context.Background(), "cardiology")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(res.Specialists) != 1 {
		t.Fatalf("expected 1 result, got %d", len(res.Specialists))
	}

	state, query, result = s.Snapshot()
	if state != StateSuccess || query != "cardiology" || result == nil {
		t.Errorf("unexpected session after search: %v %q %v", state, query, result)
	}

	s.Clear()
	state, query, result = s.Snapshot()
	if state != StateIdle || query != "" || result != nil {
		t.Errorf("clear did not reset the session: %v %q %v", state, query, result)
	}
}

func TestSessionErrorState(t *testing.T) {
	srv := httptest.NewServer(envelopeHandler(t, domain.ErrorEnvelope("index offline")))
	defer srv.Close()

	s := NewSession(New(WithBaseURL(srv.URL)))
	res, err := s.Search(context.Background(), "cardiology")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !res.Fallback {
		t.Error("expected fallback result")
	}

	state, _, result := s.Snapshot()
	if state != StateError {
		t.Errorf("expected error state, got %v", state)
	}
	if result == nil || result.ErrorMessage != "index offline" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestSessionEmptyQuery(t *testing.T) {
	s := NewSession(New())
	if _, err := s.Search(context.Background(), "   "); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}

	state, _, _ := s.Snapshot()
	if state != StateIdle {
		t.Errorf("empty query must leave the session untouched, got %v", state)
	}
}

func TestSessionStaleResponseDropped(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "slow" {
			<-release
		}
		envelopeHandler(t, domain.OKEnvelope(q, []domain.Specialist{
			{ID: q, Name: "Dr. " + q, Specialty: q},
		}))(w, r)
	}))
	defer srv.Close()

	s := NewSession(New(WithBaseURL(srv.URL)))

	slowErr := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), "slow")
		slowErr <- err
	}()

	// Let the slow request reach the server before starting the fast one.
	time.Sleep(50 * time.Millisecond)

	if _, err := s.Search(context.Background(), "fast"); err != nil {
		t.Fatalf("fast search failed: %v", err)
	}

	close(release)
	if err := <-slowErr; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected the slow response to be dropped, got %v", err)
	}

	state, query, result := s.Snapshot()
	if state != StateSuccess || query != "fast" {
		t.Fatalf("session overwritten by stale response: %v %q", state, query)
	}
	if result.Specialists[0].ID != "fast" {
		t.Errorf("stale results applied: %+v", result.Specialists)
	}
}

func TestSessionClearDropsInFlight(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		envelopeHandler(t, domain.OKEnvelope("slow", nil))(w, r)
	}))
	defer srv.Close()

	s := NewSession(New(WithBaseURL(srv.URL)))

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Search(context.Background(), "slow")
		errCh <- err
	}()

	time.Sleep(50 * time.Millisecond)
	s.Clear()
	close(release)

	if err := <-errCh; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected in-flight search to be dropped after clear, got %v", err)
	}

	state, _, _ := s.Snapshot()
	if state != StateIdle {
		t.Errorf("expected idle after clear, got %v", state)
	}
}
