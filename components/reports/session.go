package reports

import (
	"context"
	"sync"
)

// FetchFunc loads and builds one page.
type FetchFunc func(ctx context.Context, req Request) (Dashboard, error)

// Session tracks the in-flight fetch and the published result of each page.
// Starting a fetch cancels the previous one for the same page; only the most
// recently started fetch may publish.
type Session struct {
	fetch FetchFunc

	mu    sync.Mutex
	pages map[Page]*pageState
}

type pageState struct {
	generation uint64
	cancel     context.CancelFunc
	current    *Dashboard
}

// NewSession builds a session around fetch.
func NewSession(fetch FetchFunc) *Session {
	return &Session{fetch: fetch, pages: make(map[Page]*pageState)}
}

// Fetch runs a new generation for req.Page. It returns ErrSuperseded when a
// newer fetch for the same page started, or the page was discarded, before
// this one finished; in that case the published result is left untouched.
func (s *Session) Fetch(ctx context.Context, req Request) (Dashboard, error) {
	s.mu.Lock()
	state, ok := s.pages[req.Page]
	if !ok {
		state = &pageState{}
		s.pages[req.Page] = state
	}
	if state.cancel != nil {
		state.cancel()
	}
	state.generation++
	generation := state.generation
	fetchCtx, cancel := context.WithCancel(ctx)
	state.cancel = cancel
	s.mu.Unlock()

	dash, err := s.fetch(fetchCtx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer cancel()
	if s.pages[req.Page] != state || state.generation != generation {
		return Dashboard{}, ErrSuperseded
	}
	state.cancel = nil
	if err != nil {
		return Dashboard{}, err
	}
	dash.Generation = generation
	state.current = &dash
	return dash, nil
}

// Current returns the last published result for page.
func (s *Session) Current(page Page) (Dashboard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.pages[page]
	if !ok || state.current == nil {
		return Dashboard{}, false
	}
	return *state.current, true
}

// Generation returns the number of fetches started for page since it was
// last discarded.
func (s *Session) Generation(page Page) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.pages[page]; ok {
		return state.generation
	}
	return 0
}

// Discard cancels any in-flight fetch for page and drops its result.
func (s *Session) Discard(page Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.pages[page]; ok {
		if state.cancel != nil {
			state.cancel()
		}
		delete(s.pages, page)
	}
}
