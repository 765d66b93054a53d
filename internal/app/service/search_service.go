package service

import (
	"context"
	"sync"
	"time"

	"github.com/qkart/storefront/internal/api"
	"github.com/qkart/storefront/internal/app/model"
	"github.com/qkart/storefront/pkg/logger"
)

// SearchView is the current search state for one session: loading while
// a debounced query is pending or in flight, then either results or an
// error message. An empty Products list with Loaded set is the valid
// "no products found" state.
type SearchView struct {
	Loading  bool            `json:"loading"`
	Loaded   bool            `json:"loaded"`
	Query    string          `json:"query"`
	Products []model.Product `json:"products"`
	Error    string          `json:"error,omitempty"`
}

// SearchService coalesces bursts of search input into one remote query
// per quiet interval. Every input cancels the pending timer and arms a
// new one; only the timer that survives uncancelled fires, carrying the
// latest text. Responses carry a generation token so a slow response to
// an old query can never overwrite a newer result.
type SearchService interface {
	// OnInput registers a keystroke for the session and (re)arms the
	// debounce timer.
	OnInput(sid, text string)

	// View returns the session's current search state.
	View(sid string) SearchView

	// Flush cancels any pending timer and fires the query immediately.
	// Used on explicit submit.
	Flush(ctx context.Context, sid, text string) SearchView
}

type searchState struct {
	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64 // generation of the most recently issued query
	applied uint64 // generation of the most recently applied response
	view    SearchView
}

type searchService struct {
	catalog CatalogService
	quiet   time.Duration

	mu       sync.Mutex
	sessions map[string]*searchState
}

func NewSearchService(catalog CatalogService, quiet time.Duration) SearchService {
	return &searchService{
		catalog:  catalog,
		quiet:    quiet,
		sessions: make(map[string]*searchState),
	}
}

func (s *searchService) stateFor(sid string) *searchState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sid]
	if !ok {
		st = &searchState{}
		s.sessions[sid] = st
	}
	return st
}

func (s *searchService) OnInput(sid, text string) {
	st := s.stateFor(sid)

	st.mu.Lock()
	defer st.mu.Unlock()

	if st.timer != nil {
		st.timer.Stop()
	}
	st.view.Loading = true
	st.timer = time.AfterFunc(s.quiet, func() {
		s.fire(context.Background(), st, text)
	})

	logger.Debug("Search input debounced", map[string]interface{}{
		"query": text,
		"quiet": s.quiet.String(),
	})
}

func (s *searchService) View(sid string) SearchView {
	st := s.stateFor(sid)

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.view
}

func (s *searchService) Flush(ctx context.Context, sid, text string) SearchView {
	st := s.stateFor(sid)

	st.mu.Lock()
	if st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}
	st.view.Loading = true
	st.mu.Unlock()

	s.fire(ctx, st, text)
	return s.View(sid)
}

// fire issues one remote search and applies the response unless a newer
// one has been applied in the meantime.
func (s *searchService) fire(ctx context.Context, st *searchState, text string) {
	st.mu.Lock()
	st.gen++
	gen := st.gen
	st.mu.Unlock()

	products, err := s.catalog.Search(ctx, text)

	st.mu.Lock()
	defer st.mu.Unlock()

	if gen <= st.applied {
		logger.Debug("Dropping stale search response", map[string]interface{}{
			"query":      text,
			"generation": gen,
			"applied":    st.applied,
		})
		return
	}
	st.applied = gen

	if err != nil {
		st.view = SearchView{
			Loaded:   st.view.Loaded,
			Query:    st.view.Query,
			Products: st.view.Products,
			Error:    api.UserMessage(err),
		}
		return
	}

	st.view = SearchView{
		Loaded:   true,
		Query:    text,
		Products: products,
	}
}
