package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/faktura/internal/debounce"
)

// SearchResult is the outcome of one debounced search.
type SearchResult struct {
	Query string
	Page  Page
	Err   error
}

// Searcher turns a stream of query edits into listing requests: a request
// is issued only after the query stopped changing for the debounce delay,
// and a result is dropped when a newer query was submitted meanwhile.
type Searcher struct {
	cat     *Catalog
	ctx     context.Context
	deb     *debounce.Debouncer
	results chan SearchResult

	mu     sync.Mutex
	query  string
	gen    uint64
	closed bool
}

// NewSearcher returns a searcher bound to ctx. Results are delivered on
// Results; only the latest one is kept when the reader falls behind.
func (c *Catalog) NewSearcher(ctx context.Context, delay time.Duration) *Searcher {
	s := &Searcher{
		cat:     c,
		ctx:     ctx,
		results: make(chan SearchResult, 1),
	}
	s.deb = debounce.New(delay, s.run)
	return s
}

func (s *Searcher) Results() <-chan SearchResult { return s.results }

// Submit records query and re-arms the debounce timer.
func (s *Searcher) Submit(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.query = query
	s.gen++
	s.mu.Unlock()
	s.deb.Trigger()
}

// Flush runs a pending search now, on the caller's goroutine.
func (s *Searcher) Flush() bool { return s.deb.Flush() }

// Close cancels a pending search and closes Results.
func (s *Searcher) Close() {
	s.deb.Cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.results)
}

func (s *Searcher) run() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	query, gen := s.query, s.gen
	s.mu.Unlock()

	page, err := s.cat.List(s.ctx, 1, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		return
	}
	res := SearchResult{Query: query, Page: page, Err: err}
	select {
	case s.results <- res:
	default:
		select {
		case <-s.results:
		default:
		}
		s.results <- res
	}
}
