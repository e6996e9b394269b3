package movie

import (
	"context"
	"log/slog"
	"sync"

	"cinefind/errs"

	"github.com/sourcegraph/conc"
)

// QueryState is the tuple that fully determines the next list request.
type QueryState struct {
	Term    string  `json:"term"`
	Filters Filters `json:"filters"`
	Page    int     `json:"page"`
}

func (q QueryState) Equal(o QueryState) bool {
	return q.Term == o.Term && q.Page == o.Page && q.Filters.Equal(o.Filters)
}

// State is what the view renders. Movies is shared between snapshots and
// must be treated as read-only.
type State struct {
	Query      QueryState
	Loading    bool
	Err        error
	Movies     []Movie
	TotalPages int
	Endpoint   Endpoint
	Advisory   string
}

// Searcher runs one list request.
type Searcher interface {
	Search(ctx context.Context, q QueryState) (Result, error)
}

type FetcherOption func(*Fetcher)

func WithFetcherLogger(l *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// WithObserver registers fn to be called with a snapshot after every state
// change. fn runs on the goroutine that changed the state.
func WithObserver(fn func(State)) FetcherOption {
	return func(f *Fetcher) {
		f.observers = append(f.observers, fn)
	}
}

// Fetcher owns the loading, error and result state of the movie list.
//
// Every request is tagged with a sequence number when it starts. Only the
// most recent request may update the state; responses to superseded
// requests are dropped, so a slow answer can never overwrite a newer one.
type Fetcher struct {
	svc       Searcher
	logger    *slog.Logger
	observers []func(State)
	wg        conc.WaitGroup

	mu    sync.Mutex
	seq   uint64
	state State
}

func NewFetcher(svc Searcher, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		svc:    svc,
		logger: slog.Default(),
		state: State{
			Query:      QueryState{Filters: DefaultFilters(), Page: 1},
			Movies:     []Movie{},
			TotalPages: 1,
		},
	}
	for _, fn := range opts {
		fn(f)
	}
	return f
}

// Fetch runs the request for q on the calling goroutine. The returned error
// is the classified failure, also recorded in the state unless the request
// was superseded in the meantime.
func (f *Fetcher) Fetch(ctx context.Context, q QueryState) error {
	seq := f.begin(q)
	res, err := f.svc.Search(ctx, q)
	f.finish(seq, res, err)
	return err
}

// Submit starts the request for q in the background. Requests are fenced in
// submission order.
func (f *Fetcher) Submit(ctx context.Context, q QueryState) {
	seq := f.begin(q)
	f.wg.Go(func() {
		res, err := f.svc.Search(ctx, q)
		f.finish(seq, res, err)
	})
}

// Wait blocks until every submitted request has completed.
func (f *Fetcher) Wait() {
	f.wg.Wait()
}

func (f *Fetcher) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Fetcher) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Loading
}

func (f *Fetcher) begin(q QueryState) uint64 {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	f.state.Query = q
	f.state.Loading = true
	f.state.Err = nil
	snapshot := f.state
	f.mu.Unlock()

	f.notify(snapshot)
	return seq
}

func (f *Fetcher) finish(seq uint64, res Result, err error) {
	f.mu.Lock()
	if seq != f.seq {
		f.mu.Unlock()
		f.logger.Debug("discarding stale movie list response", "seq", seq, "error", err)
		return
	}

	f.state.Loading = false
	switch {
	case err == nil:
		f.state.Movies = res.Movies
		f.state.TotalPages = res.TotalPages
		f.state.Endpoint = res.Endpoint
		f.state.Advisory = res.Advisory
	case errs.ErrorCode(err) == errs.EUPSTREAM:
		f.state.Err = err
		f.state.Movies = []Movie{}
	default:
		f.state.Err = err
	}
	snapshot := f.state
	f.mu.Unlock()

	f.notify(snapshot)
}

func (f *Fetcher) notify(s State) {
	for _, fn := range f.observers {
		fn(s)
	}
}
