package movie

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"cinefind/pkg/debounce"

	"github.com/google/uuid"
)

// SearchQuietPeriod is how long the search box must stay unchanged before
// the term is used.
const SearchQuietPeriod = 500 * time.Millisecond

// TrendingRecorder counts how often a search term led to an opened movie.
// Implementations must not fail the caller.
type TrendingRecorder interface {
	RecordOpen(ctx context.Context, term string, m Movie)
}

// View is a consistent snapshot of everything the UI shows.
type View struct {
	SessionID  string
	Input      string
	State      State
	Page       int
	TotalPages int
	Advisory   string
}

type SessionOption func(*Session)

func WithTrending(r TrendingRecorder) SessionOption {
	return func(s *Session) {
		s.trending = r
	}
}

func WithClock(c debounce.Clock) SessionOption {
	return func(s *Session) {
		s.clock = c
	}
}

func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// WithStateListener is called after every change of the list state, for
// front-ends that redraw on change.
func WithStateListener(fn func(View)) SessionOption {
	return func(s *Session) {
		s.listener = fn
	}
}

// Session drives the movie list for one user: debounced text input,
// filters and pagination feed a single Fetcher. A request is issued only
// when the (term, filters, page) tuple changes.
type Session struct {
	id       string
	ctx      context.Context
	svc      Service
	trending TrendingRecorder
	clock    debounce.Clock
	logger   *slog.Logger
	listener func(View)

	fetcher   *Fetcher
	pager     *Pager
	debouncer *debounce.Debouncer[string]

	// order keeps submissions in the order their queries were computed. It
	// is always acquired before mu.
	order sync.Mutex

	mu      sync.Mutex
	input   string
	term    string
	filters Filters
	issued  *QueryState
}

func NewSession(ctx context.Context, svc Service, opts ...SessionOption) *Session {
	s := &Session{
		id:      uuid.NewString(),
		ctx:     ctx,
		svc:     svc,
		logger:  slog.Default(),
		pager:   NewPager(),
		filters: DefaultFilters(),
	}
	for _, fn := range opts {
		fn(s)
	}
	s.logger = s.logger.With("session_id", s.id)

	var dopts []debounce.Option
	if s.clock != nil {
		dopts = append(dopts, debounce.WithClock(s.clock))
	}
	s.debouncer = debounce.New(SearchQuietPeriod, s.onTerm, dopts...)
	s.fetcher = NewFetcher(svc,
		WithFetcherLogger(s.logger),
		WithObserver(s.onState),
	)
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Start issues the initial request with empty defaults.
func (s *Session) Start() {
	s.update(nil)
}

// Type records the raw content of the search box.
func (s *Session) Type(raw string) {
	s.mu.Lock()
	s.input = raw
	s.mu.Unlock()

	s.debouncer.Push(raw)
}

// ApplyFilters replaces the active filters and goes back to the first page.
func (s *Session) ApplyFilters(f Filters) error {
	if err := f.Validate(); err != nil {
		return err
	}

	s.update(func() bool {
		s.filters = f.Normalize()
		s.pager.Reset()
		return true
	})
	return nil
}

func (s *Session) ClearFilters() {
	_ = s.ApplyFilters(DefaultFilters())
}

// NextPage is ignored while a request is in flight.
func (s *Session) NextPage() bool {
	if s.fetcher.Loading() {
		return false
	}
	return s.update(s.pager.Next)
}

// PrevPage is ignored while a request is in flight.
func (s *Session) PrevPage() bool {
	if s.fetcher.Loading() {
		return false
	}
	return s.update(s.pager.Prev)
}

// Open counts the opened movie against its displayed title and loads its
// details.
func (s *Session) Open(ctx context.Context, m Movie) (Details, error) {
	if s.trending != nil {
		s.trending.RecordOpen(ctx, ResolveTitle(m), m)
	}
	return s.svc.Details(ctx, m.ID)
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Wait blocks until every request issued so far has completed.
func (s *Session) Wait() {
	s.fetcher.Wait()
}

// Close cancels a pending search term and waits for in-flight requests.
func (s *Session) Close() {
	s.debouncer.Stop()
	s.fetcher.Wait()
}

func (s *Session) onTerm(term string) {
	s.update(func() bool {
		s.term = term
		s.pager.Reset()
		return true
	})
}

func (s *Session) onState(st State) {
	if !st.Loading && st.Err == nil {
		// A shorter result set can leave the current page out of range.
		s.update(func() bool {
			return s.issued != nil && st.Query.Equal(*s.issued) && s.pager.SetTotal(st.TotalPages)
		})
	}
	if s.listener != nil {
		s.listener(s.Snapshot())
	}
}

// update applies change and submits the resulting query when it differs
// from the last one issued. It reports false when change declined.
func (s *Session) update(change func() bool) bool {
	s.order.Lock()
	defer s.order.Unlock()

	s.mu.Lock()
	if change != nil && !change() {
		s.mu.Unlock()
		return false
	}
	q := QueryState{
		Term:    s.term,
		Filters: s.filters,
		Page:    s.pager.Current(),
	}
	submit := s.issued == nil || !s.issued.Equal(q)
	if submit {
		s.issued = &q
	}
	s.mu.Unlock()

	if submit {
		s.logger.Debug("issuing movie list request", "term", q.Term, "page", q.Page)
		s.fetcher.Submit(s.ctx, q)
	}
	return true
}

func (s *Session) view() View {
	v := View{
		SessionID:  s.id,
		Input:      s.input,
		State:      s.fetcher.State(),
		Page:       s.pager.Current(),
		TotalPages: s.pager.Total(),
	}
	if strings.TrimSpace(s.input) != "" && s.filters.Active() {
		v.Advisory = Advisory(s.input)
	}
	return v
}
