package trending

import (
	"context"
	"log/slog"

	"cinefind/movie"
)

type Service interface {
	RecordOpen(ctx context.Context, term string, m movie.Movie)
	Top(ctx context.Context) []Entry
}

// Repository stores one counter per search term. Increment creates the
// entry with count 1 when absent, otherwise it adds one and leaves MovieID
// and PosterURL untouched.
type Repository interface {
	Increment(ctx context.Context, e Entry) error
	Top(ctx context.Context, limit int) ([]Entry, error)
}

type Usecase struct {
	r      Repository
	logger *slog.Logger
}

// NewUsecase accepts a nil repository, in which case the counter is disabled.
func NewUsecase(r Repository, logger *slog.Logger) *Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Usecase{r: r, logger: logger}
}

func (uc *Usecase) Enabled() bool {
	return uc.r != nil
}

// RecordOpen never fails the caller; store errors are logged.
func (uc *Usecase) RecordOpen(ctx context.Context, term string, m movie.Movie) {
	if uc.r == nil {
		uc.logger.Warn("trending store not configured, search count will not be updated")
		return
	}

	e := Entry{
		SearchTerm: term,
		Count:      1,
		MovieID:    m.ID,
		PosterURL:  m.PosterURL(),
	}
	if err := e.Validate(); err != nil {
		uc.logger.Warn("skipping trending update", "movie_id", m.ID, "error", err)
		return
	}

	if err := uc.r.Increment(ctx, e); err != nil {
		uc.logger.Error("failed to update search count", "term", term, "error", err)
	}
}

// Top returns the TopLimit most opened terms, highest count first. It
// returns an empty slice when the store is disabled or unreachable.
func (uc *Usecase) Top(ctx context.Context) []Entry {
	if uc.r == nil {
		uc.logger.Warn("trending store not configured, trending movies will not be loaded")
		return []Entry{}
	}

	entries, err := uc.r.Top(ctx, TopLimit)
	if err != nil {
		uc.logger.Error("failed to load trending movies", "error", err)
		return []Entry{}
	}
	if entries == nil {
		return []Entry{}
	}
	return entries
}
