package movie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"cinefind/errs"
)

const (
	fetchFailedMessage = "Errore nel recupero dei film"
	advisoryFormat     = "La ricerca con filtri non è supportata. Mostrando film filtrati invece dei risultati di ricerca per \"%s\"."
)

// Listing is one page of a list endpoint. Response and Error carry the
// service's own failure flag, which it may set on a 200 response.
type Listing struct {
	Page         int
	Results      []Movie
	TotalPages   int
	TotalResults int
	Response     string
	Error        string
}

func (l Listing) Failed() bool {
	return l.Response == "False"
}

// StatusError is returned by a Catalog when the service answers with a
// non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: unexpected status %d from %s", e.StatusCode, e.URL)
}

// Catalog is the metadata API port. Implementations perform exactly one
// request per call and never retry.
type Catalog interface {
	List(ctx context.Context, u *url.URL) (Listing, error)
	Genres(ctx context.Context, u *url.URL) ([]Genre, error)
	Details(ctx context.Context, u *url.URL) (Details, error)
}

// Result is the outcome of a successful list request.
type Result struct {
	Movies     []Movie  `json:"movies"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	Endpoint   Endpoint `json:"endpoint"`
	Advisory   string   `json:"advisory,omitempty"`
}

type Service interface {
	Search(ctx context.Context, q QueryState) (Result, error)
	Genres(ctx context.Context) []Genre
	Details(ctx context.Context, id int) (Details, error)
}

type Usecase struct {
	cfg     CatalogConfig
	builder *QueryBuilder
	catalog Catalog
	logger  *slog.Logger
}

func NewUsecase(cfg CatalogConfig, c Catalog, logger *slog.Logger) (*Usecase, error) {
	b, err := NewQueryBuilder(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Usecase{
		cfg:     cfg,
		builder: b,
		catalog: c,
		logger:  logger,
	}, nil
}

// Configured reports whether catalog requests carry a credential.
func (uc *Usecase) Configured() bool {
	return uc.cfg.HasCredential()
}

// Search runs a single list request for q and classifies any failure.
func (uc *Usecase) Search(ctx context.Context, q QueryState) (Result, error) {
	if !uc.cfg.HasCredential() {
		return Result{}, ErrMissingAPIKey
	}
	if err := q.Filters.Validate(); err != nil {
		return Result{}, err
	}

	req := uc.builder.Build(q.Term, q.Filters, q.Page)
	if req.TermDropped {
		uc.logger.Warn("search term ignored because filters are active",
			"term", q.Term, "endpoint", req.Endpoint)
	}

	listing, err := uc.catalog.List(ctx, req.URL)
	if err != nil {
		return Result{}, uc.classify(err, req)
	}

	if listing.Failed() {
		msg := listing.Error
		if msg == "" {
			msg = fetchFailedMessage
		}
		return Result{}, errs.Errorf(errs.EUPSTREAM, "%s", msg)
	}

	movies := listing.Results
	if movies == nil {
		movies = []Movie{}
	}
	res := Result{
		Movies:     movies,
		Page:       max(q.Page, 1),
		TotalPages: clampPages(listing.TotalPages),
		Endpoint:   req.Endpoint,
	}
	if req.TermDropped {
		res.Advisory = Advisory(q.Term)
	}
	return res, nil
}

// Genres falls back to DefaultGenres whenever the live list is unavailable.
func (uc *Usecase) Genres(ctx context.Context) []Genre {
	if !uc.cfg.HasCredential() {
		uc.logger.Warn("catalog API key not configured, using default genres")
		return DefaultGenres
	}

	genres, err := uc.catalog.Genres(ctx, uc.builder.GenresURL())
	if err != nil {
		uc.logger.Warn("failed to fetch genres, using default genres", "error", err)
		return DefaultGenres
	}
	if len(genres) == 0 {
		return DefaultGenres
	}
	return genres
}

func (uc *Usecase) Details(ctx context.Context, id int) (Details, error) {
	if id <= 0 {
		return Details{}, ErrInvalidMovie
	}
	if !uc.cfg.HasCredential() {
		return Details{}, ErrMissingAPIKey
	}

	d, err := uc.catalog.Details(ctx, uc.builder.DetailsURL(id))
	if err != nil {
		uc.logger.Error("error fetching movie details", "movie_id", id, "error", err)
		var se *StatusError
		if errors.As(err, &se) {
			switch se.StatusCode {
			case http.StatusUnauthorized:
				return Details{}, ErrInvalidAPIKey
			case http.StatusNotFound:
				return Details{}, errs.Errorf(errs.ENOTFOUND, "movie %d not found", id)
			}
		}
		return Details{}, ErrDetailsUnavailable
	}
	return d, nil
}

// Advisory is the notice shown when a search term is dropped in favour of
// the active filters.
func Advisory(term string) string {
	return fmt.Sprintf(advisoryFormat, term)
}

func (uc *Usecase) classify(err error, req Request) error {
	var se *StatusError
	if errors.As(err, &se) {
		if se.StatusCode == http.StatusUnauthorized {
			return ErrInvalidAPIKey
		}
		return errs.Errorf(errs.EUNAVAILABLE, "%s (%d)", fetchFailedMessage, se.StatusCode)
	}
	uc.logger.Error("error fetching movies", "endpoint", req.Endpoint, "error", err)
	return errs.Errorf(errs.EUNAVAILABLE, "%s", fetchFailedMessage)
}
