package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"cinefind/movie"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 10 * time.Second
	drainLimit     = 64 << 10
)

type Options struct {
	APIKey string
	// RateLimit is the number of requests per second. Zero disables limiting.
	RateLimit  float64
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the movie metadata API. Each call is a single GET with
// bearer authentication; failures are returned as-is and never retried.
type Client struct {
	http    *http.Client
	apiKey  string
	limiter *rate.Limiter
}

func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	c := &Client{
		http:   hc,
		apiKey: opts.APIKey,
	}
	if opts.RateLimit > 0 {
		burst := max(int(opts.RateLimit), 1)
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c
}

func (c *Client) List(ctx context.Context, u *url.URL) (movie.Listing, error) {
	var body listResponse
	if err := c.get(ctx, u, &body); err != nil {
		return movie.Listing{}, err
	}

	listing := movie.Listing{
		Page:         body.Page,
		TotalPages:   body.TotalPages,
		TotalResults: body.TotalResults,
		Response:     body.Response,
		Error:        body.Error,
	}
	if body.Results != nil {
		listing.Results = make([]movie.Movie, len(body.Results))
		for i, item := range body.Results {
			listing.Results[i] = item.toMovie()
		}
	}
	return listing, nil
}

func (c *Client) Genres(ctx context.Context, u *url.URL) ([]movie.Genre, error) {
	var body genresResponse
	if err := c.get(ctx, u, &body); err != nil {
		return nil, err
	}

	genres := make([]movie.Genre, len(body.Genres))
	for i, g := range body.Genres {
		genres[i] = movie.Genre{ID: g.ID, Name: g.Name}
	}
	return genres, nil
}

func (c *Client) Details(ctx context.Context, u *url.URL) (movie.Details, error) {
	var body detailsResponse
	if err := c.get(ctx, u, &body); err != nil {
		return movie.Details{}, err
	}
	return body.toDetails(), nil
}

func (c *Client) get(ctx context.Context, u *url.URL, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("tmdb: rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("tmdb: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb: get %s: %w", u.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
		return &movie.StatusError{URL: u.Path, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("tmdb: decode %s: %w", u.Path, err)
	}
	return nil
}
