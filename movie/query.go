package movie

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Endpoint identifies the list endpoint a request targets.
type Endpoint string

const (
	EndpointSearch   Endpoint = "/search/movie"
	EndpointDiscover Endpoint = "/discover/movie"

	genresPath  = "/genre/movie/list"
	detailsPath = "/movie/"
)

// CatalogConfig carries the metadata API settings. It is built once at start
// up and handed to the components that need it.
type CatalogConfig struct {
	BaseURL  string
	Language string
	APIKey   string
}

// HasCredential reports whether an API key that could plausibly work is set.
func (c CatalogConfig) HasCredential() bool {
	key := strings.TrimSpace(c.APIKey)
	return key != "" && key != "undefined"
}

// Request is a fully resolved list request.
type Request struct {
	Endpoint Endpoint
	URL      *url.URL
	// TermDropped is set when a search term was supplied together with active
	// filters. The discovery endpoint has no text matching, so the term is not
	// sent and the caller is expected to tell the user.
	TermDropped bool
}

// QueryBuilder maps (term, filters, page) onto metadata API URLs.
type QueryBuilder struct {
	base     url.URL
	language string
}

func NewQueryBuilder(cfg CatalogConfig) (*QueryBuilder, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidBaseURL
	}
	if cfg.Language != "" {
		if _, err := language.Parse(cfg.Language); err != nil {
			return nil, ErrInvalidLocale
		}
	}
	return &QueryBuilder{
		base:     *u,
		language: cfg.Language,
	}, nil
}

// Build never performs I/O; the same inputs always yield the same URL.
func (b *QueryBuilder) Build(term string, filters Filters, page int) Request {
	if page < 1 {
		page = 1
	}
	term = strings.TrimSpace(term)
	params := url.Values{}
	if b.language != "" {
		params.Set("language", b.language)
	}

	if term != "" && !filters.Active() {
		params.Set("query", term)
		params.Set("sort_by", string(DefaultSort))
		params.Set("page", strconv.Itoa(page))
		return Request{
			Endpoint: EndpointSearch,
			URL:      b.url(string(EndpointSearch), params),
		}
	}

	f := filters.Normalize()
	if len(f.Genres) > 0 {
		ids := make([]string, len(f.Genres))
		for i, id := range f.Genres {
			ids[i] = strconv.Itoa(id)
		}
		params.Set("with_genres", strings.Join(ids, ","))
	}
	if f.Year != "" {
		params.Set("primary_release_year", f.Year)
	}
	if f.MinRating != "" {
		params.Set("vote_average.gte", f.MinRating)
	}
	if f.Language != LanguageAny {
		params.Set("with_original_language", string(f.Language))
	}
	params.Set("sort_by", string(f.SortBy))
	params.Set("page", strconv.Itoa(page))

	return Request{
		Endpoint:    EndpointDiscover,
		URL:         b.url(string(EndpointDiscover), params),
		TermDropped: term != "",
	}
}

func (b *QueryBuilder) GenresURL() *url.URL {
	params := url.Values{}
	if b.language != "" {
		params.Set("language", b.language)
	}
	return b.url(genresPath, params)
}

func (b *QueryBuilder) DetailsURL(id int) *url.URL {
	params := url.Values{}
	if b.language != "" {
		params.Set("language", b.language)
	}
	params.Set("append_to_response", "credits,videos")
	return b.url(detailsPath+strconv.Itoa(id), params)
}

func (b *QueryBuilder) url(path string, params url.Values) *url.URL {
	u := b.base
	u.Path = b.base.Path + path
	u.RawQuery = params.Encode()
	return &u
}
