package httpserver

import (
	"strconv"
	"strings"

	"cinefind/movie"
)

// SearchRequest carries the list query. An empty query with no filters
// returns the popularity-sorted discovery feed.
type SearchRequest struct {
	Query     string `query:"query" validate:"max=200"`
	Genres    string `query:"genres" validate:"omitempty,idlist"`
	Year      string `query:"year" validate:"omitempty,len=4,number"`
	MinRating string `query:"min_rating" validate:"omitempty,numeric"`
	Language  string `query:"language" validate:"omitempty,lang"`
	SortBy    string `query:"sort_by" validate:"omitempty,sortkey"`
	Page      int    `query:"page" validate:"omitempty,min=1,max=500"`
}

func (r SearchRequest) ToQuery() (movie.QueryState, error) {
	sortBy, err := movie.ParseSortKey(r.SortBy)
	if err != nil {
		return movie.QueryState{}, err
	}
	lang, err := movie.ParseLanguage(r.Language)
	if err != nil {
		return movie.QueryState{}, err
	}

	var genres []int
	for _, raw := range strings.Split(r.Genres, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			return movie.QueryState{}, movie.ErrInvalidGenre
		}
		genres = append(genres, id)
	}

	q := movie.QueryState{
		Term: r.Query,
		Filters: movie.Filters{
			Genres:    genres,
			Year:      r.Year,
			MinRating: r.MinRating,
			Language:  lang,
			SortBy:    sortBy,
		}.Normalize(),
		Page: max(r.Page, 1),
	}
	return q, q.Filters.Validate()
}

// OpenMovieRequest is the card of the movie the user opened.
type OpenMovieRequest struct {
	ID            int    `param:"id" json:"-" validate:"required,min=1"`
	Title         string `json:"title" validate:"required_without=OriginalTitle,max=500"`
	OriginalTitle string `json:"original_title" validate:"max=500"`
	Overview      string `json:"overview"`
	PosterPath    string `json:"poster_path" validate:"omitempty,startswith=/,max=200"`
}

func (r OpenMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		ID:            r.ID,
		Title:         r.Title,
		OriginalTitle: r.OriginalTitle,
		Overview:      r.Overview,
		PosterPath:    r.PosterPath,
	}
}
