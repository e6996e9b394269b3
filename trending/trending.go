package trending

import (
	"strings"

	"cinefind/errs"
)

// TopLimit is the number of entries shown in the trending strip.
const TopLimit = 5

var ErrInvalidTerm = errs.Errorf(errs.EINVALID, "invalid search term")

// Entry counts how many times a search term led to an opened movie. MovieID
// and PosterURL describe the first movie recorded for the term.
type Entry struct {
	SearchTerm string `json:"search_term"`
	Count      int64  `json:"count"`
	MovieID    int    `json:"movie_id"`
	PosterURL  string `json:"poster_url"`
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.SearchTerm) == "" {
		return ErrInvalidTerm
	}
	return nil
}
