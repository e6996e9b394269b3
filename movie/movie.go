package movie

import (
	"strconv"
	"strings"

	"cinefind/errs"
)

const (
	// MaxPages is the deepest page the metadata API will serve.
	MaxPages = 500

	ImageBaseURL = "https://image.tmdb.org/t/p"
	posterSize   = "w500"
	backdropSize = "w1280"
)

var (
	ErrInvalidQuery  = errs.Errorf(errs.EINVALID, "invalid search query")
	ErrInvalidMovie  = errs.Errorf(errs.EINVALID, "movie: invalid id")
	ErrMissingAPIKey = errs.Errorf(errs.ENOTIMPLEMENTED,
		"API key non configurata. Configura TMDB_API_KEY nelle variabili d'ambiente.")
	ErrInvalidAPIKey = errs.Errorf(errs.EUNAUTHORIZED,
		"API key non valida. Controlla la configurazione di TMDB_API_KEY.")
	ErrDetailsUnavailable = errs.Errorf(errs.EUNAVAILABLE, "Errore nel caricamento dei dettagli del film")
	ErrInvalidBaseURL     = errs.Errorf(errs.EINVALID, "movie: invalid catalog base url")
	ErrInvalidLocale      = errs.Errorf(errs.EINVALID, "movie: invalid catalog language tag")
)

// Movie is a catalog entry as returned by list endpoints. It is never
// modified after it has been received.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
}

// Year returns the release year, or "N/A" when the release date is unknown.
func (m Movie) Year() string {
	year, _, _ := strings.Cut(m.ReleaseDate, "-")
	if len(year) != 4 {
		return "N/A"
	}
	return year
}

// Rating formats the vote average with one decimal. A zero average means the
// movie has not been rated.
func (m Movie) Rating() string {
	if m.VoteAverage <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(m.VoteAverage, 'f', 1, 64)
}

func (m Movie) PosterURL() string {
	return imageURL(posterSize, m.PosterPath)
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order"`
}

type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
	Name string `json:"name"`
}

type Country struct {
	Code string `json:"iso_3166_1"`
	Name string `json:"name"`
}

type SpokenLanguage struct {
	Code string `json:"iso_639_1"`
	Name string `json:"name"`
}

// Details is the full record shown in the movie modal.
type Details struct {
	Movie
	Tagline             string           `json:"tagline,omitempty"`
	Runtime             int              `json:"runtime,omitempty"`
	Budget              int64            `json:"budget,omitempty"`
	Revenue             int64            `json:"revenue,omitempty"`
	Genres              []Genre          `json:"genres,omitempty"`
	Cast                []CastMember     `json:"cast,omitempty"`
	Videos              []Video          `json:"videos,omitempty"`
	ProductionCountries []Country        `json:"production_countries,omitempty"`
	SpokenLanguages     []SpokenLanguage `json:"spoken_languages,omitempty"`
}

// BackdropURL falls back to the poster when the movie has no backdrop.
func (d Details) BackdropURL() string {
	if d.BackdropPath != "" {
		return imageURL(backdropSize, d.BackdropPath)
	}
	return imageURL(backdropSize, d.PosterPath)
}

// TopCast returns at most n cast members in billing order.
func (d Details) TopCast(n int) []CastMember {
	if n < 0 || len(d.Cast) <= n {
		return d.Cast
	}
	return d.Cast[:n]
}

func imageURL(size, path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return ImageBaseURL + "/" + size + path
}
