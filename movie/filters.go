package movie

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"cinefind/errs"
)

// SortKey is one of the orderings the discovery endpoint accepts.
type SortKey string

const (
	SortPopularityDesc  SortKey = "popularity.desc"
	SortPopularityAsc   SortKey = "popularity.asc"
	SortReleaseDateDesc SortKey = "release_date.desc"
	SortReleaseDateAsc  SortKey = "release_date.asc"
	SortVoteAverageDesc SortKey = "vote_average.desc"
	SortVoteAverageAsc  SortKey = "vote_average.asc"
	SortRevenueDesc     SortKey = "revenue.desc"

	DefaultSort = SortPopularityDesc
)

// Language is an original-language filter. The zero value means any language.
type Language string

const (
	LanguageAny        Language = ""
	LanguageItalian    Language = "it"
	LanguageEnglish    Language = "en"
	LanguageSpanish    Language = "es"
	LanguageFrench     Language = "fr"
	LanguageGerman     Language = "de"
	LanguageJapanese   Language = "ja"
	LanguageKorean     Language = "ko"
	LanguageChinese    Language = "zh"
	LanguagePortuguese Language = "pt"
)

var (
	ErrInvalidSortKey   = errs.Errorf(errs.EINVALID, "movie: invalid sort key")
	ErrInvalidLanguage  = errs.Errorf(errs.EINVALID, "movie: invalid language")
	ErrInvalidYear      = errs.Errorf(errs.EINVALID, "movie: invalid release year")
	ErrInvalidMinRating = errs.Errorf(errs.EINVALID, "movie: invalid minimum rating")
	ErrInvalidGenre     = errs.Errorf(errs.EINVALID, "movie: invalid genre")
)

type Option[T any] struct {
	Value T      `json:"value"`
	Label string `json:"label"`
}

var SortOptions = []Option[SortKey]{
	{SortPopularityDesc, "Popolarità (Decrescente)"},
	{SortPopularityAsc, "Popolarità (Crescente)"},
	{SortReleaseDateDesc, "Data Uscita (Più Recente)"},
	{SortReleaseDateAsc, "Data Uscita (Più Vecchio)"},
	{SortVoteAverageDesc, "Valutazione (Più Alta)"},
	{SortVoteAverageAsc, "Valutazione (Più Bassa)"},
	{SortRevenueDesc, "Incassi (Più Alto)"},
}

var LanguageOptions = []Option[Language]{
	{LanguageAny, "Tutte le lingue"},
	{LanguageItalian, "Italiano"},
	{LanguageEnglish, "Inglese"},
	{LanguageSpanish, "Spagnolo"},
	{LanguageFrench, "Francese"},
	{LanguageGerman, "Tedesco"},
	{LanguageJapanese, "Giapponese"},
	{LanguageKorean, "Coreano"},
	{LanguageChinese, "Cinese"},
	{LanguagePortuguese, "Portoghese"},
}

// RatingThresholds are the minimum ratings offered by the filter panel.
var RatingThresholds = []string{"8", "7", "6", "5", "4", "3"}

// DefaultGenres is used when the genre list cannot be fetched.
var DefaultGenres = []Genre{
	{28, "Azione"},
	{12, "Avventura"},
	{16, "Animazione"},
	{35, "Commedia"},
	{80, "Crime"},
	{99, "Documentario"},
	{18, "Dramma"},
	{10751, "Famiglia"},
	{14, "Fantasy"},
	{36, "Storia"},
	{27, "Horror"},
	{10402, "Musica"},
	{9648, "Mistero"},
	{10749, "Romance"},
	{878, "Fantascienza"},
	{10770, "Film TV"},
	{53, "Thriller"},
	{10752, "Guerra"},
	{37, "Western"},
}

// YearOptions lists the current year and the twenty before it, newest first.
func YearOptions(now time.Time) []string {
	years := make([]string, 0, 21)
	for i := 0; i <= 20; i++ {
		years = append(years, strconv.Itoa(now.Year()-i))
	}
	return years
}

func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSort, nil
	}
	for _, opt := range SortOptions {
		if string(opt.Value) == s {
			return opt.Value, nil
		}
	}
	return "", ErrInvalidSortKey
}

func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, opt := range LanguageOptions {
		if string(opt.Value) == s {
			return opt.Value, nil
		}
	}
	return "", ErrInvalidLanguage
}

// Filters are the structured constraints applied on top of the free-text term.
type Filters struct {
	Genres    []int    `json:"genres,omitempty"`
	Year      string   `json:"year,omitempty"`
	MinRating string   `json:"min_rating,omitempty"`
	Language  Language `json:"language,omitempty"`
	SortBy    SortKey  `json:"sort_by"`
}

// DefaultFilters is the "no filters active" value.
func DefaultFilters() Filters {
	return Filters{SortBy: DefaultSort}
}

// Active reports whether any filter differs from its default.
func (f Filters) Active() bool {
	return len(f.Genres) > 0 ||
		f.Year != "" ||
		f.MinRating != "" ||
		f.Language != LanguageAny ||
		f.sortKey() != DefaultSort
}

func (f Filters) Validate() error {
	for _, id := range f.Genres {
		if id <= 0 {
			return ErrInvalidGenre
		}
	}
	if f.Year != "" && !isYear(f.Year) {
		return ErrInvalidYear
	}
	if f.MinRating != "" {
		v, err := strconv.ParseFloat(f.MinRating, 64)
		if err != nil || math.IsNaN(v) || v < 0 || v > 10 {
			return ErrInvalidMinRating
		}
	}
	if _, err := ParseLanguage(string(f.Language)); err != nil {
		return err
	}
	if f.SortBy != "" {
		if _, err := ParseSortKey(string(f.SortBy)); err != nil {
			return err
		}
	}
	return nil
}

// isYear accepts exactly four ASCII digits; no sign.
func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Normalize returns a copy with the genre set sorted and deduplicated and the
// sort key defaulted.
func (f Filters) Normalize() Filters {
	out := f
	out.Genres = slices.Compact(slices.Sorted(slices.Values(f.Genres)))
	if len(out.Genres) == 0 {
		out.Genres = nil
	}
	out.Year = strings.TrimSpace(f.Year)
	out.MinRating = strings.TrimSpace(f.MinRating)
	out.SortBy = f.sortKey()
	return out
}

// Equal compares filters as values; genre order and duplicates are ignored.
func (f Filters) Equal(o Filters) bool {
	a, b := f.Normalize(), o.Normalize()
	return slices.Equal(a.Genres, b.Genres) &&
		a.Year == b.Year &&
		a.MinRating == b.MinRating &&
		a.Language == b.Language &&
		a.SortBy == b.SortBy
}

func (f Filters) sortKey() SortKey {
	if f.SortBy == "" {
		return DefaultSort
	}
	return f.SortBy
}
