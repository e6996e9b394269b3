package tmdb

import "cinefind/movie"

type listResponse struct {
	Page         int         `json:"page"`
	Results      []movieItem `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`

	// Set by the service on logical failures.
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type movieItem struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`
}

func (i movieItem) toMovie() movie.Movie {
	return movie.Movie{
		ID:               i.ID,
		Title:            i.Title,
		OriginalTitle:    i.OriginalTitle,
		Overview:         i.Overview,
		PosterPath:       i.PosterPath,
		BackdropPath:     i.BackdropPath,
		ReleaseDate:      i.ReleaseDate,
		VoteAverage:      i.VoteAverage,
		OriginalLanguage: i.OriginalLanguage,
		GenreIDs:         i.GenreIDs,
	}
}

type genreItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genresResponse struct {
	Genres []genreItem `json:"genres"`
}

type detailsResponse struct {
	movieItem
	Tagline  string      `json:"tagline"`
	Runtime  int         `json:"runtime"`
	Budget   int64       `json:"budget"`
	Revenue  int64       `json:"revenue"`
	Genres   []genreItem `json:"genres"`
	Credits  struct {
		Cast []struct {
			Name        string `json:"name"`
			Character   string `json:"character"`
			ProfilePath string `json:"profile_path"`
			Order       int    `json:"order"`
		} `json:"cast"`
	} `json:"credits"`
	Videos struct {
		Results []struct {
			Key  string `json:"key"`
			Site string `json:"site"`
			Type string `json:"type"`
			Name string `json:"name"`
		} `json:"results"`
	} `json:"videos"`
	ProductionCountries []struct {
		Code string `json:"iso_3166_1"`
		Name string `json:"name"`
	} `json:"production_countries"`
	SpokenLanguages []struct {
		Code string `json:"iso_639_1"`
		Name string `json:"name"`
	} `json:"spoken_languages"`
}

func (r detailsResponse) toDetails() movie.Details {
	d := movie.Details{
		Movie:   r.movieItem.toMovie(),
		Tagline: r.Tagline,
		Runtime: r.Runtime,
		Budget:  r.Budget,
		Revenue: r.Revenue,
	}
	for _, g := range r.Genres {
		d.Genres = append(d.Genres, movie.Genre{ID: g.ID, Name: g.Name})
	}
	for _, c := range r.Credits.Cast {
		d.Cast = append(d.Cast, movie.CastMember{
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: c.ProfilePath,
			Order:       c.Order,
		})
	}
	for _, v := range r.Videos.Results {
		d.Videos = append(d.Videos, movie.Video{Key: v.Key, Site: v.Site, Type: v.Type, Name: v.Name})
	}
	for _, c := range r.ProductionCountries {
		d.ProductionCountries = append(d.ProductionCountries, movie.Country{Code: c.Code, Name: c.Name})
	}
	for _, l := range r.SpokenLanguages {
		d.SpokenLanguages = append(d.SpokenLanguages, movie.SpokenLanguage{Code: l.Code, Name: l.Name})
	}
	return d
}
