package movie

import "github.com/s0up4200/boxoffice/kobis"

// MovieSummary is one row of the listing page
type MovieSummary struct {
	Code   string `json:"code" yaml:"code"`
	Year   string `json:"year" yaml:"year"`
	NameKO string `json:"nameKO" yaml:"nameKO"`
	NameEN string `json:"nameEN" yaml:"nameEN"`
	Time   string `json:"time" yaml:"time"`
	Genre  string `json:"genre" yaml:"genre"`
}

// Nation is a production country of a MovieDetail
type Nation struct {
	NationNm string `json:"nationNm" yaml:"nationNm"`
}

// Genre is a genre of a MovieDetail
type Genre struct {
	GenreNm string `json:"genreNm" yaml:"genreNm"`
}

// MovieDetail is the view model of the detail page
type MovieDetail struct {
	NameKO   string   `json:"nameKO" yaml:"nameKO"`
	NameEN   string   `json:"nameEN" yaml:"nameEN"`
	ShowTime string   `json:"showTime" yaml:"showTime"`
	Year     string   `json:"year" yaml:"year"`
	Nations  []Nation `json:"nations" yaml:"nations"`
	Genres   []Genre  `json:"genres" yaml:"genres"`
	Actors   []string `json:"actors" yaml:"actors"`
}

// NationNames returns the production countries in order
func (d MovieDetail) NationNames() []string {
	names := make([]string, 0, len(d.Nations))
	for _, n := range d.Nations {
		names = append(names, n.NationNm)
	}
	return names
}

// GenreNames returns the genre labels in order
func (d MovieDetail) GenreNames() []string {
	names := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		names = append(names, g.GenreNm)
	}
	return names
}

// SummaryFromKobis converts a KOBIS list row to a MovieSummary.
// Year carries the movie code, matching the listing the frontend has always
// rendered.
func SummaryFromKobis(item kobis.MovieItem) MovieSummary {
	return MovieSummary{
		Code:   item.MovieCd,
		Year:   item.MovieCd,
		NameKO: item.MovieNm,
		NameEN: item.MovieNmEn,
		Time:   item.TypeNm,
		Genre:  item.RepGenreNm,
	}
}

// DetailFromKobis converts a KOBIS movie record to a MovieDetail
func DetailFromKobis(info kobis.MovieInfo) MovieDetail {
	detail := MovieDetail{
		NameKO:   info.MovieNm,
		NameEN:   info.MovieNmEn,
		ShowTime: info.ShowTm,
		Year:     info.PrdtYear,
		Nations:  make([]Nation, 0, len(info.Nations)),
		Genres:   make([]Genre, 0, len(info.Genres)),
		Actors:   make([]string, 0, len(info.Actors)),
	}

	for _, n := range info.Nations {
		detail.Nations = append(detail.Nations, Nation{NationNm: n.NationNm})
	}
	for _, g := range info.Genres {
		detail.Genres = append(detail.Genres, Genre{GenreNm: g.GenreNm})
	}
	for _, a := range info.Actors {
		detail.Actors = append(detail.Actors, a.PeopleNm)
	}

	return detail
}
