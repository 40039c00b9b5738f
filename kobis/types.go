package kobis

// MovieListResponse represents the response from the searchMovieList endpoint
type MovieListResponse struct {
	MovieListResult *MovieListResult `json:"movieListResult"`
}

// MovieListResult contains the listing and its metadata
type MovieListResult struct {
	TotalCount int         `json:"totCnt"`
	Source     string      `json:"source"`
	MovieList  []MovieItem `json:"movieList"`
}

// MovieItem represents a single row of the movie listing
type MovieItem struct {
	MovieCd     string     `json:"movieCd"`
	MovieNm     string     `json:"movieNm"`
	MovieNmEn   string     `json:"movieNmEn"`
	PrdtYear    string     `json:"prdtYear"`
	OpenDt      string     `json:"openDt"`
	TypeNm      string     `json:"typeNm"`
	PrdtStatNm  string     `json:"prdtStatNm"`
	NationAlt   string     `json:"nationAlt"`
	GenreAlt    string     `json:"genreAlt"`
	RepNationNm string     `json:"repNationNm"`
	RepGenreNm  string     `json:"repGenreNm"`
	Directors   []Director `json:"directors"`
	Companys    []Company  `json:"companys"`
}

// MovieInfoResponse represents the response from the searchMovieInfo endpoint
type MovieInfoResponse struct {
	MovieInfoResult *MovieInfoResult `json:"movieInfoResult"`
}

// MovieInfoResult wraps a single movie record
type MovieInfoResult struct {
	MovieInfo *MovieInfo `json:"movieInfo"`
	Source    string     `json:"source"`
}

// MovieInfo represents the detail record of one movie
type MovieInfo struct {
	MovieCd    string     `json:"movieCd"`
	MovieNm    string     `json:"movieNm"`
	MovieNmEn  string     `json:"movieNmEn"`
	MovieNmOg  string     `json:"movieNmOg"`
	ShowTm     string     `json:"showTm"`
	PrdtYear   string     `json:"prdtYear"`
	OpenDt     string     `json:"openDt"`
	PrdtStatNm string     `json:"prdtStatNm"`
	TypeNm     string     `json:"typeNm"`
	Nations    []Nation   `json:"nations"`
	Genres     []Genre    `json:"genres"`
	Directors  []Director `json:"directors"`
	Actors     []Actor    `json:"actors"`
	ShowTypes  []ShowType `json:"showTypes"`
	Companys   []Company  `json:"companys"`
	Audits     []Audit    `json:"audits"`
	Staffs     []Staff    `json:"staffs"`
}

// Nation is a production country
type Nation struct {
	NationNm string `json:"nationNm"`
}

// Genre is a genre label
type Genre struct {
	GenreNm string `json:"genreNm"`
}

// Director is a credited director
type Director struct {
	PeopleNm   string `json:"peopleNm"`
	PeopleNmEn string `json:"peopleNmEn,omitempty"`
}

// Actor is a credited cast member
type Actor struct {
	PeopleNm   string `json:"peopleNm"`
	PeopleNmEn string `json:"peopleNmEn"`
	Cast       string `json:"cast"`
	CastEn     string `json:"castEn"`
}

// ShowType describes a screening format
type ShowType struct {
	ShowTypeGroupNm string `json:"showTypeGroupNm"`
	ShowTypeNm      string `json:"showTypeNm"`
}

// Company is a production or distribution company
type Company struct {
	CompanyCd     string `json:"companyCd"`
	CompanyNm     string `json:"companyNm"`
	CompanyNmEn   string `json:"companyNmEn,omitempty"`
	CompanyPartNm string `json:"companyPartNm,omitempty"`
}

// Audit is a rating board record
type Audit struct {
	AuditNo      string `json:"auditNo"`
	WatchGradeNm string `json:"watchGradeNm"`
}

// Staff is a credited crew member
type Staff struct {
	PeopleNm    string `json:"peopleNm"`
	PeopleNmEn  string `json:"peopleNmEn"`
	StaffRoleNm string `json:"staffRoleNm"`
}

// faultEnvelope is what KOBIS returns, with HTTP 200, for rejected requests
type faultEnvelope struct {
	FaultInfo *struct {
		Message   string `json:"message"`
		ErrorCode string `json:"errorCode"`
	} `json:"faultInfo"`
}
