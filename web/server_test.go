package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/boxoffice/counter"
	"github.com/s0up4200/boxoffice/kobis"
	"github.com/s0up4200/boxoffice/movie"
)

// mockPages implements Pages for testing
type mockPages struct {
	movies []movie.MovieSummary
	detail *movie.MovieDetail
	err    error

	codes   []string
	lastCtx context.Context
}

func (m *mockPages) List(ctx context.Context) ([]movie.MovieSummary, error) {
	m.lastCtx = ctx
	return m.movies, m.err
}

func (m *mockPages) Detail(ctx context.Context, code string) (*movie.MovieDetail, error) {
	m.lastCtx = ctx
	m.codes = append(m.codes, code)
	return m.detail, m.err
}

var sampleMovies = []movie.MovieSummary{
	{Code: "M1", Year: "M1", NameKO: "Foo", NameEN: "Foo", Time: "장편", Genre: "Drama"},
	{Code: "M2", Year: "M2", NameKO: "도둑들", NameEN: "The Thieves", Time: "장편", Genre: "범죄"},
}

var sampleDetail = &movie.MovieDetail{
	NameKO:   "광해, 왕이 된 남자",
	NameEN:   "Masquerade",
	ShowTime: "131",
	Year:     "2012",
	Nations:  []movie.Nation{{NationNm: "한국"}},
	Genres:   []movie.Genre{{GenreNm: "사극"}, {GenreNm: "드라마"}},
	Actors:   []string{"A", "B"},
}

func newTestServer(t *testing.T, pages Pages) (*Server, *counter.Subject) {
	t.Helper()
	count := counter.New(0)
	s := NewServer(pages, count, zerolog.Nop())
	t.Cleanup(s.Close)
	return s, count
}

func serve(s http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func document(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(t, err)
	return doc
}

func TestListPage(t *testing.T) {
	s, _ := newTestServer(t, &mockPages{movies: sampleMovies})

	rr := serve(s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	doc := document(t, rr)
	rows := doc.Find("tr.movie")
	require.Equal(t, 2, rows.Length())

	first := rows.First()
	assert.Equal(t, "M1", first.AttrOr("data-code", ""))
	assert.Equal(t, "M1", first.Find(".year").Text())
	assert.Equal(t, "Foo", first.Find(".name-ko").Text())
	assert.Equal(t, "/movie/M1", first.Find(".name-ko a").AttrOr("href", ""))
	assert.Equal(t, "장편", first.Find(".time").Text())
	assert.Equal(t, "Drama", first.Find(".genre").Text())
	assert.Equal(t, "도둑들", rows.Eq(1).Find(".name-ko").Text())
	assert.Equal(t, "0", doc.Find("#count").Text())
}

func TestListPageEmpty(t *testing.T) {
	s, _ := newTestServer(t, &mockPages{movies: []movie.MovieSummary{}})

	rr := serve(s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := document(t, rr)
	assert.Equal(t, 0, doc.Find("tr.movie").Length())
	assert.Contains(t, doc.Find("main").Text(), "No movies")
}

func TestDetailPage(t *testing.T) {
	pages := &mockPages{detail: sampleDetail}
	s, _ := newTestServer(t, pages)

	rr := serve(s, http.MethodGet, "/movie/20124079", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"20124079"}, pages.codes)

	doc := document(t, rr)
	assert.Equal(t, "광해, 왕이 된 남자", doc.Find("#movie .name-ko").Text())
	assert.Equal(t, "Masquerade", doc.Find("#movie .name-en").Text())
	assert.Equal(t, "2012", doc.Find(".year").Text())
	assert.Equal(t, "131분", doc.Find(".show-time").Text())
	assert.Equal(t, "한국", doc.Find(".nations").Text())
	assert.Equal(t, "사극, 드라마", doc.Find(".genres").Text())

	var actors []string
	doc.Find(".actors li").Each(func(_ int, sel *goquery.Selection) {
		actors = append(actors, sel.Text())
	})
	assert.Equal(t, []string{"A", "B"}, actors)
}

func TestLookupFailureRendersNotFound(t *testing.T) {
	kinds := []kobis.Kind{kobis.KindHTTPStatus, kobis.KindTransport, kobis.KindParse, kobis.KindFault}

	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			pages := &mockPages{err: &kobis.Error{Kind: kind, Err: errors.New("cause")}}
			s, _ := newTestServer(t, pages)

			for _, target := range []string{"/", "/movie/M1"} {
				rr := serve(s, http.MethodGet, target, "")
				assert.Equal(t, http.StatusNotFound, rr.Code, target)
				doc := document(t, rr)
				assert.Equal(t, "404", doc.Find("#error").Text())
				assert.Equal(t, "Not found", doc.Find(".message").Text())
				assert.NotContains(t, doc.Text(), "cause")
			}

			for _, target := range []string{"/api/movies", "/api/movies/M1"} {
				rr := serve(s, http.MethodGet, target, "")
				assert.Equal(t, http.StatusNotFound, rr.Code, target)

				var body struct {
					Status  int    `json:"status"`
					Message string `json:"message"`
				}
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, 404, body.Status)
				assert.Equal(t, "Not found", body.Message)
			}
		})
	}
}

func TestUnexpectedErrorRendersServerError(t *testing.T) {
	s, _ := newTestServer(t, &mockPages{err: errors.New("template data broken")})

	rr := serve(s, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestAPIPageData(t *testing.T) {
	s, _ := newTestServer(t, &mockPages{movies: sampleMovies[:1], detail: sampleDetail})

	rr := serve(s, http.MethodGet, "/api/movies", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":[{"code":"M1","year":"M1","nameKO":"Foo","nameEN":"Foo","time":"장편","genre":"Drama"}]}`, rr.Body.String())

	rr = serve(s, http.MethodGet, "/api/movies/M1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{
		"nameKO":"광해, 왕이 된 남자","nameEN":"Masquerade","showTime":"131","year":"2012",
		"nations":[{"nationNm":"한국"}],"genres":[{"genreNm":"사극"},{"genreNm":"드라마"}],
		"actors":["A","B"]}}`, rr.Body.String())
}

func TestLoadIgnoresRequestCancellation(t *testing.T) {
	pages := &mockPages{movies: sampleMovies}
	s, _ := newTestServer(t, pages)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)

	require.NotNil(t, pages.lastCtx)
	assert.NoError(t, pages.lastCtx.Err())
}

func TestCounterEndpoints(t *testing.T) {
	s, count := newTestServer(t, &mockPages{movies: sampleMovies})

	rr := serve(s, http.MethodGet, "/api/counter", "")
	assert.JSONEq(t, `{"count":0}`, rr.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/counter/increment", nil)
	req.Header.Set("Referer", "http://example.com/movie/M1")
	req.Host = "example.com"
	rr = httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/movie/M1", rr.Header().Get("Location"))
	assert.Equal(t, 1, count.Value())

	rr = serve(s, http.MethodPost, "/counter/increment", "")
	assert.Equal(t, "/", rr.Header().Get("Location"))
	serve(s, http.MethodPost, "/counter/decrement", "")
	assert.Equal(t, 1, count.Value())

	rr = serve(s, http.MethodPost, "/api/counter", `{"count": 41}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"count":41}`, rr.Body.String())

	rr = serve(s, http.MethodPost, "/api/counter", `{"value": 1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 41, count.Value())

	// the page binding shows the published value
	doc := document(t, serve(s, http.MethodGet, "/", ""))
	assert.Equal(t, "41", doc.Find("#count").Text())

	// values published elsewhere reach the binding too
	count.Publish(-2)
	doc = document(t, serve(s, http.MethodGet, "/", ""))
	assert.Equal(t, "-2", doc.Find("#count").Text())
}

func TestRefererFromOtherHostIgnored(t *testing.T) {
	s, _ := newTestServer(t, &mockPages{})

	req := httptest.NewRequest(http.MethodPost, "/counter/decrement", nil)
	req.Header.Set("Referer", "https://evil.example/phish")
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestCloseUnsubscribes(t *testing.T) {
	count := counter.New(0)
	s := NewServer(&mockPages{}, count, zerolog.Nop())
	assert.Equal(t, 1, count.Len())
	s.Close()
	assert.Equal(t, 0, count.Len())
}

func TestRoutes(t *testing.T) {
	s, _ := newTestServer(t, &mockPages{})

	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/nope", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(s, http.MethodDelete, "/api/movies", "").Code)
	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/health", "").Code)
}
