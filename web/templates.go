package web

import (
	"html/template"
	"strings"

	"github.com/s0up4200/boxoffice/movie"
)

type listPage struct {
	Data  []movie.MovieSummary
	Count int
}

type detailPage struct {
	Data  *movie.MovieDetail
	Count int
}

type errorPage struct {
	Status  int
	Message string
	Count   int
}

// parseTemplates builds one template set per page on top of the shared layout
func parseTemplates() map[string]*template.Template {
	funcs := template.FuncMap{
		"join": strings.Join,
	}

	base := template.Must(template.New("layout").Funcs(funcs).Parse(layoutTpl))
	pages := map[string]string{
		"list":   listTpl,
		"detail": detailTpl,
		"error":  errorTpl,
	}

	out := make(map[string]*template.Template, len(pages))
	for name, body := range pages {
		out[name] = template.Must(template.Must(base.Clone()).Parse(body))
	}
	return out
}

const layoutTpl = `<!doctype html>
<html lang="ko">
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>{{block "title" .}}boxoffice{{end}}</title>
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto;max-width:960px;margin:0 auto;padding:1rem}
header{display:flex;justify-content:space-between;align-items:center;margin-bottom:1rem}
table{width:100%;border-collapse:collapse}
th,td{text-align:left;padding:6px;border-bottom:1px solid #eee}
.muted, small{color:#666}
.counter form{display:inline}
</style>
<header>
  <a href="/"><strong>boxoffice</strong></a>
  <div class="counter">
    <form method="post" action="/counter/decrement"><button type="submit">-</button></form>
    <span id="count">{{.Count}}</span>
    <form method="post" action="/counter/increment"><button type="submit">+</button></form>
  </div>
</header>
<main>
{{block "content" .}}{{end}}
</main>
</html>`

const listTpl = `{{define "title"}}영화 목록 · boxoffice{{end}}
{{define "content"}}
<h1>영화 목록</h1>
{{if .Data}}
<table id="movies">
  <thead><tr><th>코드</th><th>제목</th><th>영문 제목</th><th>유형</th><th>장르</th></tr></thead>
  <tbody>
  {{range .Data}}
    <tr class="movie" data-code="{{.Code}}">
      <td class="year">{{.Year}}</td>
      <td class="name-ko"><a href="/movie/{{.Code}}">{{.NameKO}}</a></td>
      <td class="name-en">{{.NameEN}}</td>
      <td class="time">{{.Time}}</td>
      <td class="genre">{{.Genre}}</td>
    </tr>
  {{end}}
  </tbody>
</table>
{{else}}
<small>No movies</small>
{{end}}
{{end}}`

const detailTpl = `{{define "title"}}{{.Data.NameKO}} · boxoffice{{end}}
{{define "content"}}
<article id="movie">
  <h1 class="name-ko">{{.Data.NameKO}}</h1>
  <p class="name-en muted">{{.Data.NameEN}}</p>
  <dl>
    <dt>제작연도</dt><dd class="year">{{.Data.Year}}</dd>
    <dt>상영시간</dt><dd class="show-time">{{.Data.ShowTime}}분</dd>
    <dt>국가</dt><dd class="nations">{{join .Data.NationNames ", "}}</dd>
    <dt>장르</dt><dd class="genres">{{join .Data.GenreNames ", "}}</dd>
  </dl>
  <h2>출연</h2>
  {{if .Data.Actors}}
  <ul class="actors">
    {{range .Data.Actors}}<li>{{.}}</li>{{end}}
  </ul>
  {{else}}
  <small>No actors listed</small>
  {{end}}
  <a href="/">← 목록</a>
</article>
{{end}}`

const errorTpl = `{{define "title"}}{{.Status}} · boxoffice{{end}}
{{define "content"}}
<h1 id="error">{{.Status}}</h1>
<p class="message">{{.Message}}</p>
<a href="/">← 목록</a>
{{end}}`
