package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/s0up4200/boxoffice/movie"
)

// printer writes movie view models in one output format
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(format string, w io.Writer) (*printer, error) {
	switch format {
	case "table", "json", "yaml":
		return &printer{format: format, w: w}, nil
	default:
		return nil, fmt.Errorf("invalid output format: %s (must be table, json or yaml)", format)
	}
}

// Summaries prints the listing using the {data: [...]} page shape for
// structured formats
func (p *printer) Summaries(movies []movie.MovieSummary) error {
	switch p.format {
	case "json":
		return p.json(map[string]any{"data": movies})
	case "yaml":
		return p.yaml(map[string]any{"data": movies})
	}

	if len(movies) == 0 {
		fmt.Fprintln(p.w, "No movies found.")
		return nil
	}

	movieText := "movie"
	if len(movies) != 1 {
		movieText = "movies"
	}
	fmt.Fprintf(p.w, "Found %d %s:\n\n", len(movies), movieText)

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tYEAR\tTITLE\tENGLISH TITLE\tTYPE\tGENRE")
	for _, m := range movies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", m.Code, m.Year, m.NameKO, m.NameEN, m.Time, m.Genre)
	}
	return tw.Flush()
}

// Details prints one detail record per code
func (p *printer) Details(codes []string, details []*movie.MovieDetail) error {
	switch p.format {
	case "json":
		if len(details) == 1 {
			return p.json(map[string]any{"data": details[0]})
		}
		return p.json(map[string]any{"data": details})
	case "yaml":
		if len(details) == 1 {
			return p.yaml(map[string]any{"data": details[0]})
		}
		return p.yaml(map[string]any{"data": details})
	}

	for i, d := range details {
		if i > 0 {
			fmt.Fprintln(p.w)
		}
		fmt.Fprintf(p.w, "%s (%s)\n", d.NameKO, d.NameEN)
		fmt.Fprintln(p.w, strings.Repeat("━", 50))
		fmt.Fprintf(p.w, "Code:      %s\n", codes[i])
		fmt.Fprintf(p.w, "Year:      %s\n", d.Year)
		fmt.Fprintf(p.w, "Runtime:   %s min\n", d.ShowTime)
		fmt.Fprintf(p.w, "Nations:   %s\n", strings.Join(d.NationNames(), ", "))
		fmt.Fprintf(p.w, "Genres:    %s\n", strings.Join(d.GenreNames(), ", "))
		actors := "None"
		if len(d.Actors) > 0 {
			actors = strings.Join(d.Actors, ", ")
		}
		fmt.Fprintf(p.w, "Actors:    %s\n", actors)
	}
	return nil
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
