package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/boxoffice/filter"
	"github.com/s0up4200/boxoffice/movie"
)

// MaxConcurrency bounds the detail lookups of a single show command
const MaxConcurrency = 4

var (
	filterExpr   string
	outputFormat string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List movies from KOBIS",
	Long: `Fetch the KOBIS movie listing and print it in provider order.

An optional filter expression selects rows, for example:
  boxoffice list --filter 'genre == "드라마"'
  boxoffice list --filter 'hasAny(nameEN, "love", "war")'`,
	RunE: runList,
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show CODE [CODE...]",
	Short: "Show movie details",
	Long:  `Fetch and print the detail record of one or more movie codes.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to KOBIS",
	Long:  `Request the movie listing once and report whether KOBIS answered.`,
	RunE:  runTest,
}

func init() {
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	showCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
}

func runList(cmd *cobra.Command, args []string) error {
	out, err := newPrinter(outputFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	var f *filter.Filter
	if filterExpr != "" {
		f, err = filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	logger.Debug().Str("filter", filterExpr).Msg("Fetching movie list")

	movies, err := loader.List(cmd.Context())
	if err != nil {
		return err
	}

	if f != nil {
		movies = f.Apply(movies)
	}

	return out.Summaries(movies)
}

func runShow(cmd *cobra.Command, args []string) error {
	out, err := newPrinter(outputFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	details := make([]*movie.MovieDetail, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(MaxConcurrency)

	var mu sync.Mutex
	for i, code := range args {
		g.Go(func() error {
			detail, err := loader.Detail(ctx, code)
			if err != nil {
				return fmt.Errorf("movie %s: %w", code, err)
			}

			mu.Lock()
			details[i] = detail
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return out.Details(args, details)
}

func runTest(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Testing connection to KOBIS at %s...\n", cfg.Kobis.URL)

	result, err := kobisClient.SearchMovieList(cmd.Context())
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	fmt.Fprintln(w, "✓ Connection successful!")
	fmt.Fprintf(w, "- Movies listed: %d of %d\n", len(result.MovieList), result.TotalCount)
	if result.Source != "" {
		fmt.Fprintf(w, "- Source: %s\n", result.Source)
	}

	return nil
}
