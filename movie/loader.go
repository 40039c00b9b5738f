package movie

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/s0up4200/boxoffice/kobis"
)

// Source defines the KOBIS operations the loaders depend on
type Source interface {
	SearchMovieList(ctx context.Context) (*kobis.MovieListResult, error)
	SearchMovieInfo(ctx context.Context, movieCd string) (*kobis.MovieInfo, error)
}

var _ Source = (*kobis.Client)(nil)

// Loader produces page data for the listing and detail pages
type Loader struct {
	source Source
	logger zerolog.Logger
}

// NewLoader creates a new Loader backed by source
func NewLoader(source Source, logger zerolog.Logger) *Loader {
	return &Loader{
		source: source,
		logger: logger,
	}
}

// List returns the movie listing in provider order
func (l *Loader) List(ctx context.Context) ([]MovieSummary, error) {
	result, err := l.source.SearchMovieList(ctx)
	if err != nil {
		return nil, err
	}

	movies := make([]MovieSummary, 0, len(result.MovieList))
	for _, item := range result.MovieList {
		movies = append(movies, SummaryFromKobis(item))
	}

	l.logger.Debug().Int("count", len(movies)).Msg("Loaded movie list")
	return movies, nil
}

// Detail returns the detail record for a movie code
func (l *Loader) Detail(ctx context.Context, code string) (*MovieDetail, error) {
	info, err := l.source.SearchMovieInfo(ctx, code)
	if err != nil {
		return nil, err
	}

	detail := DetailFromKobis(*info)

	l.logger.Debug().
		Str("code", code).
		Interface("detail", detail).
		Msg("Resolved movie detail")

	return &detail, nil
}
