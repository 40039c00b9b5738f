package kobis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public KOBIS movie REST service
const DefaultBaseURL = "http://www.kobis.or.kr/kobisopenapi/webservice/rest/movie"

const (
	listEndpoint = "/searchMovieList.json"
	infoEndpoint = "/searchMovieInfo.json"
)

// Client represents a KOBIS open API client
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	timeout    *time.Duration
	logger     zerolog.Logger
}

// NewClient creates a new KOBIS client. The API key is sent as given; an
// empty key is left for the provider to reject.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.timeout != nil {
		httpClient := *client.httpClient
		httpClient.Timeout = *client.timeout
		client.httpClient = &httpClient
	}

	return client, nil
}

// SearchMovieList retrieves the movie listing
func (c *Client) SearchMovieList(ctx context.Context) (*MovieListResult, error) {
	requestURL := fmt.Sprintf("%s%s?key=%s", c.baseURL, listEndpoint, c.apiKey)

	var response MovieListResponse
	if err := c.fetch(ctx, requestURL, &response); err != nil {
		return nil, err
	}

	if response.MovieListResult == nil {
		return nil, c.fail(KindParse, requestURL, 0, fmt.Errorf("movieListResult: %w", ErrMissingResult))
	}

	c.logger.Debug().
		Int("count", len(response.MovieListResult.MovieList)).
		Int("total", response.MovieListResult.TotalCount).
		Msg("Retrieved movie list from KOBIS")

	return response.MovieListResult, nil
}

// SearchMovieInfo retrieves the detail record for a movie code. The code is
// interpolated into the query as given.
func (c *Client) SearchMovieInfo(ctx context.Context, movieCd string) (*MovieInfo, error) {
	requestURL := fmt.Sprintf("%s%s?key=%s&movieCd=%s", c.baseURL, infoEndpoint, c.apiKey, movieCd)

	var response MovieInfoResponse
	if err := c.fetch(ctx, requestURL, &response); err != nil {
		return nil, err
	}

	if response.MovieInfoResult == nil {
		return nil, c.fail(KindParse, requestURL, 0, fmt.Errorf("movieInfoResult: %w", ErrMissingResult))
	}
	if response.MovieInfoResult.MovieInfo == nil {
		return nil, c.fail(KindParse, requestURL, 0, fmt.Errorf("movieInfoResult.movieInfo: %w", ErrMissingResult))
	}

	return response.MovieInfoResult.MovieInfo, nil
}

// fetch performs a single GET and decodes the JSON body into v
func (c *Client) fetch(ctx context.Context, requestURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return c.fail(KindTransport, requestURL, 0, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().Str("url", c.redact(requestURL)).Msg("Making KOBIS API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(KindTransport, requestURL, 0, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(KindHTTPStatus, requestURL, resp.StatusCode, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(KindTransport, requestURL, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	var fault faultEnvelope
	if err := json.Unmarshal(body, &fault); err != nil {
		return c.fail(KindParse, requestURL, resp.StatusCode, fmt.Errorf("failed to parse response: %w", err))
	}
	if fault.FaultInfo != nil {
		return c.fail(KindFault, requestURL, resp.StatusCode, &FaultError{
			Code:    fault.FaultInfo.ErrorCode,
			Message: fault.FaultInfo.Message,
		})
	}

	if err := json.Unmarshal(body, v); err != nil {
		return c.fail(KindParse, requestURL, resp.StatusCode, fmt.Errorf("failed to parse response: %w", err))
	}

	return nil
}

// fail logs the original cause and returns it as a lookup Error
func (c *Client) fail(kind Kind, requestURL string, status int, cause error) error {
	e := &Error{
		Kind:   kind,
		URL:    c.redact(requestURL),
		Status: status,
		Err:    cause,
	}

	c.logger.Error().
		Err(cause).
		Str("kind", string(kind)).
		Str("url", e.URL).
		Int("status", status).
		Msg("KOBIS request failed")

	return e
}

// redact hides the API key in URLs written to logs or errors
func (c *Client) redact(requestURL string) string {
	if c.apiKey == "" {
		return requestURL
	}
	return strings.ReplaceAll(requestURL, "key="+c.apiKey, "key=REDACTED")
}
