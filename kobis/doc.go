// Package kobis provides a client for the KOBIS (Korean Film Council) open API.
//
// The client issues one GET per call, checks the HTTP status, decodes the
// JSON envelope and returns the provider records. It does not retry, cache or
// paginate.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := kobis.NewClient(kobis.DefaultBaseURL, os.Getenv("MOVIE_KEY"), logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	list, err := client.SearchMovieList(ctx)
//	info, err := client.SearchMovieInfo(ctx, "20124079")
//
// # Error Handling
//
// Every failure is returned as *Error, whose Kind tells the cause apart:
//
//   - KindHTTPStatus: non-2xx response
//   - KindTransport: DNS, connection, timeout or body read failure
//   - KindParse: undecodable body or missing result object
//   - KindFault: the provider's faultInfo envelope (bad key and similar)
//
// All kinds match ErrNotFound and report StatusCode 404 with the message
// "Not found", which is what end users see. The cause is logged and kept
// in the error for operators:
//
//	if errors.Is(err, kobis.ErrNotFound) {
//		http.Error(w, "Not found", http.StatusNotFound)
//	}
package kobis
