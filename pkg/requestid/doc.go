// Package requestid tags every request with an id carried in the
// X-Request-ID header, the request context and log records.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
