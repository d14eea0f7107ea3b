// Package logger builds *slog.Logger values with functional options and
// injects request scoped attributes taken from context.Context.
//
// New picks a text or JSON handler and wraps it in LogHandlerDecorator,
// which runs every registered ContextExtractor on each record. The request
// id and environment extractors live next to the values they read, in
// pkg/requestid and pkg/environment.
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "meetup"),
//	    logger.WithContextExtractors(
//	        requestid.LoggerExtractor(),
//	        environment.LoggerExtractor(),
//	    ),
//	)
//
// Attribute helpers (Error, UserID, RequestID, Component, ...) keep key
// names consistent. Error returns an empty attribute for a nil error, so it
// can be passed without a nil check.
//
// Middleware writes one access record per request with method, path,
// status, size and duration.
package logger
