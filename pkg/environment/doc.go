// Package environment names the deployment environment (development,
// staging, production) and carries it through context.Context.
//
// Parse turns the APP_ENV value into an Environment. The production value
// switches the session cookie to Secure and the logger to JSON output.
// Middleware stores the environment in each request context, and
// LoggerExtractor adds it to slog records as the "env" attribute.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	if env.IsProduction() {
//	    // Secure cookies
//	}
package environment
