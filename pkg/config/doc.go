// Package config fills configuration structs from environment variables
// using github.com/caarlos0/env/v11 struct tags, after loading optional
// dotenv files with github.com/joho/godotenv.
//
//	cfg, err := config.Load[app.Config](config.WithEnvFiles(".env.local"))
//	if err != nil {
//	    return err
//	}
//
// Parse errors are joined with ErrParsingConfig, so callers can test them
// with errors.Is. WithEnviron replaces the process environment, which keeps
// tests free of global state.
package config
