package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/meetup/app"
	"github.com/dmitrymomot/meetup/handler"
	"github.com/dmitrymomot/meetup/modules/authentication"
	usermodule "github.com/dmitrymomot/meetup/modules/user"
	"github.com/dmitrymomot/meetup/pkg/clientip"
	"github.com/dmitrymomot/meetup/pkg/config"
	"github.com/dmitrymomot/meetup/pkg/cookie"
	"github.com/dmitrymomot/meetup/pkg/environment"
	"github.com/dmitrymomot/meetup/pkg/httpserver"
	"github.com/dmitrymomot/meetup/pkg/logger"
	"github.com/dmitrymomot/meetup/pkg/mongo"
	"github.com/dmitrymomot/meetup/pkg/redis"
	"github.com/dmitrymomot/meetup/pkg/requestid"
	"github.com/dmitrymomot/meetup/pkg/session"
	"github.com/dmitrymomot/meetup/svc/user"
)

// backends holds the session store and user repository chosen by
// SESSION_STORE. Users live in MongoDB unless the whole process runs in
// memory.
type backends struct {
	store   session.Store
	users   user.Repository
	closers []func(context.Context) error
	indexes []func(context.Context) error
	checks  map[string]func(context.Context) error
}

func newLogger(cfg app.Config) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(cfg.Environment(), cfg.Service),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
}

func openBackends(ctx context.Context, cmd *cli.Command, cfg app.Config, log *slog.Logger) (*backends, error) {
	b := &backends{checks: make(map[string]func(context.Context) error)}

	if cfg.SessionStore == app.StoreMemory {
		mem := session.NewMemoryStore(time.Minute)
		b.store = mem
		b.users = user.NewMemoryRepository()
		b.closers = append(b.closers, func(context.Context) error { return mem.Close() })
		log.WarnContext(ctx, "sessions and users are kept in memory", logger.Component("main"))
		return b, nil
	}

	mcfg, err := config.Load[mongo.Config](config.WithEnvFiles(cmd.StringSlice("env-file")...))
	if err != nil {
		return nil, err
	}
	db, err := mongo.Connect(ctx, mcfg)
	if err != nil {
		return nil, err
	}
	b.closers = append(b.closers, db.Client().Disconnect)
	b.checks["mongo"] = mongo.Healthcheck(db.Client())

	repo := user.NewMongoRepository(db)
	b.users = repo
	b.indexes = append(b.indexes, repo.EnsureIndexes)

	switch cfg.SessionStore {
	case app.StoreMongo:
		store := session.NewMongoStore(db)
		b.store = store
		b.indexes = append(b.indexes, store.EnsureIndexes)
	case app.StoreRedis:
		rcfg, err := config.Load[redis.Config](config.WithEnvFiles(cmd.StringSlice("env-file")...))
		if err != nil {
			b.Close(ctx)
			return nil, err
		}
		client, err := redis.Connect(ctx, rcfg)
		if err != nil {
			b.Close(ctx)
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error { return client.Close() })
		b.checks["redis"] = redis.Healthcheck(client)
		b.store = session.NewRedisStore(client)
	default:
		b.Close(ctx)
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}

	log.InfoContext(ctx, "backends connected",
		logger.Component("main"),
		slog.String("session_store", cfg.SessionStore),
		slog.String("database", mcfg.Database),
	)
	return b, nil
}

// check runs every backend health check and joins the failures.
func (b *backends) check(ctx context.Context, log *slog.Logger) error {
	var errs []error
	for name, check := range b.checks {
		if err := check(ctx); err != nil {
			log.ErrorContext(ctx, "backend unhealthy", logger.Component("main"), slog.String("backend", name), logger.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// serve checks the backends, ensures the indexes exist and runs the HTTP
// server until ctx is done.
func (b *backends) serve(ctx context.Context, cfg app.Config, log *slog.Logger) error {
	if err := b.check(ctx, log); err != nil {
		return err
	}
	if err := b.migrate(ctx, log); err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return err
	}

	sessions := session.NewFromConfig(cfg.SessionConfig(), b.store, cookies, session.WithLogger(log))
	users := user.NewService(b.users)
	errorHandler := handler.NewErrorHandler(log)

	h := app.New(cfg, sessions, users, app.Routes{
		Authentication: authentication.NewRouter(users, errorHandler),
		User:           usermodule.NewRouter(users, errorHandler),
	}, app.WithLogger(log), app.WithErrorHandler(errorHandler))

	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, h)
}

func (b *backends) migrate(ctx context.Context, log *slog.Logger) error {
	for _, ensure := range b.indexes {
		if err := ensure(ctx); err != nil {
			return err
		}
	}
	log.InfoContext(ctx, "indexes ensured", logger.Component("main"), slog.Int("count", len(b.indexes)))
	return nil
}

// Close releases connections in reverse order of opening.
func (b *backends) Close(ctx context.Context) error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i](ctx))
	}
	return errors.Join(errs...)
}
