package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/meetup/app"
	"github.com/dmitrymomot/meetup/pkg/config"
	"github.com/dmitrymomot/meetup/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:  "meetup",
		Usage: "HTTP entry point of the meetup application",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "env-file",
				Usage:   "extra .env files loaded before parsing the environment",
				Sources: cli.EnvVars("ENV_FILES"),
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server (default)",
				Action: serve,
			},
			{
				Name:   "check",
				Usage:  "Ping the configured backends and exit non-zero if one is down",
				Action: check,
			},
			{
				Name:   "migrate",
				Usage:  "Create the session TTL index and the user email index",
				Action: migrate,
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cli.Command) (app.Config, error) {
	return config.Load[app.Config](config.WithEnvFiles(cmd.StringSlice("env-file")...))
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	logger.SetAsDefault(log)

	b, err := openBackends(ctx, cmd, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close(context.WithoutCancel(ctx))

	return b.serve(ctx, cfg, log)
}

func migrate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	b, err := openBackends(ctx, cmd, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close(context.WithoutCancel(ctx))

	return b.migrate(ctx, log)
}

func check(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	b, err := openBackends(ctx, cmd, cfg, log)
	if err != nil {
		return err
	}
	defer b.Close(context.WithoutCancel(ctx))

	return b.check(ctx, log)
}
