package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"perftrack/internal/app/server"
	"perftrack/internal/platform/config"
	"perftrack/internal/platform/logging"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", "err", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	var cfg config.Config
	var logger *slog.Logger

	serve := func(ctx context.Context, _ *cli.Command) error {
		app, err := server.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()
		return app.Run(ctx)
	}

	return &cli.Command{
		Name:  "perftrack",
		Usage: "Team performance tracker: goals, peer feedback and insights",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "HTTP listen address (overrides APP_ADDR)",
			},
			&cli.StringFlag{
				Name:  "database-url",
				Usage: "database connection string (overrides DATABASE_URL)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg = config.Load()
			if cmd.IsSet("addr") {
				cfg.Addr = cmd.String("addr")
			}
			if cmd.IsSet("database-url") {
				cfg.DatabaseURL = cmd.String("database-url")
			}
			logger = logging.New(os.Stderr, cfg)
			slog.SetDefault(logger)
			return ctx, nil
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server",
				Action: serve,
			},
			{
				Name:  "insights",
				Usage: "print the current insights snapshot as JSON",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					app, err := server.New(ctx, cfg, logger)
					if err != nil {
						return err
					}
					defer app.Close()

					enc := json.NewEncoder(cmd.Root().Writer)
					enc.SetIndent("", "  ")
					if err := enc.Encode(app.Service.Insights(ctx)); err != nil {
						return fmt.Errorf("write insights: %w", err)
					}
					return nil
				},
			},
		},
	}
}
