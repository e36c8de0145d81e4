package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/Adda-Baaj/newsdesk/internal/app"
	"github.com/Adda-Baaj/newsdesk/internal/config"
	"github.com/Adda-Baaj/newsdesk/internal/logger"
)

// runtime is filled by the root Before hook and shared by every subcommand.
type runtime struct {
	cfg       *config.Config
	log       logger.Logger
	ephemeral bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand(&runtime{}).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "newsdesk: %s\n", err)
		os.Exit(1)
	}
}

func rootCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "newsdesk",
		Usage: "browse Japanese headlines from GNews in the terminal",
		Description: `Without a subcommand newsdesk starts the interactive browser. Type help at
the prompt for the list of commands.

The API key is read from NEWSDESK_GNEWS_API_KEY, GNEWS_API_KEY or
NEXT_PUBLIC_GNEWS_API_KEY, or from gnews.api_key in newsdesk.yaml.`,
		Suggest: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "config",
				Aliases:   []string{"c"},
				Usage:     "config file `path` (default: ./newsdesk.yaml, then the user config dir)",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      "env-file",
				Usage:     "dotenv `path` loaded before the environment (default: ./.env)",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override log.level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "theme",
				Usage: "override ui.theme (auto, light, dark)",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "keep bookmarks in memory only",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := config.Load(config.Options{
				ConfigFile: cmd.String("config"),
				EnvFile:    cmd.String("env-file"),
			})
			if err != nil {
				return ctx, err
			}
			if err := applyOverrides(cfg, cmd.String("log-level"), cmd.String("theme")); err != nil {
				return ctx, err
			}

			log, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
			if err != nil {
				return ctx, err
			}

			rt.cfg = cfg
			rt.log = log
			rt.ephemeral = cmd.Bool("ephemeral")
			return ctx, nil
		},
		After: func(_ context.Context, _ *cli.Command) error {
			if rt.log != nil {
				_ = rt.log.Sync()
			}
			return nil
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			return rt.withApp(func(a *app.App) error {
				return a.Browse(ctx, os.Stdin)
			})
		},
		Commands: []*cli.Command{
			browseCmd(rt),
			headlinesCmd(rt),
			searchCmd(rt),
			bookmarksCmd(rt),
			publishCmd(rt),
		},
	}
}

// applyOverrides layers command-line flags over the loaded config.
func applyOverrides(cfg *config.Config, logLevel, theme string) error {
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if theme != "" {
		cfg.UI.Theme = theme
	}
	return cfg.Validate()
}

func (rt *runtime) withApp(fn func(a *app.App) error) error {
	a, err := app.New(app.Options{
		Config:    rt.cfg,
		Log:       rt.log,
		Out:       os.Stdout,
		Ephemeral: rt.ephemeral,
	})
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
