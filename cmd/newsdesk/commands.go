package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Adda-Baaj/newsdesk/internal/app"
	"github.com/Adda-Baaj/newsdesk/internal/domain"
)

func browseCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"b"},
		Usage:   "start the interactive browser",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return rt.withApp(func(a *app.App) error {
				return a.Browse(ctx, os.Stdin)
			})
		},
	}
}

func headlinesCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:    "headlines",
		Aliases: []string{"top"},
		Usage:   "print the headlines of one category",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"c"},
				Value:   domain.DefaultCategoryKey,
				Usage:   "one of " + categoryKeys(),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return rt.withApp(func(a *app.App) error {
				return a.Headlines(ctx, cmd.String("category"))
			})
		},
	}
}

func searchCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"s"},
		Usage:     "print the articles matching a keyword",
		ArgsUsage: "<text>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query := strings.Join(cmd.Args().Slice(), " ")
			return rt.withApp(func(a *app.App) error {
				return a.Search(ctx, query)
			})
		},
	}
}

func bookmarksCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:    "bookmarks",
		Aliases: []string{"bm"},
		Usage:   "manage saved articles",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "print the saved articles",
				Action: func(_ context.Context, _ *cli.Command) error {
					return rt.withApp(func(a *app.App) error {
						return a.ListBookmarks()
					})
				},
			},
			{
				Name:  "enrich",
				Usage: "fill missing descriptions and images from the article pages",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return rt.withApp(func(a *app.App) error {
						_, err := a.EnrichBookmarks(ctx)
						return err
					})
				},
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "delete a saved article",
				ArgsUsage: "<url>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					url := strings.TrimSpace(cmd.Args().First())
					if url == "" {
						return errors.New("bookmarks remove needs the article url")
					}
					return rt.withApp(func(a *app.App) error {
						return a.RemoveBookmark(url)
					})
				},
			},
		},
		Action: func(_ context.Context, _ *cli.Command) error {
			return rt.withApp(func(a *app.App) error {
				return a.ListBookmarks()
			})
		},
	}
}

func publishCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "fetch one listing and send every article to the configured publishers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "category",
				Aliases: []string{"c"},
				Value:   domain.DefaultCategoryKey,
				Usage:   "one of " + categoryKeys(),
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "publish search results instead of a category",
			},
			&cli.StringFlag{
				Name:      "publishers",
				Usage:     "publishers file `path`, overrides publishers.file",
				TakesFile: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if path := cmd.String("publishers"); path != "" {
				rt.cfg.Publishers.File = path
			}
			return rt.withApp(func(a *app.App) error {
				_, err := a.Publish(ctx, cmd.String("category"), strings.TrimSpace(cmd.String("query")))
				return err
			})
		},
	}
}

func categoryKeys() string {
	cats := domain.Categories()
	keys := make([]string, 0, len(cats))
	for _, c := range cats {
		keys = append(keys, c.Key)
	}
	return strings.Join(keys, ", ")
}
