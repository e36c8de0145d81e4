package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Adda-Baaj/newsdesk/internal/domain"
	"github.com/Adda-Baaj/newsdesk/internal/layout"
)

var errQuit = errors.New("quit")

// command is one parsed browse-loop line.
type command struct {
	name string
	arg  string
}

var commandAliases = map[string]string{
	"c":        "cat",
	"category": "cat",
	"s":        "search",
	"o":        "open",
	"b":        "bm",
	"bookmark": "bm",
	"ls":       "bookmarks",
	"t":        "theme",
	"r":        "refresh",
	"h":        "help",
	"?":        "help",
	"q":        "quit",
	"exit":     "quit",
}

var knownCommands = map[string]bool{
	"cat": true, "search": true, "open": true, "close": true, "bm": true,
	"bookmarks": true, "theme": true, "refresh": true, "help": true, "quit": true,
}

const browseHelp = `Commands:
  cat <key>       switch category (breaking-news, business, technology, sports, health)
  search <text>   search articles by keyword
  open <n>        show article n
  close           close the article view
  bm [n]          toggle the bookmark on article n, or on the open article
  bookmarks       list bookmarks
  theme           toggle dark mode
  refresh         fetch the current listing again
  quit            leave`

// parseCommand splits a line into a command and its argument. Blank lines
// parse to an empty command.
func parseCommand(line string) (command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return command{}, nil
	}
	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	if full, ok := commandAliases[name]; ok {
		name = full
	}
	if !knownCommands[name] {
		return command{}, fmt.Errorf("unknown command %q, type help", name)
	}
	return command{name: name, arg: strings.TrimSpace(arg)}, nil
}

// Browse runs the interactive loop, reading commands from in until quit or EOF.
func (a *App) Browse(ctx context.Context, in io.Reader) error {
	if err := a.session.Start(ctx); err != nil {
		return err
	}
	a.showListing()

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(a.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(a.out)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, err := parseCommand(sc.Text())
		if err != nil {
			a.status("%s", err)
			continue
		}
		if cmd.name == "" {
			continue
		}
		if err := a.exec(ctx, cmd); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			a.status("%s", err)
		}
	}
}

func (a *App) exec(ctx context.Context, cmd command) error {
	switch cmd.name {
	case "cat":
		if err := a.session.SelectCategory(ctx, cmd.arg); err != nil {
			return err
		}
		a.showListing()
	case "search":
		if !a.session.Search(ctx, cmd.arg) {
			return errors.New("enter a search term")
		}
		a.showListing()
	case "open":
		art, err := a.articleAt(cmd.arg)
		if err != nil {
			return err
		}
		if a.cfg.Detail.Enrich {
			art = a.scraper.EnrichOne(ctx, art)
		}
		a.session.SelectArticle(&art)
		a.renderer.Detail(a.session.Snapshot())
	case "close":
		a.session.SelectArticle(nil)
		a.showListing()
	case "bm":
		return a.toggleBookmark(cmd.arg)
	case "bookmarks":
		a.renderer.Bookmarks(a.session.Bookmarks(), a.session.Snapshot().DarkMode)
	case "theme":
		a.session.ToggleTheme()
		a.redraw()
	case "refresh":
		a.session.Refresh(ctx)
		a.showListing()
	case "help":
		fmt.Fprintln(a.out, browseHelp)
	case "quit":
		return errQuit
	}
	return nil
}

func (a *App) toggleBookmark(arg string) error {
	var art domain.Article
	if arg == "" {
		sel := a.session.Snapshot().Selected
		if sel == nil {
			return errors.New("bm needs an article number when no article is open")
		}
		art = *sel
	} else {
		var err error
		if art, err = a.articleAt(arg); err != nil {
			return err
		}
	}

	saved, err := a.session.ToggleBookmark(art)
	if err != nil {
		return err
	}
	if saved {
		a.status("Bookmarked: %s", art.Title)
	} else {
		a.status("Removed bookmark: %s", art.Title)
	}
	return nil
}

// articleAt resolves a 1-based position in the rendered listing.
func (a *App) articleAt(arg string) (domain.Article, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return domain.Article{}, fmt.Errorf("article number expected, got %q", arg)
	}
	l := layout.Partition(a.session.Snapshot().Articles)
	art, ok := l.Position(n)
	if !ok {
		return domain.Article{}, fmt.Errorf("no article %d (listing has %d)", n, l.Len())
	}
	return art, nil
}

func (a *App) redraw() {
	st := a.session.Snapshot()
	if st.Selected != nil {
		a.renderer.Detail(st)
		return
	}
	a.showListing()
}

func (a *App) showListing() {
	a.renderer.Headlines(a.session.Snapshot(), a.session.IsBookmarked)
}

func (a *App) status(format string, args ...any) {
	a.renderer.Status(a.session.Snapshot().DarkMode, format, args...)
}
