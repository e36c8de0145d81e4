package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Adda-Baaj/newsdesk/internal/bookmarks"
	"github.com/Adda-Baaj/newsdesk/internal/config"
	"github.com/Adda-Baaj/newsdesk/internal/crawler"
	"github.com/Adda-Baaj/newsdesk/internal/domain"
	"github.com/Adda-Baaj/newsdesk/internal/logger"
	"github.com/Adda-Baaj/newsdesk/internal/render"
	"github.com/Adda-Baaj/newsdesk/internal/session"
	"github.com/Adda-Baaj/newsdesk/pkg/httpclient"
	"github.com/Adda-Baaj/newsdesk/pkg/providers"
	"github.com/Adda-Baaj/newsdesk/pkg/publishers"
)

// Options wires an App. Zero values fall back to the configured defaults.
type Options struct {
	Config    *config.Config
	Log       logger.Logger
	Out       io.Writer
	Client    httpclient.Client
	Store     bookmarks.Store
	Ephemeral bool
}

// App holds the long-lived components shared by every command.
type App struct {
	cfg      *config.Config
	log      logger.Logger
	out      io.Writer
	client   httpclient.Client
	source   *providers.Source
	store    bookmarks.Store
	session  *session.Controller
	renderer *render.Renderer
	scraper  *crawler.Scraper
	closers  []io.Closer
}

// New resolves the provider fetcher, opens the bookmark store and builds the
// session controller.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	cfg := opts.Config

	log := opts.Log
	if log == nil {
		log = logger.NopLogger{}
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	client := opts.Client
	if client == nil {
		client = httpclient.NewRestyClientWithAgent(cfg.HTTP.Timeout, userAgent(cfg))
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	provider := cfg.Provider()
	fetcher, err := providers.DefaultFetcherRegistry(client).FetcherFor(provider)
	if err != nil {
		return nil, fmt.Errorf("resolve fetcher: %w", err)
	}

	a := &App{
		cfg:      cfg,
		log:      log,
		out:      out,
		client:   client,
		source:   providers.Bind(fetcher, provider),
		renderer: render.New(out, loc),
		scraper:  crawler.NewScraper(client, log, cfg.Detail.RequestDelay),
	}

	switch {
	case opts.Store != nil:
		a.store = opts.Store
	case opts.Ephemeral:
		a.store = bookmarks.NewMemoryStore()
	default:
		bolt, err := bookmarks.OpenBoltStore(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		a.store = bolt
		a.closers = append(a.closers, bolt)
	}

	a.session = session.New(a.source, a.store,
		session.WithLogger(log),
		session.WithDarkMode(a.darkMode()),
	)

	log.DebugObj("app ready", "app_init", map[string]any{
		"provider":  provider.ID,
		"base_url":  provider.BaseURL,
		"storage":   cfg.Storage.Path,
		"ephemeral": opts.Ephemeral,
		"theme":     cfg.UI.Theme,
	})
	return a, nil
}

func userAgent(cfg *config.Config) string {
	if cfg.HTTP.UserAgent != "" {
		return cfg.HTTP.UserAgent
	}
	return httpclient.DefaultUserAgent
}

func (a *App) darkMode() bool {
	switch a.cfg.UI.Theme {
	case config.ThemeDark:
		return true
	case config.ThemeLight:
		return false
	default:
		return render.DetectDark(a.out)
	}
}

// Session exposes the controller driving this app.
func (a *App) Session() *session.Controller { return a.session }

// Close releases the bookmark store.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// Headlines renders one category listing and returns.
func (a *App) Headlines(ctx context.Context, category string) error {
	if err := a.session.LoadBookmarks(); err != nil {
		return err
	}
	if err := a.session.SelectCategory(ctx, category); err != nil {
		return err
	}
	a.renderer.Headlines(a.session.Snapshot(), a.session.IsBookmarked)
	return nil
}

// Search renders one keyword listing and returns.
func (a *App) Search(ctx context.Context, query string) error {
	if err := a.session.LoadBookmarks(); err != nil {
		return err
	}
	if !a.session.Search(ctx, query) {
		return fmt.Errorf("search text is empty")
	}
	a.renderer.Headlines(a.session.Snapshot(), a.session.IsBookmarked)
	return nil
}

// ListBookmarks renders the stored bookmarks.
func (a *App) ListBookmarks() error {
	if err := a.session.LoadBookmarks(); err != nil {
		return err
	}
	a.renderer.Bookmarks(a.session.Bookmarks(), a.session.Snapshot().DarkMode)
	return nil
}

// RemoveBookmark drops the bookmark with the URL and persists the set.
func (a *App) RemoveBookmark(url string) error {
	items, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}
	set := bookmarks.NewSet(items)
	if !set.Remove(url) {
		return fmt.Errorf("no bookmark with url %q", url)
	}
	if err := a.store.Save(set.Articles()); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	a.renderer.Status(a.session.Snapshot().DarkMode, "Removed %s", url)
	return nil
}

// EnrichBookmarks fills missing descriptions and images of stored bookmarks
// from their pages and persists the result. It returns how many changed.
func (a *App) EnrichBookmarks(ctx context.Context) (int, error) {
	items, err := a.store.Load()
	if err != nil {
		return 0, fmt.Errorf("load bookmarks: %w", err)
	}
	enriched := a.scraper.Enrich(ctx, items)

	changed := 0
	for i := range items {
		if !sameMeta(items[i], enriched[i]) {
			changed++
		}
	}
	if changed > 0 {
		set := bookmarks.NewSet(items)
		set.Replace(enriched)
		if err := a.store.Save(set.Articles()); err != nil {
			return 0, fmt.Errorf("save bookmarks: %w", err)
		}
	}

	a.log.InfoObj("bookmarks enriched", "bookmarks_enrich", map[string]any{
		"total":   len(items),
		"changed": changed,
	})
	a.renderer.Status(a.session.Snapshot().DarkMode, "Enriched %d of %d bookmarks", changed, len(items))
	return changed, nil
}

func sameMeta(a, b domain.Article) bool {
	return a.Title == b.Title &&
		domain.Deref(a.Description) == domain.Deref(b.Description) &&
		domain.Deref(a.Image) == domain.Deref(b.Image)
}

// Publish fetches one listing and delivers every article as an event to the
// enabled publishers of the configured publishers file.
func (a *App) Publish(ctx context.Context, category, query string) (publishers.Report, error) {
	path := a.cfg.Publishers.File
	if path == "" {
		return publishers.Report{}, fmt.Errorf("publishers.file is not configured")
	}
	cfgs, err := publishers.LoadRegistry(path)
	if err != nil {
		return publishers.Report{}, err
	}
	pubs, err := publishers.BuildEnabled(ctx, publishers.DefaultRegistry(), cfgs, a.log)
	if err != nil {
		return publishers.Report{}, err
	}
	if len(pubs) == 0 {
		return publishers.Report{}, fmt.Errorf("no enabled publishers in %s", path)
	}

	req := providers.SearchRequest(query)
	if query == "" {
		cat, err := domain.LookupCategory(category)
		if err != nil {
			return publishers.Report{}, err
		}
		req = providers.CategoryRequest(cat.Key)
	}

	articles, err := a.source.Fetch(ctx, req)
	if err != nil {
		return publishers.Report{}, err
	}

	now := time.Now()
	events := make([]publishers.Event, 0, len(articles))
	for _, art := range articles {
		events = append(events, publishers.NewHeadlineEvent(a.source.ProviderID(), req.Category, req.Query, art, now))
	}

	rep, err := publishers.Dispatch(ctx, pubs, events, a.log)
	a.renderer.Status(a.session.Snapshot().DarkMode, "Published %d events (%d failed deliveries)", rep.Delivered, rep.Failed)
	return rep, err
}
