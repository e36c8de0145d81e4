package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Adda-Baaj/newsdesk/internal/bookmarks"
	"github.com/Adda-Baaj/newsdesk/internal/domain"
	"github.com/Adda-Baaj/newsdesk/internal/logger"
	"github.com/Adda-Baaj/newsdesk/pkg/providers"
)

// Fetcher is the article source the controller drives.
type Fetcher interface {
	Fetch(ctx context.Context, req providers.Request) ([]domain.Article, error)
}

// State is a point-in-time copy of the session for rendering.
type State struct {
	Category   string
	Query      string
	Articles   []domain.Article
	Loading    bool
	DarkMode   bool
	Selected   *domain.Article
	LastErr    error
	Generation uint64
}

// Controller mediates user actions, the fetcher and the bookmark store.
type Controller struct {
	fetcher Fetcher
	store   bookmarks.Store
	log     logger.Logger

	mu    sync.Mutex
	state State
	marks *bookmarks.Set
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDarkMode sets the initial theme.
func WithDarkMode(dark bool) Option {
	return func(c *Controller) { c.state.DarkMode = dark }
}

// New builds a controller. A nil store keeps bookmarks in memory only.
func New(fetcher Fetcher, store bookmarks.Store, opts ...Option) *Controller {
	if store == nil {
		store = bookmarks.NewMemoryStore()
	}
	c := &Controller{
		fetcher: fetcher,
		store:   store,
		log:     logger.NopLogger{},
		state: State{
			Category: domain.DefaultCategoryKey,
			Articles: []domain.Article{},
		},
		marks: bookmarks.NewSet(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start loads the bookmark set and fetches the default category.
func (c *Controller) Start(ctx context.Context) error {
	if err := c.LoadBookmarks(); err != nil {
		return err
	}

	c.mu.Lock()
	category := c.state.Category
	c.mu.Unlock()

	c.run(ctx, providers.CategoryRequest(category))
	return nil
}

// LoadBookmarks replaces the in-memory bookmark set with the stored one.
func (c *Controller) LoadBookmarks() error {
	items, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}

	c.mu.Lock()
	c.marks = bookmarks.NewSet(items)
	c.mu.Unlock()

	c.log.DebugObj("bookmarks loaded", "bookmarks_load", map[string]any{"count": len(items)})
	return nil
}

// SelectCategory switches to a category, clears the search query and fetches
// its headlines.
func (c *Controller) SelectCategory(ctx context.Context, key string) error {
	cat, err := domain.LookupCategory(key)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.state.Category = cat.Key
	c.state.Query = ""
	c.mu.Unlock()

	c.run(ctx, providers.CategoryRequest(cat.Key))
	return nil
}

// Search fetches keyword results. Blank text is ignored.
func (c *Controller) Search(ctx context.Context, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	c.mu.Lock()
	c.state.Query = text
	c.mu.Unlock()

	c.run(ctx, providers.SearchRequest(text))
	return true
}

// Refresh repeats the active search, or the active category when no search is set.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	query, category := c.state.Query, c.state.Category
	c.mu.Unlock()

	if query != "" {
		c.run(ctx, providers.SearchRequest(query))
		return
	}
	c.run(ctx, providers.CategoryRequest(category))
}

// run issues one fetch. Only the most recently started fetch may publish its
// result; older completions are dropped.
func (c *Controller) run(ctx context.Context, req providers.Request) {
	c.mu.Lock()
	c.state.Generation++
	gen := c.state.Generation
	c.state.Loading = true
	c.mu.Unlock()

	articles, err := c.fetcher.Fetch(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.state.Generation {
		c.log.DebugObj("discarding superseded fetch", "fetch_superseded", map[string]any{
			"generation": gen,
			"latest":     c.state.Generation,
			"mode":       string(req.Mode),
		})
		return
	}

	c.state.Loading = false
	c.state.LastErr = err
	if err != nil {
		c.log.WarnObj("article fetch failed", "fetch_error", fetchErrorFields(req, err))
		c.state.Articles = []domain.Article{}
		return
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	c.state.Articles = articles

	c.log.DebugObj("articles fetched", "fetch_done", map[string]any{
		"mode":     string(req.Mode),
		"category": req.Category,
		"count":    len(articles),
	})
}

// ToggleTheme flips dark mode and returns the new value.
func (c *Controller) ToggleTheme() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.DarkMode = !c.state.DarkMode
	return c.state.DarkMode
}

// ToggleBookmark adds or removes the article by URL and persists the full set.
// The returned bool is the bookmark state after the toggle, which holds in
// memory even if persisting fails.
func (c *Controller) ToggleBookmark(a domain.Article) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.marks.Toggle(a)
	if err := c.store.Save(c.marks.Articles()); err != nil {
		c.log.ErrorObj("bookmark persist failed", "bookmarks_save_error", map[string]any{
			"url":   a.URL,
			"error": err.Error(),
		})
		return now, fmt.Errorf("save bookmarks: %w", err)
	}
	c.log.DebugObj("bookmark toggled", "bookmarks_toggle", map[string]any{
		"url":   a.URL,
		"saved": now,
		"count": c.marks.Len(),
	})
	return now, nil
}

// IsBookmarked reports whether an article with the URL is bookmarked.
func (c *Controller) IsBookmarked(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.marks.Contains(url)
}

// Bookmarks returns the bookmark set in insertion order.
func (c *Controller) Bookmarks() []domain.Article {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.marks.Articles()
}

// SelectArticle sets the article shown in the detail view; nil clears it.
func (c *Controller) SelectArticle(a *domain.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a == nil {
		c.state.Selected = nil
		return
	}
	sel := a.Clone()
	c.state.Selected = &sel
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.state
	out.Articles = domain.CloneArticles(c.state.Articles)
	if c.state.Selected != nil {
		sel := c.state.Selected.Clone()
		out.Selected = &sel
	}
	return out
}

func fetchErrorFields(req providers.Request, err error) map[string]any {
	fields := map[string]any{
		"mode":  string(req.Mode),
		"error": err.Error(),
	}
	if req.Mode == providers.ModeCategory {
		fields["category"] = req.Category
	}

	var fe *providers.FetchError
	if errors.As(err, &fe) {
		fields["error_kind"] = fe.Kind.String()
		if fe.Kind == providers.KindStatus {
			fields["status"] = fe.StatusCode
			fields["status_text"] = fe.Status
		}
	}
	return fields
}
