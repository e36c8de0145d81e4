package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/Adda-Baaj/newsdesk/internal/bookmarks"
	"github.com/Adda-Baaj/newsdesk/internal/domain"
	"github.com/Adda-Baaj/newsdesk/internal/logger"
	"github.com/Adda-Baaj/newsdesk/pkg/providers"
	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeFetcher struct {
	mu       sync.Mutex
	requests []providers.Request
	articles []domain.Article
	err      error
}

func (f *fakeFetcher) Fetch(_ context.Context, req providers.Request) ([]domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return domain.CloneArticles(f.articles), nil
}

func (f *fakeFetcher) calls() []providers.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]providers.Request, len(f.requests))
	copy(out, f.requests)
	return out
}

type failingStore struct{}

func (failingStore) Load() ([]domain.Article, error) { return nil, nil }
func (failingStore) Save([]domain.Article) error     { return errors.New("disk full") }

func headlines(prefix string, n int) []domain.Article {
	out := make([]domain.Article, n)
	for i := range out {
		out[i] = domain.Article{
			Title: fmt.Sprintf("%s %d", prefix, i),
			URL:   fmt.Sprintf("https://example.jp/%s/%d", prefix, i),
		}
	}
	return out
}

func TestStartLoadsBookmarksAndDefaultCategory(t *testing.T) {
	store := bookmarks.NewMemoryStore()
	saved := headlines("saved", 2)
	assert.Equal(t, nil, store.Save(saved))

	f := &fakeFetcher{articles: headlines("top", 3)}
	c := New(f, store)

	assert.Equal(t, nil, c.Start(context.Background()))
	assert.Equal(t, saved, c.Bookmarks())

	calls := f.calls()
	assert.Equal(t, 1, len(calls))
	assert.Equal(t, providers.CategoryRequest(domain.DefaultCategoryKey), calls[0])

	st := c.Snapshot()
	assert.Equal(t, 3, len(st.Articles))
	assert.Equal(t, false, st.Loading)
	assert.Equal(t, domain.DefaultCategoryKey, st.Category)
}

func TestSelectCategoryIssuesCategoryRequest(t *testing.T) {
	for _, cat := range domain.Categories() {
		f := &fakeFetcher{articles: headlines(cat.Key, 1)}
		c := New(f, nil)

		assert.Equal(t, nil, c.SelectCategory(context.Background(), cat.Key))

		calls := f.calls()
		assert.Equal(t, 1, len(calls))
		assert.Equal(t, providers.ModeCategory, calls[0].Mode)
		assert.Equal(t, cat.Key, calls[0].Category)
		assert.Equal(t, cat.Key, c.Snapshot().Category)
	}
}

func TestSelectCategoryClearsQuery(t *testing.T) {
	f := &fakeFetcher{articles: headlines("x", 1)}
	c := New(f, nil)

	assert.Equal(t, true, c.Search(context.Background(), "economy"))
	assert.Equal(t, "economy", c.Snapshot().Query)

	assert.Equal(t, nil, c.SelectCategory(context.Background(), "sports"))
	assert.Equal(t, "", c.Snapshot().Query)
}

func TestSelectUnknownCategory(t *testing.T) {
	f := &fakeFetcher{}
	c := New(f, nil)

	err := c.SelectCategory(context.Background(), "weather")
	assert.Equal(t, true, errors.Is(err, domain.ErrUnknownCategory))
	assert.Equal(t, 0, len(f.calls()))
	assert.Equal(t, domain.DefaultCategoryKey, c.Snapshot().Category)
}

func TestBlankSearchIsNoop(t *testing.T) {
	f := &fakeFetcher{articles: headlines("top", 4)}
	c := New(f, nil)
	assert.Equal(t, nil, c.SelectCategory(context.Background(), "business"))
	before := c.Snapshot()

	assert.Equal(t, false, c.Search(context.Background(), ""))
	assert.Equal(t, false, c.Search(context.Background(), "   "))

	assert.Equal(t, 1, len(f.calls()))
	after := c.Snapshot()
	assert.Equal(t, before.Articles, after.Articles)
	assert.Equal(t, before.Generation, after.Generation)
}

func TestSearchIssuesSearchRequest(t *testing.T) {
	f := &fakeFetcher{articles: headlines("eco", 2)}
	c := New(f, nil)

	assert.Equal(t, true, c.Search(context.Background(), "economy"))

	calls := f.calls()
	assert.Equal(t, 1, len(calls))
	assert.Equal(t, providers.SearchRequest("economy"), calls[0])
	assert.Equal(t, 2, len(c.Snapshot().Articles))
}

func TestFetchFailureDegradesToEmpty(t *testing.T) {
	f := &fakeFetcher{articles: headlines("top", 5)}
	c := New(f, nil)
	assert.Equal(t, nil, c.SelectCategory(context.Background(), "business"))
	assert.Equal(t, 5, len(c.Snapshot().Articles))

	f.err = &providers.FetchError{Kind: providers.KindStatus, Provider: "gnews", StatusCode: http.StatusTooManyRequests}
	assert.Equal(t, nil, c.SelectCategory(context.Background(), "health"))

	st := c.Snapshot()
	assert.Equal(t, 0, len(st.Articles))
	assert.Equal(t, false, st.Loading)
	assert.Equal(t, true, providers.IsKind(st.LastErr, providers.KindStatus))

	f.err = nil
	c.Refresh(context.Background())
	st = c.Snapshot()
	assert.Equal(t, 5, len(st.Articles))
	assert.Equal(t, nil, st.LastErr)
}

func TestRefreshRepeatsActiveMode(t *testing.T) {
	f := &fakeFetcher{}
	c := New(f, nil)

	c.Refresh(context.Background())
	c.Search(context.Background(), "円安")
	c.Refresh(context.Background())

	calls := f.calls()
	assert.Equal(t, 3, len(calls))
	assert.Equal(t, providers.CategoryRequest(domain.DefaultCategoryKey), calls[0])
	assert.Equal(t, providers.SearchRequest("円安"), calls[2])
}

// gatedFetcher blocks each request until the test releases it.
type gatedFetcher struct {
	started chan providers.Request
	gates   map[string]chan struct{}
	results map[string][]domain.Article
}

func key(req providers.Request) string {
	if req.Mode == providers.ModeSearch {
		return "q:" + req.Query
	}
	return "c:" + req.Category
}

func (g *gatedFetcher) Fetch(ctx context.Context, req providers.Request) ([]domain.Article, error) {
	g.started <- req
	select {
	case <-g.gates[key(req)]:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.results[key(req)], nil
}

func TestSupersededFetchDoesNotOverwrite(t *testing.T) {
	g := &gatedFetcher{
		started: make(chan providers.Request, 2),
		gates: map[string]chan struct{}{
			"c:business": make(chan struct{}),
			"q:economy":  make(chan struct{}),
		},
		results: map[string][]domain.Article{
			"c:business": headlines("business", 3),
			"q:economy":  headlines("economy", 2),
		},
	}
	c := New(g, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.SelectCategory(ctx, "business")
	}()
	<-g.started

	searchDone := make(chan struct{})
	go func() {
		defer close(searchDone)
		c.Search(ctx, "economy")
	}()
	<-g.started
	assert.Equal(t, true, c.Snapshot().Loading)

	close(g.gates["q:economy"])
	<-searchDone

	st := c.Snapshot()
	assert.Equal(t, false, st.Loading)
	assert.Equal(t, g.results["q:economy"], st.Articles)

	close(g.gates["c:business"])
	wg.Wait()

	st = c.Snapshot()
	assert.Equal(t, g.results["q:economy"], st.Articles)
	assert.Equal(t, uint64(2), st.Generation)
}

func TestToggleBookmarkPersistsFullSet(t *testing.T) {
	store := bookmarks.NewMemoryStore()
	c := New(&fakeFetcher{}, store)
	assert.Equal(t, nil, c.Start(context.Background()))

	arts := headlines("b", 3)
	for _, a := range arts {
		now, err := c.ToggleBookmark(a)
		assert.Equal(t, nil, err)
		assert.Equal(t, true, now)
	}

	persisted, err := store.Load()
	assert.Equal(t, nil, err)
	assert.Equal(t, arts, persisted)
	assert.Equal(t, true, c.IsBookmarked(arts[1].URL))

	now, err := c.ToggleBookmark(arts[1])
	assert.Equal(t, nil, err)
	assert.Equal(t, false, now)

	persisted, _ = store.Load()
	assert.Equal(t, []domain.Article{arts[0], arts[2]}, persisted)
}

func TestToggleBookmarkTwiceIsIdentity(t *testing.T) {
	store := bookmarks.NewMemoryStore()
	assert.Equal(t, nil, store.Save(headlines("saved", 3)))
	c := New(&fakeFetcher{}, store)
	assert.Equal(t, nil, c.Start(context.Background()))
	before := c.Bookmarks()

	a := domain.Article{Title: "new", URL: "https://example.jp/new"}
	c.ToggleBookmark(a)
	c.ToggleBookmark(a)

	assert.Equal(t, before, c.Bookmarks())
	persisted, _ := store.Load()
	assert.Equal(t, before, persisted)
}

func TestToggleBookmarkSaveFailure(t *testing.T) {
	c := New(&fakeFetcher{}, failingStore{})
	a := domain.Article{Title: "t", URL: "https://example.jp/t"}

	now, err := c.ToggleBookmark(a)
	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, now)
	assert.Equal(t, true, c.IsBookmarked(a.URL))
}

func TestToggleTheme(t *testing.T) {
	c := New(&fakeFetcher{}, nil, WithDarkMode(true))
	assert.Equal(t, true, c.Snapshot().DarkMode)
	assert.Equal(t, false, c.ToggleTheme())
	assert.Equal(t, true, c.ToggleTheme())
}

func TestSelectArticle(t *testing.T) {
	c := New(&fakeFetcher{}, nil)
	a := domain.Article{Title: "detail", URL: "https://example.jp/d", Image: domain.StringPtr("i.png")}

	c.SelectArticle(&a)
	st := c.Snapshot()
	assert.Equal(t, a, *st.Selected)

	*st.Selected.Image = "changed.png"
	assert.Equal(t, "i.png", *c.Snapshot().Selected.Image)

	c.SelectArticle(nil)
	assert.Equal(t, true, c.Snapshot().Selected == nil)
}

func TestToggleBookmarkLogsSetSize(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := New(&fakeFetcher{}, nil, WithLogger(logger.FromZap(zap.New(core))))

	for _, a := range headlines("b", 2) {
		c.ToggleBookmark(a)
	}
	c.ToggleBookmark(domain.Article{Title: "same url, new title", URL: "https://example.jp/b/0"})

	entries := logs.FilterMessage("bookmark toggled").All()
	assert.Equal(t, 3, len(entries))
	last := entries[2].ContextMap()
	assert.Equal(t, false, last["saved"])
	assert.Equal(t, int64(1), last["count"])
	assert.Equal(t, []domain.Article{headlines("b", 2)[1]}, c.Bookmarks())
}
