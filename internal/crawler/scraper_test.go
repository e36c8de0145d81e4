package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Adda-Baaj/newsdesk/internal/domain"
	"github.com/Adda-Baaj/newsdesk/pkg/httpclient"
	"github.com/go-playground/assert/v2"
)

const articlePage = `<!doctype html>
<html><head>
<title>Fallback title</title>
<meta property="og:title" content="OG title">
<meta property="og:description" content=" 記事の概要 ">
<meta property="og:image" content="/images/lead.jpg">
</head><body>body</body></html>`

func newPageServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		default:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(articlePage))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEnrichFillsMissingFields(t *testing.T) {
	srv := newPageServer(t, nil)
	s := NewScraper(httpclient.NewRestyClient(2*time.Second), nil, 0)

	in := domain.Article{Title: "API title", URL: srv.URL + "/news/1"}
	out := s.EnrichOne(context.Background(), in)

	assert.Equal(t, "API title", out.Title)
	assert.Equal(t, "記事の概要", *out.Description)
	assert.Equal(t, srv.URL+"/images/lead.jpg", *out.Image)
	assert.Equal(t, true, in.Description == nil)
}

func TestEnrichKeepsExistingFields(t *testing.T) {
	srv := newPageServer(t, nil)
	s := NewScraper(httpclient.NewRestyClient(2*time.Second), nil, 0)

	in := domain.Article{
		Title:       "API title",
		URL:         srv.URL + "/news/2",
		Description: domain.StringPtr("from api"),
	}
	out := s.EnrichOne(context.Background(), in)

	assert.Equal(t, "from api", *out.Description)
	assert.Equal(t, srv.URL+"/images/lead.jpg", *out.Image)
}

func TestEnrichSkipsCompleteArticlesAndFailures(t *testing.T) {
	var hits int32
	srv := newPageServer(t, &hits)
	s := NewScraper(httpclient.NewRestyClient(2*time.Second), nil, time.Millisecond)

	complete := domain.Article{
		Title:       "done",
		URL:         srv.URL + "/news/3",
		Description: domain.StringPtr("d"),
		Image:       domain.StringPtr("i"),
	}
	broken := domain.Article{Title: "gone", URL: srv.URL + "/missing"}

	out := s.Enrich(context.Background(), []domain.Article{complete, broken})

	assert.Equal(t, 2, len(out))
	assert.Equal(t, complete, out[0])
	assert.Equal(t, broken, out[1])
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestParseMetaFallbacks(t *testing.T) {
	meta, err := parseMeta([]byte(`<html><head><title> Plain </title><meta name="description" content="desc"></head></html>`))
	assert.Equal(t, nil, err)
	assert.Equal(t, "Plain", meta.Title)
	assert.Equal(t, "desc", meta.Description)
	assert.Equal(t, "", meta.ImageURL)
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://example.jp/a/img.png", resolveURL("img.png", "https://example.jp/a/b"))
	assert.Equal(t, "https://cdn.example/x.png", resolveURL("https://cdn.example/x.png", "https://example.jp/"))
	assert.Equal(t, "", resolveURL("", "https://example.jp/"))
}
