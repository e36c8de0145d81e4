package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Adda-Baaj/newsdesk/internal/domain"
	"github.com/Adda-Baaj/newsdesk/internal/layout"
	"github.com/Adda-Baaj/newsdesk/internal/session"
	"github.com/go-playground/assert/v2"
)

var jst = time.FixedZone("JST", 9*60*60)

func fiveArticles() []domain.Article {
	out := make([]domain.Article, 5)
	for i := range out {
		out[i] = domain.Article{
			Title:       fmt.Sprintf("Headline number %d", i),
			URL:         fmt.Sprintf("https://example.jp/%d", i),
			PublishedAt: domain.StringPtr("2025-05-01T09:30:00Z"),
		}
	}
	out[3].Description = domain.StringPtr("short description")
	return out
}

func TestHeadlinesNumbersEveryArticle(t *testing.T) {
	var buf bytes.Buffer
	rd := NewPlain(&buf, jst)

	st := session.State{Category: "business", Articles: fiveArticles()}
	rd.Headlines(st, func(url string) bool { return url == "https://example.jp/2" })

	out := buf.String()
	for i := 1; i <= 5; i++ {
		assert.Equal(t, true, strings.Contains(out, fmt.Sprintf("[%d]", i)))
	}
	assert.Equal(t, true, strings.Contains(out, "Business"))
	assert.Equal(t, true, strings.Contains(out, "More articles"))
	assert.Equal(t, true, strings.Contains(out, "short description"))
	assert.Equal(t, true, strings.Contains(out, "2025/05/01 18:30"))
	assert.Equal(t, true, strings.Contains(out, layout.FallbackImage))
	assert.Equal(t, 1, strings.Count(out, markSaved))
}

func TestHeadlinesLoadingAndErrors(t *testing.T) {
	var buf bytes.Buffer
	rd := NewPlain(&buf, jst)

	rd.Headlines(session.State{Category: "health", Loading: true, Articles: fiveArticles()}, nil)
	assert.Equal(t, true, strings.Contains(buf.String(), "Loading..."))
	assert.Equal(t, false, strings.Contains(buf.String(), "[1]"))

	buf.Reset()
	rd.Headlines(session.State{Category: "health", LastErr: errors.New("boom"), Articles: []domain.Article{}}, nil)
	assert.Equal(t, true, strings.Contains(buf.String(), "Could not load articles"))
	assert.Equal(t, true, strings.Contains(buf.String(), "No articles."))
}

func TestHeadlinesSearchHeading(t *testing.T) {
	var buf bytes.Buffer
	rd := NewPlain(&buf, jst)

	rd.Headlines(session.State{Category: "business", Query: "economy", Articles: fiveArticles()[:1]}, nil)
	assert.Equal(t, true, strings.Contains(buf.String(), "Search: economy"))
}

func TestDetailUsesFallbacks(t *testing.T) {
	var buf bytes.Buffer
	rd := NewPlain(&buf, jst)

	rd.Detail(session.State{})
	assert.Equal(t, "", buf.String())

	a := domain.Article{Title: "Detail", URL: "https://example.jp/d"}
	rd.Detail(session.State{Selected: &a, DarkMode: true})

	out := buf.String()
	assert.Equal(t, true, strings.Contains(out, layout.NoDescription))
	assert.Equal(t, true, strings.Contains(out, layout.NoDate))
	assert.Equal(t, true, strings.Contains(out, "https://example.jp/d"))
}

func TestBookmarksList(t *testing.T) {
	var buf bytes.Buffer
	rd := NewPlain(&buf, jst)

	rd.Bookmarks(nil, false)
	assert.Equal(t, true, strings.Contains(buf.String(), "No bookmarks yet."))

	buf.Reset()
	rd.Bookmarks(fiveArticles()[:2], false)
	assert.Equal(t, 2, strings.Count(buf.String(), markSaved))
}

func TestBookmarksShowFullTitles(t *testing.T) {
	var buf bytes.Buffer
	rd := NewPlain(&buf, jst)

	long := strings.Repeat("長い見出し", 12)
	rd.Bookmarks([]domain.Article{{Title: long, URL: "https://example.jp/long"}}, true)

	assert.Equal(t, true, strings.Contains(buf.String(), long))
	assert.Equal(t, false, strings.Contains(buf.String(), "..."))
}
