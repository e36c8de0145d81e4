package crawler

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Adda-Baaj/newsdesk/internal/domain"
	"github.com/Adda-Baaj/newsdesk/internal/logger"
	"github.com/Adda-Baaj/newsdesk/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxHTMLBodyBytes  = 1 << 20 // 1 MiB
	maxArticleWorkers = 10
)

var pageHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml",
	"Accept-Language": "ja,en;q=0.8",
}

// Scraper fills in missing article metadata by scraping the article pages.
type Scraper struct {
	client httpclient.Client
	log    logger.Logger
	delay  time.Duration
}

// NewScraper creates a new Scraper with the given HTTP client and logger.
// A positive delay spaces out page requests across all workers.
func NewScraper(client httpclient.Client, log logger.Logger, delay time.Duration) *Scraper {
	if client == nil {
		client = httpclient.NewRestyClient(15 * time.Second)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Scraper{client: client, log: log, delay: delay}
}

// EnrichOne enriches a single article.
func (s *Scraper) EnrichOne(ctx context.Context, art domain.Article) domain.Article {
	return s.Enrich(ctx, []domain.Article{art})[0]
}

// Enrich returns copies of the articles with empty descriptions and images
// filled from page metadata. Articles whose pages fail to load are returned as is.
func (s *Scraper) Enrich(ctx context.Context, articles []domain.Article) []domain.Article {
	out := domain.CloneArticles(articles) // default to originals so partial results are returned on cancel

	if len(articles) == 0 {
		return out
	}

	workerCount := min(len(articles), maxArticleWorkers)

	var limiter <-chan time.Time
	if s.delay > 0 {
		ticker := time.NewTicker(s.delay)
		limiter = ticker.C
		defer ticker.Stop()
	}

	jobCh := make(chan int)
	var wg sync.WaitGroup

	for workerID := range workerCount {
		wg.Add(1)
		go s.articleWorker(ctx, articles, limiter, jobCh, out, &wg, workerID)
	}

	for idx := range articles {
		if ctx.Err() != nil {
			break
		}
		if !needsEnrichment(articles[idx]) {
			continue
		}
		jobCh <- idx
	}
	close(jobCh)

	wg.Wait()

	return out
}

// articleWorker processes articles from the job channel, respecting the rate limiter.
func (s *Scraper) articleWorker(
	ctx context.Context,
	articles []domain.Article,
	limiter <-chan time.Time,
	jobCh <-chan int,
	out []domain.Article,
	wg *sync.WaitGroup,
	workerID int,
) {
	defer wg.Done()

	for idx := range jobCh {
		if ctx.Err() != nil {
			continue
		}

		if limiter != nil {
			select {
			case <-ctx.Done():
				continue
			case <-limiter:
			}
		}

		art := articles[idx]
		enriched, err := s.fetchAndParse(ctx, art, workerID)
		if err != nil {
			s.log.WarnObj("article metadata scrape failed", "metadata_error", map[string]any{
				"worker_id": workerID,
				"url":       art.URL,
				"error":     err.Error(),
			})
			continue
		}
		out[idx] = enriched
	}
}

// fetchAndParse fetches the article HTML and parses metadata to enrich the article.
func (s *Scraper) fetchAndParse(ctx context.Context, art domain.Article, workerID int) (domain.Article, error) {
	s.log.DebugObj("scraping article metadata", "scrape_start", map[string]any{
		"worker_id": workerID,
		"url":       art.URL,
	})

	resp, err := s.client.Get(ctx, art.URL, pageHeaders)
	if err != nil {
		return art, fmt.Errorf("http fetch: %w", err)
	}

	if !resp.IsSuccess() {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return art, fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		s.log.InfoObj("html body truncated", "truncation", map[string]any{
			"worker_id": workerID,
			"url":       art.URL,
			"original":  len(body),
			"kept":      maxHTMLBodyBytes,
		})
		body = body[:maxHTMLBodyBytes]
	}

	meta, err := parseMeta(body)
	if err != nil {
		return art, err
	}

	updated := art.Clone()
	if isEmpty(updated.Description) && meta.Description != "" {
		updated.Description = domain.StringPtr(meta.Description)
	}
	if isEmpty(updated.Image) && meta.ImageURL != "" {
		updated.Image = domain.StringPtr(resolveURL(meta.ImageURL, art.URL))
	}
	if strings.TrimSpace(updated.Title) == "" && meta.Title != "" {
		updated.Title = meta.Title
	}

	return updated, nil
}

// parseMeta extracts page metadata from the HTML body.
func parseMeta(body []byte) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	pm := pageMeta{}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	pm.Title = firstNonEmpty(
		extract(`meta[property="og:title"]`),
		strings.TrimSpace(doc.Find("title").First().Text()),
	)
	pm.Description = firstNonEmpty(
		extract(`meta[property="og:description"]`),
		extract(`meta[name="description"]`),
	)
	pm.ImageURL = firstNonEmpty(
		extract(`meta[property="og:image"]`),
		extract(`meta[name="twitter:image"]`),
	)

	return pm, nil
}

// pageMeta holds metadata extracted from an HTML page.
type pageMeta struct {
	Title       string
	Description string
	ImageURL    string
}

func needsEnrichment(a domain.Article) bool {
	return a.URL != "" && (isEmpty(a.Description) || isEmpty(a.Image))
}

func isEmpty(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// firstNonEmpty returns the first non-empty string from the given values.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// resolveURL resolves a possibly relative URL against a base URL.
func resolveURL(raw, base string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if parsed.IsAbs() {
		return parsed.String()
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return raw
	}

	return baseURL.ResolveReference(parsed).String()
}
