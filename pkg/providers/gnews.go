package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Adda-Baaj/newsdesk/internal/domain"
)

const (
	// ProviderTypeGNews identifies the GNews API fetcher.
	ProviderTypeGNews = "gnews"

	// DefaultGNewsBaseURL is the public GNews v4 endpoint.
	DefaultGNewsBaseURL = "https://gnews.io/api/v4"

	// gnewsLang is fixed: every request asks for Japanese articles.
	gnewsLang = "ja"

	gnewsHeadlinesPath = "/top-headlines"
	gnewsSearchPath    = "/search"
)

var errMissingArticles = errors.New("response has no articles field")

type gnewsResponse struct {
	TotalArticles int             `json:"totalArticles"`
	Articles      *[]gnewsArticle `json:"articles"`
}

type gnewsArticle struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
	PublishedAt *string `json:"publishedAt"`
}

// gnewsFetcher implements Fetcher for the GNews headline and search endpoints.
type gnewsFetcher struct {
	client HTTPClient
}

// NewGNewsFetcher builds a Fetcher for GNews.
func NewGNewsFetcher(client HTTPClient) Fetcher {
	if client == nil {
		client = DefaultHTTPClient()
	}
	return &gnewsFetcher{client: client}
}

// ID returns the provider type for the GNews fetcher.
func (f *gnewsFetcher) ID() string {
	return ProviderTypeGNews
}

// Fetch performs exactly one GET and maps the articles field for field.
func (f *gnewsFetcher) Fetch(ctx context.Context, cfg Provider, req Request) ([]domain.Article, error) {
	id := cfg.ID
	if id == "" {
		id = ProviderTypeGNews
	}

	endpoint, mode := gnewsURL(cfg, req)

	resp, err := f.client.Get(ctx, endpoint, Headers(cfg))
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, Provider: id, Mode: mode, Err: redactURLError(err)}
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		return nil, &FetchError{
			Kind:       KindStatus,
			Provider:   id,
			Mode:       mode,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Snippet:    responseSnippet(body),
		}
	}

	articles, err := decodeGNews(body)
	if err != nil {
		return nil, &FetchError{Kind: KindMalformed, Provider: id, Mode: mode, Snippet: responseSnippet(body), Err: err}
	}
	return articles, nil
}

// gnewsURL selects the endpoint for the request. A search without text falls
// back to the headline endpoint for the request's category.
func gnewsURL(cfg Provider, req Request) (string, Mode) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultGNewsBaseURL
	}

	if req.Mode == ModeSearch && req.Query != "" {
		return base + gnewsSearchPath + "?" + queryString(
			[2]string{"q", req.Query},
			[2]string{"lang", gnewsLang},
			[2]string{"apikey", cfg.APIKey},
		), ModeSearch
	}

	category := req.Category
	if category == "" {
		category = domain.DefaultCategoryKey
	}
	return base + gnewsHeadlinesPath + "?" + queryString(
		[2]string{"category", category},
		[2]string{"lang", gnewsLang},
		[2]string{"apikey", cfg.APIKey},
	), ModeCategory
}

// decodeGNews parses the body and renames fields into domain articles.
func decodeGNews(body []byte) ([]domain.Article, error) {
	var payload gnewsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode gnews response: %w", err)
	}
	if payload.Articles == nil {
		return nil, errMissingArticles
	}

	src := *payload.Articles
	articles := make([]domain.Article, 0, len(src))
	for _, a := range src {
		articles = append(articles, domain.Article{
			Title:       a.Title,
			URL:         a.URL,
			Image:       a.Image,
			Description: a.Description,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
