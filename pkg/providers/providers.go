package providers

import (
	"context"
	"strings"

	"github.com/Adda-Baaj/newsdesk/internal/domain"
	"github.com/Adda-Baaj/newsdesk/pkg/httpclient"
)

// HTTPClient is the transport used by fetchers.
type HTTPClient = httpclient.Client

// Mode selects between headline and keyword requests.
type Mode string

const (
	ModeCategory Mode = "category"
	ModeSearch   Mode = "search"
)

// Request describes one fetch. Query is only read in search mode.
type Request struct {
	Mode     Mode
	Category string
	Query    string
}

// CategoryRequest builds a headline request for the given category key.
func CategoryRequest(category string) Request {
	return Request{Mode: ModeCategory, Category: category}
}

// SearchRequest builds a keyword request.
func SearchRequest(query string) Request {
	return Request{Mode: ModeSearch, Query: query}
}

// Provider is the runtime configuration of a news source.
type Provider struct {
	ID      string
	BaseURL string
	APIKey  string
	Headers map[string]string
}

// Fetcher retrieves normalized articles from one provider type.
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, cfg Provider, req Request) ([]domain.Article, error)
}

// FetcherRegistry resolves the fetcher for a configured provider.
type FetcherRegistry interface {
	FetcherFor(cfg Provider) (Fetcher, error)
}

// Headers returns the request headers for the provider.
func Headers(cfg Provider) map[string]string {
	out := map[string]string{"Accept": "application/json"}
	for k, v := range cfg.Headers {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		out[k] = v
	}
	return out
}

// Source is a Fetcher bound to its provider configuration.
type Source struct {
	fetcher Fetcher
	cfg     Provider
}

// Bind pairs a fetcher with the provider it serves.
func Bind(f Fetcher, cfg Provider) *Source {
	return &Source{fetcher: f, cfg: cfg}
}

// Fetch runs the request against the bound provider.
func (s *Source) Fetch(ctx context.Context, req Request) ([]domain.Article, error) {
	return s.fetcher.Fetch(ctx, s.cfg, req)
}

// ProviderID returns the id of the bound provider.
func (s *Source) ProviderID() string { return s.cfg.ID }
