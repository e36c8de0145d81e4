package httpclient

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent identifies outbound requests when no override is configured.
const DefaultUserAgent = "newsdesk/1.0 (+https://github.com/Adda-Baaj/newsdesk)"

// Client is the minimal HTTP surface used by fetchers, scrapers and publishers.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (*resty.Response, error)
	Do(ctx context.Context, method, url string, headers map[string]string, body any) (*resty.Response, error)
}

type restyClient struct {
	r *resty.Client
}

// NewRestyClient builds a Client with the given timeout and the default user agent.
func NewRestyClient(timeout time.Duration) Client {
	return NewRestyClientWithAgent(timeout, DefaultUserAgent)
}

// NewRestyClientWithAgent builds a Client with a custom user agent.
func NewRestyClientWithAgent(timeout time.Duration, userAgent string) Client {
	r := resty.New().SetTimeout(timeout)
	if ua := strings.TrimSpace(userAgent); ua != "" {
		r.SetHeader("User-Agent", ua)
	}
	return &restyClient{r: r}
}

// Get issues a GET request. Non-2xx statuses are returned as responses, not errors.
func (c *restyClient) Get(ctx context.Context, url string, headers map[string]string) (*resty.Response, error) {
	return c.Do(ctx, "GET", url, headers, nil)
}

// Do issues a request with an optional body.
func (c *restyClient) Do(ctx context.Context, method, url string, headers map[string]string, body any) (*resty.Response, error) {
	req := c.r.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetBody(body)
	}
	return req.Execute(strings.ToUpper(method), url)
}
