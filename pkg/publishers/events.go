package publishers

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Adda-Baaj/newsdesk/internal/domain"
	"github.com/Adda-Baaj/newsdesk/internal/logger"
)

// EventTypeHeadline marks an article seen in a headline or search listing.
const EventTypeHeadline = "article.headline"

// Event is the payload delivered to every sink.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	ProviderID string         `json:"provider_id"`
	Category   string         `json:"category,omitempty"`
	Query      string         `json:"query,omitempty"`
	Article    domain.Article `json:"article"`
	EmittedAt  time.Time      `json:"emitted_at"`
}

// NewHeadlineEvent wraps a fetched article. Exactly one of category or query is set.
func NewHeadlineEvent(providerID, category, query string, art domain.Article, now time.Time) Event {
	evt := Event{
		ID:         uuid.NewString(),
		Type:       EventTypeHeadline,
		ProviderID: providerID,
		Article:    art,
		EmittedAt:  now.UTC(),
	}
	if strings.TrimSpace(query) != "" {
		evt.Query = query
	} else {
		evt.Category = category
	}
	return evt
}

// Publisher delivers events to one configured sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Logger is the logging surface publishers need.
type Logger interface {
	DebugObj(msg, kind string, obj map[string]any)
	InfoObj(msg, kind string, obj map[string]any)
	WarnObj(msg, kind string, obj map[string]any)
	ErrorObj(msg, kind string, obj map[string]any)
}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return logger.NopLogger{}
	}
	return log
}
