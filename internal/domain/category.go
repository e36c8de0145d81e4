package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned for keys outside the fixed category set.
var ErrUnknownCategory = errors.New("unknown category")

// Category is a headline topic filter understood by the news API.
type Category struct {
	Key   string
	Label string
}

// DefaultCategoryKey is the category shown at startup.
const DefaultCategoryKey = "breaking-news"

var categories = []Category{
	{Key: "breaking-news", Label: "Breaking News"},
	{Key: "business", Label: "Business"},
	{Key: "technology", Label: "Technology"},
	{Key: "sports", Label: "Sports"},
	{Key: "health", Label: "Health"},
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// LookupCategory resolves a category key, ignoring case and surrounding space.
func LookupCategory(key string) (Category, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, c := range categories {
		if c.Key == key {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("%w %q", ErrUnknownCategory, key)
}
