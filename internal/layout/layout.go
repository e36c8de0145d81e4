package layout

import (
	"time"

	"github.com/Adda-Baaj/newsdesk/internal/domain"
)

const (
	FallbackImage      = "/fallback.jpg"
	NoDescription      = "No description available"
	NoDate             = "No date"
	SmallTitleMax      = 40
	MoreTitleMax       = 30
	MoreDescriptionMax = 60
	smallSlots         = 2
	dateLayout         = "2006/01/02 15:04"
	truncationSuffix   = "..."
)

// Layout splits a headline list into the main story, the two stacked small
// stories, and the remaining grid.
type Layout struct {
	Main  *domain.Article
	Small []domain.Article
	More  []domain.Article
}

// Partition assigns index 0 to Main, 1-2 to Small and the rest to More.
func Partition(articles []domain.Article) Layout {
	var l Layout
	if len(articles) == 0 {
		return l
	}

	main := articles[0]
	l.Main = &main

	end := min(len(articles), 1+smallSlots)
	l.Small = articles[1:end]
	l.More = articles[end:]
	return l
}

// Position returns the article at a 1-based position in layout order.
func (l Layout) Position(n int) (domain.Article, bool) {
	if n < 1 || l.Main == nil {
		return domain.Article{}, false
	}
	if n == 1 {
		return *l.Main, true
	}
	n -= 2
	if n < len(l.Small) {
		return l.Small[n], true
	}
	n -= len(l.Small)
	if n < len(l.More) {
		return l.More[n], true
	}
	return domain.Article{}, false
}

// Len returns the number of articles laid out.
func (l Layout) Len() int {
	if l.Main == nil {
		return 0
	}
	return 1 + len(l.Small) + len(l.More)
}

// TrimText cuts s to max characters and marks the cut with an ellipsis.
func TrimText(s string, max int) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + truncationSuffix
}

// FormatDate renders an ISO-8601 timestamp as "YYYY/MM/DD HH:mm" in loc.
// Absent timestamps render as NoDate; unparseable ones are shown as given.
func FormatDate(iso *string, loc *time.Location) string {
	if iso == nil || *iso == "" {
		return NoDate
	}
	t, err := time.Parse(time.RFC3339, *iso)
	if err != nil {
		return *iso
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dateLayout)
}

// ImageOrFallback returns the article image or the placeholder.
func ImageOrFallback(a domain.Article) string {
	if a.Image == nil || *a.Image == "" {
		return FallbackImage
	}
	return *a.Image
}

// DescriptionOrFallback returns the article description or the placeholder.
func DescriptionOrFallback(a domain.Article) string {
	if a.Description == nil || *a.Description == "" {
		return NoDescription
	}
	return *a.Description
}
