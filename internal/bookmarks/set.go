package bookmarks

import "github.com/Adda-Baaj/newsdesk/internal/domain"

// Set is an insertion-ordered collection of articles keyed by URL.
type Set struct {
	items []domain.Article
}

// NewSet builds a set from stored articles, keeping their order.
func NewSet(items []domain.Article) *Set {
	return &Set{items: domain.CloneArticles(items)}
}

// Len returns the number of bookmarks.
func (s *Set) Len() int { return len(s.items) }

// Contains reports whether an article with the URL is bookmarked.
func (s *Set) Contains(url string) bool {
	return s.index(domain.Article{URL: url}) >= 0
}

// Toggle removes the article if its URL is present, otherwise appends it.
// It reports whether the article is bookmarked afterwards.
func (s *Set) Toggle(a domain.Article) bool {
	if i := s.index(a); i >= 0 {
		next := make([]domain.Article, 0, len(s.items)-1)
		next = append(next, s.items[:i]...)
		s.items = append(next, s.items[i+1:]...)
		return false
	}
	s.items = append(s.items, a.Clone())
	return true
}

// Remove drops the article with the URL. It reports whether anything changed.
func (s *Set) Remove(url string) bool {
	i := s.index(domain.Article{URL: url})
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return true
}

// Replace swaps in updated copies of articles already in the set, matched by URL.
func (s *Set) Replace(updated []domain.Article) int {
	n := 0
	for _, a := range updated {
		if i := s.index(a); i >= 0 {
			s.items[i] = a.Clone()
			n++
		}
	}
	return n
}

// Articles returns a copy of the bookmarks in insertion order.
func (s *Set) Articles() []domain.Article {
	out := domain.CloneArticles(s.items)
	if out == nil {
		out = []domain.Article{}
	}
	return out
}

func (s *Set) index(a domain.Article) int {
	for i := range s.items {
		if s.items[i].SameAs(a) {
			return i
		}
	}
	return -1
}
