package domain

// Domain contains core models shared by the fetcher, the session and storage.

// Article is a normalized news item. URL is its identity.
type Article struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Image       *string `json:"image,omitempty"`
	Description *string `json:"description,omitempty"`
	PublishedAt *string `json:"publishedAt,omitempty"`
}

// SameAs reports whether both articles refer to the same entity.
func (a Article) SameAs(other Article) bool {
	return a.URL == other.URL
}

// Clone returns a deep copy so optional fields are not shared between lists.
func (a Article) Clone() Article {
	out := a
	out.Image = cloneString(a.Image)
	out.Description = cloneString(a.Description)
	out.PublishedAt = cloneString(a.PublishedAt)
	return out
}

// CloneArticles deep-copies a slice of articles. A nil slice stays nil.
func CloneArticles(in []Article) []Article {
	if in == nil {
		return nil
	}
	out := make([]Article, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
