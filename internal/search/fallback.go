package search

import (
	"strings"

	"github.com/soulbrew/blog-services/internal/blog"
)

// Fallback is the degraded search used when the weighted index is
// unavailable, empty, or rejects the query. It matches q as a
// case-insensitive substring across title, excerpt, content, categories and
// tags, preserving the incoming (date-descending) corpus order.
func Fallback(posts []*blog.Post, q string) []*blog.Post {
	// quotes are query-string syntax; a rejected query often carries them
	term := strings.ReplaceAll(q, `"`, "")
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []*blog.Post{}
	}
	out := []*blog.Post{}
	for _, p := range posts {
		if matchesSubstring(p, term) {
			out = append(out, p)
		}
	}
	return out
}

func matchesSubstring(p *blog.Post, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Excerpt), term) ||
		strings.Contains(strings.ToLower(p.Content), term) {
		return true
	}
	for _, c := range p.Categories {
		if strings.Contains(strings.ToLower(c), term) {
			return true
		}
	}
	for _, tg := range p.Tags {
		if strings.Contains(strings.ToLower(tg), term) {
			return true
		}
	}
	return false
}
