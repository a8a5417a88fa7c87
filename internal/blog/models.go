package blog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Post is the central content entity. Slug is the human-facing identity used
// for detail pages and editing; ID is the storage document key and never
// changes after creation.
type Post struct {
	ID         string    `json:"id" bson:"id"`
	Slug       string    `json:"slug" bson:"slug"`
	Title      string    `json:"title" bson:"title"`
	Excerpt    string    `json:"excerpt" bson:"excerpt"`
	Content    string    `json:"content" bson:"content"`
	Date       string    `json:"date" bson:"date"`
	Author     Author    `json:"author" bson:"author"`
	Image      string    `json:"image" bson:"image"`
	Categories []string  `json:"categories" bson:"categories"`
	Tags       []string  `json:"tags" bson:"tags"`
	CreatedAt  time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Author attribution shown on post cards and detail pages.
type Author struct {
	Name   string `json:"name" bson:"name"`
	Avatar string `json:"avatar" bson:"avatar"`
}

// Category is a named tag with no attributes beyond its name. The registry is
// optional: categories may also be inferred from posts.
type Category struct {
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// dateLayouts accepted for the display date. The editor writes the long form,
// older fixture records use the abbreviated one.
var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseDate turns the display date into a comparable instant. Unparseable
// dates sort last rather than failing the listing.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Normalize coerces malformed records to a safe shape before they reach
// indexing or ranking: nil taxonomy lists become empty slices.
func (p *Post) Normalize() {
	if p.Categories == nil {
		p.Categories = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

// Validate rejects a post before any write is attempted. It reports which
// class of requirement failed; no partial write must occur on error.
func (p *Post) Validate() error {
	var missing []string
	if strings.TrimSpace(p.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(p.Slug) == "" {
		missing = append(missing, "slug")
	}
	if strings.TrimSpace(p.Excerpt) == "" {
		missing = append(missing, "excerpt")
	}
	if strings.TrimSpace(p.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required fields missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// HasCategory reports case-insensitive membership of name in the post's
// category list.
func (p *Post) HasCategory(name string) bool {
	for _, c := range p.Categories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// ErrNotFound is returned by repositories for slug/id lookup misses. It is a
// recoverable result; callers render a 404-style state.
var ErrNotFound = errors.New("post not found")
