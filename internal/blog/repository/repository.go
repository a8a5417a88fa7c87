package repository

import (
	"context"
	"sort"

	"github.com/soulbrew/blog-services/internal/blog"
)

// Repository provides post and category persistence. Two interchangeable
// implementations exist: MemoryRepo (fixture/seed mode and unit tests) and
// MongoRepo (the hosted document store).
type Repository interface {
	// GetAllPosts returns the corpus sorted by display date descending.
	// Ties keep their stored order (stable sort).
	GetAllPosts(ctx context.Context) ([]*blog.Post, error)
	// GetPostBySlug returns blog.ErrNotFound for a lookup miss.
	GetPostBySlug(ctx context.Context, slug string) (*blog.Post, error)
	// GetPostsByCategory matches case-insensitively against each post's
	// category list, preserving the GetAllPosts ordering.
	GetPostsByCategory(ctx context.Context, category string) ([]*blog.Post, error)
	// SavePost upserts by id. When isNew the repository assigns the id and
	// stamps CreatedAt; otherwise id and slug are preserved and UpdatedAt
	// is restamped.
	SavePost(ctx context.Context, p *blog.Post, isNew bool) (*blog.Post, error)
	// DeletePost removes by id. Deleting a missing id is a no-op.
	DeletePost(ctx context.Context, id string) error

	// SaveCategory records a name in the optional category registry.
	SaveCategory(ctx context.Context, name string) error
	// ListCategories enumerates the registry. May be empty; category names
	// inferred from posts are merged in by the service layer.
	ListCategories(ctx context.Context) ([]blog.Category, error)
}

// sortByDateDesc orders posts most recent first. The sort is stable so posts
// with equal (or unparseable) dates keep their incoming order.
func sortByDateDesc(posts []*blog.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return blog.ParseDate(posts[i].Date).After(blog.ParseDate(posts[j].Date))
	})
}

// filterByCategory keeps posts whose category list contains name,
// case-insensitively, preserving order.
func filterByCategory(posts []*blog.Post, name string) []*blog.Post {
	out := make([]*blog.Post, 0, len(posts))
	for _, p := range posts {
		if p.HasCategory(name) {
			out = append(out, p)
		}
	}
	return out
}
