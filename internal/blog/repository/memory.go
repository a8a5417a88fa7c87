package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/soulbrew/blog-services/internal/blog"
)

// MemoryRepo is an in-memory repository used for fixture/seed mode and unit
// tests. It keeps insertion order so date ties resolve deterministically.
type MemoryRepo struct {
	mu         sync.RWMutex
	posts      []*blog.Post
	categories []blog.Category
}

// NewMemoryRepo returns an empty in-memory repository.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// NewFixtureRepo returns a repository pre-seeded with the launch corpus.
func NewFixtureRepo() *MemoryRepo {
	r := NewMemoryRepo()
	for _, p := range blog.FixturePosts() {
		p.Normalize()
		r.posts = append(r.posts, p)
	}
	return r
}

func (m *MemoryRepo) GetAllPosts(ctx context.Context) ([]*blog.Post, error) {
	m.mu.RLock()
	out := make([]*blog.Post, len(m.posts))
	copy(out, m.posts)
	m.mu.RUnlock()
	sortByDateDesc(out)
	return out, nil
}

func (m *MemoryRepo) GetPostBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, blog.ErrNotFound
}

func (m *MemoryRepo) GetPostsByCategory(ctx context.Context, category string) ([]*blog.Post, error) {
	all, err := m.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return filterByCategory(all, category), nil
}

func (m *MemoryRepo) SavePost(ctx context.Context, p *blog.Post, isNew bool) (*blog.Post, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Normalize()

	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	if isNew {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.CreatedAt = now
		p.UpdatedAt = now
		m.posts = append(m.posts, p)
		return p, nil
	}
	p.UpdatedAt = now
	for i, existing := range m.posts {
		if existing.ID == p.ID {
			if p.CreatedAt.IsZero() {
				p.CreatedAt = existing.CreatedAt
			}
			m.posts[i] = p
			return p, nil
		}
	}
	// upsert semantics: an edit to an unknown id creates the record
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	m.posts = append(m.posts, p)
	return p, nil
}

func (m *MemoryRepo) DeletePost(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	// missing id is a no-op, not an error
	return nil
}

func (m *MemoryRepo) SaveCategory(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Name == name {
			return nil
		}
	}
	m.categories = append(m.categories, blog.Category{Name: name, CreatedAt: time.Now().UTC()})
	return nil
}

func (m *MemoryRepo) ListCategories(ctx context.Context) ([]blog.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]blog.Category, len(m.categories))
	copy(out, m.categories)
	return out, nil
}
