package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/soulbrew/blog-services/internal/blog"
	"github.com/soulbrew/blog-services/internal/blog/repository"
	"github.com/soulbrew/blog-services/internal/search"
	"github.com/soulbrew/blog-services/pkg/logger"
	"github.com/soulbrew/blog-services/pkg/metrics"
)

// DefaultRelatedLimit bounds related-post lists when the caller passes no
// explicit limit.
const DefaultRelatedLimit = 3

// Service wraps the post repository with the derived read-side state: the
// weighted search index and the category/tag vocabularies. Derived state is
// tagged with a version counter bumped on every mutation and rebuilt lazily
// on the next read, so a known mutation is never followed by a stale answer.
type Service struct {
	repo       repository.Repository
	retries    int
	retryDelay time.Duration

	mu           sync.Mutex
	version      uint64
	builtVersion uint64
	snap         *snapshot
}

// snapshot is the derived view over one version of the post set.
type snapshot struct {
	posts      []*blog.Post
	bySlug     map[string]*blog.Post
	index      *search.Index
	categories []string
	tags       []string
}

// Option tunes service construction.
type Option func(*Service)

// WithRetry sets the bounded retry policy for repository fetches. Pure
// in-memory operations (index build, ranking, aggregation) are never retried.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(s *Service) {
		s.retries = attempts
		s.retryDelay = delay
	}
}

func New(repo repository.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, retries: 2, retryDelay: 500 * time.Millisecond}
	for _, o := range opts {
		o(s)
	}
	return s
}

// fetchAll reads the full corpus with the bounded retry policy.
func (s *Service) fetchAll(ctx context.Context) ([]*blog.Post, error) {
	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay):
			}
		}
		posts, err := s.repo.GetAllPosts(ctx)
		if err == nil {
			return posts, nil
		}
		lastErr = err
		logger.Warnf("post fetch attempt %d/%d failed: %v", attempt+1, s.retries+1, err)
	}
	return nil, lastErr
}

// current returns the snapshot for the latest known version, rebuilding the
// index and aggregates only when a mutation happened since the last build.
// A failed refresh leaves the previous snapshot untouched and is surfaced to
// the caller.
func (s *Service) current(ctx context.Context) (*snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap != nil && s.builtVersion == s.version {
		return s.snap, nil
	}
	version := s.version

	posts, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := search.Build(posts)
	if err != nil {
		// index construction must not fail the page: queries degrade to
		// the substring fallback until the next successful build
		logger.Errorf("search index build failed: %v", err)
		idx = nil
	} else {
		metrics.IndexRebuilds.Inc()
	}

	bySlug := make(map[string]*blog.Post, len(posts))
	catSet := map[string]struct{}{}
	tagSet := map[string]struct{}{}
	for _, p := range posts {
		bySlug[p.Slug] = p
		for _, c := range p.Categories {
			catSet[c] = struct{}{}
		}
		for _, t := range p.Tags {
			tagSet[t] = struct{}{}
		}
	}

	if old := s.snap; old != nil && old.index != nil {
		old.index.Close()
	}
	s.snap = &snapshot{
		posts:      posts,
		bySlug:     bySlug,
		index:      idx,
		categories: sortedKeys(catSet),
		tags:       sortedKeys(tagSet),
	}
	s.builtVersion = version
	return s.snap, nil
}

// invalidate marks the derived state stale. Called after every successful
// repository mutation.
func (s *Service) invalidate() {
	s.mu.Lock()
	s.version++
	s.mu.Unlock()
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// GetAllPosts returns the corpus sorted by date descending.
func (s *Service) GetAllPosts(ctx context.Context) ([]*blog.Post, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return snap.posts, nil
}

// GetPostBySlug resolves a post or blog.ErrNotFound.
func (s *Service) GetPostBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	return s.repo.GetPostBySlug(ctx, slug)
}

// GetPostsByCategory filters case-insensitively, keeping date order.
func (s *Service) GetPostsByCategory(ctx context.Context, category string) ([]*blog.Post, error) {
	return s.repo.GetPostsByCategory(ctx, category)
}

// GetFeaturedPost picks the most recent post. The choice is a pure function
// of the current post set; an empty corpus yields blog.ErrNotFound.
func (s *Service) GetFeaturedPost(ctx context.Context) (*blog.Post, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if len(snap.posts) == 0 {
		return nil, blog.ErrNotFound
	}
	return snap.posts[0], nil
}

// GetAllCategories merges the names inferred from posts with the explicit
// registry, deduplicated (exact-string identity) and sorted ascending.
func (s *Service) GetAllCategories(ctx context.Context) ([]string, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	registry, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	set := map[string]struct{}{}
	for _, c := range snap.categories {
		set[c] = struct{}{}
	}
	for _, c := range registry {
		set[c.Name] = struct{}{}
	}
	return sortedKeys(set), nil
}

// GetAllTags returns the deduplicated, sorted tag vocabulary.
func (s *Service) GetAllTags(ctx context.Context) ([]string, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return snap.tags, nil
}

// GetRelatedPosts ranks posts sharing at least one category with the source
// post by overlap count, excluding the source itself. Ties keep the corpus
// (date-descending) order; the result is truncated to limit. An unknown slug
// yields an empty slice, not an error.
func (s *Service) GetRelatedPosts(ctx context.Context, slug string, limit int) ([]*blog.Post, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	source, ok := snap.bySlug[slug]
	if !ok {
		return []*blog.Post{}, nil
	}

	type scored struct {
		post  *blog.Post
		score int
	}
	candidates := []scored{}
	for _, p := range snap.posts {
		if p.Slug == slug {
			continue
		}
		if n := categoryOverlap(source.Categories, p.Categories); n > 0 {
			candidates = append(candidates, scored{post: p, score: n})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]*blog.Post, len(candidates))
	for i, c := range candidates {
		out[i] = c.post
	}
	return out, nil
}

// categoryOverlap counts categories present in both lists, case-insensitively.
func categoryOverlap(a, b []string) int {
	n := 0
	for _, ca := range a {
		for _, cb := range b {
			if strings.EqualFold(ca, cb) {
				n++
				break
			}
		}
	}
	return n
}

// SearchPosts runs a free-text query. Empty or whitespace-only queries
// short-circuit to an empty result without touching the index. When the
// index is missing, empty, or rejects the query, the substring fallback
// answers silently (logged, never surfaced as an error).
func (s *Service) SearchPosts(ctx context.Context, query string) ([]*blog.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*blog.Post{}, nil
	}
	snap, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	metrics.SearchQueries.Inc()

	if snap.index.Empty() {
		metrics.SearchFallbacks.Inc()
		return search.Fallback(snap.posts, query), nil
	}
	slugs, err := snap.index.Query(query, len(snap.posts))
	if err != nil {
		logger.Debugf("index query %q rejected, using substring fallback: %v", query, err)
		metrics.SearchFallbacks.Inc()
		return search.Fallback(snap.posts, query), nil
	}
	out := make([]*blog.Post, 0, len(slugs))
	for _, slug := range slugs {
		// a hit that no longer resolves is stale; drop it
		if p, ok := snap.bySlug[slug]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// SavePost validates and persists a post, then invalidates derived state.
func (s *Service) SavePost(ctx context.Context, p *blog.Post, isNew bool) (*blog.Post, error) {
	saved, err := s.repo.SavePost(ctx, p, isNew)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return saved, nil
}

// DeletePost removes a post by id; missing ids are a no-op.
func (s *Service) DeletePost(ctx context.Context, id string) error {
	if err := s.repo.DeletePost(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// SaveCategory records a category name in the registry.
func (s *Service) SaveCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if err := s.repo.SaveCategory(ctx, name); err != nil {
		return err
	}
	s.invalidate()
	return nil
}
