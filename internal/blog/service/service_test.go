package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/soulbrew/blog-services/internal/blog"
	"github.com/soulbrew/blog-services/internal/blog/repository"
	"github.com/stretchr/testify/require"
)

func fixtureService() *Service {
	return New(repository.NewFixtureRepo(), WithRetry(0, 0))
}

// flakyRepo fails GetAllPosts a configurable number of times before
// delegating to the in-memory repository.
type flakyRepo struct {
	*repository.MemoryRepo
	failures int
	calls    int
}

func (f *flakyRepo) GetAllPosts(ctx context.Context) ([]*blog.Post, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("store unavailable")
	}
	return f.MemoryRepo.GetAllPosts(ctx)
}

func TestGetRelatedPostsRanking(t *testing.T) {
	s := fixtureService()
	ctx := context.Background()

	related, err := s.GetRelatedPosts(ctx, "living-light-minimalist-lifestyle", 3)
	require.NoError(t, err)
	require.Len(t, related, 3)

	// highest category overlap first (Lifestyle+Minimalism+Sustainability),
	// then ties in corpus (date-descending) order
	require.Equal(t, "mindful-consumption-art-of-buying-less", related[0].Slug)
	require.Equal(t, "digital-minimalism-sustainable-tech", related[1].Slug)
	require.Equal(t, "wander-wisely-sustainable-travel", related[2].Slug)

	src, err := s.GetPostBySlug(ctx, "living-light-minimalist-lifestyle")
	require.NoError(t, err)
	for _, p := range related {
		require.NotEqual(t, src.Slug, p.Slug, "related list must exclude the source")
		shared := false
		for _, c := range src.Categories {
			if p.HasCategory(c) {
				shared = true
			}
		}
		require.True(t, shared, "%s shares no category with the source", p.Slug)
	}
}

func TestGetRelatedPostsEdgeCases(t *testing.T) {
	s := fixtureService()
	ctx := context.Background()

	// unknown slug is empty, not an error
	related, err := s.GetRelatedPosts(ctx, "does-not-exist", 3)
	require.NoError(t, err)
	require.Empty(t, related)

	// zero limit falls back to the default
	related, err = s.GetRelatedPosts(ctx, "living-light-minimalist-lifestyle", 0)
	require.NoError(t, err)
	require.Len(t, related, DefaultRelatedLimit)

	// a limit above the candidate count returns all candidates, no padding
	related, err = s.GetRelatedPosts(ctx, "living-light-minimalist-lifestyle", 50)
	require.NoError(t, err)
	require.Len(t, related, 5)
}

func TestAggregatesDeduplicatedAndSorted(t *testing.T) {
	s := fixtureService()
	ctx := context.Background()

	cats, err := s.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Design", "Fashion", "Lifestyle", "Minimalism", "Sustainability", "Technology", "Travel"}, cats)

	// determinism: the same corpus yields identical output
	again, err := s.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, cats, again)

	tags, err := s.GetAllTags(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tags)
	for i := 1; i < len(tags); i++ {
		require.Less(t, tags[i-1], tags[i], "tags must be sorted and unique")
	}
}

func TestAggregatesMergeRegistry(t *testing.T) {
	s := fixtureService()
	ctx := context.Background()

	require.NoError(t, s.SaveCategory(ctx, "Gardening"))
	cats, err := s.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Contains(t, cats, "Gardening")
	require.Contains(t, cats, "Minimalism")
}

func TestAggregatesEmptyCorpus(t *testing.T) {
	s := New(repository.NewMemoryRepo(), WithRetry(0, 0))
	ctx := context.Background()

	cats, err := s.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Empty(t, cats)

	tags, err := s.GetAllTags(ctx)
	require.NoError(t, err)
	require.Empty(t, tags)

	_, err = s.GetFeaturedPost(ctx)
	require.ErrorIs(t, err, blog.ErrNotFound)
}

func TestGetFeaturedPostIsMostRecent(t *testing.T) {
	s := fixtureService()
	featured, err := s.GetFeaturedPost(context.Background())
	require.NoError(t, err)
	require.Equal(t, "mindful-consumption-art-of-buying-less", featured.Slug)
}

func TestSearchEmptyQueryShortCircuits(t *testing.T) {
	// a repository that always fails proves the index is never consulted
	s := New(&flakyRepo{MemoryRepo: repository.NewMemoryRepo(), failures: 1 << 30}, WithRetry(0, 0))

	out, err := s.SearchPosts(context.Background(), "   ")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSearchRanksTitleAboveContent(t *testing.T) {
	s := fixtureService()
	ctx := context.Background()

	out, err := s.SearchPosts(ctx, "travel")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.Equal(t, "wander-wisely-sustainable-travel", out[0].Slug)
}

func TestSearchFallbackOnSyntaxError(t *testing.T) {
	s := fixtureService()
	ctx := context.Background()

	// unbalanced quote is rejected by the index's query parser; the result
	// must still be a non-error substring match
	out, err := s.SearchPosts(ctx, `"wardrobe`)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	found := false
	for _, p := range out {
		if p.Slug == "elevating-style-minimal-environmental-footprint" {
			found = true
		}
	}
	require.True(t, found)
}

func TestMutationInvalidatesDerivedState(t *testing.T) {
	s := fixtureService()
	ctx := context.Background()

	target, err := s.GetPostBySlug(ctx, "wander-wisely-sustainable-travel")
	require.NoError(t, err)

	// warm caches
	_, err = s.SearchPosts(ctx, "travel")
	require.NoError(t, err)

	require.NoError(t, s.DeletePost(ctx, target.ID))

	all, err := s.GetAllPosts(ctx)
	require.NoError(t, err)
	for _, p := range all {
		require.NotEqual(t, target.ID, p.ID, "deleted post must not reappear")
	}

	out, err := s.SearchPosts(ctx, "travel")
	require.NoError(t, err)
	for _, p := range out {
		require.NotEqual(t, target.Slug, p.Slug, "index must be rebuilt after deletion")
	}

	// deleting the same id again must not error
	require.NoError(t, s.DeletePost(ctx, target.ID))
}

func TestSaveNewPostVisibleInSearch(t *testing.T) {
	s := fixtureService()
	ctx := context.Background()

	p := &blog.Post{
		Slug:       "urban-beekeeping-guide",
		Title:      "Urban Beekeeping: A Beginner's Guide",
		Excerpt:    "Keeping bees on a city rooftop.",
		Content:    "<p>Bees thrive in cities more than you might expect.</p>",
		Date:       "Mar 1, 2024",
		Categories: []string{"Sustainability"},
	}
	saved, err := s.SavePost(ctx, p, true)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	out, err := s.SearchPosts(ctx, "beekeeping")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.Equal(t, "urban-beekeeping-guide", out[0].Slug)

	// the new post is the freshest, so it becomes featured
	featured, err := s.GetFeaturedPost(ctx)
	require.NoError(t, err)
	require.Equal(t, "urban-beekeeping-guide", featured.Slug)
}

func TestFetchRetryBounded(t *testing.T) {
	ctx := context.Background()

	base := repository.NewFixtureRepo()
	flaky := &flakyRepo{MemoryRepo: base, failures: 2}
	s := New(flaky, WithRetry(2, time.Millisecond))

	all, err := s.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
	require.Equal(t, 3, flaky.calls)

	// exhausted retries surface the error
	exhausted := &flakyRepo{MemoryRepo: base, failures: 10}
	s2 := New(exhausted, WithRetry(1, time.Millisecond))
	_, err = s2.GetAllPosts(ctx)
	require.Error(t, err)
	require.Equal(t, 2, exhausted.calls)
}
