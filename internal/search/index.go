package search

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/soulbrew/blog-services/internal/blog"
)

// Field boosts. The ordering is a contract: a term matching the title must
// outrank an equal match buried in body content.
const (
	boostTitle    = 4.0
	boostExcerpt  = 2.0
	boostTaxonomy = 2.0
	boostContent  = 1.0
)

// postDocument is the indexed shape of a post. Taxonomy lists are joined to
// plain strings before indexing so a missing array can never fail a build.
type postDocument struct {
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	Categories string `json:"categories"`
	Tags       string `json:"tags"`
}

// Index is an in-memory full-text index over the post corpus, keyed by slug.
// It is derived, disposable state: rebuild it whenever the post set changes.
type Index struct {
	idx   bleve.Index
	count int
}

// Build constructs a fresh in-memory index over posts. Malformed per-post
// fields are coerced to empty strings rather than failing the build.
func Build(posts []*blog.Post) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, err
	}
	batch := idx.NewBatch()
	for _, p := range posts {
		if p == nil || p.Slug == "" {
			continue
		}
		doc := postDocument{
			Title:      p.Title,
			Excerpt:    p.Excerpt,
			Content:    p.Content,
			Categories: strings.Join(p.Categories, " "),
			Tags:       strings.Join(p.Tags, " "),
		}
		if err := batch.Index(p.Slug, doc); err != nil {
			return nil, err
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, err
	}
	return &Index{idx: idx, count: len(posts)}, nil
}

func buildMapping() *mapping.IndexMappingImpl {
	m := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	for _, field := range []string{"title", "excerpt", "content", "categories", "tags"} {
		fm := bleve.NewTextFieldMapping()
		fm.Store = false
		fm.Index = true
		fm.Analyzer = standard.Name
		docMapping.AddFieldMappingsAt(field, fm)
	}
	m.DefaultMapping = docMapping
	return m
}

// Empty reports whether the index holds no documents.
func (ix *Index) Empty() bool {
	return ix == nil || ix.count == 0
}

// Close releases index resources.
func (ix *Index) Close() error {
	if ix == nil || ix.idx == nil {
		return nil
	}
	return ix.idx.Close()
}

// Query runs q against the weighted index and returns ranked slugs, best
// first. A syntax error from the query-string parser is returned to the
// caller, which is expected to fall back to substring matching.
func (ix *Index) Query(q string, limit int) ([]string, error) {
	queries := []query.Query{}
	for field, boost := range map[string]float64{
		"title":      boostTitle,
		"excerpt":    boostExcerpt,
		"categories": boostTaxonomy,
		"tags":       boostTaxonomy,
		"content":    boostContent,
	} {
		mq := bleve.NewMatchQuery(q)
		mq.SetField(field)
		mq.SetBoost(boost)
		queries = append(queries, mq)
	}
	// query-string syntax (phrases, field:term) still works; a malformed
	// string surfaces its parse error here and triggers the fallback path
	qsq := bleve.NewQueryStringQuery(q)
	queries = append(queries, qsq)

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(queries...))
	if limit <= 0 {
		limit = ix.count
	}
	req.Size = limit

	res, err := ix.idx.Search(req)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		slugs = append(slugs, hit.ID)
	}
	return slugs, nil
}
