// Package search ranks journal entries against a free-text query. The index
// is built in memory from the entries on every run; the journal file stays
// the only thing on disk.
package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/cjk"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/julianstephens/riji/internal/models"
)

// Index wraps an in-memory bleve index over journal entries
type Index struct {
	index   bleve.Index
	entries map[string]models.Entry
}

// indexedEntry is the document shape stored in bleve
type indexedEntry struct {
	Title   string
	Tags    []string
	Content string
}

// Hit is one ranked result
type Hit struct {
	Entry models.Entry `json:"entry"`
	Score float64      `json:"score"`
}

// buildIndexMapping analyzes every field with CJK bigrams so Chinese text
// without spaces is still searchable by word.
func buildIndexMapping() mapping.IndexMapping {
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = cjk.AnalyzerName

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = cjk.AnalyzerName
	textFieldMapping.Store = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("Title", titleFieldMapping)
	docMapping.AddFieldMappingsAt("Tags", titleFieldMapping)
	docMapping.AddFieldMappingsAt("Content", textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = cjk.AnalyzerName
	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

// Build indexes entries into a fresh in-memory index
func Build(entries []models.Entry) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	i := &Index{
		index:   idx,
		entries: make(map[string]models.Entry, len(entries)),
	}

	batch := idx.NewBatch()
	for _, e := range entries {
		id := strconv.FormatInt(e.ID, 10)
		doc := indexedEntry{
			Title:   e.Title,
			Tags:    e.EffectiveTags(),
			Content: e.Content,
		}
		if err := batch.Index(id, doc); err != nil {
			idx.Close()
			return nil, fmt.Errorf("batch index %s: %w", id, err)
		}
		i.entries[id] = e.Clone()
	}

	if err := idx.Batch(batch); err != nil {
		idx.Close()
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	return i, nil
}

// Close releases the index
func (i *Index) Close() error {
	return i.index.Close()
}

// Count returns the number of indexed entries
func (i *Index) Count() (uint64, error) {
	return i.index.DocCount()
}

// Search returns up to limit entries matching q, best first. Title matches
// weigh more than tag matches, which weigh more than content matches.
func (i *Index) Search(q string, limit int) ([]Hit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	fields := []struct {
		name  string
		boost float64
	}{
		{"Title", 3},
		{"Tags", 2},
		{"Content", 1},
	}
	var queries []query.Query
	for _, f := range fields {
		mq := bleve.NewMatchQuery(q)
		mq.SetField(f.name)
		mq.SetBoost(f.boost)
		queries = append(queries, mq)
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(queries...), limit, 0, false)
	results, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(results.Hits))
	for _, h := range results.Hits {
		e, ok := i.entries[h.ID]
		if !ok {
			continue
		}
		hits = append(hits, Hit{Entry: e.Clone(), Score: h.Score})
	}
	return hits, nil
}

// Query builds a throwaway index over entries and searches it
func Query(entries []models.Entry, q string, limit int) ([]Hit, error) {
	idx, err := Build(entries)
	if err != nil {
		return nil, err
	}
	defer idx.Close()
	return idx.Search(q, limit)
}
