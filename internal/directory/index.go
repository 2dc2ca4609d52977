package directory

import (
	"fmt"

	"github.com/blevesearch/bleve"

	"github.com/ultroi/sixbits/internal/store"
)

// Doc is the indexed shape shared by courses and colleges.
type Doc struct {
	Kind        string `json:"kind"` // "course" or "college"
	Name        string `json:"name"`
	Stream      string `json:"stream"`
	District    string `json:"district"`
	Description string `json:"description"`
}

// Hit is one ranked search result.
type Hit struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Index is an in-memory full-text index over the course and college
// directories, built once at startup.
type Index struct {
	idx  bleve.Index
	meta map[string]Doc
}

func NewIndex() (*Index, error) {
	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}
	return &Index{idx: idx, meta: make(map[string]Doc)}, nil
}

// Load indexes the full directory contents.
func (x *Index) Load(courses []store.Course, colleges []store.College) error {
	for _, c := range courses {
		doc := Doc{Kind: "course", Name: c.Name, Stream: c.Stream, Description: c.Description}
		if err := x.add("course:"+c.ID, doc); err != nil {
			return err
		}
	}
	for _, c := range colleges {
		doc := Doc{Kind: "college", Name: c.Name, District: c.District}
		if err := x.add("college:"+c.ID, doc); err != nil {
			return err
		}
	}
	return nil
}

func (x *Index) add(id string, doc Doc) error {
	x.meta[id] = doc
	return x.idx.Index(id, doc)
}

// Search runs a query-string search and returns up to k ranked hits.
func (x *Index) Search(q string, k int) ([]Hit, error) {
	if k <= 0 || k > 50 {
		k = 10
	}
	query := bleve.NewQueryStringQuery(q)
	req := bleve.NewSearchRequestOptions(query, k, 0, false)
	res, err := x.idx.Search(req)
	if err != nil {
		return nil, err
	}
	var out []Hit
	for _, hit := range res.Hits {
		doc := x.meta[hit.ID]
		out = append(out, Hit{ID: hit.ID, Kind: doc.Kind, Name: doc.Name, Score: hit.Score})
	}
	return out, nil
}

func (x *Index) Close() error { return x.idx.Close() }
