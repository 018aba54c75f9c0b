package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/centipy/palette-server/internal/color"
)

// Params configures a favorites search.
type Params struct {
	Query string

	// Filters
	MinColors int
	MaxColors int

	// Pagination
	Limit  int
	Offset int

	// Sorting: "relevance", "name", "recent"
	SortBy    string
	SortOrder string // "asc", "desc"

	Highlight bool
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:     20,
		SortBy:    "relevance",
		SortOrder: "desc",
	}
}

// Result is one page of search hits.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit is a single matching favorite.
type Hit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Name       string            `json:"name"`
	Hexes      []string          `json:"hexes,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// IDs returns the favorite IDs of the hits in rank order.
func (r *Result) IDs() []string {
	ids := make([]string, len(r.Hits))
	for i, h := range r.Hits {
		ids[i] = h.ID
	}
	return ids
}

// Search executes a query against the index.
func (s *SearchIndex) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = DefaultParams().Limit
	}

	req := bleve.NewSearchRequestOptions(buildQuery(params), params.Limit, params.Offset, false)
	addSorting(req, params)

	if params.Highlight {
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField("name")
		req.Highlight.AddField("color_names")
	}
	req.Fields = []string{"name", "hexes"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
	}

	for _, h := range res.Hits {
		hit := Hit{ID: h.ID, Score: h.Score}
		if n, ok := h.Fields["name"].(string); ok {
			hit.Name = n
		}
		hit.Hexes = storedStrings(h.Fields["hexes"])

		if len(h.Fragments) > 0 {
			hit.Highlights = make(map[string]string)
			for field, fragments := range h.Fragments {
				if len(fragments) > 0 {
					hit.Highlights[field] = fragments[0]
				}
			}
		}
		result.Hits = append(result.Hits, hit)
	}

	return result, nil
}

// storedStrings reads a stored field that Bleve returns as a single string
// for one value and a slice for several.
func storedStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// buildQuery constructs the Bleve query from params.
//
// A query that parses as a hex color matches the exact hex. Otherwise the
// text is matched against the favorite name (boosted), the descriptive
// color names, and the CSS keyword names.
func buildQuery(params Params) query.Query {
	var queries []query.Query

	text := strings.TrimSpace(params.Query)
	if text != "" {
		if hex, ok := color.NormalizeHex(text); ok && strings.HasPrefix(text, "#") {
			hq := bleve.NewTermQuery(hex)
			hq.SetField("hexes")
			queries = append(queries, hq)
		} else {
			lower := strings.ToLower(text)
			textQueries := []query.Query{}

			nameMatch := bleve.NewMatchQuery(text)
			nameMatch.SetField("name")
			nameMatch.SetBoost(3.0)
			textQueries = append(textQueries, nameMatch)

			colorMatch := bleve.NewMatchQuery(text)
			colorMatch.SetField("color_names")
			colorMatch.SetBoost(2.0)
			textQueries = append(textQueries, colorMatch)

			cssTerm := bleve.NewTermQuery(strings.ReplaceAll(lower, " ", ""))
			cssTerm.SetField("css_names")
			cssTerm.SetBoost(1.5)
			textQueries = append(textQueries, cssTerm)

			// Typo tolerance on single words only.
			if !strings.Contains(lower, " ") {
				fuzzy := bleve.NewFuzzyQuery(lower)
				fuzzy.SetFuzziness(1)
				fuzzy.SetField("name")
				fuzzy.SetBoost(0.8)
				textQueries = append(textQueries, fuzzy)
			}

			// Prefix query for autocomplete (minimum 2 chars)
			if len(lower) >= 2 {
				namePrefix := bleve.NewPrefixQuery(lower)
				namePrefix.SetField("name")
				namePrefix.SetBoost(0.5)
				textQueries = append(textQueries, namePrefix)

				colorPrefix := bleve.NewPrefixQuery(lower)
				colorPrefix.SetField("color_names")
				colorPrefix.SetBoost(0.5)
				textQueries = append(textQueries, colorPrefix)
			}

			queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
		}
	}

	if params.MinColors > 0 || params.MaxColors > 0 {
		lo := float64(params.MinColors)
		hi := float64(params.MaxColors)
		if params.MaxColors == 0 {
			hi = 1 << 16
		}
		inclusive := true
		rq := bleve.NewNumericRangeInclusiveQuery(&lo, &hi, &inclusive, &inclusive)
		rq.SetField("color_count")
		queries = append(queries, rq)
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params Params) {
	switch params.SortBy {
	case "name":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-name", "_id"})
		} else {
			req.SortBy([]string{"name", "_id"})
		}
	case "recent":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"created_at", "_id"})
		} else {
			req.SortBy([]string{"-created_at", "_id"})
		}
	default:
		req.SortBy([]string{"-_score", "_id"})
	}
}
