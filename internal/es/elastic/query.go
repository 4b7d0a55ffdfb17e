package elastic

import (
	"sort"

	"github.com/kailas-cloud/docsearch/internal/es"
)

// buildSearchBody translates an es.Query into the Elasticsearch query DSL:
// a bool query with a relevance-scored must clause (multi_match or match_all)
// and non-scoring term/terms filters, plus from/size pagination.
func buildSearchBody(q *es.Query) map[string]any {
	var must any
	if q.Text != "" {
		must = map[string]any{
			"multi_match": map[string]any{
				"query":  q.Text,
				"fields": q.Fields,
			},
		}
	} else {
		must = map[string]any{"match_all": map[string]any{}}
	}

	boolQuery := map[string]any{"must": []any{must}}

	if filters := buildTermFilters(q.Terms); len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	return map[string]any{
		"query": map[string]any{"bool": boolQuery},
		"from":  q.From,
		"size":  q.Size,
	}
}

// buildTermFilters renders exact-match filters in deterministic field order.
// A single value becomes a term filter; multiple values become a terms filter
// (set intersection: any value may match).
func buildTermFilters(terms map[string][]string) []any {
	if len(terms) == 0 {
		return nil
	}

	fields := make([]string, 0, len(terms))
	for f := range terms {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	filters := make([]any, 0, len(fields))
	for _, f := range fields {
		values := terms[f]
		switch len(values) {
		case 0:
			continue
		case 1:
			filters = append(filters, map[string]any{
				"term": map[string]any{f: values[0]},
			})
		default:
			filters = append(filters, map[string]any{
				"terms": map[string]any{f: values},
			})
		}
	}
	return filters
}
