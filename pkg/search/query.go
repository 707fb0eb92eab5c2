package search

import "encoding/json"

// Clause is one condition of a boolean query. Implementations are MatchClause, TermClause and TermsClause.
type Clause interface {
	source() map[string]interface{}
}

// MatchClause is a full-text match of Query against several fields; "title^2" boosts a field.
type MatchClause struct {
	Query  string
	Fields []string
}

func (c MatchClause) source() map[string]interface{} {
	return map[string]interface{}{
		"multi_match": map[string]interface{}{
			"query":  c.Query,
			"fields": c.Fields,
		},
	}
}

// TermClause requires an exact keyword value.
type TermClause struct {
	Field string
	Value string
}

func (c TermClause) source() map[string]interface{} {
	return map[string]interface{}{
		"term": map[string]interface{}{c.Field: c.Value},
	}
}

// TermsClause matches when the field holds any of Values.
type TermsClause struct {
	Field  string
	Values []string
}

func (c TermsClause) source() map[string]interface{} {
	return map[string]interface{}{
		"terms": map[string]interface{}{c.Field: c.Values},
	}
}

// BoolQuery requires every clause in Must.
type BoolQuery struct {
	Must []Clause
}

func (q BoolQuery) source() map[string]interface{} {
	must := make([]map[string]interface{}, 0, len(q.Must))
	for _, c := range q.Must {
		must = append(must, c.source())
	}
	return map[string]interface{}{
		"bool": map[string]interface{}{"must": must},
	}
}

const ScoreField = "_score"

type SortSpec struct {
	Field string
	Desc  bool
}

func (s SortSpec) source() interface{} {
	if s.Field == ScoreField {
		return ScoreField
	}
	order := "asc"
	if s.Desc {
		order = "desc"
	}
	return map[string]interface{}{
		s.Field: map[string]interface{}{"order": order},
	}
}

type HighlightSpec struct {
	Field             string
	FragmentSize      int
	NumberOfFragments int
}

func (h HighlightSpec) source() map[string]interface{} {
	return map[string]interface{}{
		"fields": map[string]interface{}{
			h.Field: map[string]interface{}{
				"fragment_size":       h.FragmentSize,
				"number_of_fragments": h.NumberOfFragments,
			},
		},
	}
}

// Request is a complete index query: clause tree, ordering and highlighting.
type Request struct {
	Query     BoolQuery
	Sort      []SortSpec
	Highlight *HighlightSpec
	Size      int
	// TrackScores keeps relevance scores populated when sorting by a field.
	TrackScores bool
}

func (r Request) MarshalJSON() ([]byte, error) {
	body := map[string]interface{}{
		"query": r.Query.source(),
	}
	if len(r.Sort) > 0 {
		sort := make([]interface{}, 0, len(r.Sort))
		for _, s := range r.Sort {
			sort = append(sort, s.source())
		}
		body["sort"] = sort
	}
	if r.Highlight != nil {
		body["highlight"] = r.Highlight.source()
	}
	if r.Size > 0 {
		body["size"] = r.Size
	}
	if r.TrackScores {
		body["track_scores"] = true
	}
	return json.Marshal(body)
}
