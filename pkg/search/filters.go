package search

import "strings"

type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortDate      SortBy = "date"
	SortTitle     SortBy = "title"
)

// ParseSortBy maps user input to a sort mode; anything unknown sorts by relevance.
func ParseSortBy(s string) SortBy {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortDate:
		return SortDate
	case SortTitle:
		return SortTitle
	default:
		return SortRelevance
	}
}

type Filters struct {
	Type   string
	Tags   []string
	SortBy SortBy
}

const (
	FieldTitle     = "title"
	FieldTitleRaw  = "title.raw"
	FieldContent   = "content"
	FieldTags      = "tags"
	FieldType      = "type"
	FieldUpdatedAt = "updatedAt"

	DefaultResultSize    = 10
	HighlightFragmentLen = 150
)

// NoteMatchFields are searched by every note query; the title weighs double.
var NoteMatchFields = []string{FieldTitle + "^2", FieldContent, FieldTags}

// BuildNoteQuery ANDs the full-text match with the optional type and tag filters.
// The tag clause itself matches a note carrying any one of the listed tags.
func BuildNoteQuery(query string, f Filters) Request {
	must := []Clause{
		MatchClause{Query: query, Fields: NoteMatchFields},
	}
	if f.Type != "" {
		must = append(must, TermClause{Field: FieldType, Value: f.Type})
	}
	if tags := compactTags(f.Tags); len(tags) > 0 {
		must = append(must, TermsClause{Field: FieldTags, Values: tags})
	}

	req := Request{
		Query: BoolQuery{Must: must},
		Highlight: &HighlightSpec{
			Field:             FieldContent,
			FragmentSize:      HighlightFragmentLen,
			NumberOfFragments: 1,
		},
		Size: DefaultResultSize,
	}

	switch f.SortBy {
	case SortDate:
		req.Sort = []SortSpec{{Field: FieldUpdatedAt, Desc: true}}
		req.TrackScores = true
	case SortTitle:
		req.Sort = []SortSpec{{Field: FieldTitleRaw}}
		req.TrackScores = true
	default:
		req.Sort = []SortSpec{{Field: ScoreField}}
	}
	return req
}

func compactTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
