package search

import (
	"strings"
)

// InlineFilters holds the filters typed into the query text and the remaining free text.
type InlineFilters struct {
	Type        string
	Tags        []string
	SearchQuery string
}

// ParseQuery extracts slash commands from the raw query string
// Supported:
// /type:<document|outline> -> Filter by note type
// /tag:<term> OR #<term> -> Filter by tag, repeatable
// <text> -> Remaining text is the SearchQuery
func ParseQuery(raw string) InlineFilters {
	filters := InlineFilters{}
	var cleanParts []string

	for _, part := range strings.Fields(raw) {
		lowerPart := strings.ToLower(part)

		switch {
		case strings.HasPrefix(lowerPart, "/type:"):
			filters.Type = strings.TrimPrefix(lowerPart, "/type:")
		case strings.HasPrefix(lowerPart, "/tag:"):
			if tag := part[len("/tag:"):]; tag != "" {
				filters.Tags = append(filters.Tags, tag)
			}
		case len(part) > 1 && strings.HasPrefix(part, "#"):
			filters.Tags = append(filters.Tags, part[1:])
		default:
			cleanParts = append(cleanParts, part)
		}
	}

	filters.SearchQuery = strings.Join(cleanParts, " ")
	return filters
}

// Merge folds inline filters into explicit ones. Explicit type wins; tags are unioned.
func (f Filters) Merge(inline InlineFilters) Filters {
	out := f
	if out.Type == "" {
		out.Type = inline.Type
	}
	out.Tags = compactTags(append(append([]string{}, f.Tags...), inline.Tags...))
	return out
}
