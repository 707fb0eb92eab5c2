package search

import (
	"strings"
	"time"
)

const (
	ExcerptLength = 150
	ellipsis      = "..."
)

type Excerpt struct {
	ID        string
	Title     string
	Text      string
	Tags      []string
	Score     float64
	UpdatedAt time.Time
}

// ToExcerpt prefers the first content highlight. Without one it falls back to the
// first ExcerptLength characters of content followed by "...".
func ToExcerpt(hit Hit) Excerpt {
	tags := hit.Source.Tags
	if tags == nil {
		tags = []string{}
	}
	return Excerpt{
		ID:        hit.ID,
		Title:     hit.Source.Title,
		Text:      excerptText(hit),
		Tags:      tags,
		Score:     hit.Score,
		UpdatedAt: hit.Source.UpdatedAt,
	}
}

func excerptText(hit Hit) string {
	if fragments := hit.Highlights[FieldContent]; len(fragments) > 0 && strings.TrimSpace(fragments[0]) != "" {
		return fragments[0]
	}
	runes := []rune(hit.Source.Content)
	if len(runes) > ExcerptLength {
		runes = runes[:ExcerptLength]
	}
	return string(runes) + ellipsis
}
