package search

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestToExcerpt(t *testing.T) {
	t.Run("highlight wins", func(t *testing.T) {
		hit := Hit{
			ID:         "n1",
			Source:     Document{Title: "T", Content: strings.Repeat("a", 400)},
			Highlights: map[string][]string{"content": {"the <em>match</em>"}},
		}
		assert.Equal(t, "the <em>match</em>", ToExcerpt(hit).Text)
	})

	t.Run("short content is kept whole", func(t *testing.T) {
		ex := ToExcerpt(Hit{Source: Document{Content: "short note"}})
		assert.Equal(t, "short note...", ex.Text)
		assert.Equal(t, []string{}, ex.Tags)
	})

	t.Run("blank highlight falls back to content", func(t *testing.T) {
		hit := Hit{Source: Document{Content: "body"}, Highlights: map[string][]string{"content": {"  "}}}
		assert.Equal(t, "body...", ToExcerpt(hit).Text)
	})

	t.Run("long content is cut and marked", func(t *testing.T) {
		content := strings.Repeat("c", 151)
		text := ToExcerpt(Hit{Source: Document{Content: content}}).Text
		assert.Equal(t, strings.Repeat("c", 150)+"...", text)
	})

	t.Run("cut counts characters not bytes", func(t *testing.T) {
		content := strings.Repeat("é", 200)
		text := ToExcerpt(Hit{Source: Document{Content: content}}).Text
		assert.True(t, utf8.ValidString(text))
		assert.Equal(t, 153, utf8.RuneCountInString(text))
	})
}
