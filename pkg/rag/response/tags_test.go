package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"object with tags", `{"tags": ["go", "graphs"]}`, []string{"go", "graphs"}},
		{"bare array", `["go", "graphs"]`, []string{"go", "graphs"}},
		{"trailing comma is repaired", `{"tags": ["go", "graphs",]}`, []string{"go", "graphs"}},
		{"fenced block", "```json\n{\"tags\": [\"rag\"]}\n```", []string{"rag"}},
		{"non string items dropped", `{"tags": [1, "x", null, " x ", ""]}`, []string{"x"}},
		{"tags not an array", `{"tags": "go"}`, []string{}},
		{"missing key", `{"keywords": ["go"]}`, []string{}},
		{"empty", "", []string{}},
		{"scalar", `42`, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseTags(tc.raw))
		})
	}
}

func TestParseTagsNeverPanicsOnProse(t *testing.T) {
	assert.NotPanics(t, func() {
		tags := ParseTags("Sure! Here are some tags you might like: go, graphs")
		assert.NotNil(t, tags)
	})
}
