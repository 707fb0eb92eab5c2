package prompt

import (
	"testing"

	"notegraph-be/internal/constant"
	"notegraph-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAnswerMessages(t *testing.T) {
	msgs := BuildAnswerMessages("Note \"A\": body", "what is A?")
	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, constant.AnswerSystemPrompt, msgs[0].Content)
	assert.Equal(t, "Context:\nNote \"A\": body\n\nQuestion: what is A?", msgs[1].Content)
}

func TestBuildAnswerMessagesEmptyContext(t *testing.T) {
	msgs := BuildAnswerMessages("", "anything?")
	assert.Equal(t, "Context:\n\n\nQuestion: anything?", msgs[1].Content)
}
