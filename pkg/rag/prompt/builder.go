package prompt

import (
	"fmt"

	"notegraph-be/internal/constant"
	"notegraph-be/pkg/llm"
)

// BuildAnswerMessages grounds the question in the assembled note context.
// An empty context still yields a complete request; the model answers ungrounded.
func BuildAnswerMessages(noteContext, question string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: constant.AnswerSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(constant.AnswerUserPrompt, noteContext, question)},
	}
}

// BuildSingleShot pairs a fixed system prompt with one formatted user turn.
func BuildSingleShot(system, userFormat, content string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: fmt.Sprintf(userFormat, content)},
	}
}
