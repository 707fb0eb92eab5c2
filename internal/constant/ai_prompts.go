package constant

const (
	AnswerSystemPrompt = "You are a helpful assistant that answers questions based on the user's notes. Use the provided note context to answer questions accurately."

	// AnswerUserPrompt takes the assembled context then the question.
	AnswerUserPrompt = "Context:\n%s\n\nQuestion: %s"

	TagsSystemPrompt = "You are a helpful assistant that generates relevant tags for notes. Return only a JSON object of the form {\"tags\": [\"tag\", ...]}, no other text."
	TagsUserPrompt   = "Generate relevant tags for this note content: %s"

	ImproveSystemPrompt = "You are a helpful assistant that improves writing while maintaining the original meaning and style."
	ImproveUserPrompt   = "Improve this text while keeping its meaning and style: %s"

	SummarySystemPrompt = "You are a helpful assistant that generates concise summaries. Keep summaries to 2-3 sentences."
	SummaryUserPrompt   = "Generate a concise summary of this text: %s"
)
