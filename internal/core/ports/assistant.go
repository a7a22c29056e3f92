package ports

import "context"

// GenerationParams are the sampling settings sent with every prompt.
type GenerationParams struct {
	Temperature float32
	MaxTokens   int
}

// TextGenerator is a hosted text-generation model: one prompt in, text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// ChatTurn is one prior message in a conversation. Role is "user" or "assistant".
type ChatTurn struct {
	Role    string
	Content string
}

// AssistantService answers questions and drafts text.
type AssistantService interface {
	// Answer never fails; errors degrade to a fixed reply.
	Answer(ctx context.Context, history []ChatTurn, message string) string
	DraftEventDescription(ctx context.Context, title, date, location string) (string, error)
	DraftReminderNote(ctx context.Context, title, remindAtLocal string) (string, error)
}
