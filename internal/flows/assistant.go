package flows

import (
	"context"
	"fmt"
	"strings"

	"docai/api/internal/docgen"
)

type AssistantMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type AssistantInput struct {
	History []AssistantMessage `json:"history"`
	Message string             `json:"message"`
}

type AssistantOutput struct {
	Reply string `json:"reply"`
}

func (in AssistantInput) Validate() *docgen.ValidationError {
	if strings.TrimSpace(in.Message) == "" {
		return docgen.NewValidationError("message", "message is required")
	}
	return nil
}

const assistantSystem = `You are the DOC AI assistant. Help users plan, outline, and refine documents, presentations, resumes, and study material. Be concise and practical.`

// Chat answers one assistant turn. History is flattened into the user
// prompt so the call stays a single completion like the other flows.
func (s *Service) Chat(ctx context.Context, in AssistantInput) (*AssistantOutput, error) {
	if verr := in.Validate(); verr != nil {
		return nil, verr
	}

	var b strings.Builder
	for _, m := range in.History {
		role := m.Role
		if role != "assistant" {
			role = "user"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, m.Content)
	}
	fmt.Fprintf(&b, "user: %s", in.Message)

	reply, err := s.client.Complete(ctx, assistantSystem, b.String())
	if err != nil {
		return nil, fmt.Errorf("assistant chat: %w", err)
	}
	return &AssistantOutput{Reply: reply}, nil
}
