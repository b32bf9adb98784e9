package flows

import (
	"context"
	"fmt"
	"strings"

	"docai/api/internal/docgen"
)

type AnalyzeInput struct {
	DocumentContent string `json:"documentContent"`
	UserQuestion    string `json:"userQuestion"`
}

type AnalyzeOutput struct {
	Summary string `json:"summary"`
	Answer  string `json:"answer"`
}

func (in AnalyzeInput) Validate() *docgen.ValidationError {
	if len(strings.TrimSpace(in.DocumentContent)) < 50 {
		return docgen.NewValidationError("documentContent", "document content must be at least 50 characters")
	}
	if len(strings.TrimSpace(in.UserQuestion)) < 5 {
		return docgen.NewValidationError("userQuestion", "question must be at least 5 characters")
	}
	return nil
}

const analyzeSystem = `You are a document analysis assistant. Summarize the document and answer the user's question strictly from the document's content. Respond with ONLY a JSON object: {"summary":"...","answer":"..."}.`

// Analyze summarizes a document and answers one question about it.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) (*AnalyzeOutput, error) {
	if verr := in.Validate(); verr != nil {
		return nil, verr
	}
	user := fmt.Sprintf("Document:\n\"\"\"\n%s\n\"\"\"\n\nQuestion: %s", in.DocumentContent, in.UserQuestion)
	var out AnalyzeOutput
	if err := s.client.CompleteJSON(ctx, analyzeSystem, user, &out); err != nil {
		return nil, fmt.Errorf("analyze document: %w", err)
	}
	return &out, nil
}
