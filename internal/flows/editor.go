package flows

import (
	"context"
	"fmt"
	"strings"

	"docai/api/internal/docgen"
)

type EditorInput struct {
	DocumentContent string `json:"documentContent"`
}

type EditorOutput struct {
	EditedContent string `json:"editedContent"`
}

func (in EditorInput) Validate() *docgen.ValidationError {
	if strings.TrimSpace(in.DocumentContent) == "" {
		return docgen.NewValidationError("documentContent", "document content is required")
	}
	return nil
}

const editorSystem = `You are an advanced professional document editor. Revise and enhance the document:
- formal, engaging, clear tone; active voice; no filler
- fix all grammar, punctuation, and spelling
- improve paragraph flow; consistent terminology
- add clear headings and subheadings
- open with a 3-6 line executive summary
Return the revised document in clean markdown ('#' headings, '##' subheadings, bullets where useful). Return only the revised document, no commentary.`

// EditDocument runs one professional editing pass over raw text.
func (s *Service) EditDocument(ctx context.Context, in EditorInput) (*EditorOutput, error) {
	if verr := in.Validate(); verr != nil {
		return nil, verr
	}
	md, err := s.client.Complete(ctx, editorSystem, in.DocumentContent)
	if err != nil {
		return nil, fmt.Errorf("edit document: %w", err)
	}
	if strings.TrimSpace(md) == "" {
		return nil, fmt.Errorf("edit document: %w", docgen.ErrGenerationFailed)
	}
	return &EditorOutput{EditedContent: md}, nil
}
