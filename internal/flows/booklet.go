package flows

import (
	"context"
	"fmt"
	"strings"

	"docai/api/internal/docgen"
)

type AnswerDetail string

const (
	AnswerShort    AnswerDetail = "short"
	AnswerMedium   AnswerDetail = "medium"
	AnswerDetailed AnswerDetail = "detailed"
)

var answerDetails = map[AnswerDetail]struct{}{
	AnswerShort: {}, AnswerMedium: {}, AnswerDetailed: {},
}

type BookletInput struct {
	DocumentContent string       `json:"documentContent"`
	DetailLevel     AnswerDetail `json:"detailLevel"`
}

type BookletOutput struct {
	AnswerKeyMarkdown string `json:"answerKeyMarkdown"`
}

func (in *BookletInput) Normalize() {
	if in.DetailLevel == "" {
		in.DetailLevel = AnswerDetailed
	}
}

func (in BookletInput) Validate() *docgen.ValidationError {
	if len(strings.TrimSpace(in.DocumentContent)) < 100 {
		return docgen.NewValidationError("documentContent", "document content must be at least 100 characters")
	}
	if _, ok := answerDetails[in.DetailLevel]; !ok {
		return docgen.NewValidationError("detailLevel", fmt.Sprintf("unknown detail level %q", in.DetailLevel))
	}
	return nil
}

const bookletSystem = `You are an expert tutor. The input is a question booklet or exam paper. Solve every question in order and produce a numbered answer key in markdown. Return only the answer key markdown.`

// SolveBooklet answers every question found in a question booklet.
func (s *Service) SolveBooklet(ctx context.Context, in BookletInput) (*BookletOutput, error) {
	in.Normalize()
	if verr := in.Validate(); verr != nil {
		return nil, verr
	}
	user := fmt.Sprintf("Answer detail: %s\n\nBooklet:\n\"\"\"\n%s\n\"\"\"", in.DetailLevel, in.DocumentContent)
	md, err := s.client.Complete(ctx, bookletSystem, user)
	if err != nil {
		return nil, fmt.Errorf("solve booklet: %w", err)
	}
	if strings.TrimSpace(md) == "" {
		return nil, fmt.Errorf("solve booklet: %w", docgen.ErrGenerationFailed)
	}
	return &BookletOutput{AnswerKeyMarkdown: md}, nil
}
