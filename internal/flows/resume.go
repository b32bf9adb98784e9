package flows

import (
	"context"
	"fmt"
	"strings"

	"docai/api/internal/docgen"
)

type ResumeInput struct {
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
}

type ResumeOutput struct {
	ResumeMarkdown string `json:"resumeMarkdown"`
}

func (in ResumeInput) Validate() *docgen.ValidationError {
	if len(strings.TrimSpace(in.Skills)) < 10 {
		return docgen.NewValidationError("skills", "skills section must not be empty")
	}
	if len(strings.TrimSpace(in.Experience)) < 20 {
		return docgen.NewValidationError("experience", "experience section must not be empty")
	}
	return nil
}

const resumeSystem = `You are a professional resume writer. Draft a polished one-page resume in clean markdown: a headline, a skills section, and an experience section with strong action verbs. Return only the resume markdown, no commentary.`

// DraftResume produces a resume from free-text skills and experience.
func (s *Service) DraftResume(ctx context.Context, in ResumeInput) (*ResumeOutput, error) {
	if verr := in.Validate(); verr != nil {
		return nil, verr
	}
	user := fmt.Sprintf("Skills:\n%s\n\nExperience:\n%s", in.Skills, in.Experience)
	md, err := s.client.Complete(ctx, resumeSystem, user)
	if err != nil {
		return nil, fmt.Errorf("draft resume: %w", err)
	}
	if strings.TrimSpace(md) == "" {
		return nil, fmt.Errorf("draft resume: %w", docgen.ErrGenerationFailed)
	}
	return &ResumeOutput{ResumeMarkdown: md}, nil
}
