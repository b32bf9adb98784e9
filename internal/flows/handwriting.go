package flows

import (
	"context"
	"fmt"
	"html"
	"strings"

	"docai/api/internal/docgen"
)

type HumanizeLevel string

const (
	HumanizeLow    HumanizeLevel = "low"
	HumanizeMedium HumanizeLevel = "medium"
	HumanizeHigh   HumanizeLevel = "high"
)

var humanizeLevels = map[HumanizeLevel]struct{}{
	HumanizeLow: {}, HumanizeMedium: {}, HumanizeHigh: {},
}

type HandwritingInput struct {
	SourceText    string        `json:"sourceText"`
	FontName      string        `json:"fontName"`
	HumanizeLevel HumanizeLevel `json:"humanizeLevel"`
}

type HandwritingOutput struct {
	HumanizedText string `json:"humanizedText"`
	HTML          string `json:"html"`
}

func (in *HandwritingInput) Normalize() {
	if in.FontName == "" {
		in.FontName = "Patrick Hand"
	}
	if in.HumanizeLevel == "" {
		in.HumanizeLevel = HumanizeHigh
	}
}

func (in HandwritingInput) Validate() *docgen.ValidationError {
	if len(strings.TrimSpace(in.SourceText)) < 20 {
		return docgen.NewValidationError("sourceText", "enter at least 20 characters of text to convert")
	}
	if !docgen.IsValidFont(in.FontName) {
		return docgen.NewValidationError("fontName", fmt.Sprintf("unknown font %q", in.FontName))
	}
	if _, ok := humanizeLevels[in.HumanizeLevel]; !ok {
		return docgen.NewValidationError("humanizeLevel", fmt.Sprintf("unknown humanize level %q", in.HumanizeLevel))
	}
	return nil
}

const handwritingSystem = `You rewrite text so it reads like a student's handwritten notes: small natural variations in phrasing, occasional abbreviations, no markdown. Higher humanize levels mean more variation. Return only the rewritten text.`

// ConvertToHandwriting rewrites the text and wraps it in a page styled
// with the chosen handwriting font, ready for PDF export.
func (s *Service) ConvertToHandwriting(ctx context.Context, in HandwritingInput) (*HandwritingOutput, error) {
	in.Normalize()
	if verr := in.Validate(); verr != nil {
		return nil, verr
	}

	user := fmt.Sprintf("Humanize level: %s\n\nText:\n\"\"\"\n%s\n\"\"\"", in.HumanizeLevel, in.SourceText)
	text, err := s.client.Complete(ctx, handwritingSystem, user)
	if err != nil {
		return nil, fmt.Errorf("convert to handwriting: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("convert to handwriting: %w", docgen.ErrGenerationFailed)
	}

	return &HandwritingOutput{
		HumanizedText: text,
		HTML:          handwritingHTML(text, in.FontName),
	}, nil
}

func handwritingHTML(text, fontName string) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: '` + fontName + `', cursive; font-size: 1.4rem; line-height: 2.2; background: #fffef5; padding: 2rem;">`)
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(para), "\n", "<br/>"))
		b.WriteString("</p>")
	}
	b.WriteString("</div>")
	return b.String()
}
