package flows

import (
	"context"
	"fmt"
	"strings"

	"docai/api/internal/docgen"
)

type NotesDetail string

const (
	NotesConcise       NotesDetail = "concise"
	NotesDetailed      NotesDetail = "detailed"
	NotesComprehensive NotesDetail = "comprehensive"
)

var notesDetails = map[NotesDetail]struct{}{
	NotesConcise: {}, NotesDetailed: {}, NotesComprehensive: {},
}

type ShortNotesInput struct {
	ChapterContent string      `json:"chapterContent"`
	DetailLevel    NotesDetail `json:"detailLevel"`
}

type ShortNotesOutput struct {
	NotesMarkdown string `json:"notesMarkdown"`
}

func (in *ShortNotesInput) Normalize() {
	if in.DetailLevel == "" {
		in.DetailLevel = NotesDetailed
	}
}

func (in ShortNotesInput) Validate() *docgen.ValidationError {
	if len(strings.TrimSpace(in.ChapterContent)) < 100 {
		return docgen.NewValidationError("chapterContent", "chapter content must be at least 100 characters")
	}
	if _, ok := notesDetails[in.DetailLevel]; !ok {
		return docgen.NewValidationError("detailLevel", fmt.Sprintf("unknown detail level %q", in.DetailLevel))
	}
	return nil
}

const notesSystem = `You are a study-notes writer. Condense the chapter into revision notes in markdown: headings, bullet points, bolded key terms. Return only the notes markdown.`

// GenerateShortNotes condenses chapter text into revision notes.
func (s *Service) GenerateShortNotes(ctx context.Context, in ShortNotesInput) (*ShortNotesOutput, error) {
	in.Normalize()
	if verr := in.Validate(); verr != nil {
		return nil, verr
	}
	user := fmt.Sprintf("Detail level: %s\n\nChapter:\n\"\"\"\n%s\n\"\"\"", in.DetailLevel, in.ChapterContent)
	md, err := s.client.Complete(ctx, notesSystem, user)
	if err != nil {
		return nil, fmt.Errorf("generate short notes: %w", err)
	}
	if strings.TrimSpace(md) == "" {
		return nil, fmt.Errorf("generate short notes: %w", docgen.ErrGenerationFailed)
	}
	return &ShortNotesOutput{NotesMarkdown: md}, nil
}
