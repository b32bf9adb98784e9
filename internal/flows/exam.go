package flows

import (
	"context"
	"fmt"
	"strings"

	"docai/api/internal/docgen"
)

type ExamDifficulty string

const (
	ExamEasy   ExamDifficulty = "easy"
	ExamMedium ExamDifficulty = "medium"
	ExamHard   ExamDifficulty = "hard"
)

var examDifficulties = map[ExamDifficulty]struct{}{
	ExamEasy: {}, ExamMedium: {}, ExamHard: {},
}

type ExamInput struct {
	Syllabus      string         `json:"syllabus"`
	QuestionCount int            `json:"questionCount"`
	Difficulty    ExamDifficulty `json:"difficulty"`
}

type ExamOutput struct {
	PaperMarkdown     string `json:"paperMarkdown"`
	AnswerKeyMarkdown string `json:"answerKeyMarkdown"`
}

func (in *ExamInput) Normalize() {
	if in.QuestionCount < 1 {
		in.QuestionCount = 10
	}
	if in.QuestionCount > 50 {
		in.QuestionCount = 50
	}
	if in.Difficulty == "" {
		in.Difficulty = ExamMedium
	}
}

func (in ExamInput) Validate() *docgen.ValidationError {
	if len(strings.TrimSpace(in.Syllabus)) < 20 {
		return docgen.NewValidationError("syllabus", "syllabus must be at least 20 characters")
	}
	if _, ok := examDifficulties[in.Difficulty]; !ok {
		return docgen.NewValidationError("difficulty", fmt.Sprintf("unknown difficulty %q", in.Difficulty))
	}
	return nil
}

const examPaperSystem = `You are an examiner. Set an exam paper in markdown from the syllabus: numbered questions only, with mark allocations. Return only the paper markdown.`

const examKeySystem = `You are an examiner. Produce the model answer key in markdown for the exam paper provided, numbered to match. Return only the answer key markdown.`

// GenerateExamPaper is the two-call variant: paper first, then its
// answer key grounded on the generated paper.
func (s *Service) GenerateExamPaper(ctx context.Context, in ExamInput) (*ExamOutput, error) {
	in.Normalize()
	if verr := in.Validate(); verr != nil {
		return nil, verr
	}

	paperReq := fmt.Sprintf("Difficulty: %s\nQuestions: exactly %d\n\nSyllabus:\n\"\"\"\n%s\n\"\"\"", in.Difficulty, in.QuestionCount, in.Syllabus)
	paper, err := s.client.Complete(ctx, examPaperSystem, paperReq)
	if err != nil {
		return nil, fmt.Errorf("generate exam paper: %w", err)
	}
	if strings.TrimSpace(paper) == "" {
		return nil, fmt.Errorf("generate exam paper: %w", docgen.ErrGenerationFailed)
	}

	key, err := s.client.Complete(ctx, examKeySystem, paper)
	if err != nil {
		return nil, fmt.Errorf("generate exam answer key: %w", err)
	}

	return &ExamOutput{PaperMarkdown: paper, AnswerKeyMarkdown: key}, nil
}
