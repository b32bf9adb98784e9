package flows

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"docai/api/internal/ai"
	"docai/api/internal/docgen"
)

type fakeClient struct {
	generateDocumentFn func(context.Context, string) (*ai.DocumentDraft, error)
	generateImageFn    func(context.Context, string) (string, error)
	completeFn         func(context.Context, string, string) (string, error)
	completeJSONFn     func(context.Context, string, string, any) error
}

func (f *fakeClient) GenerateDocument(ctx context.Context, instructions string) (*ai.DocumentDraft, error) {
	if f.generateDocumentFn != nil {
		return f.generateDocumentFn(ctx, instructions)
	}
	return &ai.DocumentDraft{}, nil
}

func (f *fakeClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if f.generateImageFn != nil {
		return f.generateImageFn(ctx, prompt)
	}
	return "data:image/png;base64,aW1n", nil
}

func (f *fakeClient) Complete(ctx context.Context, system, user string) (string, error) {
	if f.completeFn != nil {
		return f.completeFn(ctx, system, user)
	}
	return "generated text", nil
}

func (f *fakeClient) CompleteJSON(ctx context.Context, system, user string, out any) error {
	if f.completeJSONFn != nil {
		return f.completeJSONFn(ctx, system, user, out)
	}
	return nil
}

const longText = "This chapter covers the water cycle in depth: evaporation from oceans and lakes, condensation into clouds, precipitation as rain and snow, and collection in rivers and groundwater."

func TestAnalyze(t *testing.T) {
	svc := New(&fakeClient{
		completeJSONFn: func(_ context.Context, _, user string, out any) error {
			if !strings.Contains(user, "Question: What drives evaporation?") {
				t.Errorf("question not in prompt: %q", user)
			}
			return json.Unmarshal([]byte(`{"summary":"The water cycle.","answer":"Solar energy."}`), out)
		},
	})

	out, err := svc.Analyze(context.Background(), AnalyzeInput{
		DocumentContent: longText,
		UserQuestion:    "What drives evaporation?",
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if out.Summary == "" || out.Answer != "Solar energy." {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestValidationShortCircuits(t *testing.T) {
	svc := New(&fakeClient{
		completeFn: func(context.Context, string, string) (string, error) {
			t.Error("provider called for invalid input")
			return "", nil
		},
		completeJSONFn: func(context.Context, string, string, any) error {
			t.Error("provider called for invalid input")
			return nil
		},
	})
	ctx := context.Background()

	tests := []struct {
		name  string
		field string
		run   func() error
	}{
		{"analyze short content", "documentContent", func() error {
			_, err := svc.Analyze(ctx, AnalyzeInput{DocumentContent: "too short", UserQuestion: "why is it?"})
			return err
		}},
		{"resume empty skills", "skills", func() error {
			_, err := svc.DraftResume(ctx, ResumeInput{Skills: "go", Experience: "ten years of backend work"})
			return err
		}},
		{"notes short chapter", "chapterContent", func() error {
			_, err := svc.GenerateShortNotes(ctx, ShortNotesInput{ChapterContent: "short"})
			return err
		}},
		{"booklet detail level", "detailLevel", func() error {
			_, err := svc.SolveBooklet(ctx, BookletInput{DocumentContent: longText, DetailLevel: "verbose"})
			return err
		}},
		{"handwriting font", "fontName", func() error {
			_, err := svc.ConvertToHandwriting(ctx, HandwritingInput{SourceText: longText, FontName: "Comic Sans"})
			return err
		}},
		{"assistant empty message", "message", func() error {
			_, err := svc.Chat(ctx, AssistantInput{})
			return err
		}},
		{"editor empty content", "documentContent", func() error {
			_, err := svc.EditDocument(ctx, EditorInput{})
			return err
		}},
		{"exam short syllabus", "syllabus", func() error {
			_, err := svc.GenerateExamPaper(ctx, ExamInput{Syllabus: "algebra"})
			return err
		}},
		{"illustration short title", "title", func() error {
			_, err := svc.GenerateIllustration(ctx, IllustrationInput{Title: "ab", Description: "a long enough description"})
			return err
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			var verr *docgen.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Fields[0].Field != tc.field {
				t.Errorf("expected field %s, got %s", tc.field, verr.Fields[0].Field)
			}
		})
	}
}

func TestGenerateExamPaperTwoCalls(t *testing.T) {
	var calls []string
	svc := New(&fakeClient{
		completeFn: func(_ context.Context, system, user string) (string, error) {
			calls = append(calls, system)
			if strings.Contains(system, "answer key") {
				if !strings.Contains(user, "Q1.") {
					t.Error("answer-key call not grounded on the generated paper")
				}
				return "1. 42", nil
			}
			return "Q1. What is 6*7? (2 marks)", nil
		},
	})

	out, err := svc.GenerateExamPaper(context.Background(), ExamInput{
		Syllabus:      "basic arithmetic with multiplication",
		QuestionCount: 1,
	})
	if err != nil {
		t.Fatalf("GenerateExamPaper failed: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 provider calls, got %d", len(calls))
	}
	if out.PaperMarkdown == "" || out.AnswerKeyMarkdown == "" {
		t.Errorf("incomplete output: %+v", out)
	}
}

func TestIllustrationImageDegradesOnFailure(t *testing.T) {
	svc := New(&fakeClient{
		completeJSONFn: func(_ context.Context, _, _ string, out any) error {
			return json.Unmarshal([]byte(`{"sections":[{"heading":"One","body":"First"}]}`), out)
		},
		generateImageFn: func(context.Context, string) (string, error) {
			return "", errors.New("image model down")
		},
	})

	out, err := svc.GenerateIllustration(context.Background(), IllustrationInput{
		Title:       "Water Cycle",
		Description: "The stages of the water cycle",
	})
	if err != nil {
		t.Fatalf("image failure should not fail the flow: %v", err)
	}
	if out.ImageDataURI != "" {
		t.Error("expected no image on failure")
	}
	if len(out.Sections) != 1 {
		t.Errorf("sections lost: %+v", out)
	}
}

func TestConvertToHandwriting(t *testing.T) {
	svc := New(&fakeClient{
		completeFn: func(_ context.Context, _, user string) (string, error) {
			if !strings.Contains(user, "Humanize level: high") {
				t.Errorf("humanize level missing from prompt: %q", user)
			}
			return "dear diary\n\ntoday was gr8", nil
		},
	})

	out, err := svc.ConvertToHandwriting(context.Background(), HandwritingInput{SourceText: longText})
	if err != nil {
		t.Fatalf("ConvertToHandwriting failed: %v", err)
	}
	if !strings.Contains(out.HTML, "'Patrick Hand'") {
		t.Errorf("default handwriting font not applied: %q", out.HTML)
	}
	if got := strings.Count(out.HTML, "<p>"); got != 2 {
		t.Errorf("expected 2 paragraphs, got %d", got)
	}
}

func TestChatFlattensHistory(t *testing.T) {
	svc := New(&fakeClient{
		completeFn: func(_ context.Context, _, user string) (string, error) {
			if !strings.Contains(user, "assistant: Try an outline first.") {
				t.Errorf("history missing from prompt: %q", user)
			}
			if !strings.HasSuffix(user, "user: What next?") {
				t.Errorf("latest message not last: %q", user)
			}
			return "Draft the introduction.", nil
		},
	})

	out, err := svc.Chat(context.Background(), AssistantInput{
		History: []AssistantMessage{
			{Role: "user", Content: "Help me with an essay."},
			{Role: "assistant", Content: "Try an outline first."},
		},
		Message: "What next?",
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if out.Reply != "Draft the introduction." {
		t.Errorf("unexpected reply: %q", out.Reply)
	}
}
