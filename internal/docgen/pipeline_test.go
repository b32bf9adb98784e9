package docgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"docai/api/internal/ai"
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
	return &ai.DocumentDraft{
		Pages: []ai.PageDraft{{Content: "Hello"}},
		Theme: ai.ThemeDraft{BackgroundColor: "#ffffff", TextColor: "#333333", HeadingColor: "#111111"},
	}, nil
}

func (f *fakeClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if f.generateImageFn != nil {
		return f.generateImageFn(ctx, prompt)
	}
	return "data:image/png;base64,Zm9v", nil
}

func (f *fakeClient) Complete(ctx context.Context, system, user string) (string, error) {
	if f.completeFn != nil {
		return f.completeFn(ctx, system, user)
	}
	return "", nil
}

func (f *fakeClient) CompleteJSON(ctx context.Context, system, user string, out any) error {
	if f.completeJSONFn != nil {
		return f.completeJSONFn(ctx, system, user, out)
	}
	return nil
}

func newTestPipeline(client ai.Client) *Pipeline {
	return NewPipeline(client, 5*time.Second, 4)
}

func essayRequest(pages, images int) GenerationRequest {
	return GenerationRequest{
		Prompt:       "The history of the printing press",
		DocumentType: TypeEssay,
		PageCount:    pages,
		NumImages:    images,
		Theme:        ThemeMinimalist,
	}
}

func TestGenerateEssayEndToEnd(t *testing.T) {
	client := &fakeClient{
		generateDocumentFn: func(_ context.Context, instructions string) (*ai.DocumentDraft, error) {
			if !strings.Contains(instructions, "exactly 3 pages") {
				t.Errorf("instructions missing page count: %q", instructions)
			}
			return &ai.DocumentDraft{
				Pages: []ai.PageDraft{
					{Content: "## Origins\n\nMovable type.\n\n![Alt text](placeholder)", ImagePrompt: "A diagram of a printing press"},
					{Content: "## Spread\n\nAcross Europe."},
					{Content: "## Legacy\n\nMass literacy."},
				},
				Theme: ai.ThemeDraft{BackgroundColor: "#f8f8f8", TextColor: "#444444", HeadingColor: "#222222", BackgroundPrompt: "a single painted line"},
			}, nil
		},
	}

	result, err := newTestPipeline(client).Generate(context.Background(), essayRequest(3, 1))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(result.Pages))
	}
	withImage := 0
	for _, p := range result.Pages {
		if p.ImageDataURI != "" {
			withImage++
		}
	}
	if withImage != 1 {
		t.Errorf("expected exactly 1 page with an image, got %d", withImage)
	}
	if result.Theme.BackgroundColor != "#f8f8f8" {
		t.Errorf("expected off-white background, got %s", result.Theme.BackgroundColor)
	}
	if result.Theme.TextColor != "#444444" {
		t.Errorf("expected dark text, got %s", result.Theme.TextColor)
	}
	if result.IsPresentation {
		t.Error("essay result flagged as presentation")
	}
	if strings.Contains(result.Pages[0].Content, `src="placeholder"`) {
		t.Error("placeholder survived image substitution")
	}
	if !strings.Contains(result.Pages[0].Content, "data:image/png;base64,") {
		t.Error("image data URI not injected into page content")
	}
}

func TestGeneratePresentationShape(t *testing.T) {
	const contentSlides = 4
	client := &fakeClient{
		generateDocumentFn: func(_ context.Context, instructions string) (*ai.DocumentDraft, error) {
			if !strings.Contains(instructions, fmt.Sprintf("exactly %d", contentSlides+2)) {
				t.Errorf("presentation instructions missing slide total: %q", instructions)
			}
			pages := []ai.PageDraft{{Content: "Launch Plan"}}
			for i := 0; i < contentSlides; i++ {
				pages = append(pages, ai.PageDraft{Title: fmt.Sprintf("Step %d", i+1), Content: "- point"})
			}
			pages = append(pages, ai.PageDraft{Title: "Thank You", Content: "Q&A"})
			return &ai.DocumentDraft{
				Pages: pages,
				Theme: ai.ThemeDraft{BackgroundColor: "#111827", TextColor: "#F9FAFB", HeadingColor: "#38bdf8", BackgroundPrompt: "abstract geometric template border"},
			}, nil
		},
		generateImageFn: func(_ context.Context, prompt string) (string, error) {
			return "data:image/png;base64,dGVtcGxhdGU=", nil
		},
	}

	req := GenerationRequest{
		Prompt:       "Product launch",
		DocumentType: TypePresentation,
		PageCount:    contentSlides,
	}
	result, err := newTestPipeline(client).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Pages) != contentSlides+2 {
		t.Fatalf("expected %d slides, got %d", contentSlides+2, len(result.Pages))
	}
	if strings.Contains(result.Pages[0].MarkdownContent, "# ") {
		t.Error("title slide should have no title heading")
	}
	if !strings.Contains(result.Pages[len(result.Pages)-1].MarkdownContent, "Thank You") {
		t.Error("last slide is not a closing slide")
	}
	if !result.IsPresentation {
		t.Error("presentation flag not set")
	}
	if result.Theme.BackgroundImageDataURI == "" {
		t.Error("template background image missing")
	}
}

func TestGeneratePresentationWithoutTemplate(t *testing.T) {
	var imageCalls atomic.Int32
	client := &fakeClient{
		generateDocumentFn: func(context.Context, string) (*ai.DocumentDraft, error) {
			return &ai.DocumentDraft{
				Pages: []ai.PageDraft{{Content: "Title"}, {Title: "One", Content: "body"}, {Title: "Thanks", Content: "Q&A"}},
				Theme: ai.ThemeDraft{BackgroundColor: "#000000", TextColor: "#ffffff", HeadingColor: "#f59e0b", BackgroundPrompt: "abstract border"},
			}, nil
		},
		generateImageFn: func(_ context.Context, prompt string) (string, error) {
			imageCalls.Add(1)
			return "data:image/png;base64,eA==", nil
		},
	}

	noTemplate := false
	req := GenerationRequest{
		Prompt:           "Quarterly review",
		DocumentType:     TypePresentation,
		PageCount:        1,
		GenerateTemplate: &noTemplate,
	}
	result, err := newTestPipeline(client).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got := imageCalls.Load(); got != 0 {
		t.Errorf("expected no image calls, got %d", got)
	}
	if result.Theme.BackgroundImageDataURI != "" {
		t.Error("background image present despite generateTemplate=false")
	}
}

func TestGenerateTimetable(t *testing.T) {
	client := &fakeClient{
		generateDocumentFn: func(context.Context, string) (*ai.DocumentDraft, error) {
			return &ai.DocumentDraft{
				Pages: []ai.PageDraft{{Content: "| Time | Monday |\n| --- | --- |\n| 9:00 | Math |"}},
				Theme: ai.ThemeDraft{BackgroundColor: "#ffffff", TextColor: "#333333", HeadingColor: "#111111"},
			}, nil
		},
	}

	req := GenerationRequest{Prompt: "School week", DocumentType: TypeTimetable}
	result, err := newTestPipeline(client).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(result.Pages))
	}
	if !strings.Contains(result.Pages[0].MarkdownContent, "|") {
		t.Error("timetable content is not a markdown table")
	}
	if !strings.Contains(result.Pages[0].Content, "<table>") {
		t.Errorf("timetable table not rendered to HTML: %q", result.Pages[0].Content)
	}
	if result.Theme.BackgroundColor != "#ffffff" {
		t.Errorf("expected light background, got %s", result.Theme.BackgroundColor)
	}
}

func TestImageBudgetExact(t *testing.T) {
	const budget = 3
	var imageCalls atomic.Int32
	client := &fakeClient{
		generateDocumentFn: func(context.Context, string) (*ai.DocumentDraft, error) {
			pages := make([]ai.PageDraft, 5)
			for i := range pages {
				pages[i] = ai.PageDraft{Content: fmt.Sprintf("Page %d", i+1)}
			}
			// Budget distributed across pages 0, 2, 4.
			pages[0].ImagePrompt = "chart one"
			pages[2].ImagePrompt = "chart two"
			pages[4].ImagePrompt = "chart three"
			return &ai.DocumentDraft{
				Pages: pages,
				Theme: ai.ThemeDraft{BackgroundColor: "#ffffff", TextColor: "#333333", HeadingColor: "#111111"},
			}, nil
		},
		generateImageFn: func(_ context.Context, prompt string) (string, error) {
			imageCalls.Add(1)
			return "data:image/png;base64,aW1n", nil
		},
	}

	result, err := newTestPipeline(client).Generate(context.Background(), essayRequest(5, budget))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	withImage := 0
	for _, p := range result.Pages {
		if p.ImageDataURI != "" {
			withImage++
		}
	}
	if withImage != budget {
		t.Errorf("expected %d pages with images, got %d", budget, withImage)
	}
	if got := imageCalls.Load(); got != budget {
		t.Errorf("expected %d image calls, got %d", budget, got)
	}
}

func TestImageFaultIsolation(t *testing.T) {
	client := &fakeClient{
		generateDocumentFn: func(context.Context, string) (*ai.DocumentDraft, error) {
			return &ai.DocumentDraft{
				Pages: []ai.PageDraft{
					{Content: "a", ImagePrompt: "first"},
					{Content: "b", ImagePrompt: "second"},
					{Content: "c", ImagePrompt: "third"},
				},
				Theme: ai.ThemeDraft{BackgroundColor: "#ffffff", TextColor: "#333333", HeadingColor: "#111111"},
			}, nil
		},
		generateImageFn: func(_ context.Context, prompt string) (string, error) {
			if prompt == "second" {
				return "", errors.New("model overloaded")
			}
			return "data:image/png;base64," + prompt, nil
		},
	}

	result, err := newTestPipeline(client).Generate(context.Background(), essayRequest(3, 3))
	if err != nil {
		t.Fatalf("one failed image call sank the pipeline: %v", err)
	}
	if result.Pages[0].ImageDataURI == "" || result.Pages[2].ImageDataURI == "" {
		t.Error("sibling image calls lost their results")
	}
	if result.Pages[1].ImageDataURI != "" {
		t.Error("failed image call should degrade to no image")
	}
}

func TestGenerateFatalFailures(t *testing.T) {
	tests := []struct {
		name  string
		draft *ai.DocumentDraft
		err   error
	}{
		{name: "provider error", err: errors.New("rate limited")},
		{name: "no pages", draft: &ai.DocumentDraft{Theme: ai.ThemeDraft{BackgroundColor: "#fff", TextColor: "#333", HeadingColor: "#111"}}},
		{name: "no theme", draft: &ai.DocumentDraft{Pages: []ai.PageDraft{{Content: "x"}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var imageCalls atomic.Int32
			client := &fakeClient{
				generateDocumentFn: func(context.Context, string) (*ai.DocumentDraft, error) {
					return tc.draft, tc.err
				},
				generateImageFn: func(context.Context, string) (string, error) {
					imageCalls.Add(1)
					return "", nil
				},
			}
			_, err := newTestPipeline(client).Generate(context.Background(), essayRequest(1, 0))
			if !errors.Is(err, ErrGenerationFailed) {
				t.Fatalf("expected ErrGenerationFailed, got %v", err)
			}
			if imageCalls.Load() != 0 {
				t.Error("image step ran after a fatal text failure")
			}
		})
	}
}

func TestValidationRejectsBeforeProviderCall(t *testing.T) {
	called := false
	client := &fakeClient{
		generateDocumentFn: func(context.Context, string) (*ai.DocumentDraft, error) {
			called = true
			return nil, nil
		},
	}

	req := essayRequest(1, 0)
	req.Font = "Comic Sans"
	_, err := newTestPipeline(client).Generate(context.Background(), req)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0].Field != "font" {
		t.Errorf("unexpected fields: %+v", verr.Fields)
	}
	if called {
		t.Error("provider called despite invalid request")
	}
}
