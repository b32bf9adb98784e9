package docgen

import (
	"context"
	"fmt"
	"time"

	"docai/api/internal/ai"
)

// Pipeline orchestrates the three generation steps. It is safe for
// concurrent use; each Generate call is independent.
type Pipeline struct {
	client        ai.Client
	imageTimeout  time.Duration
	imageParallel int
}

func NewPipeline(client ai.Client, imageTimeout time.Duration, imageParallel int) *Pipeline {
	return &Pipeline{
		client:        client,
		imageTimeout:  imageTimeout,
		imageParallel: imageParallel,
	}
}

// Generate validates the request, runs the text step, fans out the image
// step, and assembles the result. Validation and text failures abort the
// whole operation; individual image failures degrade to missing images.
func (p *Pipeline) Generate(ctx context.Context, req GenerationRequest) (*DocumentResult, error) {
	req.Normalize()
	if verr := req.Validate(); verr != nil {
		return nil, verr
	}

	// Text step runs first so every image prompt is known before fan-out.
	draft, err := p.client.GenerateDocument(ctx, BuildInstructions(req))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(draft.Pages) == 0 || themeMissing(draft.Theme) {
		return nil, ErrGenerationFailed
	}

	// Image step: slot 0 is reserved for the presentation template
	// background; the remainder aligns 1:1 with pages.
	prompts := make([]string, 0, len(draft.Pages)+1)
	if req.IsPresentation() && req.WantsTemplate() {
		prompts = append(prompts, draft.Theme.BackgroundPrompt)
	} else {
		prompts = append(prompts, "")
	}
	for _, page := range draft.Pages {
		prompts = append(prompts, page.ImagePrompt)
	}
	images := p.generateImages(ctx, prompts)

	return assemble(draft, images[0], images[1:], req.IsPresentation())
}

func themeMissing(t ai.ThemeDraft) bool {
	return t.BackgroundColor == "" && t.TextColor == "" && t.HeadingColor == ""
}
