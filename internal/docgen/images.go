package docgen

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
)

// generateImages runs one image call per non-empty prompt, all
// concurrently, and returns a slice aligned 1:1 with prompts. Empty
// prompts short-circuit to an empty slot without a call. A failed call
// is logged and leaves its slot empty; it never fails a sibling call or
// the step itself.
func (p *Pipeline) generateImages(ctx context.Context, prompts []string) []string {
	results := make([]string, len(prompts))

	var g errgroup.Group
	if p.imageParallel > 0 {
		g.SetLimit(p.imageParallel)
	}
	for i, prompt := range prompts {
		if strings.TrimSpace(prompt) == "" {
			continue
		}
		g.Go(func() error {
			callCtx := ctx
			if p.imageTimeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, p.imageTimeout)
				defer cancel()
			}
			uri, err := p.client.GenerateImage(callCtx, prompt)
			if err != nil {
				log.Printf("docgen: image generation failed for prompt %q: %v", truncate(prompt, 60), err)
				return nil
			}
			results[i] = uri
			return nil
		})
	}
	// Goroutines always return nil; Wait only synchronizes.
	_ = g.Wait()
	return results
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
