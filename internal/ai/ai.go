// Package ai wraps the generative AI providers behind a small client
// interface so the generation pipeline and flows can be tested without
// network access.
package ai

import (
	"context"
	"errors"
)

// PageDraft is one page or slide as produced by the text model.
type PageDraft struct {
	Title       string `json:"title,omitempty"`
	Content     string `json:"content"`
	ImagePrompt string `json:"imagePrompt,omitempty"`
}

// ThemeDraft is the document-wide visual theme produced alongside the pages.
type ThemeDraft struct {
	BackgroundColor  string `json:"backgroundColor"`
	TextColor        string `json:"textColor"`
	HeadingColor     string `json:"headingColor"`
	BackgroundPrompt string `json:"backgroundPrompt"`
}

// DocumentDraft is the structured output of a single text-generation call.
type DocumentDraft struct {
	Pages []PageDraft `json:"pages"`
	Theme ThemeDraft  `json:"theme"`
}

// Client is the provider-facing surface used by the pipeline and flows.
type Client interface {
	// GenerateDocument runs one structured pages+theme call.
	GenerateDocument(ctx context.Context, instructions string) (*DocumentDraft, error)
	// GenerateImage returns a base64 data URI for the prompt.
	GenerateImage(ctx context.Context, prompt string) (string, error)
	// Complete runs a plain text completion.
	Complete(ctx context.Context, system, user string) (string, error)
	// CompleteJSON runs a completion expected to return JSON and decodes it into out.
	CompleteJSON(ctx context.Context, system, user string, out any) error
}

// ErrImagesUnsupported is returned by providers without an image model.
var ErrImagesUnsupported = errors.New("ai: image generation not supported by provider")
