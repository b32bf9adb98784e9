package flows

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"docai/api/internal/ai"
	"docai/api/internal/docgen"
)

type ColorPalette string

const (
	PaletteVibrant       ColorPalette = "vibrant"
	PaletteProfessional  ColorPalette = "professional"
	PalettePastel        ColorPalette = "pastel"
	PaletteMonochromatic ColorPalette = "monochromatic"
)

var palettes = map[ColorPalette]struct{}{
	PaletteVibrant: {}, PaletteProfessional: {}, PalettePastel: {}, PaletteMonochromatic: {},
}

type IllustrationInput struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	NumItems     int          `json:"numItems"`
	ColorPalette ColorPalette `json:"colorPalette"`
}

type IllustrationSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

type IllustrationOutput struct {
	Sections     []IllustrationSection `json:"sections"`
	ImageDataURI string                `json:"imageDataUri,omitempty"`
}

func (in *IllustrationInput) Normalize() {
	if in.NumItems < 2 {
		in.NumItems = 2
	}
	if in.NumItems > 10 {
		in.NumItems = 10
	}
	if in.ColorPalette == "" {
		in.ColorPalette = PaletteVibrant
	}
}

func (in IllustrationInput) Validate() *docgen.ValidationError {
	if len(strings.TrimSpace(in.Title)) < 3 {
		return docgen.NewValidationError("title", "title must be at least 3 characters")
	}
	if len(strings.TrimSpace(in.Description)) < 10 {
		return docgen.NewValidationError("description", "description must be at least 10 characters")
	}
	if _, ok := palettes[in.ColorPalette]; !ok {
		return docgen.NewValidationError("colorPalette", fmt.Sprintf("unknown color palette %q", in.ColorPalette))
	}
	return nil
}

const illustrationSystem = `You are an infographic designer. Break the topic into labeled sections and respond with ONLY JSON: {"sections":[{"heading":"...","body":"..."}]}.`

// GenerateIllustration is a two-call flow: sections from the text model,
// then one image for the whole infographic. A failed image call degrades
// to a sections-only result rather than failing the flow.
func (s *Service) GenerateIllustration(ctx context.Context, in IllustrationInput) (*IllustrationOutput, error) {
	in.Normalize()
	if verr := in.Validate(); verr != nil {
		return nil, verr
	}

	user := fmt.Sprintf("Title: %s\nDescription: %s\nProduce exactly %d sections.", in.Title, in.Description, in.NumItems)
	var out IllustrationOutput
	if err := s.client.CompleteJSON(ctx, illustrationSystem, user, &out); err != nil {
		return nil, fmt.Errorf("generate illustration: %w", err)
	}
	if len(out.Sections) == 0 {
		return nil, fmt.Errorf("generate illustration: %w", docgen.ErrGenerationFailed)
	}

	imagePrompt := fmt.Sprintf(
		"A clean vector infographic titled %q with %d labeled segments, %s color palette, white background, no photograph.",
		in.Title, in.NumItems, in.ColorPalette)
	uri, err := s.client.GenerateImage(ctx, imagePrompt)
	if err != nil {
		if !errors.Is(err, ai.ErrImagesUnsupported) {
			log.Printf("flows: illustration image failed: %v", err)
		}
	} else {
		out.ImageDataURI = uri
	}
	return &out, nil
}
