package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	genai "google.golang.org/genai"
)

// Gemini implements Client using the google.golang.org/genai SDK.
type Gemini struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

func NewGemini(ctx context.Context, apiKey, textModel, imageModel string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	if textModel == "" {
		textModel = "gemini-2.5-flash"
	}
	if imageModel == "" {
		imageModel = "gemini-2.0-flash-preview-image-generation"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: c, textModel: textModel, imageModel: imageModel}, nil
}

// documentSchema constrains the pages+theme call to the shape the
// pipeline consumes.
var documentSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"pages": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":       {Type: genai.TypeString, Description: "Slide title. Empty for non-presentation pages and the title slide."},
					"content":     {Type: genai.TypeString, Description: "Markdown body. Include ![Alt text](placeholder) where a content image should appear."},
					"imagePrompt": {Type: genai.TypeString, Description: "Image-model prompt if this page was allocated an image, otherwise empty."},
				},
				Required: []string{"content"},
			},
		},
		"theme": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"backgroundColor":  {Type: genai.TypeString},
				"textColor":        {Type: genai.TypeString},
				"headingColor":     {Type: genai.TypeString},
				"backgroundPrompt": {Type: genai.TypeString},
			},
			Required: []string{"backgroundColor", "textColor", "headingColor", "backgroundPrompt"},
		},
	},
	Required: []string{"pages", "theme"},
}

func (g *Gemini) GenerateDocument(ctx context.Context, instructions string) (*DocumentDraft, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.textModel,
		[]*genai.Content{genai.NewContentFromText(instructions, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   documentSchema,
		})
	if err != nil {
		return nil, fmt.Errorf("gemini generate document: %w", err)
	}
	var draft DocumentDraft
	if err := DecodeJSON(res.Text(), &draft); err != nil {
		return nil, fmt.Errorf("gemini generate document: %w", err)
	}
	return &draft, nil
}

func (g *Gemini) GenerateImage(ctx context.Context, prompt string) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.imageModel,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		})
	if err != nil {
		return "", fmt.Errorf("gemini generate image: %w", err)
	}
	for _, cand := range res.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mime := part.InlineData.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
			}
		}
	}
	return "", errors.New("gemini generate image: response carried no image data")
}

func (g *Gemini) Complete(ctx context.Context, system, user string) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	res, err := g.client.Models.GenerateContent(ctx, g.textModel,
		[]*genai.Content{genai.NewContentFromText(user, genai.RoleUser)}, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini complete: %w", err)
	}
	return res.Text(), nil
}

func (g *Gemini) CompleteJSON(ctx context.Context, system, user string, out any) error {
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	res, err := g.client.Models.GenerateContent(ctx, g.textModel,
		[]*genai.Content{genai.NewContentFromText(user, genai.RoleUser)}, cfg)
	if err != nil {
		return fmt.Errorf("gemini complete json: %w", err)
	}
	return DecodeJSON(res.Text(), out)
}
