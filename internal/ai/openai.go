package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI implements Client for prose-only deployments using the
// official openai-go SDK. It has no image model: image steps degrade
// to "no image" through ErrImagesUnsupported.
type OpenAI struct {
	model string
	opts  []option.RequestOption
}

func NewOpenAI(apiKey, model, baseURL string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("missing OPENAI_API_KEY")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAI{model: model, opts: opts}, nil
}

const documentJSONContract = `Respond with ONLY a JSON object of this shape, no code fences:
{"pages":[{"title":"","content":"markdown","imagePrompt":""}],"theme":{"backgroundColor":"#ffffff","textColor":"#333333","headingColor":"#111111","backgroundPrompt":""}}`

func (o *OpenAI) GenerateDocument(ctx context.Context, instructions string) (*DocumentDraft, error) {
	var draft DocumentDraft
	if err := o.CompleteJSON(ctx, documentJSONContract, instructions, &draft); err != nil {
		return nil, fmt.Errorf("openai generate document: %w", err)
	}
	return &draft, nil
}

func (o *OpenAI) GenerateImage(ctx context.Context, prompt string) (string, error) {
	return "", ErrImagesUnsupported
}

func (o *OpenAI) Complete(ctx context.Context, system, user string) (string, error) {
	client := openai.NewClient(o.opts...)

	msgs := []openai.ChatCompletionMessageParamUnion{}
	if system != "" {
		msgs = append(msgs, openai.SystemMessage(system))
	}
	msgs = append(msgs, openai.UserMessage(user))

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("openai complete: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai complete: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) CompleteJSON(ctx context.Context, system, user string, out any) error {
	raw, err := o.Complete(ctx, system, user)
	if err != nil {
		return err
	}
	return DecodeJSON(raw, out)
}
