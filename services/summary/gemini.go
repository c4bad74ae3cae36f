package summary

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// GeminiGenerator calls the Gemini API through the official client.
type GeminiGenerator struct {
	client      *genai.Client
	modelName   string
	temperature float32
	topP        float32
}

func NewGeminiGenerator(ctx context.Context, apiKey string, cfg Config) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Gemini client")
	}
	return &GeminiGenerator{
		client:      client,
		modelName:   cfg.ModelName,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(g.temperature)
	model.SetTopP(g.topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", errors.Wrap(err, "generation request failed")
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		// The first non-empty candidate is the answer.
		if sb.Len() > 0 {
			break
		}
	}
	return sb.String(), nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}
