package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/storynet/storygen/pkg/config"
	"github.com/storynet/storygen/pkg/generator"
)

// geminiClient holds a configured generative model from the Gemini SDK.
type geminiClient struct {
	model *genai.GenerativeModel
}

func (g *Generator) initGemini(cfg config.Cloud, apiKey string) error {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return fmt.Errorf("%w: gemini client: %w", generator.ErrInvalidConfig, err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(maxTokens)

	g.gemini = &geminiClient{model: model}
	return nil
}

func (g *Generator) generateGemini(ctx context.Context, req generator.Request) (string, error) {
	// The SDK carries no client-wide timeout; bound the call here.
	ctx, cancel := context.WithTimeout(ctx, cloudTimeout)
	defer cancel()

	resp, err := g.gemini.model.GenerateContent(ctx, genai.Text(generator.BuildPrompt(req)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", generator.ErrGenerationFailed, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no candidates in response", generator.ErrGenerationFailed)
	}

	var content strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			content.WriteString(string(text))
		}
	}

	return content.String(), nil
}
