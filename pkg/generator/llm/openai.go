package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/storynet/storygen/pkg/config"
	"github.com/storynet/storygen/pkg/generator"
)

// openaiClient serves both the OpenAI cloud path and local OpenAI-compatible
// servers (vLLM and friends); the two differ only in base URL and key.
type openaiClient struct {
	client openai.Client
}

func (g *Generator) initOpenAICompat(cfg config.Local) {
	// Local servers ignore the key but the client requires one. Retries are
	// disabled everywhere: one call, one attempt.
	g.openai = &openaiClient{
		client: openai.NewClient(
			option.WithAPIKey("not-needed"),
			option.WithBaseURL(strings.TrimSuffix(cfg.URL, "/")+"/v1"),
			option.WithHTTPClient(&http.Client{Timeout: localTimeout}),
			option.WithMaxRetries(0),
		),
	}
}

func (g *Generator) initOpenAI(cfg config.Cloud, apiKey string) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: cloudTimeout}),
		option.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}

	g.openai = &openaiClient{client: openai.NewClient(opts...)}
}

func (g *Generator) generateOpenAI(ctx context.Context, req generator.Request) (string, error) {
	msgs := generator.BuildMessages(req)

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(msgs[0].Content),
			openai.UserMessage(msgs[1].Content),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	}

	completion, err := g.openai.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %w", generator.ErrGenerationFailed, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", generator.ErrGenerationFailed)
	}

	return completion.Choices[0].Message.Content, nil
}
