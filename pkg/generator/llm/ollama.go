package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/storynet/storygen/pkg/config"
	"github.com/storynet/storygen/pkg/generator"
)

// ollamaClient speaks the native Ollama API at {url}/api/generate.
type ollamaClient struct {
	client *api.Client
}

func (g *Generator) initOllama(cfg config.Local) error {
	base, err := url.Parse(cfg.URL)
	if err != nil {
		return fmt.Errorf("%w: local url %q: %w", generator.ErrInvalidConfig, cfg.URL, err)
	}

	g.ollama = &ollamaClient{
		client: api.NewClient(base, &http.Client{Timeout: localTimeout}),
	}
	return nil
}

func (g *Generator) generateOllama(ctx context.Context, req generator.Request) (string, error) {
	stream := false
	ollamaReq := &api.GenerateRequest{
		Model:  g.model,
		Prompt: generator.BuildPrompt(req),
		Stream: &stream,
		Options: map[string]any{
			"temperature": temperature,
			"num_predict": maxTokens,
		},
	}

	// stream=false still delivers the reply through the callback, as a
	// single final response.
	var content strings.Builder
	err := g.ollama.client.Generate(ctx, ollamaReq, func(resp api.GenerateResponse) error {
		content.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: ollama request: %w", generator.ErrGenerationFailed, err)
	}

	return content.String(), nil
}

// heartbeat reports server reachability.
func (c *ollamaClient) heartbeat(ctx context.Context) bool {
	return c.client.Heartbeat(ctx) == nil
}

// warmupOllama sends an empty-prompt generate, which makes the server page
// the model into memory without producing content.
func (g *Generator) warmupOllama(ctx context.Context) error {
	stream := false
	return g.ollama.client.Generate(ctx, &api.GenerateRequest{
		Model:  g.model,
		Stream: &stream,
	}, func(api.GenerateResponse) error { return nil })
}
