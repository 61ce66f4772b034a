package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/storynet/storygen/pkg/config"
	"github.com/storynet/storygen/pkg/generator"
)

// defaultZhipuEndpoint is the GLM chat-completions endpoint; the config
// endpoint key overrides it for self-hosted gateways.
const defaultZhipuEndpoint = "https://open.bigmodel.cn/api/paas/v4/chat/completions"

// zhipuClient is a raw HTTP client for the Zhipu GLM API. No Go SDK is used;
// the wire protocol is a single bearer-authenticated POST.
type zhipuClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

type zhipuRequest struct {
	Model       string              `json:"model"`
	Messages    []generator.Message `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
}

type zhipuResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *Generator) initZhipu(cfg config.Cloud, apiKey string) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultZhipuEndpoint
	}

	g.zhipu = &zhipuClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: cloudTimeout},
	}
}

func (g *Generator) generateZhipu(ctx context.Context, req generator.Request) (string, error) {
	body, err := json.Marshal(zhipuRequest{
		Model:       g.model,
		Messages:    generator.BuildMessages(req),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal zhipu request: %w", generator.ErrGenerationFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.zhipu.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build zhipu request: %w", generator.ErrGenerationFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.zhipu.apiKey)

	resp, err := g.zhipu.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: zhipu request: %w", generator.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: zhipu returned status %d: %s",
			generator.ErrGenerationFailed, resp.StatusCode, strings.TrimSpace(string(errBody)))
	}

	var parsed zhipuResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode zhipu response: %w", generator.ErrGenerationFailed, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", generator.ErrGenerationFailed)
	}

	return parsed.Choices[0].Message.Content, nil
}
