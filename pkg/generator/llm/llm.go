// Package llm implements the generator contract on top of local inference
// servers (Ollama native, vLLM and other OpenAI-compatible servers) and
// cloud providers (OpenAI, Google Gemini, Zhipu GLM).
//
// The transport path is selected once at construction and stored as a fixed
// tag; Generate dispatches on the tag, never on configuration strings. A
// cloud backend whose credential is missing constructs fine but stays
// unavailable: Generate fails, HealthCheck reports false.
package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/storynet/storygen/pkg/config"
	"github.com/storynet/storygen/pkg/generator"
	"github.com/storynet/storygen/pkg/metrics"
)

// Generation parameters applied uniformly across every path. Callers get no
// per-request tuning.
const (
	temperature = 0.8
	maxTokens   = 2048

	localTimeout = 120 * time.Second
	cloudTimeout = 60 * time.Second
)

// transportTag identifies the one concrete path a Generator speaks.
type transportTag int

const (
	transportOllama transportTag = iota
	transportOpenAICompat
	transportOpenAI
	transportGemini
	transportZhipu
)

// Generator is the unified local/cloud backend adapter.
type Generator struct {
	mode      generator.Mode
	transport transportTag

	// subtype is the local server type or cloud provider name, recorded in
	// result metadata and metrics labels.
	subtype   string
	model     string
	localURL  string
	available bool
	logger    *zap.Logger

	ollama *ollamaClient
	openai *openaiClient
	gemini *geminiClient
	zhipu  *zhipuClient
}

var _ generator.Generator = (*Generator)(nil)

// New constructs the one backend adapter the configuration selects. Unknown
// modes and providers fail here with ErrInvalidConfig; a missing cloud
// credential does not fail construction but leaves the adapter unavailable.
// A nil logger means no logging.
func New(cfg config.Backend, logger *zap.Logger) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Generator{logger: logger}

	switch cfg.Mode {
	case string(generator.ModeLocal):
		g.mode = generator.ModeLocal
		g.model = cfg.Local.Model
		g.localURL = cfg.Local.URL

		if cfg.Local.Type == config.LocalTypeOllama {
			g.transport = transportOllama
			g.subtype = config.LocalTypeOllama
			if err := g.initOllama(cfg.Local); err != nil {
				return nil, err
			}
		} else {
			// vLLM and any other local server speaking the OpenAI API.
			g.transport = transportOpenAICompat
			g.subtype = cfg.Local.Type
			g.initOpenAICompat(cfg.Local)
		}
		g.available = true

	case string(generator.ModeCloud):
		g.mode = generator.ModeCloud
		g.model = cfg.Cloud.Model
		g.subtype = cfg.Cloud.Provider

		switch cfg.Cloud.Provider {
		case config.ProviderOpenAI:
			g.transport = transportOpenAI
		case config.ProviderGemini:
			g.transport = transportGemini
		case config.ProviderZhipu:
			g.transport = transportZhipu
		default:
			return nil, fmt.Errorf("%w: unknown provider %q", generator.ErrInvalidConfig, cfg.Cloud.Provider)
		}

		key := os.Getenv(cfg.Cloud.APIKeyEnv)
		if key == "" {
			logger.Warn("cloud API key not set, generator unavailable",
				zap.String("provider", cfg.Cloud.Provider),
				zap.String("env", cfg.Cloud.APIKeyEnv))
			break
		}

		switch g.transport {
		case transportOpenAI:
			g.initOpenAI(cfg.Cloud, key)
		case transportGemini:
			if err := g.initGemini(cfg.Cloud, key); err != nil {
				return nil, err
			}
		case transportZhipu:
			g.initZhipu(cfg.Cloud, key)
		}
		g.available = true

	default:
		return nil, fmt.Errorf("%w: unknown mode %q", generator.ErrInvalidConfig, cfg.Mode)
	}

	logger.Info("generator constructed",
		zap.String("mode", string(g.mode)),
		zap.String("type", g.subtype),
		zap.String("model", g.model),
		zap.Bool("available", g.available))

	return g, nil
}

// Available reports whether the backend can serve requests: true for local
// backends, true for cloud backends whose credential resolved. The loader
// gates readiness on it.
func (g *Generator) Available() bool {
	return g.available
}

// Generate produces story content over the configured transport. Exactly one
// attempt is made; any failure surfaces as a single error wrapping
// ErrGenerationFailed with the cause in the chain.
func (g *Generator) Generate(ctx context.Context, req generator.Request) (*generator.Result, error) {
	start := time.Now()
	content, err := g.dispatch(ctx, req)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		metrics.ObserveGeneration(string(g.mode), g.subtype, metrics.StatusError, elapsed)
		g.logger.Error("generation failed",
			zap.String("type", g.subtype),
			zap.Float64("seconds", elapsed),
			zap.Error(err))
		return nil, err
	}

	metrics.ObserveGeneration(string(g.mode), g.subtype, metrics.StatusSuccess, elapsed)

	return &generator.Result{
		GeneratedContent: content,
		Model:            g.model,
		Mode:             g.mode,
		GenerationTime:   elapsed,
		Metadata:         map[string]any{"type": g.subtype},
	}, nil
}

func (g *Generator) dispatch(ctx context.Context, req generator.Request) (string, error) {
	if !g.available {
		return "", fmt.Errorf("%w: %s backend unavailable, missing credential", generator.ErrGenerationFailed, g.subtype)
	}

	switch g.transport {
	case transportOllama:
		return g.generateOllama(ctx, req)
	case transportOpenAICompat, transportOpenAI:
		return g.generateOpenAI(ctx, req)
	case transportGemini:
		return g.generateGemini(ctx, req)
	case transportZhipu:
		return g.generateZhipu(ctx, req)
	}
	return "", fmt.Errorf("%w: unknown transport %d", generator.ErrGenerationFailed, g.transport)
}

// Mode reports the fixed mode tag.
func (g *Generator) Mode() generator.Mode {
	return g.mode
}

// ModelInfo describes the configured model. Local backends record the server
// URL under the "url" parameter; the version is unknown at this layer.
func (g *Generator) ModelInfo() generator.ModelInfo {
	params := map[string]string{}
	if g.mode == generator.ModeLocal {
		params["url"] = g.localURL
	}
	return generator.ModelInfo{
		Name:       g.model,
		Provider:   g.subtype,
		Parameters: params,
	}
}

// HealthCheck reports whether the backend can currently serve a request. The
// Ollama path probes the server heartbeat; every other path reports the
// cached availability flag.
func (g *Generator) HealthCheck(ctx context.Context) bool {
	if !g.available {
		return false
	}
	if g.transport == transportOllama {
		return g.ollama.heartbeat(ctx)
	}
	return true
}

// Initialized reports whether construction fully succeeded, including
// credential resolution.
func (g *Generator) Initialized() bool {
	return g.available
}

// Warmup pre-loads backend state where the transport supports it. The Ollama
// path asks the server to page the model in; every other path is a no-op.
// Failures are reported but never surfaced as errors.
func (g *Generator) Warmup(ctx context.Context) bool {
	if !g.available {
		return false
	}
	if g.transport == transportOllama {
		if err := g.warmupOllama(ctx); err != nil {
			g.logger.Warn("warmup failed", zap.String("model", g.model), zap.Error(err))
			return false
		}
	}
	return true
}
