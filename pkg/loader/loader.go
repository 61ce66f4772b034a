// Package loader wires configuration to exactly one backend adapter and
// proxies the generator contract to the hosting node. A load either produces
// a working generator or fails; there is no fallback chain and no runtime
// backend switching.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/storynet/storygen/pkg/config"
	"github.com/storynet/storygen/pkg/generator"
	"github.com/storynet/storygen/pkg/generator/llm"
	"github.com/storynet/storygen/pkg/metrics"
)

// State tracks the loader lifecycle.
type State string

const (
	// StateUnloaded is the initial state, before Load is called.
	StateUnloaded State = "unloaded"

	// StateLoaded marks resolved configuration with adapter construction
	// still in flight.
	StateLoaded State = "loaded"

	// StateReady means the generator is constructed and available.
	StateReady State = "ready"

	// StateFailed is terminal: configuration or construction failed.
	StateFailed State = "failed"
)

// Loader resolves configuration, constructs one backend adapter and passes
// the generator contract through to it. It satisfies generator.Generator
// itself so hosts can hold a single handle. Safe for concurrent use.
type Loader struct {
	mu         sync.RWMutex
	configPath string
	logger     *zap.Logger
	state      State
	gen        generator.Generator
}

var _ generator.Generator = (*Loader)(nil)

// New creates an unloaded Loader. An empty configPath means
// config.DefaultPath; a nil logger means no logging. New never fails;
// call Load to construct the backend.
func New(configPath string, logger *zap.Logger) *Loader {
	if configPath == "" {
		configPath = config.DefaultPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		configPath: configPath,
		logger:     logger,
		state:      StateUnloaded,
	}
}

// Load resolves configuration and constructs the one configured backend.
// A missing configuration file falls back to the built-in default; a
// malformed file, an unknown backend selection or an unavailable adapter
// (missing credential) fails the load terminally.
func (l *Loader) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	// Best-effort .env load so api_key_env variables resolve in
	// development setups. Absence is normal.
	_ = godotenv.Load()

	cfg, err := config.Load(l.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return l.fail(fmt.Errorf("load config: %w", err))
		}
		l.logger.Warn("config file not found, using built-in defaults",
			zap.String("path", l.configPath))
		cfg = config.Default()
	}
	l.state = StateLoaded

	gen, err := llm.New(cfg.Generator, l.logger)
	if err != nil {
		return l.fail(fmt.Errorf("construct generator: %w", err))
	}
	if !gen.Available() {
		return l.fail(fmt.Errorf("%w: no generator available, set the API key named by api_key_env",
			generator.ErrInvalidConfig))
	}

	l.gen = gen
	l.state = StateReady
	metrics.RecordLoad(metrics.StatusSuccess)
	l.logger.Info("generator loaded",
		zap.String("mode", string(gen.Mode())),
		zap.String("model", gen.ModelInfo().Name))
	return nil
}

func (l *Loader) fail(err error) error {
	l.state = StateFailed
	metrics.RecordLoad(metrics.StatusError)
	l.logger.Error("generator load failed", zap.Error(err))
	return err
}

// State reports the current lifecycle state.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Generator returns the loaded backend, or nil before a successful Load.
func (l *Loader) Generator() generator.Generator {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.gen
}

// Generate proxies to the loaded backend. Before a successful Load it fails
// with ErrNotInitialized.
func (l *Loader) Generate(ctx context.Context, req generator.Request) (*generator.Result, error) {
	gen := l.Generator()
	if gen == nil {
		return nil, fmt.Errorf("%w: no generator loaded", generator.ErrNotInitialized)
	}
	return gen.Generate(ctx, req)
}

// Mode reports the loaded backend's mode, or ModeNone before a load.
func (l *Loader) Mode() generator.Mode {
	if gen := l.Generator(); gen != nil {
		return gen.Mode()
	}
	return generator.ModeNone
}

// ModelInfo reports the loaded backend's model info, or the zero value
// before a load.
func (l *Loader) ModelInfo() generator.ModelInfo {
	if gen := l.Generator(); gen != nil {
		return gen.ModelInfo()
	}
	return generator.ModelInfo{}
}

// HealthCheck reports the loaded backend's health, or false before a load.
func (l *Loader) HealthCheck(ctx context.Context) bool {
	if gen := l.Generator(); gen != nil {
		return gen.HealthCheck(ctx)
	}
	return false
}

// Initialized reports whether a backend is loaded and initialized.
func (l *Loader) Initialized() bool {
	if gen := l.Generator(); gen != nil {
		return gen.Initialized()
	}
	return false
}

// Warmup proxies to the loaded backend, or reports false before a load.
func (l *Loader) Warmup(ctx context.Context) bool {
	if gen := l.Generator(); gen != nil {
		return gen.Warmup(ctx)
	}
	return false
}
