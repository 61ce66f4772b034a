package generator

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockGenerator is a deterministic Generator implementation for testing.
// It returns predictable content based on the request.
type MockGenerator struct {
	// Content is the fixed story text returned by Generate.
	// If empty, a default is derived from the request.
	Content string

	// Err, if set, is returned by Generate unchanged instead of a result.
	Err error

	// LastRequest stores the most recent request passed to Generate.
	LastRequest Request
}

var _ Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a mock generator with the given fixed content.
func NewMockGenerator(content string) *MockGenerator {
	return &MockGenerator{Content: content}
}

// NewMockGeneratorWithError creates a mock generator that always fails.
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// Generate returns the configured content or derives a deterministic one.
func (m *MockGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	m.LastRequest = req

	if m.Err != nil {
		return nil, m.Err
	}

	start := time.Now()
	content := m.Content
	if content == "" {
		content = mockContent(req)
	}

	return &Result{
		GeneratedContent: content,
		Model:            "mock",
		Mode:             ModeLocal,
		GenerationTime:   time.Since(start).Seconds(),
		Metadata:         map[string]any{"type": "mock"},
	}, nil
}

// Mode reports the mock's fixed mode tag.
func (m *MockGenerator) Mode() Mode {
	return ModeLocal
}

// ModelInfo describes the mock model.
func (m *MockGenerator) ModelInfo() ModelInfo {
	return ModelInfo{
		Name:       "mock",
		Provider:   "mock",
		Parameters: map[string]string{},
	}
}

// HealthCheck reports false only when the mock is configured to fail.
func (m *MockGenerator) HealthCheck(ctx context.Context) bool {
	return m.Err == nil
}

// Initialized always reports true.
func (m *MockGenerator) Initialized() bool {
	return true
}

// Warmup is a no-op.
func (m *MockGenerator) Warmup(ctx context.Context) bool {
	return true
}

// mockContent creates a predictable story snippet from the request.
func mockContent(req Request) string {
	var b strings.Builder

	b.WriteString("Once upon a time, the story continued. ")
	if req.UserInput != "" {
		b.WriteString(fmt.Sprintf("The request asked for: %s. ", req.UserInput))
	}
	if len(req.ChapterIDs) > 0 {
		b.WriteString(fmt.Sprintf("It spanned %d chapters. ", len(req.ChapterIDs)))
	}
	b.WriteString("The characters pressed on toward an uncertain ending.")

	return b.String()
}
