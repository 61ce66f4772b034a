package generator

// Mode identifies where generation runs.
type Mode string

const (
	// ModeLocal marks backends that talk to an inference server on the
	// local network, such as Ollama or vLLM.
	ModeLocal Mode = "local"

	// ModeCloud marks backends that talk to a hosted provider API.
	ModeCloud Mode = "cloud"

	// ModeNone is reported when no generator is loaded.
	ModeNone Mode = "none"
)

// Request carries the structured input for one generation call.
// Every field is optional; absent fields are omitted from the
// assembled prompt.
type Request struct {
	// UserInput is the free-text story request.
	UserInput string `json:"user_input,omitempty"`

	// Blueprint is the story blueprint produced by the planning layer.
	Blueprint map[string]any `json:"blueprint,omitempty"`

	// Characters holds character definitions keyed by name or role.
	Characters map[string]any `json:"characters,omitempty"`

	// StoryArc is the arc structure the content should follow.
	StoryArc map[string]any `json:"story_arc,omitempty"`

	// ChapterIDs are the chapter identifiers this request targets.
	ChapterIDs []int `json:"chapter_ids,omitempty"`
}

// Result is the outcome of one successful generation call.
type Result struct {
	// GeneratedContent is the story text produced by the backend.
	GeneratedContent string `json:"generated_content"`

	// Model identifies the model that produced the content.
	Model string `json:"model"`

	// Mode is the producing backend's mode tag.
	Mode Mode `json:"mode"`

	// GenerationTime is the wall-clock duration of the call in seconds.
	GenerationTime float64 `json:"generation_time"`

	// Metadata carries backend-specific details, such as the provider
	// sub-type under the "type" key.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ModelInfo describes the model a backend is configured with.
type ModelInfo struct {
	Name     string `json:"name"`
	Version  string `json:"version,omitempty"`
	Provider string `json:"provider"`

	// Parameters holds provider-specific details, such as the server URL
	// for local backends.
	Parameters map[string]string `json:"parameters"`
}
