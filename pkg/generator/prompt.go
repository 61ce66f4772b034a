package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	promptPersona = "You are a creative story writer for an interactive story game."
	promptTask    = "Generate engaging, immersive story content based on the following:"
	promptCue     = "Generated Story:"
)

// Chat roles used by BuildMessages.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single chat turn. The lower-case JSON tags match the wire
// format of chat-completion APIs, so transports can marshal it directly.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildPrompt renders the request as a single completion prompt for
// non-chat transports. The output is deterministic: the same request always
// yields the same prompt. An empty request yields only the preamble and the
// trailing cue.
func BuildPrompt(req Request) string {
	parts := []string{promptPersona, promptTask, ""}
	parts = append(parts, sections(req)...)
	parts = append(parts, promptCue)
	return strings.Join(parts, "\n")
}

// BuildMessages renders the request as a chat exchange: a fixed system
// instruction plus one user turn carrying the assembled request.
func BuildMessages(req Request) []Message {
	parts := []string{promptTask, ""}
	parts = append(parts, sections(req)...)

	return []Message{
		{Role: RoleSystem, Content: promptPersona},
		{Role: RoleUser, Content: strings.Join(parts, "\n")},
	}
}

// sections renders the present request fields in a fixed order, each as a
// labeled line followed by a blank line. Absent fields are omitted entirely.
func sections(req Request) []string {
	var parts []string

	if req.UserInput != "" {
		parts = append(parts, "User Request: "+req.UserInput, "")
	}
	if len(req.Blueprint) > 0 {
		parts = append(parts, "Story Blueprint: "+renderValue(req.Blueprint), "")
	}
	if len(req.Characters) > 0 {
		parts = append(parts, "Characters: "+renderValue(req.Characters), "")
	}
	if len(req.StoryArc) > 0 {
		parts = append(parts, "Story Arc: "+renderValue(req.StoryArc), "")
	}

	return parts
}

// renderValue renders a structured field in a stable form. encoding/json
// sorts map keys, so identical requests produce byte-identical prompts.
func renderValue(v map[string]any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
