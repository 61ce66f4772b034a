package generator

import (
	"strings"
	"testing"
)

func TestBuildPrompt_EmptyRequest(t *testing.T) {
	got := BuildPrompt(Request{})

	want := "You are a creative story writer for an interactive story game.\n" +
		"Generate engaging, immersive story content based on the following:\n" +
		"\n" +
		"Generated Story:"

	if got != want {
		t.Errorf("expected prompt %q, got %q", want, got)
	}
}

func TestBuildPrompt_AllSections(t *testing.T) {
	req := Request{
		UserInput:  "A heist in a floating city",
		Blueprint:  map[string]any{"genre": "fantasy", "tone": "tense"},
		Characters: map[string]any{"lead": "Mara the locksmith"},
		StoryArc:   map[string]any{"act": 2},
		ChapterIDs: []int{4, 5},
	}

	got := BuildPrompt(req)

	labels := []string{"User Request:", "Story Blueprint:", "Characters:", "Story Arc:"}
	last := -1
	for _, label := range labels {
		idx := strings.Index(got, label)
		if idx < 0 {
			t.Fatalf("prompt missing section %q:\n%s", label, got)
		}
		if idx < last {
			t.Errorf("section %q out of order", label)
		}
		last = idx
	}

	if !strings.HasSuffix(got, "Generated Story:") {
		t.Errorf("prompt does not end with the cue: %q", got)
	}

	// Chapter IDs do not appear as a prompt section.
	if strings.Contains(got, "chapter") || strings.Contains(got, "Chapter") {
		t.Errorf("prompt should not render chapter IDs: %q", got)
	}
}

func TestBuildPrompt_OmitsAbsentSections(t *testing.T) {
	req := Request{UserInput: "Write the next scene"}

	got := BuildPrompt(req)

	if !strings.Contains(got, "User Request: Write the next scene") {
		t.Errorf("prompt missing user request section: %q", got)
	}
	for _, label := range []string{"Story Blueprint:", "Characters:", "Story Arc:"} {
		if strings.Contains(got, label) {
			t.Errorf("prompt should omit absent section %q: %q", label, got)
		}
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := Request{
		Blueprint: map[string]any{
			"genre":   "mystery",
			"setting": "lighthouse",
			"tone":    "quiet dread",
			"era":     "1920s",
		},
		StoryArc: map[string]any{"beats": []any{"arrival", "storm", "reveal"}},
	}

	first := BuildPrompt(req)
	for i := 0; i < 10; i++ {
		if next := BuildPrompt(req); next != first {
			t.Fatalf("prompt changed between runs:\nfirst: %q\nnext:  %q", first, next)
		}
	}
}

func TestBuildMessages_Shape(t *testing.T) {
	req := Request{
		UserInput: "Continue the duel",
		Blueprint: map[string]any{"genre": "wuxia"},
	}

	msgs := BuildMessages(req)

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleSystem {
		t.Errorf("expected first role %q, got %q", RoleSystem, msgs[0].Role)
	}
	if msgs[0].Content != "You are a creative story writer for an interactive story game." {
		t.Errorf("unexpected system message: %q", msgs[0].Content)
	}
	if msgs[1].Role != RoleUser {
		t.Errorf("expected second role %q, got %q", RoleUser, msgs[1].Role)
	}
	if !strings.Contains(msgs[1].Content, "User Request: Continue the duel") {
		t.Errorf("user turn missing request section: %q", msgs[1].Content)
	}
	if !strings.Contains(msgs[1].Content, "Story Blueprint:") {
		t.Errorf("user turn missing blueprint section: %q", msgs[1].Content)
	}
}

func TestBuildMessages_EmptyRequest(t *testing.T) {
	msgs := BuildMessages(Request{})

	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}

	want := "Generate engaging, immersive story content based on the following:\n"
	if msgs[1].Content != want {
		t.Errorf("expected user turn %q, got %q", want, msgs[1].Content)
	}
}
