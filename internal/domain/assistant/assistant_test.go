package assistant

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/safeexplore/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Topic
	}{
		{"What documents do I need?", TopicVisa},
		{"VISA question", TopicVisa},
		{"I need help now", TopicEmergency},
		{"urgent!", TopicEmergency},
		{"local customs", TopicCulture},
		{"table etiquette", TopicCulture},
		{"is it safe at night", TopicSafety},
		{"any danger zones", TopicSafety},
		{"visa help", TopicVisa},
		{"best currywurst", TopicGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReply(t *testing.T) {
	fixed := uuid.MustParse("6f1c2a52-4a0e-4b7e-9a44-2d7d8f1f0c11")
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := New(WithIDGenerator(func() uuid.UUID { return fixed }), WithClock(func() time.Time { return at }))

	got, err := r.Reply("  Emergency: lost passport ", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != fixed || !got.CreatedAt.Equal(at) {
		t.Errorf("id/time not from injected sources: %s %s", got.ID, got.CreatedAt)
	}
	if got.Topic != TopicEmergency || got.Kind != KindEmergency {
		t.Errorf("topic=%q kind=%q", got.Topic, got.Kind)
	}
	if len(got.QuickActions) != 3 || len(got.Suggestions) != 4 {
		t.Errorf("actions=%d suggestions=%d", len(got.QuickActions), len(got.Suggestions))
	}
}

func TestReply_GeneralEchoesQuestion(t *testing.T) {
	got, err := New().Reply("best currywurst", false)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got.Content, `"best currywurst"`) {
		t.Errorf("content should quote the question: %q", got.Content)
	}
	if got.Kind != KindNormal {
		t.Errorf("kind = %q", got.Kind)
	}
	if got.Suggestions[0] != Welcome()[0] {
		t.Error("general replies offer the welcome questions")
	}
	if got.ID == uuid.Nil {
		t.Error("expected a generated id")
	}
}

func TestReply_EmergencyMode(t *testing.T) {
	got, _ := New().Reply("what customs should I know", true)
	if got.Topic != TopicCulture || got.Kind != KindEmergency {
		t.Errorf("topic=%q kind=%q", got.Topic, got.Kind)
	}
}

func TestReply_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", strings.Repeat("a", MaxMessageLength+1)} {
		if _, err := New().Reply(in, false); !errors.Is(err, domain.ErrInvalidQuery) {
			t.Errorf("Reply(len %d) err = %v, want ErrInvalidQuery", len(in), err)
		}
	}
}

func TestReply_DoesNotShareTables(t *testing.T) {
	r := New()
	a, _ := r.Reply("visa", false)
	a.QuickActions[0].Label = "changed"
	a.Suggestions[0] = "changed"
	b, _ := r.Reply("visa", false)
	if b.QuickActions[0].Label == "changed" || b.Suggestions[0] == "changed" {
		t.Error("replies must not alias the canned tables")
	}
}

func TestPromptFor(t *testing.T) {
	p, ok := PromptFor("find_hospital")
	if !ok || p != "Where is the nearest hospital?" {
		t.Errorf("PromptFor = %q, %v", p, ok)
	}
	if _, ok := PromptFor("teleport"); ok {
		t.Error("unknown action should report false")
	}
}

func TestEveryQuickActionHasPrompt(t *testing.T) {
	for topic, c := range canned {
		for _, a := range c.actions {
			if _, ok := PromptFor(a.Action); !ok {
				t.Errorf("%s action %q has no prompt", topic, a.Action)
			}
		}
	}
}
