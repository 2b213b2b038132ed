package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/apocrypha/forge/internal/models"
	"github.com/apocrypha/forge/internal/registry"
)

func newResolver(t *testing.T) *DraftResolver {
	t.Helper()
	r, err := NewDraftResolver()
	if err != nil {
		t.Fatalf("NewDraftResolver: %v", err)
	}
	return r
}

func TestResolveDraftsFromLastUserMessage(t *testing.T) {
	r := newResolver(t)
	conversation := []models.Message{
		{Content: "welcome", Type: models.Program},
		{Content: "A marketplace for vintage synthesizers.", Type: models.User},
		{Content: "Tell me more.", Type: models.Assistant},
	}

	content, err := r.Resolve(context.Background(), registry.ProblemDefinition, conversation)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.Contains(content, "a marketplace for vintage synthesizers") {
		t.Errorf("draft should embed the user's topic, got %q", content)
	}
	if strings.Contains(content, "{{") {
		t.Errorf("unreplaced placeholder in %q", content)
	}
	if registry.StateFor(registry.WordCount(content)) != registry.Completed {
		t.Errorf("draft has %d words, expected a completing draft", registry.WordCount(content))
	}
}

func TestResolveNoUserMessageIsNoOp(t *testing.T) {
	r := newResolver(t)
	conversation := []models.Message{
		{Content: "welcome", Type: models.Program},
		{Content: "Hello!", Type: models.Assistant},
	}
	content, err := r.Resolve(context.Background(), registry.TargetMarket, conversation)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if content != "" {
		t.Errorf("expected deliberate no-op, got %q", content)
	}
}

func TestResolveUnknownKind(t *testing.T) {
	r := newResolver(t)
	_, err := r.Resolve(context.Background(), "bogus", []models.Message{
		{Content: "an idea", Type: models.User},
	})
	if !errors.Is(err, registry.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestResolveCancelledContext(t *testing.T) {
	r := newResolver(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Resolve(ctx, registry.ProblemDefinition, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLastUserSnippet(t *testing.T) {
	tests := []struct {
		name         string
		conversation []models.Message
		want         string
	}{
		{
			"truncates to opening words",
			[]models.Message{{
				Content: "One two three four five six seven eight nine ten eleven twelve thirteen fourteen",
				Type:    models.User,
			}},
			"one two three four five six seven eight nine ten eleven twelve",
		},
		{
			"strips trailing punctuation",
			[]models.Message{{Content: "Dog walking, but for cats!", Type: models.User}},
			"dog walking, but for cats",
		},
		{
			"skips non-user messages",
			[]models.Message{
				{Content: "First idea", Type: models.User},
				{Content: "Sounds good", Type: models.Assistant},
			},
			"first idea",
		},
		{
			"skips blank user messages",
			[]models.Message{
				{Content: "Real idea", Type: models.User},
				{Content: "   ", Type: models.User},
			},
			"real idea",
		},
		{"empty conversation", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lastUserSnippet(tt.conversation); got != tt.want {
				t.Errorf("lastUserSnippet() = %q, want %q", got, tt.want)
			}
		})
	}
}
