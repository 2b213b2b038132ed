// Package extract resolves replacement content for a consideration out of the
// conversation so far. Real extraction runs server-side behind /api/chat; the
// resolver here drafts field text between server round-trips so the board
// keeps moving.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/apocrypha/forge/internal/catalog"
	"github.com/apocrypha/forge/internal/models"
	"github.com/apocrypha/forge/internal/registry"
)

// Resolver turns the conversation into replacement content for one field. An
// empty result with a nil error is a deliberate no-op: the resolver found
// nothing worth writing.
type Resolver interface {
	Resolve(ctx context.Context, id registry.Kind, conversation []models.Message) (string, error)
}

// DraftResolver fills a field from its catalog template, seeded with the most
// recent user message.
type DraftResolver struct {
	entries map[registry.Kind]catalog.Entry
}

func NewDraftResolver() (*DraftResolver, error) {
	entries, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return &DraftResolver{entries: entries}, nil
}

func (d *DraftResolver) Resolve(ctx context.Context, id registry.Kind, conversation []models.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	entry, ok := d.entries[id]
	if !ok {
		return "", fmt.Errorf("extract: %w: %q", registry.ErrInvalidID, id)
	}
	topic := lastUserSnippet(conversation)
	if topic == "" {
		return "", nil
	}
	replacer := strings.NewReplacer(
		"{{topic}}", topic,
		"{{audience}}", "the users this conversation describes",
	)
	return replacer.Replace(entry.Template), nil
}

// lastUserSnippet returns the opening words of the most recent user message,
// enough to anchor a draft without quoting the whole thing back.
func lastUserSnippet(conversation []models.Message) string {
	const maxWords = 12
	for i := len(conversation) - 1; i >= 0; i-- {
		if conversation[i].Type != models.User {
			continue
		}
		words := strings.Fields(conversation[i].Content)
		if len(words) == 0 {
			continue
		}
		if len(words) > maxWords {
			words = words[:maxWords]
		}
		return strings.ToLower(strings.TrimRight(strings.Join(words, " "), ".!?,"))
	}
	return ""
}
