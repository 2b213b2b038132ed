package components

import (
	"fmt"
	"strings"

	"github.com/apocrypha/forge/internal/marketplace"
	"github.com/apocrypha/forge/ui/styles"
)

// RenderIdeaDetail draws the post-submission view of the idea as it now
// appears in the marketplace.
func RenderIdeaDetail(detail *marketplace.IdeaDetail, note string) string {
	var b strings.Builder

	b.WriteString(styles.DetailHeaderStyle().Render("Your idea is live"))
	b.WriteString("\n")
	if note != "" {
		b.WriteString(styles.ProgramStyle().Render(note))
		b.WriteString("\n\n")
	}
	if detail == nil {
		return b.String()
	}

	if detail.Title != "" {
		b.WriteString(styles.TitleStyle().Render(detail.Title) + "\n")
	}
	if detail.Status != "" {
		b.WriteString(styles.EmptyStyle().Render("Status: "+detail.Status) + "\n")
	}
	if detail.ID != "" {
		b.WriteString(styles.EmptyStyle().Render("Idea: /idea/"+detail.ID) + "\n")
	}
	if detail.Description != "" {
		b.WriteString("\n" + detail.Description + "\n")
	}
	if len(detail.Comments) > 0 {
		b.WriteString("\n" + styles.TitleStyle().Render(fmt.Sprintf("Comments (%d)", len(detail.Comments))) + "\n")
		for _, c := range detail.Comments {
			b.WriteString(styles.EmptyStyle().Render(c.Author+": ") + c.Text + "\n")
		}
	}
	b.WriteString("\n" + styles.EmptyStyle().Render("press q to exit") + "\n")
	return b.String()
}
