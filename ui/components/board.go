package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/apocrypha/forge/internal/models"
	"github.com/apocrypha/forge/internal/registry"
	"github.com/apocrypha/forge/ui/styles"
)

const previewRunes = 160

// RenderBoard draws the eight consideration boxes. The box under the cursor
// gets a highlighted border; the one being edited swaps its preview for the
// textarea and a live word count.
func RenderBoard(m *models.AppModel) string {
	width := 0
	if m.Width > 0 {
		width = m.Width/2 - 2
	}
	var b strings.Builder
	for i, c := range m.Considerations {
		b.WriteString(renderBox(m, i, c, width))
		b.WriteString("\n")
	}
	return b.String()
}

func renderBox(m *models.AppModel, index int, c registry.Consideration, width int) string {
	selected := m.Focus == models.PaneBoard && index == m.Cursor && !m.Editing
	editing := m.Editing && m.EditingID == c.ID

	var line strings.Builder
	line.WriteString(statusIcon(c))
	line.WriteString(" ")
	line.WriteString(styles.TitleStyle().Render(title(m, c.ID)))
	if c.WordCount > 0 {
		line.WriteString(styles.EmptyStyle().Render(fmt.Sprintf("  %d words", c.WordCount)))
	}
	if m.SavedID == c.ID {
		line.WriteString("  " + styles.SavedStyle().Render("Saved"))
	}

	body := renderBody(m, c, editing)

	box := styles.BoxStyle(selected || editing)
	if width > 0 {
		box = box.Width(width)
	}
	return box.Render(line.String() + "\n" + body)
}

func renderBody(m *models.AppModel, c registry.Consideration, editing bool) string {
	if editing {
		return renderEditor(m)
	}
	if c.Updating {
		return styles.UpdatingStyle().Render("Updating from conversation...")
	}
	if c.Content == "" {
		// The sentinel exists only here, at the presentation boundary.
		return styles.PlaceholderStyle().Render(models.PlaceholderText)
	}
	return contentStyle(c.State).Render(preview(c.Content))
}

func renderEditor(m *models.AppModel) string {
	words := registry.WordCount(m.Editor.Value())
	footer := fmt.Sprintf("%d words (%d to complete) · ctrl+s save · esc cancel",
		words, registry.CompletedWords)
	out := m.Editor.View() + "\n" + styles.EmptyStyle().Render(footer)
	if m.EditError != "" {
		out += "\n" + styles.ErrorStyle().Render(m.EditError)
	}
	if m.Hints != nil {
		if hint, ok := m.Hints[m.EditingID]; ok && hint != "" {
			out = styles.PlaceholderStyle().Render(hint) + "\n" + out
		}
	}
	return out
}

func statusIcon(c registry.Consideration) string {
	if c.Updating {
		return styles.UpdatingStyle().Render("~")
	}
	switch c.State {
	case registry.Completed:
		return styles.CompletedStyle().Render("✓")
	case registry.InProgress:
		return styles.InProgressStyle().Render("…")
	default:
		return styles.EmptyStyle().Render("○")
	}
}

func contentStyle(state registry.FillState) lipgloss.Style {
	switch state {
	case registry.Completed:
		return styles.CompletedStyle()
	case registry.InProgress:
		return styles.InProgressStyle()
	default:
		return styles.EmptyStyle()
	}
}

func title(m *models.AppModel, id registry.Kind) string {
	if m.Titles != nil {
		if t, ok := m.Titles[id]; ok {
			return t
		}
	}
	return string(id)
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewRunes {
		return content
	}
	return string(runes[:previewRunes]) + "…"
}
