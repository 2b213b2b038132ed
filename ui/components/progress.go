package components

import (
	"fmt"

	pbar "github.com/charmbracelet/bubbles/progress"

	"github.com/apocrypha/forge/internal/progress"
	"github.com/apocrypha/forge/ui/styles"
)

// RenderProgress draws the completion bar with the "n/8 Developed" label and
// the submit hint once the gate opens.
func RenderProgress(bar pbar.Model, status progress.Status, submitted bool) string {
	label := fmt.Sprintf("%d/%d Developed", status.CompletedCount, status.TotalCount)
	out := bar.ViewAs(status.Percentage/100) + "  " + label
	switch {
	case submitted:
		out += "  " + styles.SavedStyle().Render("Submitted")
	case status.CanSubmit:
		out += "  " + styles.CompletedStyle().Render("press s to submit")
	}
	return out
}
