package components

import (
	"strings"

	"github.com/apocrypha/forge/ui/styles"
)

func RenderStatus(status string, typing bool, typingDots int, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if typing {
		statusContent += strings.Repeat(".", typingDots)
	}

	return statusStyle.Render(statusContent)
}
