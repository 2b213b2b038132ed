package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/apocrypha/forge/ui/styles"
)

func RenderInput(input textinput.Model, typing bool, typingDots int, width int) string {
	inputStyle := styles.InputStyle(width)
	if typing {
		return inputStyle.Render("ASF is thinking" + strings.Repeat(".", typingDots))
	}
	return inputStyle.Render(input.View())
}
