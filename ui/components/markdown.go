package components

import (
	"regexp"
	"strings"

	"github.com/apocrypha/forge/ui/styles"
)

// The assistant answers in prose with occasional emphasis, inline code and
// lists. renderMarkdown styles those; anything richer passes through as-is.

var (
	orderedItemRe = regexp.MustCompile(`^(\d+)\.\s+(.*)`)
	inlineCodeRe  = regexp.MustCompile("`[^`]+`")
	boldRe        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe      = regexp.MustCompile(`_([^_]+)_`)
)

func renderMarkdown(text string) string {
	var out strings.Builder
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "### "):
			out.WriteString(styles.TitleStyle().Render(renderInline(line[4:])))
		case strings.HasPrefix(line, "## "):
			out.WriteString(styles.TitleStyle().Render(renderInline(line[3:])))
		case strings.HasPrefix(line, "# "):
			out.WriteString(styles.TitleStyle().Render(renderInline(line[2:])))
		case strings.HasPrefix(line, "- "):
			out.WriteString(styles.ListStyle().Render("• " + renderInline(line[2:])))
		case strings.HasPrefix(line, "* "):
			out.WriteString(styles.ListStyle().Render("• " + renderInline(line[2:])))
		default:
			if m := orderedItemRe.FindStringSubmatch(line); m != nil {
				out.WriteString(styles.ListStyle().Render(m[1] + ". " + renderInline(m[2])))
			} else {
				out.WriteString(renderInline(line))
			}
		}
		out.WriteString("\n")
	}
	return strings.TrimSuffix(out.String(), "\n")
}

// renderInline styles code spans first so their content is never reparsed as
// emphasis.
func renderInline(line string) string {
	line = inlineCodeRe.ReplaceAllStringFunc(line, func(match string) string {
		return styles.InlineCodeStyle().Render(strings.Trim(match, "`"))
	})
	line = boldRe.ReplaceAllStringFunc(line, func(match string) string {
		return styles.BoldStyle().Render(strings.Trim(match, "*"))
	})
	line = italicRe.ReplaceAllStringFunc(line, func(match string) string {
		return styles.ItalicStyle().Render(strings.Trim(match, "_"))
	})
	return line
}
