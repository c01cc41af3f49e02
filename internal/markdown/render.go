package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// RenderHTML renders source as safe inline markup. Every text node is
// escaped, inside and outside code fences, so user-controlled answer text
// can never smuggle markup into the output.
func RenderHTML(source string) string {
	var b strings.Builder

	for _, block := range Parse(source) {
		switch block.Kind {
		case BlockCode:
			b.WriteString("<pre><code>")
			b.WriteString(htmlEscaper.Replace(block.Literal))
			b.WriteString("</code></pre>")
		case BlockHeading:
			fmt.Fprintf(&b, "<h%d>", block.Level)
			writeInlinesHTML(&b, block.Inlines)
			fmt.Fprintf(&b, "</h%d>", block.Level)
		case BlockParagraph:
			b.WriteString("<p>")
			writeInlinesHTML(&b, block.Inlines)
			b.WriteString("</p>")
		}
	}

	return b.String()
}

func writeInlinesHTML(b *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		escaped := htmlEscaper.Replace(in.Text)
		switch in.Kind {
		case InlineStrong:
			b.WriteString("<strong>" + escaped + "</strong>")
		case InlineEmph:
			b.WriteString("<em>" + escaped + "</em>")
		case InlineCode:
			b.WriteString("<code>" + escaped + "</code>")
		default:
			b.WriteString(escaped)
		}
	}
}

// Terminal styles
func codeBlockStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Padding(0, 1).
		MarginLeft(2)
}

func boldStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true)
}

func italicStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Italic(true)
}

func headingStyle(level int) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	if level == 1 {
		s = s.Underline(true)
	}
	return s
}

// RenderTerm renders source for the terminal pane using lipgloss styles.
// Same tree as RenderHTML, different walk.
func RenderTerm(source string) string {
	var parts []string

	for _, block := range Parse(source) {
		switch block.Kind {
		case BlockCode:
			var lines []string
			for _, line := range strings.Split(block.Literal, "\n") {
				lines = append(lines, codeBlockStyle().Render(line))
			}
			parts = append(parts, strings.Join(lines, "\n"))
		case BlockHeading:
			parts = append(parts, headingStyle(block.Level).Render(renderInlinesTerm(block.Inlines)))
		case BlockParagraph:
			parts = append(parts, renderInlinesTerm(block.Inlines))
		}
	}

	return strings.Join(parts, "\n\n")
}

func renderInlinesTerm(inlines []Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		switch in.Kind {
		case InlineStrong:
			b.WriteString(boldStyle().Render(in.Text))
		case InlineEmph:
			b.WriteString(italicStyle().Render(in.Text))
		case InlineCode:
			b.WriteString(codeBlockStyle().Render(in.Text))
		default:
			b.WriteString(in.Text)
		}
	}
	return b.String()
}
