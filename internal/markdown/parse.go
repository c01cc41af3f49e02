// Package markdown implements the constrained markdown subset used for
// agent answers. Sources are parsed into a typed block tree before any
// rendering happens, so escaping is a property of the renderer rather than
// of replacement order. Unrecognized constructs pass through as plain text.
package markdown

import "strings"

type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockCode
)

type InlineKind int

const (
	InlineText InlineKind = iota
	InlineStrong
	InlineEmph
	InlineCode
)

// Block is one block-level node. Headings carry Level 1-3; code blocks
// carry their raw Literal (the language tag is parsed but not used).
type Block struct {
	Kind    BlockKind
	Level   int
	Lang    string
	Literal string
	Inlines []Inline
}

// Inline is a leaf span. The subset does not nest emphasis, so every
// inline holds plain text.
type Inline struct {
	Kind InlineKind
	Text string
}

// Parse tokenizes source into blocks. It is total: any input produces a
// tree, never an error.
func Parse(source string) []Block {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	lines := strings.Split(source, "\n")

	var blocks []Block
	var paragraph []string

	flushParagraph := func() {
		if len(paragraph) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(paragraph, " "))
		paragraph = nil
		if text == "" {
			return
		}
		blocks = append(blocks, Block{
			Kind:    BlockParagraph,
			Inlines: parseInlines(text),
		})
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		// Fenced code: consumed verbatim, inline parsing never sees it
		if strings.HasPrefix(line, "```") {
			flushParagraph()
			lang := strings.TrimSpace(strings.TrimPrefix(line, "```"))
			var code []string
			i++
			for ; i < len(lines); i++ {
				if strings.HasPrefix(lines[i], "```") {
					break
				}
				code = append(code, lines[i])
			}
			blocks = append(blocks, Block{
				Kind:    BlockCode,
				Lang:    lang,
				Literal: strings.Join(code, "\n"),
			})
			continue
		}

		if level, rest, ok := headingLine(line); ok {
			flushParagraph()
			blocks = append(blocks, Block{
				Kind:    BlockHeading,
				Level:   level,
				Inlines: parseInlines(rest),
			})
			continue
		}

		if strings.TrimSpace(line) == "" {
			flushParagraph()
			continue
		}

		paragraph = append(paragraph, line)
	}
	flushParagraph()

	return blocks
}

func headingLine(line string) (int, string, bool) {
	for level := 3; level >= 1; level-- {
		prefix := strings.Repeat("#", level) + " "
		if rest, found := strings.CutPrefix(line, prefix); found {
			return level, strings.TrimSpace(rest), true
		}
	}
	return 0, "", false
}

// parseInlines scans for `code`, **strong** and *emphasis* spans. An
// unterminated marker is not a span; it stays literal text.
func parseInlines(text string) []Inline {
	var inlines []Inline
	var plain strings.Builder

	flushPlain := func() {
		if plain.Len() > 0 {
			inlines = append(inlines, Inline{Kind: InlineText, Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		switch {
		case text[i] == '`':
			if end := strings.IndexByte(text[i+1:], '`'); end >= 0 {
				flushPlain()
				inlines = append(inlines, Inline{Kind: InlineCode, Text: text[i+1 : i+1+end]})
				i += end + 2
				continue
			}
		case strings.HasPrefix(text[i:], "**"):
			if end := strings.Index(text[i+2:], "**"); end >= 0 {
				flushPlain()
				inlines = append(inlines, Inline{Kind: InlineStrong, Text: text[i+2 : i+2+end]})
				i += end + 4
				continue
			}
		case text[i] == '*':
			if end := strings.IndexByte(text[i+1:], '*'); end >= 0 {
				flushPlain()
				inlines = append(inlines, Inline{Kind: InlineEmph, Text: text[i+1 : i+1+end]})
				i += end + 2
				continue
			}
		}
		plain.WriteByte(text[i])
		i++
	}
	flushPlain()

	return inlines
}
