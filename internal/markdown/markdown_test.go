package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTMLEscapesCodeFence(t *testing.T) {
	out := RenderHTML("```\n<script>alert(1)</script>\n```")

	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "&lt;/script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.True(t, strings.HasPrefix(out, "<pre><code>"))
}

func TestRenderHTMLEscapesOutsideFences(t *testing.T) {
	// Containment holds everywhere, not only on the fenced path
	out := RenderHTML("a <img src=x onerror=alert(1)> b")
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, "&lt;img src=x onerror=alert(1)&gt;")

	out = RenderHTML("# <b>title</b>")
	assert.Equal(t, "<h1>&lt;b&gt;title&lt;/b&gt;</h1>", out)
}

func TestRenderHTMLEmphasis(t *testing.T) {
	out := RenderHTML("**bold** and *italic*")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<em>italic</em>")
}

func TestRenderHTMLHeadings(t *testing.T) {
	assert.Equal(t, "<h1>One</h1>", RenderHTML("# One"))
	assert.Equal(t, "<h2>Two</h2>", RenderHTML("## Two"))
	assert.Equal(t, "<h3>Three</h3>", RenderHTML("### Three"))
}

func TestRenderHTMLInlineCode(t *testing.T) {
	out := RenderHTML("run `go build` now")
	assert.Equal(t, "<p>run <code>go build</code> now</p>", out)
}

func TestRenderHTMLParagraphBreak(t *testing.T) {
	out := RenderHTML("first\n\nsecond")
	assert.Equal(t, "<p>first</p><p>second</p>", out)

	// Single newlines join within a paragraph
	out = RenderHTML("first\nsecond")
	assert.Equal(t, "<p>first second</p>", out)
}

func TestRenderHTMLUnterminatedMarkersPassThrough(t *testing.T) {
	assert.Equal(t, "<p>**open</p>", RenderHTML("**open"))
	assert.Equal(t, "<p>tick ` mark</p>", RenderHTML("tick ` mark"))
}

func TestRenderHTMLTotal(t *testing.T) {
	// Never fails, whatever comes in
	assert.Equal(t, "", RenderHTML(""))
	assert.NotPanics(t, func() { RenderHTML("```\nunclosed fence") })
	out := RenderHTML("```\nunclosed fence")
	assert.Contains(t, out, "unclosed fence")
}

func TestParseCodeFenceLanguageTagIgnored(t *testing.T) {
	blocks := Parse("```go\nfmt.Println()\n```")
	require.Len(t, blocks, 1)
	assert.Equal(t, BlockCode, blocks[0].Kind)
	assert.Equal(t, "go", blocks[0].Lang)
	assert.Equal(t, "fmt.Println()", blocks[0].Literal)

	// Language tag does not leak into output
	assert.Equal(t, "<pre><code>fmt.Println()</code></pre>", RenderHTML("```go\nfmt.Println()\n```"))
}

func TestParseFencedContentNotInlineParsed(t *testing.T) {
	blocks := Parse("```\n**not bold** and `not code`\n```")
	require.Len(t, blocks, 1)
	assert.Equal(t, "**not bold** and `not code`", blocks[0].Literal)
}

func TestRenderTermSmoke(t *testing.T) {
	out := RenderTerm("# Title\n\n**bold** and *italic*\n\n```\ncode here\n```")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
	assert.Contains(t, out, "italic")
	assert.Contains(t, out, "code here")
}
