package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheme_WriteCSS(t *testing.T) {
	t.Parallel()

	th := loadTheme(t, `
foreground = "#c0caf5"
background = "#1a1b26"

[[rules]]
scope = "keyword"
fg = "#ff0000"
modifiers = ["bold"]

[[rules]]
scope = "comment"
fg = "#888888"
modifiers = ["italic", "dim"]

[[rules]]
scope = "link"
modifiers = ["underline", "strikethrough"]
`)

	var buf strings.Builder
	require.NoError(t, th.WriteCSS(&buf))

	want := ":root { --tp-fg: #c0caf5; --tp-bg: #1a1b26; }\n" +
		".tp-0 { color: #ff0000; font-weight: bold; }\n" +
		".tp-1 { color: #888888; font-style: italic; opacity: 0.7; }\n" +
		".tp-2 { text-decoration: underline line-through; }\n" +
		".tp-line { word-wrap: normal; white-space: pre; }\n"
	assert.Equal(t, want, buf.String())
}

func TestTheme_WriteCSS_stable(t *testing.T) {
	t.Parallel()

	th := loadTheme(t, `
[palette]
blue = "#7aa2f7"

[[rules]]
scope = "function"
fg = "blue"

[[rules]]
scope = "string"
bg = "#1a1b26"
`)

	var first, second strings.Builder
	require.NoError(t, th.WriteCSS(&first))
	require.NoError(t, th.WriteCSS(&second))
	assert.Equal(t, first.String(), second.String(),
		"stylesheet must be byte-identical across calls")
}
