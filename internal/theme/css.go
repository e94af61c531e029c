package theme

import (
	"fmt"
	"io"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/treepaint/internal/style"
)

// WriteCSS writes the theme's stylesheet to w:
// one rule per allocated class, in allocation order,
// with only the declarations the style actually sets.
//
// Output is byte-identical across calls for the same Theme.
// Include it once per page no matter how many renders use the theme.
func (t *Theme) WriteCSS(w io.Writer) error {
	if t.foreground.Set() || t.background.Set() {
		var vars []string
		if t.foreground.Set() {
			vars = append(vars, "--tp-fg: "+t.foreground.Hex()+";")
		}
		if t.background.Set() {
			vars = append(vars, "--tp-bg: "+t.background.Hex()+";")
		}
		if _, err := fmt.Fprintf(w, ":root { %s }\n", strings.Join(vars, " ")); err != nil {
			return errtrace.Wrap(err)
		}
	}

	for id, sty := range t.styles {
		if _, err := fmt.Fprintf(w, ".%v { %s}\n", ClassID(id), declarations(sty)); err != nil {
			return errtrace.Wrap(err)
		}
	}

	_, err := io.WriteString(w, ".tp-line { word-wrap: normal; white-space: pre; }\n")
	return errtrace.Wrap(err)
}

func declarations(sty style.Style) string {
	var sb strings.Builder
	if sty.Foreground.Set() {
		sb.WriteString("color: " + sty.Foreground.Hex() + "; ")
	}
	if sty.Background.Set() {
		sb.WriteString("background-color: " + sty.Background.Hex() + "; ")
	}
	if sty.Mod.Has(style.Bold) {
		sb.WriteString("font-weight: bold; ")
	}
	if sty.Mod.Has(style.Italic) {
		sb.WriteString("font-style: italic; ")
	}

	var deco []string
	if sty.Mod.Has(style.Underline) {
		deco = append(deco, "underline")
	}
	if sty.Mod.Has(style.Strikethrough) {
		deco = append(deco, "line-through")
	}
	if len(deco) > 0 {
		sb.WriteString("text-decoration: " + strings.Join(deco, " ") + "; ")
	}

	if sty.Mod.Has(style.Dim) {
		sb.WriteString("opacity: 0.7; ")
	}
	return sb.String()
}
