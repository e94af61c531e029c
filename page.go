package main

import (
	"html/template"
	"io"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/treepaint/internal/theme"
)

var _pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
{{ .CSS }}</style>
</head>
<body style="color: var(--tp-fg); background: var(--tp-bg);">
<pre><table><tbody>
{{- range .Lines }}
<tr><td class="tp-line">{{ . }}</td></tr>
{{- end }}
</tbody></table></pre>
</body>
</html>
`))

type pageData struct {
	Title string
	CSS   template.CSS
	Lines []template.HTML
}

// writePage writes a standalone HTML page to w:
// the theme's stylesheet inline,
// and one table row per rendered line.
// Lines never contain spans that cross rows,
// so each row is safe to style on its own.
func writePage(w io.Writer, th *theme.Theme, title string, lines []string) error {
	var css strings.Builder
	if err := th.WriteCSS(&css); err != nil {
		return errtrace.Wrap(err)
	}

	data := pageData{
		Title: title,
		CSS:   template.CSS(css.String()),
		Lines: make([]template.HTML, len(lines)),
	}
	for i, line := range lines {
		data.Lines[i] = template.HTML(line)
	}

	return errtrace.Wrap(_pageTmpl.Execute(w, data))
}
