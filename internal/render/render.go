package render

import (
	"bytes"
	"fmt"
	"html/template"

	"braces.dev/errtrace"
	"go.abhg.dev/treepaint/internal/theme"
)

// Renderer renders captures against a theme.
//
// A Renderer holds no per-call state;
// one value may serve concurrent Render calls,
// as may the Theme behind it.
type Renderer struct {
	Theme *theme.Theme // required
}

// Render resolves captures against the theme
// and renders src into one markup string per source line,
// including a trailing empty line if src ends with a newline.
//
// Captures whose scope matches no theme rule contribute no spans;
// their text still renders, unwrapped.
// Literal text is HTML-escaped; span tags carry the theme's classes.
// No span crosses a line boundary:
// at every newline all open spans are closed
// and reopened at the start of the next line,
// so callers may embed lines independently.
//
// The capture list is validated first;
// on error no output is returned.
func (r *Renderer) Render(src []byte, captures []Capture) ([]string, error) {
	caps, err := normalize(len(src), captures)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	w := lineWriter{src: src}
	for _, c := range caps {
		class, ok := r.Theme.Lookup(c.Scope)
		if !ok {
			continue
		}

		w.closeUntil(c.Start)
		w.text(c.Start)
		w.push(c.End, class)
	}
	w.closeUntil(len(src))
	w.text(len(src))

	return w.lines(), nil
}

// span is one open styled region.
type span struct {
	end   int
	class theme.ClassID
}

// lineWriter emits markup for one render call,
// keeping the open-span stack and splitting output at newlines.
type lineWriter struct {
	src  []byte
	pos  int // bytes of src consumed so far
	buf  bytes.Buffer
	done []string
	open []span // innermost last
}

// push opens a span ending at end.
// Opens at the same offset arrive outermost first
// from the normalized capture order.
func (w *lineWriter) push(end int, class theme.ClassID) {
	w.openTag(class)
	w.open = append(w.open, span{end: end, class: class})
}

// closeUntil emits text and close tags for every open span
// that ends at or before offset.
// Closes at equal offsets pop in stack order, innermost first.
func (w *lineWriter) closeUntil(offset int) {
	for len(w.open) > 0 {
		top := w.open[len(w.open)-1]
		if top.end > offset {
			return
		}
		w.text(top.end)
		w.buf.WriteString("</span>")
		w.open = w.open[:len(w.open)-1]
	}
}

// text emits src up to offset, escaped,
// ending the current line at every newline.
// The newline itself terminates the line:
// it lands in no span and in no line's markup.
func (w *lineWriter) text(offset int) {
	for w.pos < offset {
		chunk := w.src[w.pos:offset]
		nl := bytes.IndexByte(chunk, '\n')
		if nl < 0 {
			template.HTMLEscape(&w.buf, chunk)
			w.pos = offset
			return
		}

		template.HTMLEscape(&w.buf, chunk[:nl])
		w.pos += nl + 1
		w.endLine()
	}
}

// endLine closes every open span, finishes the current line,
// and reopens the spans in the same order on the next line.
func (w *lineWriter) endLine() {
	for range w.open {
		w.buf.WriteString("</span>")
	}
	w.done = append(w.done, w.buf.String())
	w.buf.Reset()
	for _, s := range w.open {
		w.openTag(s.class)
	}
}

func (w *lineWriter) openTag(class theme.ClassID) {
	fmt.Fprintf(&w.buf, "<span class=%q>", class.String())
}

// lines finishes the final line and returns all of them.
func (w *lineWriter) lines() []string {
	return append(w.done, w.buf.String())
}
