// Package style defines the value types themes are made of:
// colors, text modifiers, and resolved styles.
//
// All types are plain comparable values.
// A [Style] is what a theme rule resolves to,
// and what a stylesheet class is allocated for.
package style

import (
	"fmt"
	"strings"

	"braces.dev/errtrace"
)

// Modifiers is a set of text attribute flags.
type Modifiers uint8

const (
	Bold Modifiers = 1 << iota
	Italic
	Underline
	Strikethrough
	Dim
)

var _modifierNames = []struct {
	name string
	mod  Modifiers
}{
	{"bold", Bold},
	{"italic", Italic},
	{"underline", Underline},
	{"strikethrough", Strikethrough},
	{"dim", Dim},
}

// ParseModifier parses a single modifier name
// as it appears in a theme description.
func ParseModifier(s string) (Modifiers, error) {
	for _, m := range _modifierNames {
		if m.name == s {
			return m.mod, nil
		}
	}
	return 0, errtrace.Wrap(fmt.Errorf("unknown modifier %q", s))
}

// Has reports whether all flags in m2 are set in m.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

func (m Modifiers) String() string {
	var names []string
	for _, e := range _modifierNames {
		if m.Has(e.mod) {
			names = append(names, e.name)
		}
	}
	return strings.Join(names, "|")
}

// Style is a resolved visual style:
// optional foreground and background colors plus modifier flags.
// The zero value styles nothing.
type Style struct {
	Foreground Color
	Background Color
	Mod        Modifiers
}

// IsZero reports whether the style has no effect.
func (s Style) IsZero() bool {
	return !s.Foreground.Set() && !s.Background.Set() && s.Mod == 0
}

// Merge overlays over on top of s and returns the result.
// Fields set in over win; unset fields fall through to s.
// Modifier sets are unioned.
func (s Style) Merge(over Style) Style {
	if over.Foreground.Set() {
		s.Foreground = over.Foreground
	}
	if over.Background.Set() {
		s.Background = over.Background
	}
	s.Mod |= over.Mod
	return s
}
