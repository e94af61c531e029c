package theme

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"braces.dev/errtrace"
	"github.com/pelletier/go-toml/v2"
	"go.abhg.dev/treepaint/internal/style"
)

// Errors reported by theme loading.
// All of them fail the load wholesale;
// a partially built Theme is never returned.
var (
	// ErrInvalidTheme reports a description that is not valid TOML
	// or not shaped like a theme.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrUnknownColor reports a color name
	// with no palette entry behind it.
	ErrUnknownColor = errors.New("unknown color")

	// ErrUnknownTheme reports an inherits reference
	// that the loader cannot resolve.
	ErrUnknownTheme = errors.New("unknown theme")

	// ErrInheritanceCycle reports a cycle in an inherits chain.
	ErrInheritanceCycle = errors.New("theme inheritance cycle")
)

// description is the raw TOML shape of a theme.
//
// Rules are an array of tables rather than a hash table
// because declaration order is a tie-breaker during lookup
// and TOML hash tables are unordered.
type description struct {
	Inherits   string            `toml:"inherits"`
	Foreground string            `toml:"foreground"`
	Background string            `toml:"background"`
	Palette    map[string]string `toml:"palette"`
	Rules      []ruleDesc        `toml:"rules"`
}

type ruleDesc struct {
	Scope     string   `toml:"scope"`
	FG        string   `toml:"fg"`
	BG        string   `toml:"bg"`
	Modifiers []string `toml:"modifiers"`
}

// Loader builds [Theme] values from theme descriptions.
//
// The zero value loads self-contained themes.
// To support the inherits key, set Open.
type Loader struct {
	// Open returns the description bytes for a named theme
	// referenced by an inherits key.
	// If nil, any inherits reference fails the load.
	Open func(name string) ([]byte, error)
}

// Load parses and resolves a theme description.
//
// If the description inherits from another theme,
// the base is resolved first (through [Loader.Open], recursively)
// and the child's rules are appended after the base's,
// so that child rules win ties at lookup time.
func (l *Loader) Load(data []byte) (*Theme, error) {
	t, err := l.load(data, nil /* seen */)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	t.allocate()
	return t, nil
}

func (l *Loader) load(data []byte, seen []string) (*Theme, error) {
	var desc description
	if err := toml.Unmarshal(data, &desc); err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("%w: %v", ErrInvalidTheme, err))
	}

	var t *Theme
	if base := desc.Inherits; base != "" {
		if slices.Contains(seen, base) {
			return nil, errtrace.Wrap(fmt.Errorf("%w: %s", ErrInheritanceCycle,
				strings.Join(append(seen, base), " -> ")))
		}
		if l.Open == nil {
			return nil, errtrace.Wrap(fmt.Errorf("%w: %q (loader cannot resolve inherits)", ErrUnknownTheme, base))
		}

		bs, err := l.Open(base)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("%w: %q: %v", ErrUnknownTheme, base, err))
		}

		t, err = l.load(bs, append(seen, base))
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("inherits %q: %w", base, err))
		}
	} else {
		t = &Theme{index: make(map[string]int)}
	}

	palette, err := resolvePalette(desc.Palette)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	if desc.Foreground != "" {
		if t.foreground, err = namedColor(desc.Foreground, palette); err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("foreground: %w", err))
		}
	}
	if desc.Background != "" {
		if t.background, err = namedColor(desc.Background, palette); err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("background: %w", err))
		}
	}

	for _, rd := range desc.Rules {
		if _, err := ParseScope(rd.Scope); err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("%w: %v", ErrInvalidTheme, err))
		}

		sty, err := resolveStyle(rd, palette)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("rule %q: %w", rd.Scope, err))
		}

		// An exact redefinition partially overrides the earlier rule:
		// unset fields fall through to it.
		// Both entries are kept; the appended one wins ties at lookup.
		if prev, ok := t.index[rd.Scope]; ok {
			sty = t.rules[prev].style.Merge(sty)
		}

		t.index[rd.Scope] = len(t.rules)
		t.rules = append(t.rules, rule{scope: rd.Scope, style: sty})
	}

	return t, nil
}

// resolvePalette resolves palette entries to colors in two passes:
// literals first, then one level of name indirection.
// A deeper chain, a self-reference, or an undefined name fails.
func resolvePalette(raw map[string]string) (map[string]style.Color, error) {
	colors := make(map[string]style.Color, len(raw))
	refs := make(map[string]string)

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v := raw[name]
		if !strings.HasPrefix(v, "#") {
			refs[name] = v
			continue
		}

		c, err := style.ParseColor(v)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("%w: palette entry %q: %v", ErrInvalidTheme, name, err))
		}
		colors[name] = c
	}

	for _, name := range names {
		target, ok := refs[name]
		if !ok {
			continue
		}
		c, ok := colors[target]
		if !ok {
			return nil, errtrace.Wrap(fmt.Errorf("%w: palette entry %q references %q", ErrUnknownColor, name, target))
		}
		colors[name] = c
	}

	return colors, nil
}

// namedColor resolves a color literal or a palette name.
func namedColor(s string, palette map[string]style.Color) (style.Color, error) {
	if strings.HasPrefix(s, "#") {
		c, err := style.ParseColor(s)
		if err != nil {
			return style.Color{}, errtrace.Wrap(fmt.Errorf("%w: %v", ErrInvalidTheme, err))
		}
		return c, nil
	}

	c, ok := palette[s]
	if !ok {
		return style.Color{}, errtrace.Wrap(fmt.Errorf("%w: %q", ErrUnknownColor, s))
	}
	return c, nil
}

func resolveStyle(rd ruleDesc, palette map[string]style.Color) (style.Style, error) {
	var sty style.Style
	var err error

	if rd.FG != "" {
		if sty.Foreground, err = namedColor(rd.FG, palette); err != nil {
			return style.Style{}, errtrace.Wrap(err)
		}
	}
	if rd.BG != "" {
		if sty.Background, err = namedColor(rd.BG, palette); err != nil {
			return style.Style{}, errtrace.Wrap(err)
		}
	}
	for _, name := range rd.Modifiers {
		m, err := style.ParseModifier(name)
		if err != nil {
			return style.Style{}, errtrace.Wrap(fmt.Errorf("%w: %v", ErrInvalidTheme, err))
		}
		sty.Mod |= m
	}

	return sty, nil
}

// allocate performs the warm-up pass assigning class ids:
// each distinct style gets the next sequential id,
// visiting rules in declaration order.
// Allocation is fixed once Load returns.
func (t *Theme) allocate() {
	byStyle := make(map[style.Style]ClassID)
	for i := range t.rules {
		id, ok := byStyle[t.rules[i].style]
		if !ok {
			id = ClassID(len(t.styles))
			t.styles = append(t.styles, t.rules[i].style)
			byStyle[t.rules[i].style] = id
		}
		t.rules[i].class = id
	}
}
