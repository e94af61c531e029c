// Package theme resolves theme descriptions into immutable,
// queryable style tables.
//
// A theme maps dotted scope names (e.g. "function.builtin")
// to styles by longest-prefix specificity,
// and allocates a stable CSS class per distinct style.
// Once built, a [Theme] never changes
// and may be shared across concurrent renders.
package theme

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/treepaint/internal/style"
)

// ClassID identifies one allocated stylesheet class.
// IDs are small sequential integers assigned in rule declaration order
// when the theme is built.
type ClassID int

// String renders the id as it appears in class attributes
// and in stylesheet selectors.
func (c ClassID) String() string { return "tp-" + strconv.Itoa(int(c)) }

// rule is one resolved scope-to-style entry.
// Rules keep their declaration order;
// later rules shadow earlier rules with the same scope.
type rule struct {
	scope string // joined dotted form
	style style.Style
	class ClassID
}

// Theme is an immutable resolved style table.
// Build one with [Loader.Load].
type Theme struct {
	rules []rule

	// scope -> index of the latest rule declared for exactly that scope.
	index map[string]int

	// Styles by ClassID, in allocation order.
	styles []style.Style

	foreground style.Color
	background style.Color
}

// Lookup resolves a dotted scope name to its stylesheet class.
//
// The winning rule is the one whose scope is the longest
// component-wise prefix of the query;
// among rules for the same scope, the latest declared wins.
// ok is false if no rule matches,
// in which case the text renders unwrapped.
func (t *Theme) Lookup(scope string) (_ ClassID, ok bool) {
	for {
		if i, found := t.index[scope]; found {
			return t.rules[i].class, true
		}
		dot := strings.LastIndexByte(scope, '.')
		if dot < 0 {
			return 0, false
		}
		scope = scope[:dot]
	}
}

// Classes returns the number of allocated stylesheet classes.
// Valid ClassIDs are [0, Classes).
func (t *Theme) Classes() int { return len(t.styles) }

// Style returns the style allocated to the given class.
func (t *Theme) Style(c ClassID) style.Style { return t.styles[c] }

// Foreground is the theme's default text color, if it defines one.
func (t *Theme) Foreground() style.Color { return t.foreground }

// Background is the theme's page background color, if it defines one.
func (t *Theme) Background() style.Color { return t.background }

// ParseScope validates a dotted scope name
// and splits it into its components.
// Scopes must be non-empty sequences of non-empty
// dot-separated components.
func ParseScope(scope string) ([]string, error) {
	if scope == "" {
		return nil, errtrace.Wrap(errors.New("empty scope"))
	}
	parts := strings.Split(scope, ".")
	for _, p := range parts {
		if p == "" {
			return nil, errtrace.Wrap(fmt.Errorf("scope %q has an empty component", scope))
		}
	}
	return parts, nil
}
