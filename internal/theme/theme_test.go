package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/treepaint/internal/style"
)

func loadTheme(t *testing.T, desc string) *Theme {
	t.Helper()

	th, err := new(Loader).Load([]byte(desc))
	require.NoError(t, err)
	return th
}

func TestTheme_Lookup_specificity(t *testing.T) {
	t.Parallel()

	th := loadTheme(t, `
[[rules]]
scope = "keyword"
fg = "#ff0000"

[[rules]]
scope = "keyword.control"
fg = "#00ff00"
`)

	tests := []struct {
		desc  string
		scope string
		want  string // matched rule's color, "" for no match
	}{
		{
			desc:  "exact",
			scope: "keyword",
			want:  "#ff0000",
		},
		{
			desc:  "longest prefix wins",
			scope: "keyword.control.conditional",
			want:  "#00ff00",
		},
		{
			desc:  "shorter prefix",
			scope: "keyword.operator",
			want:  "#ff0000",
		},
		{
			desc:  "no match",
			scope: "totally.unknown.scope",
		},
		{
			desc:  "component-wise, not character-wise",
			scope: "keywordish",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			id, ok := th.Lookup(tt.scope)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.want, th.Style(id).Foreground.Hex())
		})
	}
}

func TestTheme_Lookup_laterRuleWinsTies(t *testing.T) {
	t.Parallel()

	th := loadTheme(t, `
[[rules]]
scope = "string"
fg = "#0000ff"

[[rules]]
scope = "string"
fg = "#00ff00"
`)

	id, ok := th.Lookup("string.quoted")
	require.True(t, ok)
	assert.Equal(t, "#00ff00", th.Style(id).Foreground.Hex())
}

func TestTheme_Lookup_redefinitionKeepsUnsetFields(t *testing.T) {
	t.Parallel()

	th := loadTheme(t, `
[[rules]]
scope = "string"
fg = "#00ff00"

[[rules]]
scope = "string"
modifiers = ["bold"]
`)

	id, ok := th.Lookup("string")
	require.True(t, ok)
	sty := th.Style(id)
	assert.Equal(t, "#00ff00", sty.Foreground.Hex(),
		"color must fall through from the earlier rule")
	assert.True(t, sty.Mod.Has(style.Bold))
}

func TestLoader_palette(t *testing.T) {
	t.Parallel()

	t.Run("indirection", func(t *testing.T) {
		t.Parallel()

		th := loadTheme(t, `
[palette]
red = "#ff0000"
accent = "red"

[[rules]]
scope = "keyword"
fg = "accent"
`)

		id, ok := th.Lookup("keyword")
		require.True(t, ok)
		assert.Equal(t, "#ff0000", th.Style(id).Foreground.Hex())
	})

	tests := []struct {
		desc    string
		palette string
		wantErr error
	}{
		{
			desc:    "undefined reference",
			palette: `accent = "red"`,
			wantErr: ErrUnknownColor,
		},
		{
			desc: "two levels of indirection",
			palette: `
red = "#ff0000"
accent = "red"
hot = "accent"
`,
			wantErr: ErrUnknownColor,
		},
		{
			desc:    "self reference",
			palette: `red = "red"`,
			wantErr: ErrUnknownColor,
		},
		{
			desc:    "bad literal",
			palette: `red = "#zzz"`,
			wantErr: ErrInvalidTheme,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			_, err := new(Loader).Load([]byte("[palette]\n" + tt.palette))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc    string
		give    string
		wantErr error
	}{
		{
			desc:    "not toml",
			give:    "{{{{",
			wantErr: ErrInvalidTheme,
		},
		{
			desc: "empty scope",
			give: "[[rules]]\nfg = \"#fff\"",
			// scope = "" is a structural error,
			// not an unmatched scope.
			wantErr: ErrInvalidTheme,
		},
		{
			desc:    "empty scope component",
			give:    "[[rules]]\nscope = \"keyword..control\"\nfg = \"#fff\"",
			wantErr: ErrInvalidTheme,
		},
		{
			desc:    "unknown modifier",
			give:    "[[rules]]\nscope = \"keyword\"\nmodifiers = [\"blink\"]",
			wantErr: ErrInvalidTheme,
		},
		{
			desc:    "unknown rule color",
			give:    "[[rules]]\nscope = \"keyword\"\nfg = \"nope\"",
			wantErr: ErrUnknownColor,
		},
		{
			desc:    "unknown foreground",
			give:    `foreground = "nope"`,
			wantErr: ErrUnknownColor,
		},
		{
			desc:    "inherits without loader",
			give:    `inherits = "base"`,
			wantErr: ErrUnknownTheme,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			_, err := new(Loader).Load([]byte(tt.give))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTheme_classAllocation(t *testing.T) {
	t.Parallel()

	th := loadTheme(t, `
[[rules]]
scope = "keyword"
fg = "#ff0000"

[[rules]]
scope = "string"
fg = "#00ff00"

[[rules]]
scope = "number"
fg = "#ff0000"
`)

	assert.Equal(t, 2, th.Classes(), "identical styles share a class")

	kw, ok := th.Lookup("keyword")
	require.True(t, ok)
	num, ok := th.Lookup("number")
	require.True(t, ok)
	str, ok := th.Lookup("string")
	require.True(t, ok)

	assert.Equal(t, kw, num)
	assert.NotEqual(t, kw, str)
	assert.Equal(t, "tp-0", kw.String(), "allocation follows declaration order")
	assert.Equal(t, "tp-1", str.String())
}
