package diagram_test

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"powerassert/internal/diagram"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		values []diagram.Value
		want   []string
	}{
		{
			name: "no values",
			line: "#assert(ok)",
			want: []string{"#assert(ok)"},
		},
		{
			name: "members and comparison",
			line: "#assert(xs.count == 4)",
			values: []diagram.Value{
				{Column: 8, Text: "[1, 2, 3]"},
				{Column: 11, Text: "3"},
				{Column: 20, Text: "4"},
				{Column: 17, Text: "false"},
			},
			want: []string{
				"#assert(xs.count == 4)",
				"        |  |     |  |",
				"        |  3     |  4",
				"        |        false",
				"        [1, 2, 3]",
			},
		},
		{
			name: "same column",
			line: "#assert(x!)",
			values: []diagram.Value{
				{Column: 8, Text: "1"},
				{Column: 8, Text: "2"},
			},
			want: []string{
				"#assert(x!)",
				"        |",
				"        1",
				"        2",
			},
		},
		{
			name: "wide source",
			line: `#assert("日本" == s)`,
			values: []diagram.Value{
				{Column: 8, Text: `"日本"`},
				{Column: 18, Text: `"x"`},
				{Column: 15, Text: "false"},
			},
			want: []string{
				`#assert("日本" == s)`,
				"        |      |  |",
				`        "日本" |  "x"`,
				`               false`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diagram.Render(tt.line, tt.values, diagram.Options{})
			want := strings.Join(tt.want, "\n") + "\n"
			if got != want {
				t.Errorf("Render:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestRenderTruncates(t *testing.T) {
	got := diagram.Render("#assert(s)", []diagram.Value{{Column: 8, Text: `"a very long string"`}}, diagram.Options{MaxValueWidth: 10})
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if last := lines[len(lines)-1]; last != `        "a very...` {
		t.Errorf("last line = %q", last)
	}
}

func TestRenderTruncatesIndependentOfLocale(t *testing.T) {
	// CJK-локаль считает неоднозначные символы двойными
	saved := runewidth.DefaultCondition.EastAsianWidth
	runewidth.DefaultCondition.EastAsianWidth = true
	defer func() { runewidth.DefaultCondition.EastAsianWidth = saved }()

	got := diagram.Render("#assert(s)", []diagram.Value{{Column: 8, Text: "→→→→→→→→"}}, diagram.Options{MaxValueWidth: 6})
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if last := lines[len(lines)-1]; last != "        →→→..." {
		t.Errorf("last line = %q", last)
	}
}

func TestRenderStyledKeepsText(t *testing.T) {
	values := []diagram.Value{{Column: 0, Text: "false"}, {Column: 6, Text: "nil"}}
	got := diagram.Render("a == b", values, diagram.Options{Styled: true})
	for _, s := range []string{"false", "nil", "|"} {
		if !strings.Contains(got, s) {
			t.Errorf("styled output lost %q: %q", s, got)
		}
	}
}
