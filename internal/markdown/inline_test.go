package markdown

import (
	"reflect"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestSanitize(t *testing.T) {
	t.Run("strips ansi escapes", func(t *testing.T) {
		in := "safe \x1b[31mred\x1b[0m text"
		if got := Sanitize(in); got != "safe red text" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("strips control characters", func(t *testing.T) {
		in := "a\x00b\x07c\x7fd"
		if got := Sanitize(in); got != "abcd" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("keeps newlines and tabs", func(t *testing.T) {
		in := "line one\nline two\tend"
		if got := Sanitize(in); got != in {
			t.Errorf("got %q", got)
		}
	})

	t.Run("keeps unicode", func(t *testing.T) {
		in := "résumé über 12%"
		if got := Sanitize(in); got != in {
			t.Errorf("got %q", got)
		}
	})
}

func TestParseSpans(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []Span
	}{
		{
			name: "plain text",
			in:   "just text",
			want: []Span{{Text: "just text"}},
		},
		{
			name: "single bold span",
			in:   "grew **12%** this year",
			want: []Span{{Text: "grew "}, {Text: "12%", Bold: true}, {Text: " this year"}},
		},
		{
			name: "bold at start",
			in:   "**Answer:** yes",
			want: []Span{{Text: "Answer:", Bold: true}, {Text: " yes"}},
		},
		{
			name: "unmatched marker stays literal",
			in:   "a ** b",
			want: []Span{{Text: "a ** b"}},
		},
		{
			name: "two bold spans",
			in:   "**a** and **b**",
			want: []Span{{Text: "a", Bold: true}, {Text: " and "}, {Text: "b", Bold: true}},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseSpans(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseSpans(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestInlineRender(t *testing.T) {
	r := NewInlineRenderer(lipgloss.NewStyle().Bold(true))

	t.Run("text content survives styling", func(t *testing.T) {
		out := r.Render("grew **12%** this year")
		if got := ansi.Strip(out); got != "grew 12% this year" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("markup never passes through", func(t *testing.T) {
		out := ansi.Strip(r.Render("**bold** and *italic*"))
		if got := out; got != "bold and *italic*" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("injected escapes are removed", func(t *testing.T) {
		out := r.Render("before\x1b[2Jafter")
		if got := ansi.Strip(out); got != "beforeafter" {
			t.Errorf("got %q", got)
		}
	})
}
