package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduspark/backend/internal/format"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "single line",
			raw:  "hello",
			want: "<p>hello</p>",
		},
		{
			name: "blank line splits paragraphs",
			raw:  "line1\n\nline2",
			want: "<p>line1</p><p>line2</p>",
		},
		{
			name: "extra blank lines collapse",
			raw:  "line1\n\n\n\nline2",
			want: "<p>line1</p><p>line2</p>",
		},
		{
			name: "single newline becomes line break",
			raw:  "a\nb",
			want: "<p>a<br>b</p>",
		},
		{
			name: "windows line endings normalize",
			raw:  "a\r\nb\r\n\r\nc",
			want: "<p>a<br>b</p><p>c</p>",
		},
		{
			name: "bare carriage return normalizes",
			raw:  "a\rb",
			want: "<p>a<br>b</p>",
		},
		{
			name: "paragraphs are trimmed",
			raw:  "  line1  \n\n  line2  ",
			want: "<p>line1</p><p>line2</p>",
		},
		{
			name: "emphasis",
			raw:  "**bold**",
			want: "<p><strong>bold</strong></p>",
		},
		{
			name: "emphasis inside text",
			raw:  "this is **really** important",
			want: "<p>this is <strong>really</strong> important</p>",
		},
		{
			name: "unpaired marker left alone",
			raw:  "**dangling",
			want: "<p>**dangling</p>",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := format.Format(tc.raw)
			assert.Equal(t, tc.raw, got.Plain, "plain text must be verbatim")
			assert.Equal(t, tc.want, got.HTML)
		})
	}
}

func TestFormatEscapesMarkup(t *testing.T) {
	got := format.Format("<script>alert(1)</script>")

	assert.NotContains(t, got.HTML, "<script>")
	assert.Contains(t, got.HTML, "&lt;script&gt;")
}

func TestFormatEmphasisCannotInjectMarkup(t *testing.T) {
	got := format.Format("**<b>bold</b>**")

	assert.NotContains(t, got.HTML, "<b>")
	assert.Contains(t, got.HTML, "<strong>")
	assert.NotContains(t, got.HTML, "**")
}

func TestFormatEmptyInput(t *testing.T) {
	got := format.Format("")

	assert.Empty(t, got.Plain)
	assert.Empty(t, got.HTML)
}

func TestFormatWhitespaceOnlyInputStillRenders(t *testing.T) {
	got := format.Format("   ")

	assert.Equal(t, "   ", got.Plain)
	assert.True(t, strings.HasPrefix(got.HTML, "<p>"), "non-empty input must render a paragraph, got %q", got.HTML)
}
