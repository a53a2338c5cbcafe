package format

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Rendered carries both representations of one provider reply.
type Rendered struct {
	Plain string
	HTML  string
}

var (
	paragraphBreak = regexp.MustCompile(`\n{2,}`)
	strongSpan     = regexp.MustCompile(`\*\*(.+?)\*\*`)

	// markupPolicy is the last line of defense: whatever the transform
	// produced, only these three elements survive.
	markupPolicy = func() *bluemonday.Policy {
		p := bluemonday.NewPolicy()
		p.AllowElements("p", "br", "strong")
		return p
	}()
)

// Format renders raw provider text as plain text plus HTML that is safe
// to inject into the chat view. Escaping happens before any structure is
// added, so provider output can never smuggle markup through.
func Format(raw string) Rendered {
	if raw == "" {
		return Rendered{}
	}

	escaped := html.EscapeString(raw)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\r", "\n")

	var paragraphs []string
	for _, unit := range paragraphBreak.Split(escaped, -1) {
		unit = strings.TrimSpace(unit)
		if unit == "" {
			continue
		}
		paragraphs = append(paragraphs, unit)
	}
	if len(paragraphs) == 0 {
		// Nothing but whitespace; still emit one paragraph so non-empty
		// input never renders as nothing.
		paragraphs = []string{escaped}
	}

	var b strings.Builder
	for _, p := range paragraphs {
		unit := strings.ReplaceAll(p, "\n", "<br>")
		// Runs after escaping, and per paragraph so a pair can never
		// straddle a paragraph boundary.
		unit = strongSpan.ReplaceAllString(unit, "<strong>$1</strong>")
		b.WriteString("<p>")
		b.WriteString(unit)
		b.WriteString("</p>")
	}

	return Rendered{Plain: raw, HTML: markupPolicy.Sanitize(b.String())}
}
