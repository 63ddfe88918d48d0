package highlight

import (
	"strings"

	"github.com/fatih/color"
	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
)

// HTML renders segments as a sequence of <span class="style"> elements.
func HTML(segs []Segment) safehtml.HTML {
	parts := make([]safehtml.HTML, 0, 3*len(segs))
	for _, s := range segs {
		parts = append(parts,
			openSpan(s.Style),
			safehtml.HTMLEscaped(s.Text),
			closeSpan,
		)
	}
	return safehtml.HTMLConcat(parts...)
}

var closeSpan = uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract("</span>")

func openSpan(class string) safehtml.HTML {
	// HTMLEscaped escapes quotes, so the result is safe in a quoted attribute.
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(
		`<span class="` + safehtml.HTMLEscaped(class).String() + `">`)
}

// Terminal attributes per style. Group bands cycle through distinct colors.
var ansiStyles = map[string]*color.Color{
	StyleDelim:        ansiColor(color.Faint),
	StyleFlags:        ansiColor(color.Faint, color.Italic),
	"regex-g1":        ansiColor(color.Bold, color.FgYellow),
	"regex-g2":        ansiColor(color.Bold, color.FgGreen),
	"regex-g3":        ansiColor(color.Bold, color.FgCyan),
	"regex-g4":        ansiColor(color.Bold, color.FgMagenta),
	"regex-g5":        ansiColor(color.Bold, color.FgBlue),
	"regex-chr":       ansiColor(color.FgCyan),
	"regex-chr-meta":  ansiColor(color.FgMagenta),
	"regex-chr-range": ansiColor(color.Bold, color.FgCyan),
	"regex-meta":      ansiColor(color.FgYellow),
}

// ansiColor always emits escapes; callers decide whether to render ANSI at all.
func ansiColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// ANSI renders segments with terminal escape sequences. Text and unknown
// styles are written as is.
func ANSI(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		c, ok := ansiStyles[s.Style]
		if !ok {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(c.Sprint(s.Text))
	}
	return b.String()
}

// Plain concatenates the segment texts.
func Plain(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}
