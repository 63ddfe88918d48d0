// Package highlight decides whether a string value should be presented as a
// regular expression and, if so, turns its tokens into styled segments.
//
// Values that are too short or too long, numeric, JSON documents or
// PHP-serialized data are never tokenized. Any tokenizer failure falls back to
// a single plain text segment.
package highlight

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/auvred/relex"
)

const (
	DefaultMinLength = 5
	DefaultMaxLength = 767
)

// Style names used for segments that do not come from a token.
const (
	StyleText  = "text"
	StyleDelim = "regex-delim"
	StyleFlags = "regex-flags"
)

// Segment is a run of text rendered with one style.
type Segment struct {
	Style string `json:"style" yaml:"style"`
	Text  string `json:"text" yaml:"text"`
}

type Options struct {
	// Bounds on the rune length of values handed to the tokenizer, inclusive.
	MinLength int
	MaxLength int
}

type Option func(*Options)

// WithLengthBounds overrides the inclusive length window. A non-positive max
// removes the upper bound.
func WithLengthBounds(minLen, maxLen int) Option {
	return func(o *Options) {
		o.MinLength = minLen
		o.MaxLength = maxLen
	}
}

// Highlighter is safe for concurrent use.
type Highlighter struct {
	opts Options
}

func New(opts ...Option) *Highlighter {
	o := Options{
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Highlighter{opts: o}
}

func (h *Highlighter) Options() Options {
	return h.opts
}

// Verdict records why a value was or was not highlighted.
type Verdict uint8

const (
	Highlighted Verdict = iota
	SkippedBudget
	SkippedLength
	SkippedNumeric
	SkippedJSON
	SkippedSerialized
	NotARegex
	Invalid
)

var verdictNames = [...]string{
	Highlighted:       "highlighted",
	SkippedBudget:     "skipped-budget",
	SkippedLength:     "skipped-length",
	SkippedNumeric:    "skipped-numeric",
	SkippedJSON:       "skipped-json",
	SkippedSerialized: "skipped-serialized",
	NotARegex:         "not-a-regex",
	Invalid:           "invalid",
}

func (v Verdict) String() string {
	if int(v) < len(verdictNames) {
		return verdictNames[v]
	}
	return "verdict(" + strconv.Itoa(int(v)) + ")"
}

type Result struct {
	Segments []Segment
	Verdict  Verdict
	// Set only when Verdict is Highlighted.
	Regex *relex.Regex
	// The tokenizer error for NotARegex and Invalid, or the context error for
	// SkippedBudget.
	Err error
}

// Highlight screens value and tokenizes it when it passes. The returned
// segments always concatenate back to value.
func (h *Highlighter) Highlight(ctx context.Context, value string) Result {
	if err := ctx.Err(); err != nil {
		return plain(value, SkippedBudget, err)
	}
	if v, skip := h.screen(value); skip {
		return plain(value, v, nil)
	}
	re, err := relex.Tokenize(value)
	if err != nil {
		if errors.Is(err, relex.ErrNotARegex) {
			return plain(value, NotARegex, err)
		}
		return plain(value, Invalid, err)
	}
	return Result{
		Segments: Segments(re),
		Verdict:  Highlighted,
		Regex:    re,
	}
}

func (h *Highlighter) screen(value string) (Verdict, bool) {
	n := utf8.RuneCountInString(value)
	if n < h.opts.MinLength || (h.opts.MaxLength > 0 && n > h.opts.MaxLength) || strings.TrimSpace(value) == "" {
		return SkippedLength, true
	}
	if isNumeric(value) {
		return SkippedNumeric, true
	}
	if isSerialized(value) {
		return SkippedSerialized, true
	}
	if isJSON(value) {
		return SkippedJSON, true
	}
	return Highlighted, false
}

func plain(value string, v Verdict, err error) Result {
	return Result{
		Segments: []Segment{{Style: StyleText, Text: value}},
		Verdict:  v,
		Err:      err,
	}
}

// Segments maps a tokenized pattern to styled segments, delimiters and flags
// included.
func Segments(re *relex.Regex) []Segment {
	segs := make([]Segment, 0, len(re.Tokens)+3)
	segs = append(segs, Segment{Style: StyleDelim, Text: re.Open})
	for _, t := range re.Tokens {
		segs = append(segs, Segment{Style: "regex-" + t.StyleTag(), Text: t.Text})
	}
	segs = append(segs, Segment{Style: StyleDelim, Text: re.Close})
	if re.RawFlags != "" {
		segs = append(segs, Segment{Style: StyleFlags, Text: re.RawFlags})
	}
	return segs
}

// isNumeric accepts optionally signed decimal integers and floats with
// surrounding whitespace, but not hex floats, Inf or NaN.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	t := strings.TrimLeft(s, "+-")
	if len(s)-len(t) > 1 || t == "" {
		return false
	}
	if !(t[0] >= '0' && t[0] <= '9' || t[0] == '.') {
		return false
	}
	if strings.ContainsAny(t, "xXpP_") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// isJSON only considers arrays and objects.
func isJSON(s string) bool {
	if s[0] != '{' && s[0] != '[' {
		return false
	}
	return gjson.Valid(s)
}
