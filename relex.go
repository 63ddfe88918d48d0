// Package relex is a structural tokenizer and validator for delimited
// PCRE-style regular expression literals such as /a(b|c)+/i.
//
// It never matches anything. It splits the pattern body into classified
// tokens suitable for syntax highlighting and rejects patterns that are
// structurally malformed.
package relex

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Flag is a bitmask of trailing pattern modifiers.
// The zero value corresponds to /pattern/ with no modifiers.
type Flag uint16

const (
	// Case-insensitive matching ("i" modifier).
	FlagCaseless Flag = 1 << iota

	// "^" and "$" match at line boundaries ("m" modifier).
	FlagMultiline

	// "." matches newlines ("s" modifier).
	FlagDotAll

	// Whitespace and #-comments in the pattern are ignored ("x" modifier).
	FlagExtended

	// Pattern and subject are UTF-8 ("u" modifier).
	FlagUTF8

	// Match is anchored at the start ("A" modifier).
	FlagAnchored

	// "$" matches only at the very end ("D" modifier).
	FlagDollarEndOnly

	// Quantifiers are lazy by default ("U" modifier).
	FlagUngreedy
)

const flagLetters = "imsxuADU"

func flagFromLetter(c byte) (Flag, bool) {
	i := strings.IndexByte(flagLetters, c)
	if i < 0 {
		return 0, false
	}
	return 1 << i, true
}

func (f Flag) String() string {
	var b strings.Builder
	for i := 0; i < len(flagLetters); i++ {
		if f&(1<<i) != 0 {
			b.WriteByte(flagLetters[i])
		}
	}
	return b.String()
}

// ErrNotARegex is returned by Tokenize when the input does not look like a
// delimited pattern at all. It is a routing signal, callers should treat the
// input as plain text.
var ErrNotARegex = errors.New("relex: pattern does not appear to be a delimited regex")

// ErrorKind classifies a SyntaxError.
type ErrorKind uint8

const (
	ErrUnclosedClass ErrorKind = iota + 1
	ErrUnclosedGroup
	ErrNoMatchingOpen
	ErrInvalidGroupType
	ErrIncompleteToken
	ErrReversedRange
	ErrInvalidRange
	ErrIntervalTooLarge
	ErrReversedInterval
	ErrQuantifierWithoutTarget
	ErrEmptyAlternative
)

var errorKindNames = [...]string{
	ErrUnclosedClass:           "UnclosedClass",
	ErrUnclosedGroup:           "UnclosedGroup",
	ErrNoMatchingOpen:          "NoMatchingOpen",
	ErrInvalidGroupType:        "InvalidGroupType",
	ErrIncompleteToken:         "IncompleteToken",
	ErrReversedRange:           "ReversedRange",
	ErrInvalidRange:            "InvalidRange",
	ErrIntervalTooLarge:        "IntervalTooLarge",
	ErrReversedInterval:        "ReversedInterval",
	ErrQuantifierWithoutTarget: "QuantifierWithoutTarget",
	ErrEmptyAlternative:        "EmptyAlternative",
}

var errorKindMessages = [...]string{
	ErrUnclosedClass:           "unclosed character class",
	ErrUnclosedGroup:           "unclosed grouping",
	ErrNoMatchingOpen:          "no matching opening parenthesis",
	ErrInvalidGroupType:        "invalid or unsupported group type",
	ErrIncompleteToken:         "incomplete regex token",
	ErrReversedRange:           "reversed range in character class",
	ErrInvalidRange:            "invalid range in character class",
	ErrIntervalTooLarge:        "interval quantifier cannot use value over 65,535",
	ErrReversedInterval:        "interval quantifier range is reversed",
	ErrQuantifierWithoutTarget: "quantifiers must be preceded by a token that can be repeated",
	ErrEmptyAlternative:        "empty alternative effectively truncates the regex here",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) && errorKindNames[k] != "" {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

type SyntaxError struct {
	Kind ErrorKind
	// Byte offset of Text in the string handed to Tokenize or Scan.
	Offset int
	Text   string
}

func (e SyntaxError) Error() string {
	msg := "unknown error"
	if int(e.Kind) < len(errorKindMessages) && errorKindMessages[e.Kind] != "" {
		msg = errorKindMessages[e.Kind]
	}
	return fmt.Sprintf("%s at offset %d: %q", msg, e.Offset, e.Text)
}

var _ error = (*SyntaxError)(nil)

func newSyntaxError(kind ErrorKind, offset int, text string) SyntaxError {
	return SyntaxError{Kind: kind, Offset: offset, Text: text}
}

// Regex is a successfully tokenized pattern.
type Regex struct {
	Pattern  string
	Open     string
	Body     string
	Close    string
	RawFlags string
	Flags    Flag
	// Offsets of the tokens are relative to Pattern.
	Tokens          []Token
	CapturingGroups int
}

// String reassembles the pattern from its delimiters, tokens and flags.
func (r *Regex) String() string {
	var b strings.Builder
	b.Grow(len(r.Pattern))
	b.WriteString(r.Open)
	for _, t := range r.Tokens {
		b.WriteString(t.Text)
	}
	b.WriteString(r.Close)
	b.WriteString(r.RawFlags)
	return b.String()
}

// Tokenize checks that pattern looks like a delimited regex and splits its
// body into tokens. It returns ErrNotARegex when the delimiter check fails,
// a SyntaxError on the first structural violation, and never returns a
// partial token list together with an error.
func Tokenize(pattern string) (*Regex, error) {
	open, body, end, rawFlags, ok := SplitDelimiters(pattern)
	if !ok {
		return nil, ErrNotARegex
	}
	var flags Flag
	for i := 0; i < len(rawFlags); i++ {
		f, _ := flagFromLetter(rawFlags[i])
		flags |= f
	}
	s := newScanner(body, len(open))
	if err := s.run(); err != nil {
		return nil, err
	}
	return &Regex{
		Pattern:         pattern,
		Open:            open,
		Body:            body,
		Close:           end,
		RawFlags:        rawFlags,
		Flags:           flags,
		Tokens:          s.tokens,
		CapturingGroups: s.capturingGroups,
	}, nil
}

// MustTokenize is like Tokenize but panics on any error.
func MustTokenize(pattern string) *Regex {
	re, err := Tokenize(pattern)
	if err != nil {
		panic("relex: MustTokenize(" + strconv.Quote(pattern) + "): " + err.Error())
	}
	return re
}

// Scan tokenizes a bare pattern body without delimiters or flags.
// Offsets in tokens and errors are relative to body.
func Scan(body string) ([]Token, error) {
	s := newScanner(body, 0)
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.tokens, nil
}
