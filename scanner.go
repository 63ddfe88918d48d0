package relex

import "unicode/utf8"

type tokenClass uint8

const (
	tokenClassNone tokenClass = iota
	tokenClassAlternator
	tokenClassOther
)

// scanner walks a pattern body once, left to right. All of its state is
// local to a single Tokenize or Scan call.
type scanner struct {
	src string
	// Offset of src within the string reported in tokens and errors.
	base int
	pos  int

	tokens []Token
	groups stack[groupFrame]

	capturingGroups    int
	styleDepth         int
	lastIsQuantifiable bool
	lastClass          tokenClass
	// Style of the group closed by the previous token, zero otherwise.
	lastStyle       int
	lastAlternation int
}

func newScanner(src string, base int) *scanner {
	return &scanner{
		src:    src,
		base:   base,
		tokens: make([]Token, 0, len(src)/2+1),
		// The first opening group wraps around to style 1.
		styleDepth: MaxStyle,
	}
}

// Returns the appended token so that callers can fill in kind-specific fields.
func (s *scanner) emit(kind TokenKind, start, end int) *Token {
	s.tokens = append(s.tokens, Token{
		Kind:   kind,
		Text:   s.src[start:end],
		Offset: s.base + start,
	})
	return &s.tokens[len(s.tokens)-1]
}

func (s *scanner) fail(kind ErrorKind, start, end int) error {
	return newSyntaxError(kind, s.base+start, s.src[start:end])
}

func (s *scanner) run() error {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		var err error
		switch c {
		case '[':
			err = s.scanCharClass()
		case '\\':
			err = s.scanEscape()
		case '(':
			err = s.openGroup()
		case ')':
			err = s.closeGroup()
		case '|':
			err = s.alternate()
		case '^', '$':
			s.emit(KindAnchor, s.pos, s.pos+1)
			s.pos++
			s.lastIsQuantifiable = false
		case '.':
			s.emit(KindWildcard, s.pos, s.pos+1)
			s.pos++
			s.lastIsQuantifiable = true
		default:
			if end := s.quantifierEnd(s.pos); end > s.pos {
				err = s.quantify(end)
			} else {
				s.scanLiteral()
			}
		}
		if err != nil {
			return err
		}
		if c != ')' && c != '|' {
			s.lastClass = tokenClassOther
			s.lastStyle = 0
		}
	}
	return s.finish()
}

func (s *scanner) finish() error {
	if !s.groups.empty() {
		g := s.groups.peekPtr()
		return s.fail(ErrUnclosedGroup, g.offset, g.offset+len(g.text))
	}
	if s.lastClass == tokenClassAlternator {
		return s.fail(ErrEmptyAlternative, s.lastAlternation, s.lastAlternation+1)
	}
	return nil
}

func isSpecial(c byte) bool {
	switch c {
	case '.', '?', '*', '+', '^', '$', '{', '[', '(', ')', '|', '\\':
		return true
	}
	return false
}

func (s *scanner) scanLiteral() {
	start := s.pos
	if isSpecial(s.src[start]) {
		// A "{" that does not start an interval quantifier.
		s.pos++
	} else {
		for s.pos < len(s.src) && !isSpecial(s.src[s.pos]) {
			s.pos++
		}
	}
	s.emit(KindLiteral, start, s.pos)
	s.lastIsQuantifiable = true
}

func isDigit(c byte) bool {
	return c-'0' <= 9
}

func isOctalDigit(c byte) bool {
	return c-'0' <= 7
}

func isHexDigit(c byte) bool {
	return isDigit(c) || lowerASCII(c)-'a' <= 'f'-'a'
}

func isASCIILetterChar(c byte) bool {
	return lowerASCII(c)-'a' <= 'z'-'a'
}

func lowerASCII(c byte) byte {
	return c | ('a' - 'A')
}

func skipDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func hasHexDigits(s string, i, n int) bool {
	if i+n > len(s) {
		return false
	}
	for j := i; j < i+n; j++ {
		if !isHexDigit(s[j]) {
			return false
		}
	}
	return true
}

// octalRunEnd returns the end of an octal number starting at i: up to three
// digits when the first one is 0-3, up to two when it is 4-7. If s[i] is not
// an octal digit, i is returned.
func octalRunEnd(s string, i int) int {
	if i >= len(s) || !isOctalDigit(s[i]) {
		return i
	}
	limit := 2
	if s[i] <= '3' {
		limit = 3
	}
	j := i + 1
	for j < len(s) && j-i < limit && isOctalDigit(s[j]) {
		j++
	}
	return j
}

// escapeEnd returns the end of the escape sequence starting with the
// backslash at i. Fixed-width escapes (\xHH, \uHHHH, \cX) that are truncated
// end right after their letter. Inside a character class, digit escapes are
// always octal; outside, \0 takes an octal tail and \1-\9 take every
// following digit.
func escapeEnd(s string, i int, inClass bool) int {
	j := i + 1
	if j >= len(s) {
		return j
	}
	c := s[j]
	switch {
	case inClass && isOctalDigit(c):
		return octalRunEnd(s, j)
	case !inClass && c == '0':
		return octalRunEnd(s, j+1)
	case !inClass && isDigit(c):
		return skipDigits(s, j)
	case c == 'x':
		if hasHexDigits(s, j+1, 2) {
			return j + 3
		}
		return j + 1
	case c == 'u':
		if hasHexDigits(s, j+1, 4) {
			return j + 5
		}
		return j + 1
	case c == 'c':
		if j+1 < len(s) && isASCIILetterChar(s[j+1]) {
			return j + 2
		}
		return j + 1
	}
	_, size := utf8.DecodeRuneInString(s[j:])
	return j + size
}

// isIncompleteEscape reports whether an escape is a truncated \c, \u or \x,
// or a lone backslash.
func isIncompleteEscape(esc string) bool {
	if len(esc) == 1 {
		return true
	}
	return len(esc) == 2 && (esc[1] == 'c' || esc[1] == 'u' || esc[1] == 'x')
}
