package relex

import (
	"strconv"
	"unicode/utf8"
)

type classPieceKind uint8

const (
	classPieceLiteral classPieceKind = iota
	classPieceHyphen
	classPieceEscape
)

type classPiece struct {
	kind       classPieceKind
	start, end int
}

type classLastKind uint8

const (
	classLastNone classLastKind = iota
	classLastRangeHyphen
	classLastShorthand
)

// classState is scoped to a single [...] run.
type classState struct {
	rangeable bool
	last      classLastKind
	// Ordinal of the previous piece as a range low endpoint.
	code      rune
	hasCode   bool
	codeStart int
}

func (s *scanner) scanCharClass() error {
	start := s.pos
	i := start + 1
	if i < len(s.src) && s.src[i] == '^' {
		i++
	}
	openEnd := i
	// A "]" right after the opening is part of the content.
	if i < len(s.src) && s.src[i] == ']' {
		i++
	}
	closed := false
	for i < len(s.src) {
		c := s.src[i]
		if c == '\\' {
			i = min(i+2, len(s.src))
			continue
		}
		i++
		if c == ']' {
			closed = true
			break
		}
	}
	s.pos = i
	if !closed {
		return s.fail(ErrUnclosedClass, start, i)
	}

	s.emit(KindCharClassOpen, start, openEnd)
	if err := s.classContent(openEnd, i-1); err != nil {
		return err
	}
	s.emit(KindCharClassClose, i-1, i)
	s.lastIsQuantifiable = true
	return nil
}

func (s *scanner) splitClassContent(from, to int) []classPiece {
	var pieces []classPiece
	for i := from; i < to; {
		p := classPiece{start: i}
		switch s.src[i] {
		case '\\':
			p.kind = classPieceEscape
			p.end = min(escapeEnd(s.src, i, true), to)
		case '-':
			p.kind = classPieceHyphen
			p.end = i + 1
		default:
			p.kind = classPieceLiteral
			j := i + 1
			for j < to && s.src[j] != '\\' && s.src[j] != '-' {
				j++
			}
			p.end = j
		}
		pieces = append(pieces, p)
		i = p.end
	}
	return pieces
}

func (s *scanner) classContent(from, to int) error {
	pieces := s.splitClassContent(from, to)
	var st classState
	for i, p := range pieces {
		text := s.src[p.start:p.end]
		switch p.kind {
		case classPieceEscape:
			if isIncompleteEscape(text) {
				return s.fail(ErrIncompleteToken, p.start, p.end)
			}
			tok := s.emit(KindCharClassMetaEscape, p.start, p.end)
			st.rangeable = st.last != classLastRangeHyphen
			if isShorthandEscape(text) {
				tok.Shorthand = true
				st.last = classLastShorthand
				st.hasCode = false
			} else {
				st.last = classLastNone
				st.code, st.hasCode = charCode(text)
				st.codeStart = p.start
			}
		case classPieceHyphen:
			if !st.rangeable || i == 0 || i == len(pieces)-1 {
				s.emit(KindCharClassLiteral, p.start, p.end)
				st.rangeable = st.last != classLastRangeHyphen
				st.last = classLastNone
				st.code, st.hasCode, st.codeStart = '-', true, p.start
				continue
			}
			if err := s.checkRange(&st, pieces[i+1]); err != nil {
				return err
			}
			s.emit(KindCharClassRangeHyphen, p.start, p.end)
			st.rangeable = false
			st.last = classLastRangeHyphen
		case classPieceLiteral:
			s.emit(KindCharClassLiteral, p.start, p.end)
			// In "a-bc" the "c" is still free to start a new range.
			st.rangeable = utf8.RuneCountInString(text) > 1 || st.last != classLastRangeHyphen
			st.last = classLastNone
			r, size := utf8.DecodeLastRuneInString(text)
			st.code, st.hasCode, st.codeStart = r, true, p.end-size
		}
	}
	return nil
}

// checkRange validates the range whose low endpoint is described by st and
// whose high endpoint is next.
func (s *scanner) checkRange(st *classState, next classPiece) error {
	nextText := s.src[next.start:next.end]
	hiEnd := next.end
	var hi rune
	hasHi := true
	switch next.kind {
	case classPieceEscape:
		if isIncompleteEscape(nextText) {
			return s.fail(ErrIncompleteToken, next.start, next.end)
		}
		hi, hasHi = charCode(nextText)
	case classPieceHyphen:
		hi = '-'
	case classPieceLiteral:
		var size int
		hi, size = utf8.DecodeRuneInString(nextText)
		hiEnd = next.start + size
	}
	lo := st.codeStart
	if st.last == classLastShorthand || !st.hasCode {
		lo = next.start - 1
	}
	if st.last == classLastShorthand || !st.hasCode || !hasHi {
		return s.fail(ErrInvalidRange, lo, hiEnd)
	}
	if st.code > hi {
		return s.fail(ErrReversedRange, lo, hiEnd)
	}
	return nil
}

func isShorthandEscape(esc string) bool {
	if len(esc) != 2 {
		return false
	}
	switch esc[1] {
	case 'd', 'D', 's', 'S', 'w', 'W':
		return true
	}
	return false
}

func isOctalEscape(t string) bool {
	return t != "" && octalRunEnd(t, 0) == len(t)
}

// charCode maps a literal or an escape to a comparable ordinal. Shorthand
// classes and truncated escapes have no ordinal.
func charCode(tok string) (rune, bool) {
	if tok == "" || tok == `\` {
		return 0, false
	}
	if tok[0] != '\\' {
		r, _ := utf8.DecodeRuneInString(tok)
		return r, true
	}
	t := tok[1:]
	switch {
	case len(t) == 2 && t[0] == 'c' && isASCIILetterChar(t[1]):
		return rune(lowerASCII(t[1])-'a') + 1, true
	case (len(t) == 3 && t[0] == 'x' || len(t) == 5 && t[0] == 'u') && hasHexDigits(t, 1, len(t)-1):
		n, _ := strconv.ParseUint(t[1:], 16, 32)
		return rune(n), true
	case isOctalEscape(t):
		n, _ := strconv.ParseUint(t, 8, 32)
		return rune(n), true
	}
	r, size := utf8.DecodeRuneInString(t)
	if size != len(t) {
		return 0, false
	}
	switch r {
	case 'c', 'u', 'x', 'd', 'D', 's', 'S', 'w', 'W':
		return 0, false
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'v':
		return '\v', true
	}
	return r, true
}
