package relex

import (
	"strconv"
	"strings"
)

// Escapes that are emitted as MetaEscape outside of character classes.
const metaEscapeLetters = "0bBcdDfnrsStuvwWx"

func (s *scanner) scanEscape() error {
	start := s.pos
	end := escapeEnd(s.src, start, false)
	s.pos = end
	if end-start == 1 {
		return s.fail(ErrIncompleteToken, start, end)
	}
	c := s.src[start+1]
	switch {
	case c >= '1' && c <= '9':
		s.backreference(start, end)
		s.lastIsQuantifiable = true
	case strings.IndexByte(metaEscapeLetters, c) >= 0:
		if isIncompleteEscape(s.src[start:end]) {
			return s.fail(ErrIncompleteToken, start, end)
		}
		s.emit(KindMetaEscape, start, end)
		// Word boundaries are assertions.
		s.lastIsQuantifiable = c != 'b' && c != 'B'
	default:
		s.emit(KindLiteral, start, end)
		s.lastIsQuantifiable = true
	}
	return nil
}

// backreference resolves \N against the capturing groups opened so far.
// Trailing digits are moved into a literal until the number refers to an
// existing group. When nothing is left, the escape is an octal escape (or
// \8, \9) followed by literal digits.
func (s *scanner) backreference(start, end int) {
	digits := s.src[start+1 : end]
	n := len(digits)
	for n > 0 && exceedsGroupCount(digits[:n], s.capturingGroups) {
		n--
	}
	split := start + 1 + n
	if n > 0 {
		tok := s.emit(KindBackreference, start, split)
		tok.Number, _ = strconv.Atoi(digits[:n])
	} else {
		split = octalRunEnd(s.src, start+1)
		if split == start+1 {
			split++
		}
		s.emit(KindMetaEscape, start, split)
	}
	if split < end {
		s.emit(KindLiteral, split, end)
	}
}

func exceedsGroupCount(num string, groups int) bool {
	n, err := strconv.Atoi(num)
	return err != nil || n > groups
}
