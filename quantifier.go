package relex

// maxInterval is the largest bound accepted in {m,n}.
const maxInterval = 65535

// quantifierEnd returns the end of a quantifier (?, *, +, {m}, {m,} or {m,n},
// each optionally followed by a lazy "?") starting at i, or i if there is none.
func (s *scanner) quantifierEnd(i int) int {
	j := i
	switch s.src[i] {
	case '?', '*', '+':
		j++
	case '{':
		j = skipDigits(s.src, i+1)
		if j == i+1 {
			return i
		}
		if j < len(s.src) && s.src[j] == ',' {
			j = skipDigits(s.src, j+1)
		}
		if j >= len(s.src) || s.src[j] != '}' {
			return i
		}
		j++
	default:
		return i
	}
	if j < len(s.src) && s.src[j] == '?' {
		j++
	}
	return j
}

// parseBound parses a decimal bound, clamping anything above maxInterval to
// maxInterval+1.
func parseBound(digits string) int {
	n := 0
	for i := 0; i < len(digits); i++ {
		n = n*10 + int(digits[i]-'0')
		if n > maxInterval {
			return maxInterval + 1
		}
	}
	return n
}

func (s *scanner) quantify(end int) error {
	start := s.pos
	s.pos = end
	if !s.lastIsQuantifiable {
		return s.fail(ErrQuantifierWithoutTarget, start, end)
	}
	if s.src[start] == '{' {
		minEnd := skipDigits(s.src, start+1)
		lo := parseBound(s.src[start+1 : minEnd])
		hi, hasHi := 0, false
		if s.src[minEnd] == ',' {
			maxEnd := skipDigits(s.src, minEnd+1)
			// {m,} is unbounded.
			if maxEnd > minEnd+1 {
				hi, hasHi = parseBound(s.src[minEnd+1:maxEnd]), true
			}
		}
		if lo > maxInterval || hi > maxInterval {
			return s.fail(ErrIntervalTooLarge, start, end)
		}
		if hasHi && lo > hi {
			return s.fail(ErrReversedInterval, start, end)
		}
	}
	tok := s.emit(KindQuantifier, start, end)
	// Styled like the group closed right before it, if any: in "(a+)" the
	// "+" gets style 0, in "(a)+" it gets the group's.
	tok.Style = s.lastStyle
	s.lastIsQuantifiable = false
	return nil
}

func (s *scanner) alternate() error {
	start := s.pos
	s.pos++
	if s.lastClass == tokenClassNone || (s.lastClass == tokenClassAlternator && s.groups.empty()) {
		return s.fail(ErrEmptyAlternative, start, s.pos)
	}
	tok := s.emit(KindAlternation, start, s.pos)
	if !s.groups.empty() {
		tok.Style = s.styleDepth
	}
	s.lastIsQuantifiable = false
	s.lastClass = tokenClassAlternator
	s.lastStyle = 0
	s.lastAlternation = start
	return nil
}
