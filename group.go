package relex

type groupFrame struct {
	text       string
	offset     int
	capturing  bool
	lookaround bool
}

// openGroup handles "(", "(?:", "(?=" and "(?!". Any other "(?" prefix is
// rejected.
func (s *scanner) openGroup() error {
	start := s.pos
	end := start + 1
	if end < len(s.src) && s.src[end] == '?' {
		end++
		if end >= len(s.src) || (s.src[end] != ':' && s.src[end] != '=' && s.src[end] != '!') {
			return s.fail(ErrInvalidGroupType, start, end)
		}
		end++
	}
	s.pos = end

	frame := groupFrame{
		text:       s.src[start:end],
		offset:     start,
		capturing:  end-start == 1,
		lookaround: end-start == 3 && s.src[start+2] != ':',
	}
	if frame.capturing {
		s.capturingGroups++
	}
	s.groups.push(frame)
	s.styleDepth = s.styleDepth%MaxStyle + 1

	tok := s.emit(KindGroupOpen, start, end)
	tok.Style = s.styleDepth
	tok.Capturing = frame.capturing
	tok.Lookaround = frame.lookaround

	s.lastIsQuantifiable = false
	return nil
}

func (s *scanner) closeGroup() error {
	start := s.pos
	if s.groups.empty() {
		return s.fail(ErrNoMatchingOpen, start, start+1)
	}
	s.pos++
	frame := s.groups.pop()

	tok := s.emit(KindGroupClose, start, s.pos)
	tok.Style = s.styleDepth
	tok.Capturing = frame.capturing
	tok.Lookaround = frame.lookaround

	// Zero-width assertions cannot be repeated.
	s.lastIsQuantifiable = !frame.lookaround
	s.lastStyle = s.styleDepth
	s.lastClass = tokenClassOther
	s.styleDepth = (s.styleDepth+MaxStyle-2)%MaxStyle + 1
	return nil
}
