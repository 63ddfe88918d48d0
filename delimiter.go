package relex

import (
	"unicode"
	"unicode/utf8"
)

// minDelimitedLen is the shortest delimited core, e.g. "/a/".
const minDelimitedLen = 3

// SplitDelimiters decides whether pattern is plausibly a delimited regex and
// splits it into the opening delimiter, the body, the closing delimiter and
// the trailing modifier letters. Passing the check says nothing about the
// validity of the body.
func SplitDelimiters(pattern string) (open, body, closing, flags string, ok bool) {
	end := len(pattern)
	for end > 0 {
		if _, isFlag := flagFromLetter(pattern[end-1]); !isFlag || utf8.RuneCountInString(pattern[:end-1]) < minDelimitedLen {
			break
		}
		end--
	}
	core := pattern[:end]
	if utf8.RuneCountInString(core) < minDelimitedLen {
		return "", "", "", "", false
	}
	first, firstSize := utf8.DecodeRuneInString(core)
	last, lastSize := utf8.DecodeLastRuneInString(core)
	if !(first == last && isDelimiter(first)) && !(first == '{' && last == '}') {
		return "", "", "", "", false
	}
	return core[:firstSize], core[firstSize : len(core)-lastSize], core[len(core)-lastSize:], pattern[end:], true
}

func isDelimiter(r rune) bool {
	if r == utf8.RuneError || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		return false
	}
	switch r {
	case '*', '?', '[', '\\':
		return false
	}
	return true
}
