package highlight

import (
	"github.com/elliotchance/phpserialize"
)

// isSerialized reports whether s is a PHP-serialized string, array or object.
// Scalars other than strings are left alone since "i:1;" and friends are as
// likely to be something else.
func isSerialized(s string) bool {
	n := len(s)
	if n < 4 || (s[n-1] != ';' && s[n-1] != '}') {
		return false
	}
	kind := s[0]
	if kind != 's' && kind != 'a' && kind != 'O' {
		return false
	}
	if !(kind == 's' && s[n-2] != '"') && !hasLengthPrefix(s) {
		return false
	}
	return decodes(kind, []byte(s))
}

// hasLengthPrefix matches ^X:[0-9]+:
func hasLengthPrefix(s string) bool {
	if len(s) < 2 || s[1] != ':' {
		return false
	}
	i := 2
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i > 2 && i < len(s) && s[i] == ':'
}

func decodes(kind byte, data []byte) (ok bool) {
	// A decoder panic on malformed input counts as a mismatch.
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	switch kind {
	case 's':
		var v string
		return phpserialize.Unmarshal(data, &v) == nil
	case 'a':
		_, err := phpserialize.UnmarshalAssociativeArray(data)
		return err == nil
	case 'O':
		var v struct{}
		return phpserialize.Unmarshal(data, &v) == nil
	}
	return false
}
