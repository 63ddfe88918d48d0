package relex

import "fmt"

type TokenKind uint8

const (
	KindLiteral              TokenKind = iota // abc, or an escaped literal such as \.
	KindGroupOpen                             // ( (?: (?= (?!
	KindGroupClose                            // )
	KindCharClassOpen                         // [ [^
	KindCharClassLiteral                      // literal run or "-" inside [...]
	KindCharClassMetaEscape                   // escape inside [...]
	KindCharClassRangeHyphen                  // "-" joining two range endpoints
	KindCharClassClose                        // ]
	KindMetaEscape                            // \d \n \x41 \0 ...
	KindBackreference                         // \1 .. \N
	KindQuantifier                            // ? * + {m,n}, optionally lazy
	KindAlternation                           // |
	KindAnchor                                // ^ $
	KindWildcard                              // .
)

var tokenKindNames = [...]string{
	KindLiteral:              "Literal",
	KindGroupOpen:            "GroupOpen",
	KindGroupClose:           "GroupClose",
	KindCharClassOpen:        "CharClassOpen",
	KindCharClassLiteral:     "CharClassLiteral",
	KindCharClassMetaEscape:  "CharClassMetaEscape",
	KindCharClassRangeHyphen: "CharClassRangeHyphen",
	KindCharClassClose:       "CharClassClose",
	KindMetaEscape:           "MetaEscape",
	KindBackreference:        "Backreference",
	KindQuantifier:           "Quantifier",
	KindAlternation:          "Alternation",
	KindAnchor:               "Anchor",
	KindWildcard:             "Wildcard",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(k))
}

// ParseTokenKind is the inverse of TokenKind.String.
func ParseTokenKind(name string) (TokenKind, bool) {
	for k, n := range tokenKindNames {
		if n == name {
			return TokenKind(k), true
		}
	}
	return 0, false
}

// MaxStyle is the number of presentation bands group nesting cycles through.
const MaxStyle = 5

type Token struct {
	Kind TokenKind
	// Exact source text. Concatenating Text of all tokens yields the body.
	Text   string
	Offset int
	// Presentation band in [1, MaxStyle] for group tokens, for alternations
	// inside a group and for quantifiers applied to a group. Zero otherwise.
	Style int
	// Set on GroupOpen and on the matching GroupClose.
	Capturing  bool
	Lookaround bool
	// Set on CharClassMetaEscape for \d \D \s \S \w \W.
	Shorthand bool
	// Group number of a Backreference.
	Number int
}

// StyleTag returns the presentation class of the token: "g1".."g5" for
// group-styled tokens, otherwise one of "chr", "chr-meta", "chr-range",
// "meta" or "text".
func (t Token) StyleTag() string {
	if t.Style > 0 {
		return fmt.Sprintf("g%d", t.Style)
	}
	switch t.Kind {
	case KindCharClassOpen, KindCharClassLiteral, KindCharClassClose:
		return "chr"
	case KindCharClassMetaEscape:
		return "chr-meta"
	case KindCharClassRangeHyphen:
		return "chr-range"
	case KindLiteral:
		return "text"
	default:
		return "meta"
	}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}
