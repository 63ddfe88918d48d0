package relex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v2"
	"gotest.tools/v3/assert"
)

type fixture struct {
	Pattern string
	Flags   *string
	Tokens  [][]interface{}
	Error   string
	Offset  *int
}

func loadFixtures(t *testing.T, name string) []fixture {
	content, err := os.ReadFile(filepath.Join("testdata", name))
	assert.NilError(t, err)
	var fixtures []fixture
	assert.NilError(t, yaml.Unmarshal(content, &fixtures))
	return fixtures
}

func TestFixtures(t *testing.T) {
	for _, f := range loadFixtures(t, "patterns.yaml") {
		f := f
		t.Run(f.Pattern, func(t *testing.T) {
			t.Parallel()
			re, err := Tokenize(f.Pattern)

			if f.Error == "NotARegex" {
				assert.ErrorIs(t, err, ErrNotARegex)
				return
			}
			if f.Error != "" {
				var se SyntaxError
				assert.Assert(t, errors.As(err, &se), "expected %s, got %v", f.Error, err)
				assert.Equal(t, se.Kind.String(), f.Error)
				if f.Offset != nil {
					assert.Equal(t, se.Offset, *f.Offset)
				}
				return
			}

			assert.NilError(t, err)
			if f.Flags != nil {
				assert.Equal(t, re.RawFlags, *f.Flags)
			}
			assert.Equal(t, len(re.Tokens), len(f.Tokens), "tokens: %v", re.Tokens)
			for i, expected := range f.Tokens {
				actual := re.Tokens[i]
				kind, ok := ParseTokenKind(fmt.Sprint(expected[0]))
				assert.Assert(t, ok, "unknown kind %v", expected[0])
				assert.Equal(t, actual.Kind, kind, "token %d", i)
				assert.Equal(t, actual.Text, fmt.Sprint(expected[1]), "token %d", i)
				if len(expected) > 2 {
					assert.Equal(t, actual.Style, expected[2], "token %d", i)
				}
			}
		})
	}
}
