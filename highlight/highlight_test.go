package highlight

import (
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/golden"

	"github.com/auvred/relex"
)

func TestHighlight(t *testing.T) {
	h := New()
	res := h.Highlight(context.Background(), "/a(b|c)+/i")
	assert.Equal(t, res.Verdict, Highlighted)
	assert.NilError(t, res.Err)
	assert.Assert(t, res.Regex != nil)
	assert.DeepEqual(t, res.Segments, []Segment{
		{StyleDelim, "/"},
		{"regex-text", "a"},
		{"regex-g1", "("},
		{"regex-text", "b"},
		{"regex-g1", "|"},
		{"regex-text", "c"},
		{"regex-g1", ")"},
		{"regex-g1", "+"},
		{StyleDelim, "/"},
		{StyleFlags, "i"},
	})
}

func TestVerdicts(t *testing.T) {
	h := New()
	for _, tc := range []struct {
		value   string
		verdict Verdict
	}{
		{"abc", SkippedLength},
		{"     ", SkippedLength},
		{"12345", SkippedNumeric},
		{" -1.5e3 ", SkippedNumeric},
		{`{"a":1}`, SkippedJSON},
		{`[1, 2, 3]`, SkippedJSON},
		{`s:5:"hello";`, SkippedSerialized},
		{`a:1:{i:0;s:1:"x";}`, SkippedSerialized},
		{`a:0:{}`, SkippedSerialized},
		{"hello world", NotARegex},
		{"{a(b}", Invalid},
		{"/a(b/", Invalid},
		{"#^[a-z]+$#i", Highlighted},
		{"{a+b}", Highlighted},
	} {
		tc := tc
		t.Run(tc.value, func(t *testing.T) {
			t.Parallel()
			res := h.Highlight(context.Background(), tc.value)
			assert.Equal(t, res.Verdict, tc.verdict)
			assert.Equal(t, Plain(res.Segments), tc.value)
			if tc.verdict != Highlighted {
				assert.DeepEqual(t, res.Segments, []Segment{{StyleText, tc.value}})
				assert.Assert(t, res.Regex == nil)
			}
		})
	}
}

func TestHighlightErrors(t *testing.T) {
	h := New()

	res := h.Highlight(context.Background(), "/a(b/")
	var se relex.SyntaxError
	assert.Assert(t, errors.As(res.Err, &se))
	assert.Equal(t, se.Kind, relex.ErrUnclosedGroup)

	res = h.Highlight(context.Background(), "hello world")
	assert.ErrorIs(t, res.Err, relex.ErrNotARegex)
}

func TestBudget(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := New().Highlight(ctx, "/a(b|c)+/")
	assert.Equal(t, res.Verdict, SkippedBudget)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, Plain(res.Segments), "/a(b|c)+/")
}

func TestLengthBounds(t *testing.T) {
	assert.Equal(t, New().Highlight(context.Background(), "/a+/").Verdict, SkippedLength)
	assert.Equal(t, New(WithLengthBounds(3, 0)).Highlight(context.Background(), "/a+/").Verdict, Highlighted)
	assert.Equal(t, New(WithLengthBounds(3, 6)).Highlight(context.Background(), "/abcdef/").Verdict, SkippedLength)
	assert.DeepEqual(t, New().Options(), Options{MinLength: DefaultMinLength, MaxLength: DefaultMaxLength})

	long := "/" + string(make([]byte, DefaultMaxLength)) + "/"
	assert.Equal(t, New().Highlight(context.Background(), long).Verdict, SkippedLength)
}

func TestIsNumeric(t *testing.T) {
	for s, expected := range map[string]bool{
		"1e5":   true,
		"+.5":   true,
		"-0":    true,
		" 42 ":  true,
		"1e999": true,
		"--1":   false,
		"Inf":   false,
		"NaN":   false,
		"0x1p3": false,
		"1_000": false,
		"":      false,
		"abc":   false,
		"/1/":   false,
	} {
		assert.Equal(t, isNumeric(s), expected, s)
	}
}

func TestIsSerialized(t *testing.T) {
	for s, expected := range map[string]bool{
		`s:5:"hello";`:                true,
		`s:0:"";`:                     true,
		`a:0:{}`:                      true,
		`a:1:{i:0;s:1:"x";}`:          true,
		`a:2:{i:0;i:1;i:1;s:2:"ab";}`: true,
		`b:1;`:                        false,
		`i:5;`:                        false,
		`N;`:                          false,
		`s:5:"hello";x`:               false,
		`s:5:"hello"`:                 false,
		`a:x:{}`:                      false,
		`a:1:{`:                       false,
		`O:8:"stdClass"`:              false,
		`/a;/`:                        false,
	} {
		assert.Equal(t, isSerialized(s), expected, s)
	}
}

func TestHasLengthPrefix(t *testing.T) {
	for s, expected := range map[string]bool{
		`a:0:{}`:  true,
		`s:12:"`:  true,
		`a::{}`:   false,
		`a:1`:     false,
		`ab:1:{}`: false,
	} {
		assert.Equal(t, hasLengthPrefix(s), expected, s)
	}
}

func TestHTMLGolden(t *testing.T) {
	res := New().Highlight(context.Background(), `/[a-z<]&"(x)/`)
	assert.Equal(t, res.Verdict, Highlighted)
	golden.Assert(t, HTML(res.Segments).String(), "class.golden")
}

func TestHTMLPlain(t *testing.T) {
	res := New().Highlight(context.Background(), `<b>"hi"</b>`)
	assert.Equal(t, res.Verdict, NotARegex)
	assert.Equal(t, HTML(res.Segments).String(),
		`<span class="text">&lt;b&gt;&#34;hi&#34;&lt;/b&gt;</span>`)
}

func TestANSI(t *testing.T) {
	out := ANSI([]Segment{
		{StyleDelim, "/"},
		{"regex-text", "a"},
		{"regex-g1", "("},
		{StyleText, "x"},
		{StyleFlags, "i"},
	})
	assert.Equal(t, out, "\x1b[2m/\x1b[22ma\x1b[1;33m(\x1b[22;0mx\x1b[2;3mi\x1b[22;23m")

	// Rendering ignores the global switch used for terminal detection.
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })
	assert.Equal(t, ANSI([]Segment{{"regex-meta", "+"}}), "\x1b[33m+\x1b[0m")
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, SkippedJSON.String(), "skipped-json")
	assert.Equal(t, Verdict(200).String(), "verdict(200)")
}
