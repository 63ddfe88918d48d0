package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v2"

	"github.com/auvred/relex"
	"github.com/auvred/relex/highlight"
)

type report struct {
	Pattern         string              `json:"pattern" yaml:"pattern"`
	Verdict         string              `json:"verdict" yaml:"verdict"`
	Flags           string              `json:"flags,omitempty" yaml:"flags,omitempty"`
	CapturingGroups int                 `json:"capturing_groups,omitempty" yaml:"capturing_groups,omitempty"`
	Tokens          []tokenReport       `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Error           *errorReport        `json:"error,omitempty" yaml:"error,omitempty"`
	Segments        []highlight.Segment `json:"-" yaml:"-"`
}

type tokenReport struct {
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Offset int    `json:"offset" yaml:"offset"`
	Style  string `json:"style" yaml:"style"`
	Number int    `json:"number,omitempty" yaml:"number,omitempty"`
}

type errorReport struct {
	Kind    string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Offset  *int   `json:"offset,omitempty" yaml:"offset,omitempty"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func newReport(pattern string, res highlight.Result) *report {
	r := &report{
		Pattern:  pattern,
		Verdict:  res.Verdict.String(),
		Segments: res.Segments,
	}
	if re := res.Regex; re != nil {
		r.Flags = re.Flags.String()
		r.CapturingGroups = re.CapturingGroups
		for _, t := range re.Tokens {
			r.Tokens = append(r.Tokens, tokenReport{
				Kind:   t.Kind.String(),
				Text:   t.Text,
				Offset: t.Offset,
				Style:  t.StyleTag(),
				Number: t.Number,
			})
		}
	}
	if res.Err != nil {
		r.Error = &errorReport{Message: res.Err.Error()}
		var se relex.SyntaxError
		if errors.As(res.Err, &se) {
			offset := se.Offset
			r.Error.Kind = se.Kind.String()
			r.Error.Offset = &offset
			r.Error.Text = se.Text
		}
	}
	return r
}

func write(w io.Writer, opts *options, reports []*report) error {
	switch opts.Format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case "yaml":
		out, err := yaml.Marshal(reports)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "html":
		for _, r := range reports {
			if _, err := fmt.Fprintln(w, highlight.HTML(r.Segments).String()); err != nil {
				return err
			}
		}
		return nil
	case "ansi":
		color := useColor(w, opts.Color)
		for _, r := range reports {
			line := highlight.Plain(r.Segments)
			if color {
				line = highlight.ANSI(r.Segments)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	case "plain":
		for _, r := range reports {
			line := r.Verdict + "\t" + r.Pattern
			if r.Error != nil {
				line += "\t" + r.Error.Message
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
	return writeTable(w, reports)
}

func writeTable(w io.Writer, reports []*report) error {
	table := tablewriter.NewWriter(w)
	table.Header("Pattern", "Verdict", "Offset", "Kind", "Text", "Style")
	for _, r := range reports {
		if len(r.Tokens) == 0 {
			offset, kind, text := "", "", ""
			if r.Error != nil {
				kind, text = r.Error.Kind, r.Error.Message
				if r.Error.Offset != nil {
					offset = strconv.Itoa(*r.Error.Offset)
				}
			}
			if err := table.Append([]string{r.Pattern, r.Verdict, offset, kind, text, ""}); err != nil {
				return err
			}
			continue
		}
		for _, t := range r.Tokens {
			row := []string{r.Pattern, r.Verdict, strconv.Itoa(t.Offset), t.Kind, t.Text, t.Style}
			if err := table.Append(row); err != nil {
				return err
			}
		}
	}
	return table.Render()
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
