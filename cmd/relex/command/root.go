// Package command implements the relex command line.
package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/auvred/relex/highlight"
)

const envPrefix = "RELEX"

var (
	formats = []string{"table", "json", "yaml", "html", "ansi", "plain"}
	colors  = []string{"auto", "always", "never"}
)

type options struct {
	Format    string
	MinLength int
	MaxLength int
	Budget    time.Duration
	Strict    bool
	Color     string
}

// New returns the root command. Every call gets its own configuration
// registry, so commands can be built and executed independently.
func New() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "relex [flags] [pattern ...]",
		Short: "Tokenize and validate delimited regular expressions.",
		Long: `Tokenize and validate delimited regular expressions such as /a(b|c)+/i.

Patterns are taken from the arguments, or read one per line from standard
input when no arguments are given. Every flag can also be set through a
RELEX_<FLAG> environment variable or a YAML file passed with --config.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(v, cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd, opts, args)
		},
	}

	fs := cmd.Flags()
	fs.String("config", "", "path to a YAML config file")
	fs.StringP("format", "f", "table", "output format: "+strings.Join(formats, ", "))
	fs.Int("min-length", highlight.DefaultMinLength, "shortest value, in characters, that is tokenized")
	fs.Int("max-length", highlight.DefaultMaxLength, "longest value, in characters, that is tokenized; 0 disables the limit")
	fs.Duration("budget", 0, "wall-clock budget for the whole run; patterns left when it runs out are printed as plain text")
	fs.Bool("strict", false, "exit with an error if any pattern is not a valid delimited regex")
	fs.String("color", "auto", "colorize ansi output: "+strings.Join(colors, ", "))
	return cmd
}

func loadOptions(v *viper.Viper, fs *pflag.FlagSet) (*options, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		glog.V(1).Infof("loaded config from %s", v.ConfigFileUsed())
	}

	opts := &options{
		Format:    strings.ToLower(v.GetString("format")),
		MinLength: v.GetInt("min-length"),
		MaxLength: v.GetInt("max-length"),
		Budget:    v.GetDuration("budget"),
		Strict:    v.GetBool("strict"),
		Color:     strings.ToLower(v.GetString("color")),
	}
	if !slices.Contains(formats, opts.Format) {
		return nil, fmt.Errorf("invalid format %q, must be one of %s", opts.Format, strings.Join(formats, ", "))
	}
	if !slices.Contains(colors, opts.Color) {
		return nil, fmt.Errorf("invalid color %q, must be one of %s", opts.Color, strings.Join(colors, ", "))
	}
	if opts.MinLength < 0 || opts.MaxLength < 0 {
		return nil, fmt.Errorf("length bounds must not be negative (got %d, %d)", opts.MinLength, opts.MaxLength)
	}
	if opts.MaxLength > 0 && opts.MinLength > opts.MaxLength {
		return nil, fmt.Errorf("min-length %d exceeds max-length %d", opts.MinLength, opts.MaxLength)
	}
	if opts.Budget < 0 {
		return nil, fmt.Errorf("budget must not be negative (got %v)", opts.Budget)
	}
	return opts, nil
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	patterns := args
	if len(patterns) == 0 {
		var err error
		if patterns, err = readLines(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("failed to read patterns: %w", err)
		}
	}

	ctx := cmd.Context()
	if opts.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Budget)
		defer cancel()
	}

	h := highlight.New(highlight.WithLengthBounds(opts.MinLength, opts.MaxLength))
	reports := make([]*report, 0, len(patterns))
	rejected := 0
	for _, p := range patterns {
		res := h.Highlight(ctx, p)
		glog.V(1).Infof("%q: %s", p, res.Verdict)
		if res.Verdict == highlight.NotARegex || res.Verdict == highlight.Invalid {
			rejected++
			if opts.Strict {
				glog.Warningf("rejected %q: %v", p, res.Err)
			}
		}
		reports = append(reports, newReport(p, res))
	}

	if err := write(cmd.OutOrStdout(), opts, reports); err != nil {
		return fmt.Errorf("failed to write %s output: %w", opts.Format, err)
	}
	if opts.Strict && rejected > 0 {
		return fmt.Errorf("%d of %d patterns rejected", rejected, len(patterns))
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
