package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/coregx/rxselect"
	"github.com/coregx/rxselect/engine"
)

type cliOptions struct {
	configPath string
	backend    string

	ignoreCase bool
	multiline  bool
	dotAll     bool
	ungreedy   bool
	extended   bool
	pcre       bool

	offset int
	group  string
	groups []string
	output string

	debug bool
	trace bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "rxselect",
		Short: "Match a regular expression and print selected capture groups",
		Long: `rxselect runs a regular expression against a subject and prints only the
capture groups asked for with --group or --groups. Without either, it prints
the raw match signal: 1/0 for match and replace, the occurrence count for all.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			switch {
			case opts.trace:
				log.SetLevel(log.TraceLevel)
			case opts.debug:
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "engine configuration file (YAML)")
	flags.StringVar(&opts.backend, "engine", "", "regex backend: coregex, re2 or regexp2")
	flags.BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "case-insensitive matching")
	flags.BoolVarP(&opts.multiline, "multiline", "m", false, "^ and $ match at line boundaries")
	flags.BoolVarP(&opts.dotAll, "dot-all", "s", false, ". matches newlines")
	flags.BoolVarP(&opts.ungreedy, "ungreedy", "U", false, "swap greedy and lazy quantifiers")
	flags.BoolVarP(&opts.extended, "extended", "x", false, "ignore whitespace in the pattern")
	flags.BoolVar(&opts.pcre, "pcre", false, "treat PATTERN as delimited, e.g. ~^a$~i")
	flags.IntVar(&opts.offset, "offset", 0, "byte offset to start searching at")
	flags.StringVarP(&opts.group, "group", "g", "", "select one group by index or name; empty selects every group")
	flags.StringSliceVar(&opts.groups, "groups", nil, "select a list of groups; empty selects every group")
	flags.StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	flags.BoolVar(&opts.debug, "debug", false, "set logging to debug")
	flags.BoolVar(&opts.trace, "trace", false, "set logging to trace")

	cmd.AddCommand(newMatchCmd(opts))
	cmd.AddCommand(newAllCmd(opts))
	cmd.AddCommand(newReplaceCmd(opts))

	return cmd
}

func newMatchCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "match PATTERN SUBJECT",
		Short:             "Select groups from the first match",
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rx, pattern, subject, ropts, err := opts.prepare(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			sel, err := rx.Match(pattern, subject, ropts...)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, sel)
		},
	}
}

func newAllCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "all PATTERN SUBJECT",
		Short:             "Select groups from every match",
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rx, pattern, subject, ropts, err := opts.prepare(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			sel, err := rx.MatchAll(pattern, subject, ropts...)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, sel)
		},
	}
}

func newReplaceCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "replace PATTERN REPLACEMENT SUBJECT",
		Short:             "Select groups from the first match, then replace every match",
		Args:              cobra.ExactArgs(3),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rx, pattern, subject, ropts, err := opts.prepare(cmd, args[0], args[2])
			if err != nil {
				return err
			}
			sel, err := rx.MatchReplace(pattern, args[1], &subject, ropts...)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, replaceOutput{Selection: sel, Subject: subject})
		},
	}
}

// prepare builds the RX and the match options shared by every command.
func (o *cliOptions) prepare(cmd *cobra.Command, pattern, subject string) (*rxselect.RX, string, string, []rxselect.Option, error) {
	cfg, err := o.engineConfig()
	if err != nil {
		return nil, "", "", nil, err
	}
	rx, err := rxselect.New(cfg)
	if err != nil {
		return nil, "", "", nil, err
	}

	flags := o.flags()
	if o.pcre {
		var f engine.Flags
		pattern, f, err = engine.ParseDelimited(pattern)
		if err != nil {
			return nil, "", "", nil, err
		}
		flags |= f
	}

	if subject == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", "", nil, fmt.Errorf("reading subject: %w", err)
		}
		subject = string(raw)
	}

	sel, err := o.selector(cmd)
	if err != nil {
		return nil, "", "", nil, err
	}

	ropts := []rxselect.Option{
		rxselect.WithSelector(sel),
		rxselect.WithFlags(flags),
		rxselect.WithOffset(o.offset),
	}
	return rx, pattern, subject, ropts, nil
}

func (o *cliOptions) engineConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if o.configPath != "" {
		raw, err := os.ReadFile(o.configPath)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", o.configPath, err)
		}
	}
	if o.backend != "" {
		b, err := engine.ParseBackend(o.backend)
		if err != nil {
			return cfg, err
		}
		cfg.Backend = b
	}
	cfg.Logger = log.WithField("module", "rxselect")
	return cfg, nil
}

func (o *cliOptions) flags() engine.Flags {
	var f engine.Flags
	for _, b := range []struct {
		on   bool
		flag engine.Flags
	}{
		{o.ignoreCase, engine.IgnoreCase},
		{o.multiline, engine.Multiline},
		{o.dotAll, engine.DotAll},
		{o.ungreedy, engine.Ungreedy},
		{o.extended, engine.Extended},
	} {
		if b.on {
			f |= b.flag
		}
	}
	return f
}

func (o *cliOptions) selector(cmd *cobra.Command) (rxselect.Selector, error) {
	group := cmd.Flags().Changed("group")
	groups := cmd.Flags().Changed("groups")
	switch {
	case group && groups:
		return rxselect.Selector{}, errors.New("--group and --groups are mutually exclusive")
	case groups:
		keys := make([]any, len(o.groups))
		for i, g := range o.groups {
			keys[i] = g
		}
		return rxselect.ParseSelector(keys)
	case group:
		return rxselect.ParseSelector(o.group)
	}
	return rxselect.Selector{}, nil
}
