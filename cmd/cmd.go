// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/matt-FFFFFF/groupby/internal/ctxlog"
	"github.com/matt-FFFFFF/groupby/internal/dispatch"
	"github.com/matt-FFFFFF/groupby/internal/grouped"
	"github.com/matt-FFFFFF/groupby/internal/grouper"
	"github.com/matt-FFFFFF/groupby/internal/report"
)

const (
	wordsFlag        = "words"
	nullInputFlag    = "null"
	splitFlag        = "split"
	firstFlag        = "first"
	lastFlag         = "last"
	regexFlag        = "regex"
	extensionFlag    = "extension"
	counterFlag      = "counter"
	captureGroupFlag = "capture-group"
	print0Flag       = "print0"
	printspaceFlag   = "printspace"
	matchesFlag      = "matches"
	noHeadersFlag    = "no-headers"
	runCommandFlag   = "run-command"
	sequentialFlag   = "sequential"
	statsFlag        = "stats"
	shellFlag        = "shell"
	stderrFlag       = "stderr"
	profileFlag      = "profile"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Name: "groupby",
	Description: `Reads tokens from standard input and groups them by common substrings.
By default, prints the resulting groups to standard output. With -c, runs a
shell command once per group (all groups in parallel), passing the group via
the command's standard input, and prints each command's captured output under
its group header, in the order groups first appeared in the input.`,
	Usage:     "groupby -f 3 < tokens.txt",
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
	Flags:                 rootFlags(),
	Action:                actionFunc,
}

// rootFlags returns a fresh flag set. Flag values are stateful once parsed,
// so anything that parses twice needs its own instances.
func rootFlags() []cli.Flag {
	return []cli.Flag{
		// Input splitting: choose zero or one.
		&cli.BoolFlag{
			Name:    wordsFlag,
			Aliases: []string{"w"},
			Usage:   "Group words instead of lines; that is, split input on whitespace",
		},
		&cli.BoolFlag{
			Name:    nullInputFlag,
			Aliases: []string{"0"},
			Usage:   "Split input on null characters rather than lines",
		},
		&cli.StringFlag{
			Name:  splitFlag,
			Usage: "Split input on a custom `delim` of your choice",
		},
		// Groupers: choose exactly one.
		&cli.IntFlag{
			Name:    firstFlag,
			Aliases: []string{"f"},
			Usage:   "Group by equivalence on the first `n` characters",
		},
		&cli.IntFlag{
			Name:    lastFlag,
			Aliases: []string{"l"},
			Usage:   "Group by equivalence on the last `n` characters",
		},
		&cli.StringFlag{
			Name:    regexFlag,
			Aliases: []string{"r"},
			Usage: "Group by equivalence on the first match against `pattern`; " +
				"with capture groups, the first capture group forms the key; " +
				"non-matching tokens land in the blank group",
		},
		&cli.BoolFlag{
			Name:  extensionFlag,
			Usage: "Group by file extension, excluding the leading period",
		},
		&cli.BoolFlag{
			Name:  counterFlag,
			Usage: "Place each token in its own numbered group, starting from 0",
		},
		&cli.StringFlag{
			Name:  captureGroupFlag,
			Usage: "With -r, match a specific capture `group` by number or name; 0 is the whole match",
		},
		// Output separators: choose zero or one.
		&cli.BoolFlag{
			Name:  print0Flag,
			Usage: "Separate output records with a null character, for xargs -0",
		},
		&cli.BoolFlag{
			Name:  printspaceFlag,
			Usage: "Separate output records with a space rather than a newline",
		},
		// General output options.
		&cli.BoolFlag{
			Name:  matchesFlag,
			Usage: "Output only group names; with -c, pass each group's name to its command instead of its contents",
		},
		&cli.BoolFlag{
			Name:  noHeadersFlag,
			Usage: "Do not print group headers; print group output back-to-back",
		},
		&cli.StringFlag{
			Name:    runCommandFlag,
			Aliases: []string{"c"},
			Usage: "Execute `cmd` for each group via $SHELL -c, passing the group on standard input; " +
				"commands run in parallel and outputs print in group order",
		},
		&cli.BoolFlag{
			Name:  sequentialFlag,
			Usage: "With -c, run commands one at a time in group order",
		},
		&cli.BoolFlag{
			Name:  statsFlag,
			Usage: "Print per-group item counts and collection statistics",
		},
		&cli.StringFlag{
			Name:  shellFlag,
			Usage: "Run commands with `shell` instead of $SHELL",
		},
		&cli.BoolFlag{
			Name:  stderrFlag,
			Usage: "With -c, print captured stderr for every group, not only failed ones",
		},
		&cli.StringFlag{
			Name:  profileFlag,
			Usage: "Read defaults from the YAML profile at `path`",
		},
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	cfg, err := resolve(cmd, afero.NewOsFs())
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	var in io.Reader = os.Stdin
	if cmd.Reader != nil {
		in = cmd.Reader
	}

	return execute(ctx, cfg, in, cmd.Root().Writer)
}

// execute runs the grouping phase to completion, then either prints the
// groups or dispatches the per-group commands and prints their outcomes.
func execute(ctx context.Context, cfg runConfig, in io.Reader, out io.Writer) error {
	logger := ctxlog.Logger(ctx)

	coll := grouped.New[string]()
	if err := grouper.Process(in, coll, cfg.match, cfg.split); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	logger.Debug("grouping complete", "groups", coll.Len())

	if cfg.command == "" {
		if err := report.WriteGroups(out, coll, cfg.report); err != nil {
			return cli.Exit(err.Error(), 2)
		}

		return nil
	}

	dopts := dispatch.Options{
		Shell:     cfg.shell,
		Command:   cfg.command,
		Separator: cfg.report.Separator,
		KeysOnly:  cfg.report.OnlyKeys,
	}

	var outcomes []*dispatch.Outcome
	if cfg.sequential {
		outcomes = dispatch.RunSequential(ctx, dopts, coll)
	} else {
		outcomes = dispatch.RunParallel(ctx, dopts, coll)
	}

	if err := report.WriteOutcomes(out, coll, outcomes, cfg.report); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	if err := dispatch.Err(outcomes); err != nil {
		logger.Debug("dispatch failures", "error", err)

		return cli.Exit("groupby: one or more group commands failed", 1)
	}

	return nil
}
