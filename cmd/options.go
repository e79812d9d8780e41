// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/matt-FFFFFF/groupby/internal/dispatch"
	"github.com/matt-FFFFFF/groupby/internal/grouper"
	"github.com/matt-FFFFFF/groupby/internal/matcher"
	"github.com/matt-FFFFFF/groupby/internal/profile"
	"github.com/matt-FFFFFF/groupby/internal/report"
)

var (
	// ErrOneGrouper is returned unless exactly one grouping option is given.
	ErrOneGrouper = errors.New("specify exactly one grouping option (-f, -l, -r, --extension or --counter)")
	// ErrOneInputSplit is returned when more than one input-splitting option is given.
	ErrOneInputSplit = errors.New("specify at most one input-splitting option (-w, -0 or --split)")
	// ErrOneOutputSeparator is returned when more than one output separator option is given.
	ErrOneOutputSeparator = errors.New("specify at most one output separator option (--print0 or --printspace)")
	// ErrBadPattern is returned when the regex pattern does not compile.
	ErrBadPattern = errors.New("invalid pattern")
	// ErrCaptureGroupNeedsRegex is returned when --capture-group is used without -r.
	ErrCaptureGroupNeedsRegex = errors.New("--capture-group requires -r")
)

// grouperChoice carries the grouper flag values out of the CLI layer so the
// selection logic is testable without flag parsing.
type grouperChoice struct {
	First        int
	FirstSet     bool
	Last         int
	LastSet      bool
	Pattern      string
	PatternSet   bool
	Extension    bool
	Counter      bool
	CaptureGroup string
}

// splitChoice carries the input-splitting flag values.
type splitChoice struct {
	Words bool
	Null  bool
	Delim string
}

// runConfig is the fully resolved configuration for one invocation. The
// pipeline trusts it: patterns compile, counts are non-negative and a shell
// is known whenever a command is present.
type runConfig struct {
	match      matcher.Func
	split      grouper.Split
	command    string
	shell      string
	sequential bool
	report     report.Options
}

// resolve validates the flag set and profile into a runConfig. All
// configuration errors surface here, before any input is read.
func resolve(cmd *cli.Command, fsys afero.Fs) (runConfig, error) {
	var cfg runConfig

	prof, err := loadProfile(cmd, fsys)
	if err != nil {
		return cfg, err
	}

	cfg.match, err = buildMatcher(grouperChoice{
		First:        cmd.Int(firstFlag),
		FirstSet:     cmd.IsSet(firstFlag),
		Last:         cmd.Int(lastFlag),
		LastSet:      cmd.IsSet(lastFlag),
		Pattern:      cmd.String(regexFlag),
		PatternSet:   cmd.IsSet(regexFlag),
		Extension:    cmd.Bool(extensionFlag),
		Counter:      cmd.Bool(counterFlag),
		CaptureGroup: cmd.String(captureGroupFlag),
	})
	if err != nil {
		return cfg, err
	}

	cfg.split, err = buildSplit(splitChoice{
		Words: cmd.Bool(wordsFlag),
		Null:  cmd.Bool(nullInputFlag),
		Delim: cmd.String(splitFlag),
	})
	if err != nil {
		return cfg, err
	}

	sep, err := outputSeparator(cmd.Bool(print0Flag), cmd.Bool(printspaceFlag), prof)
	if err != nil {
		return cfg, err
	}

	cfg.report = report.Options{
		Separator:  sep,
		OnlyKeys:   cmd.Bool(matchesFlag),
		NoHeaders:  cmd.Bool(noHeadersFlag),
		Stats:      cmd.Bool(statsFlag),
		ShowStderr: cmd.Bool(stderrFlag) || prof.Stderr,
	}

	cfg.command = cmd.String(runCommandFlag)
	cfg.sequential = cmd.Bool(sequentialFlag)

	if cfg.command != "" {
		override := cmd.String(shellFlag)
		if override == "" {
			override = prof.Shell
		}

		cfg.shell, err = dispatch.CurrentShell(override)
		if err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

func loadProfile(cmd *cli.Command, fsys afero.Fs) (profile.Profile, error) {
	path := cmd.String(profileFlag)
	explicit := cmd.IsSet(profileFlag)

	if path == "" {
		path = profile.DefaultPath()
	}

	return profile.Load(fsys, path, explicit)
}

// buildMatcher resolves the grouper choice into a single matcher function,
// applied uniformly to every token afterward.
func buildMatcher(g grouperChoice) (matcher.Func, error) {
	chosen := 0
	for _, set := range []bool{g.FirstSet, g.LastSet, g.PatternSet, g.Extension, g.Counter} {
		if set {
			chosen++
		}
	}

	if chosen != 1 {
		return nil, ErrOneGrouper
	}

	if g.CaptureGroup != "" && !g.PatternSet {
		return nil, ErrCaptureGroupNeedsRegex
	}

	switch {
	case g.FirstSet:
		return matcher.FirstChars(g.First)
	case g.LastSet:
		return matcher.LastChars(g.Last)
	case g.Extension:
		return matcher.FileExtension(), nil
	case g.Counter:
		return matcher.Counter(), nil
	}

	re, err := regexp.Compile(g.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPattern, err)
	}

	group := matcher.DefaultCaptureGroup(re)
	if g.CaptureGroup != "" {
		group, err = matcher.ParseCaptureGroup(re, g.CaptureGroup)
		if err != nil {
			return nil, err
		}
	}

	return matcher.Regex(re, group), nil
}

// buildSplit resolves the input-splitting choice.
func buildSplit(s splitChoice) (grouper.Split, error) {
	chosen := 0
	for _, set := range []bool{s.Words, s.Null, s.Delim != ""} {
		if set {
			chosen++
		}
	}

	if chosen > 1 {
		return grouper.Split{}, ErrOneInputSplit
	}

	switch {
	case s.Words:
		return grouper.Split{Mode: grouper.SplitWords}, nil
	case s.Null:
		return grouper.Split{Mode: grouper.SplitNull}, nil
	case s.Delim != "":
		return grouper.Split{Mode: grouper.SplitCustom, Delim: s.Delim}, nil
	default:
		return grouper.Split{Mode: grouper.SplitLines}, nil
	}
}

// outputSeparator resolves the output separator from flags, falling back to
// the profile and then to newline.
func outputSeparator(print0, printspace bool, prof profile.Profile) (string, error) {
	if print0 && printspace {
		return "", ErrOneOutputSeparator
	}

	switch {
	case print0:
		return "\x00", nil
	case printspace:
		return " ", nil
	default:
		return profile.Separator(prof.OutputSeparator)
	}
}
