// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/matt-FFFFFF/groupby/internal/ctxlog"
	"github.com/matt-FFFFFF/groupby/internal/grouped"
)

// ShellVar is the environment variable that names the user's shell.
const ShellVar = "SHELL"

var (
	// ErrNoShell is returned when no shell is configured and SHELL is unset.
	ErrNoShell = fmt.Errorf("no shell configured and %s is not set", ShellVar)
	// ErrCouldNotStartProcess is returned when the shell process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrCommandFailed is returned in the aggregate error for each group whose command failed.
	ErrCommandFailed = errors.New("command failed")
)

// Options configures how each group's command is run.
type Options struct {
	// Shell is the path to the shell executable, e.g. /bin/zsh. The shell
	// is opaque to this package: it receives ["-c", Command] and the
	// group's serialized tokens on standard input.
	Shell string
	// Command is the command string for the shell to interpret.
	Command string
	// Separator is appended after every record written to a command's
	// standard input.
	Separator string
	// KeysOnly sends the group's key instead of its contents.
	KeysOnly bool
}

// Outcome is the captured result of one group's command. It is immutable
// once its command has terminated.
type Outcome struct {
	Key      string
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Err      error
}

// Failed reports whether the group's command failed to spawn, failed to
// consume its input, or exited non-zero.
func (o *Outcome) Failed() bool {
	return o.Err != nil || o.ExitCode != 0
}

// CurrentShell resolves the shell to run commands with. An explicit override
// wins; otherwise the SHELL environment variable is consulted.
func CurrentShell(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if shell := os.Getenv(ShellVar); shell != "" {
		return shell, nil
	}

	return "", ErrNoShell
}

// RunParallel executes the configured command once per group, all groups
// concurrently, and blocks until every command has terminated. The returned
// outcomes are in the collection's key order regardless of completion order.
// One command's failure never prevents sibling commands from running to
// completion or being reported.
func RunParallel(ctx context.Context, opts Options, coll *grouped.Collection[string]) []*Outcome {
	logger := ctxlog.Logger(ctx).With("dispatch", "parallel")

	keys := coll.Keys()
	outcomes := make([]*Outcome, len(keys))
	wg := &sync.WaitGroup{}

	for i, key := range keys {
		values, _ := coll.Get(key)

		wg.Add(1)

		go func(i int, key string, values []string) {
			defer wg.Done()

			outcomes[i] = runOne(ctx, opts, key, values)
			logger.Debug("group command finished", "key", key, "exitCode", outcomes[i].ExitCode)
		}(i, key, values)
	}

	wg.Wait()

	return outcomes
}

// RunSequential executes the configured command once per group, one at a
// time, in the collection's key order.
func RunSequential(ctx context.Context, opts Options, coll *grouped.Collection[string]) []*Outcome {
	logger := ctxlog.Logger(ctx).With("dispatch", "sequential")

	keys := coll.Keys()
	outcomes := make([]*Outcome, 0, len(keys))

	for _, key := range keys {
		values, _ := coll.Get(key)
		outcome := runOne(ctx, opts, key, values)
		logger.Debug("group command finished", "key", key, "exitCode", outcome.ExitCode)
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// runOne spawns one shell process for a group, writes the group's serialized
// records to its standard input, closes it, and reads stdout and stderr to
// completion. All failure modes are recorded in the outcome; none propagate.
func runOne(ctx context.Context, opts Options, key string, values []string) *Outcome {
	outcome := &Outcome{Key: key}

	cmd := exec.CommandContext(ctx, opts.Shell, "-c", opts.Command) //nolint:gosec

	var stdout, stderr bytes.Buffer

	// Handing exec a reader gives us write-then-close for free: the runtime
	// copies the records to the child's stdin and closes the pipe at EOF,
	// so input-consuming commands terminate naturally.
	if opts.KeysOnly {
		cmd.Stdin = bytes.NewReader(serialize([]string{key}, opts.Separator))
	} else {
		cmd.Stdin = bytes.NewReader(serialize(values, opts.Separator))
	}

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		outcome.Err = errors.Join(ErrCouldNotStartProcess, err)
		outcome.ExitCode = -1

		return outcome
	}

	err := cmd.Wait()
	outcome.Stdout = stdout.Bytes()
	outcome.Stderr = stderr.Bytes()
	outcome.ExitCode = cmd.ProcessState.ExitCode()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// Non-zero exits are reported via ExitCode; anything else is a
		// genuine dispatch error (broken pipe, wait failure).
		outcome.Err = err
	}

	return outcome
}

// Err returns an aggregate error describing every failed outcome, or nil if
// all group commands succeeded. The caller uses it to decide the process
// exit status; individual failures are already recorded per outcome.
func Err(outcomes []*Outcome) error {
	var result *multierror.Error

	for _, o := range outcomes {
		if !o.Failed() {
			continue
		}

		if o.Err != nil {
			result = multierror.Append(result, fmt.Errorf("%w: group %q: %w", ErrCommandFailed, o.Key, o.Err))
			continue
		}

		result = multierror.Append(result, fmt.Errorf("%w: group %q exited with code %d", ErrCommandFailed, o.Key, o.ExitCode))
	}

	return result.ErrorOrNil()
}

// serialize joins records for a command's standard input. Every record,
// including the last, is followed by the separator.
func serialize(records []string, sep string) []byte {
	buf := bytes.Buffer{}

	size := len(sep) * len(records)
	for _, r := range records {
		size += len(r)
	}

	buf.Grow(size)

	for _, r := range records {
		buf.WriteString(r)
		buf.WriteString(sep)
	}

	return buf.Bytes()
}
