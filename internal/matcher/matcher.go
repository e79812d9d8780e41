// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package matcher

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrUnknownCaptureGroup is returned when a capture group selector does not exist in the pattern.
	ErrUnknownCaptureGroup = errors.New("pattern does not define capture group")
	// ErrNegativeCount is returned when a character count is negative.
	ErrNegativeCount = errors.New("character count must not be negative")
)

// Func derives a group key from a single token.
// Implementations never fail; tokens that do not match a pattern
// are assigned the empty key so they collapse into one group.
type Func func(token string) string

// FirstChars returns a matcher that keys a token by its first n characters.
// Counts are in Unicode code points, not bytes. Tokens shorter than n are
// their own key.
func FirstChars(n int) (Func, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}

	return func(token string) string {
		runes := []rune(token)
		if n > len(runes) {
			return token
		}

		return string(runes[:n])
	}, nil
}

// LastChars returns a matcher that keys a token by its last n characters.
// Counts are in Unicode code points, not bytes. Tokens shorter than n are
// their own key.
func LastChars(n int) (Func, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}

	return func(token string) string {
		runes := []rune(token)
		if n > len(runes) {
			return token
		}

		return string(runes[len(runes)-n:])
	}, nil
}

// CaptureGroup selects which capture of a pattern supplies the key.
// A non-empty Name selects a named group; otherwise Index is used,
// where 0 is the whole match.
type CaptureGroup struct {
	Name  string
	Index int
}

// DefaultCaptureGroup returns the selection applied when the user does not
// choose one: the first capture group if the pattern defines any, otherwise
// the whole match.
func DefaultCaptureGroup(re *regexp.Regexp) CaptureGroup {
	if re.NumSubexp() > 0 {
		return CaptureGroup{Index: 1}
	}

	return CaptureGroup{Index: 0}
}

// ParseCaptureGroup resolves a user-supplied capture group selector against a
// compiled pattern. A selector that parses as a number chooses a group by
// index; anything else chooses a named group.
func ParseCaptureGroup(re *regexp.Regexp, s string) (CaptureGroup, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > re.NumSubexp() {
			return CaptureGroup{}, fmt.Errorf("%w: %d", ErrUnknownCaptureGroup, n)
		}

		return CaptureGroup{Index: n}, nil
	}

	if re.SubexpIndex(s) < 0 {
		return CaptureGroup{}, fmt.Errorf("%w: %q", ErrUnknownCaptureGroup, s)
	}

	return CaptureGroup{Name: s}, nil
}

// Regex returns a matcher that keys a token by the selected capture of the
// first match of re. Tokens that do not match yield the empty key.
func Regex(re *regexp.Regexp, group CaptureGroup) Func {
	idx := group.Index
	if group.Name != "" {
		idx = re.SubexpIndex(group.Name)
	}

	return func(token string) string {
		m := re.FindStringSubmatch(token)
		if m == nil || idx >= len(m) {
			return ""
		}

		return m[idx]
	}
}

// FileExtension returns a matcher that keys a filename by the characters
// after its last period. Dotfiles without another period, names ending in a
// period, and names with no period all yield the empty key. Compound
// extensions like .tar.gz match only the last extension.
func FileExtension() Func {
	return func(token string) string {
		i := strings.LastIndexByte(token, '.')
		switch {
		case i <= 0:
			return ""
		case i >= len(token)-1:
			return ""
		default:
			return token[i+1:]
		}
	}
}

// Counter returns a matcher that assigns each token its own numbered key,
// starting from 0. This turns the program into a splitter filter: every
// token lands in its own group.
func Counter() Func {
	var n uint64

	return func(string) string {
		key := strconv.FormatUint(n, 10)
		n++

		return key
	}
}
