// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

var (
	// ErrReadProfile is returned when the profile file cannot be read.
	ErrReadProfile = errors.New("failed to read profile")
	// ErrParseProfile is returned when the profile file is not valid YAML.
	ErrParseProfile = errors.New("failed to parse profile")
	// ErrUnknownSeparator is returned when a separator name is not recognized.
	ErrUnknownSeparator = errors.New("unknown separator (want newline, space or null)")
)

// Profile holds defaults that would otherwise come from flags. Flags always
// win over profile values.
type Profile struct {
	// Shell overrides the SHELL environment variable for -c commands.
	Shell string `yaml:"shell"`
	// OutputSeparator is one of "newline", "space" or "null".
	OutputSeparator string `yaml:"output_separator"`
	// Stderr renders captured stderr for every group, not only failures.
	Stderr bool `yaml:"stderr"`
}

// DefaultPath returns the conventional profile location, or an empty string
// if the user's config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "groupby", "profile.yaml")
}

// Load reads a profile from fsys. A missing file is not an error unless
// explicit is set: the default path is best-effort, but a path the user
// asked for must exist.
func Load(fsys afero.Fs, path string, explicit bool) (Profile, error) {
	var p Profile

	if path == "" {
		return p, nil
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return p, nil
		}

		return p, fmt.Errorf("%w: %w", ErrReadProfile, err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("%w: %w", ErrParseProfile, err)
	}

	if p.OutputSeparator != "" {
		if _, err := Separator(p.OutputSeparator); err != nil {
			return p, err
		}
	}

	return p, nil
}

// Separator maps a separator name to its byte sequence.
func Separator(name string) (string, error) {
	switch name {
	case "", "newline":
		return "\n", nil
	case "space":
		return " ", nil
	case "null":
		return "\x00", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSeparator, name)
	}
}
