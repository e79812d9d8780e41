// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package profile

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := "shell: /bin/zsh\noutput_separator: \"null\"\nstderr: true\n"
	require.NoError(t, afero.WriteFile(fsys, "/home/u/.config/groupby/profile.yaml", []byte(content), 0o644))

	p, err := Load(fsys, "/home/u/.config/groupby/profile.yaml", true)
	require.NoError(t, err)
	assert.Equal(t, "/bin/zsh", p.Shell)
	assert.Equal(t, "null", p.OutputSeparator)
	assert.True(t, p.Stderr)
}

func TestLoadMissingDefaultPath(t *testing.T) {
	p, err := Load(afero.NewMemMapFs(), "/nope/profile.yaml", false)
	require.NoError(t, err, "a missing default profile is not an error")
	assert.Equal(t, Profile{}, p)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope/profile.yaml", true)
	require.ErrorIs(t, err, ErrReadProfile)
}

func TestLoadMalformed(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/p.yaml", []byte("shell: [unterminated"), 0o644))

	_, err := Load(fsys, "/p.yaml", true)
	require.ErrorIs(t, err, ErrParseProfile)
}

func TestLoadBadSeparator(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/p.yaml", []byte("output_separator: tab\n"), 0o644))

	_, err := Load(fsys, "/p.yaml", true)
	require.ErrorIs(t, err, ErrUnknownSeparator)
}

func TestLoadEmptyPath(t *testing.T) {
	p, err := Load(afero.NewMemMapFs(), "", false)
	require.NoError(t, err)
	assert.Equal(t, Profile{}, p)
}

func TestSeparator(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"", "\n"},
		{"newline", "\n"},
		{"space", " "},
		{"null", "\x00"},
	}

	for _, tc := range cases {
		sep, err := Separator(tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.want, sep)
	}

	_, err := Separator("tab")
	require.ErrorIs(t, err, ErrUnknownSeparator)
}
