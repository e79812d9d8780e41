// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package grouper

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/matt-FFFFFF/groupby/internal/grouped"
	"github.com/matt-FFFFFF/groupby/internal/matcher"
)

// maxTokenSize bounds the size of a single input token.
const maxTokenSize = 8 * 1024 * 1024 // 8MB

// ErrReadInput is returned when the input stream cannot be read.
var ErrReadInput = errors.New("failed to read input")

// SplitMode selects how the input stream is divided into tokens.
type SplitMode int

const (
	// SplitLines treats each line as one token.
	SplitLines SplitMode = iota
	// SplitWords treats each whitespace-delimited word as one token.
	SplitWords
	// SplitNull treats each null-separated record as one token.
	SplitNull
	// SplitCustom splits tokens on a user-supplied delimiter.
	SplitCustom
)

// Split describes how to tokenize the input stream.
type Split struct {
	Mode  SplitMode
	Delim string // delimiter for SplitCustom
}

// Process reads r to completion, tokenizes it per split, derives each
// token's key with match and adds the token to coll. The whole stream is
// consumed before Process returns; group membership is not complete until
// input ends, so nothing downstream may start earlier.
func Process(r io.Reader, coll *grouped.Collection[string], match matcher.Func, split Split) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxTokenSize)

	switch split.Mode {
	case SplitWords:
		scanner.Split(bufio.ScanWords)
	case SplitNull:
		scanner.Split(splitOn([]byte{0}))
	case SplitCustom:
		scanner.Split(splitOn([]byte(split.Delim)))
	case SplitLines:
		scanner.Split(bufio.ScanLines)
	}

	for scanner.Scan() {
		token := scanner.Text()
		coll.Add(match(token), token)
	}

	if err := scanner.Err(); err != nil {
		return errors.Join(ErrReadInput, err)
	}

	return nil
}

// splitOn returns a bufio.SplitFunc that splits on an arbitrary delimiter.
// A trailing delimiter does not produce a final empty token, but empty
// tokens between consecutive delimiters are preserved.
func splitOn(delim []byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}

		if i := bytes.Index(data, delim); i >= 0 {
			return i + len(delim), data[:i], nil
		}

		if atEOF {
			return len(data), data, nil
		}

		return 0, nil, nil
	}
}
