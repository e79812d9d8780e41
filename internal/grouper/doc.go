// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package grouper tokenizes an input stream and feeds every token, in
// arrival order, through a key matcher into a grouped collection. The
// grouping phase is strictly sequential and single-threaded.
//
// A single token may be at most 8MB. Longer tokens abort the run with a
// read error rather than being silently truncated or split.
package grouper
