// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package grouped provides an insertion-ordered multimap. Iteration order
// over keys is the order in which they were first added, which is what makes
// the program's output deterministic regardless of how long each group's
// command takes to run.
package grouped
