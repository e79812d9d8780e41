// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dispatch runs a shell command once per group, concurrently across
// all groups, feeding each group's serialized tokens to its command's
// standard input and capturing output in full. Outcomes come back in the
// grouping order, never in completion order, and a failing group never
// aborts its siblings.
//
// Concurrency is unbounded: one process per group, limited only by host
// resources. If a command hangs, the run blocks until it finishes or the
// context is cancelled.
package dispatch
