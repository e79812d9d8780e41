// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report renders grouped tokens, or the captured outputs of each
// group's command, to the output sink. Rendering order is always the
// grouping order; completion order of concurrent commands never shows.
package report
