// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package matcher provides the key-extraction rules used to assign input
// tokens to groups. Each rule is resolved once, at configuration time, into
// a Func that is then applied uniformly to every token.
package matcher
