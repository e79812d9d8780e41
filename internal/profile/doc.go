// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package profile loads optional per-user defaults from a small YAML file,
// conventionally at ~/.config/groupby/profile.yaml.
package profile
