// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the huddle packages.
//
// # Key Functions
//
// Display Width:
//   - TruncateWidth: cut a string to a column budget with an ellipsis
//   - PadRight: pad a string to an exact column width
//   - StringWidth: column width of a string (emoji and CJK count as 2)
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
