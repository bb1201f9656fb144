// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config.toml")

	if err := AtomicWriteFile(path, []byte("x = 1\n"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "x = 1\n" {
		t.Errorf("content = %q", data)
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	for _, content := range []string{"first", "second"} {
		if err := AtomicWriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("AtomicWriteFile failed: %v", err)
		}
	}

	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}

// =============================================================================
// WIDTH TESTS
// =============================================================================

func TestTruncateWidth(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"ascii", "hello world", 8, "hello..."},
		{"cjk", "日本語テキスト", 7, "日本..."},
		{"tiny", "hello", 2, "he"},
		{"zero", "hello", 0, ""},
		{"empty", "", 5, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateWidth(tc.input, tc.maxWidth)
			if got != tc.want {
				t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tc.input, tc.maxWidth, got, tc.want)
			}
			if StringWidth(got) > tc.maxWidth && tc.maxWidth > 0 {
				t.Errorf("result %q is wider than %d", got, tc.maxWidth)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadRight("日本", 6); StringWidth(got) != 6 {
		t.Errorf("PadRight width = %d, want 6", StringWidth(got))
	}
	if got := PadRight("hello world", 8); got != "hello..." {
		t.Errorf("PadRight = %q", got)
	}
}

func TestStringWidth(t *testing.T) {
	if w := StringWidth("abc"); w != 3 {
		t.Errorf("StringWidth(abc) = %d", w)
	}
	if w := StringWidth("日本"); w != 4 {
		t.Errorf("StringWidth(日本) = %d", w)
	}
}
