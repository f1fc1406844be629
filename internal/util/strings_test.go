package util

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestClip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{
			name:     "short string unchanged",
			input:    "Temp:23C Fan:1",
			max:      40,
			expected: "Temp:23C Fan:1",
		},
		{
			name:     "exact length unchanged",
			input:    "abcde",
			max:      5,
			expected: "abcde",
		},
		{
			name:     "long string cut without ellipsis",
			input:    "abcdefgh",
			max:      5,
			expected: "abcde",
		},
		{
			name:     "zero max yields empty",
			input:    "abc",
			max:      0,
			expected: "",
		},
		{
			name:     "negative max yields empty",
			input:    "abc",
			max:      -1,
			expected: "",
		},
		{
			name:     "unicode counted by rune",
			input:    "日本語テスト",
			max:      3,
			expected: "日本語",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clip(tt.input, tt.max)
			if got != tt.expected {
				t.Errorf("Clip(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.expected)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "short string unchanged",
			input:    "hello",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "exact length unchanged",
			input:    "hello",
			maxLen:   5,
			expected: "hello",
		},
		{
			name:     "long string truncated",
			input:    "hello world",
			maxLen:   8,
			expected: "hello...",
		},
		{
			name:     "tiny maxLen returns ellipsis",
			input:    "hello",
			maxLen:   3,
			expected: "...",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			maxLen:   10,
			expected: "",
		},
		{
			name:     "unicode counted by rune",
			input:    "日本語テスト",
			maxLen:   5,
			expected: "日本...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxLen)
			if got != tt.expected {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestTruncateANSI(t *testing.T) {
	alertStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	t.Run("plain string truncated to width", func(t *testing.T) {
		got := TruncateANSI("hello world", 8)
		if got != "hello..." {
			t.Errorf("expected %q, got %q", "hello...", got)
		}
	})

	t.Run("tiny width returns ellipsis", func(t *testing.T) {
		if got := TruncateANSI("hello", 3); got != "..." {
			t.Errorf("expected ellipsis, got %q", got)
		}
	})

	t.Run("styled string unchanged when it fits", func(t *testing.T) {
		in := alertStyle.Render("ok")
		if got := TruncateANSI(in, 10); got != in {
			t.Errorf("styled string was modified: %q", got)
		}
	})

	t.Run("styled string measured by visual width", func(t *testing.T) {
		in := alertStyle.Render("overheat warning active")
		got := TruncateANSI(in, 10)
		if w := lipgloss.Width(got); w > 10 {
			t.Errorf("result width %d exceeds 10", w)
		}
	})

	t.Run("wide runes measured by column", func(t *testing.T) {
		got := TruncateANSI("日本語テスト", 7)
		if w := lipgloss.Width(got); w > 7 {
			t.Errorf("result width %d exceeds 7", w)
		}
	})
}
