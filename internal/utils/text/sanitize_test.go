package text_test

import (
	"testing"

	"blogsmith/internal/utils/text"
)

/* ───────── SanitizeFilename ───────── */

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain title unchanged",
			input:    "Understanding Goroutines",
			expected: "Understanding Goroutines",
		},
		{
			name:     "all reserved characters replaced",
			input:    `<>:"/\|?*`,
			expected: "_________",
		},
		{
			name:     "fullwidth vertical bar replaced",
			input:    "前編｜後編",
			expected: "前編_後編",
		},
		{
			name:     "reserved characters mixed into text",
			input:    "Q&A: how does GC work? (part 1/2)",
			expected: "Q&A_ how does GC work_ (part 1_2)",
		},
		{
			name:     "NFKC folds fullwidth ASCII before replacement",
			input:    "ＧＯ／ＲＵＳＴ",
			expected: "GO_RUST",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := text.SanitizeFilename(tt.input)
			if got != tt.expected {
				t.Fatalf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// Sanitizing an already-sanitized title must be a no-op.
func TestSanitizeFilename_Idempotent(t *testing.T) {
	inputs := []string{
		"Understanding Goroutines",
		`<>:"/\|?*`,
		"前編｜後編",
		"ＧＯ／ＲＵＳＴ",
		"mixed: ascii and 日本語?",
	}

	for _, in := range inputs {
		once := text.SanitizeFilename(in)
		twice := text.SanitizeFilename(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: first=%q second=%q", in, once, twice)
		}
	}
}
