package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// filenameReplacer maps characters that are unsafe in filenames to underscores.
// Covers the Windows-reserved set. The fullwidth vertical bar (U+FF5C) entry
// is redundant after NFKC folds it to '|', but stays so the replacer is safe
// on unnormalized input too.
var filenameReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	`"`, "_",
	"/", "_",
	`\`, "_",
	"|", "_",
	"?", "_",
	"*", "_",
	"｜", "_",
)

// SanitizeFilename converts an arbitrary video title into a string that is safe
// to use as a filename on any supported filesystem.
//
// The input is first normalized with Unicode NFKC so that compatibility
// characters (fullwidth ASCII, ligatures, etc.) collapse into their canonical
// forms, then every reserved character is replaced with an underscore.
//
// The function is total and idempotent: it never fails, and applying it twice
// yields the same result as applying it once. No length truncation is applied.
//
// Examples:
//
//	SanitizeFilename(`Go 1.24: what's new?`) // "Go 1.24_ what's new_"
//	SanitizeFilename("a/b\\c")               // "a_b_c"
//	SanitizeFilename("ｃａｆé｜review")         // "café_review"
func SanitizeFilename(title string) string {
	normalized := norm.NFKC.String(title)
	return filenameReplacer.Replace(normalized)
}
