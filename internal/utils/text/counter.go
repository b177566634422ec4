// Package text holds small text helpers shared by the transcription
// and article generation layers.
package text

// CountRunes returns the length of s in Unicode code points. Article
// and transcript lengths are logged and stored as rune counts so that
// Japanese text is not over-counted byte-wise.
func CountRunes(s string) int {
	return len([]rune(s))
}
