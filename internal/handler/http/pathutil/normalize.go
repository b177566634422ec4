package pathutil

import (
	"regexp"
	"strings"
)

// ID付きルートをテンプレートに畳むためのパターン。具体的なものから順に評価する
var routePatterns = []struct {
	re       *regexp.Regexp
	template string
}{
	{regexp.MustCompile(`^/blogs/\d+$`), "/blogs/:id"},
	{regexp.MustCompile(`^/users/\d+$`), "/users/:id"},
}

// NormalizePath collapses ID-bearing paths into their route template
// (/blogs/123 -> /blogs/:id) so metric labels stay bounded. Query
// strings and trailing slashes are stripped first. Paths that match no
// pattern pass through unchanged, which keeps /health, /metrics and
// /generate as-is.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range routePatterns {
		if p.re.MatchString(path) {
			return p.template
		}
	}
	return path
}
