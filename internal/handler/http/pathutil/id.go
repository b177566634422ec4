package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the path does not carry a positive integer ID.
var ErrInvalidID = errors.New("invalid id")

// ExtractID parses the integer ID that follows prefix in path, e.g.
// ExtractID("/blogs/123", "/blogs/") returns 123. IDs must be positive.
func ExtractID(path, prefix string) (int64, error) {
	idStr := strings.TrimPrefix(path, prefix)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
