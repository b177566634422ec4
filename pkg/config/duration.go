package config

import (
	"fmt"
	"time"
)

// ValidatePositiveDuration rejects zero and negative durations.
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}

// ValidateDurationRange checks min <= d <= max.
func ValidateDurationRange(d, min, max time.Duration) error {
	switch {
	case min > max:
		return fmt.Errorf("invalid range: min %v greater than max %v", min, max)
	case d < min:
		return fmt.Errorf("duration %v below minimum %v", d, min)
	case d > max:
		return fmt.Errorf("duration %v above maximum %v", d, max)
	}
	return nil
}
