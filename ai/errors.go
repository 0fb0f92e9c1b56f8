package ai

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRateLimited indicates the provider rejected the call for quota
	// reasons. Callers should advise waiting rather than retrying at once.
	ErrRateLimited = errors.New("recommendation rate limited")

	// ErrUnavailable indicates a generation failure other than rate limiting.
	ErrUnavailable = errors.New("recommendation unavailable")

	// ErrEmptyResponse indicates the provider answered without any text.
	ErrEmptyResponse = errors.New("recommendation empty")
)

// ClassifyGenerationError wraps a raw provider error in the matching
// sentinel. Rate limiting is recognized by a "429" or "rate" fragment in the
// provider's message, case-insensitive.
func ClassifyGenerationError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate") {
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
