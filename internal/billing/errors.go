package billing

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"dgiconsole/internal/domain"
)

// APIError is a non-2xx answer from the remote billing API that has no more
// specific domain meaning.
type APIError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("billing API error (status %d): %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return domain.ErrRemoteUnavailable
}

// parseRetryAfter parses a Retry-After header in seconds. Returns 0 if the
// value is empty or not a valid integer.
func parseRetryAfter(val string) time.Duration {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// RetryDelay reports how long the remote API asked callers to wait.
func (e *APIError) RetryDelay() time.Duration {
	return e.RetryAfter
}

// truncate cuts s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
