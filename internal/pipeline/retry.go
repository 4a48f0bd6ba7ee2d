package pipeline

import (
	"errors"
	"math/rand"
	"time"

	"github.com/dgallion1/doctrans/internal/ocr"
	"github.com/dgallion1/doctrans/internal/translate"
)

// MaxAttempts bounds provider calls per chunk: one retry after the first
// failure, never more.
const MaxAttempts = 2

// IsRetryable checks whether a provider error is worth the single retry.
func IsRetryable(err error) bool {
	var trErr *translate.Error
	if errors.As(err, &trErr) {
		return trErr.Retryable()
	}
	var ocrErr *ocr.ServiceError
	if errors.As(err, &ocrErr) {
		return ocrErr.Retryable()
	}
	return false
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int63n(int64(base) / 2))
	return base + jitter
}
