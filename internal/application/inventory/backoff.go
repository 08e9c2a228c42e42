package inventory

import (
	"math/rand"
	"time"
)

// backoff espera antes del intento attempt+1: base * 2^(attempt-1) con jitter de hasta 50%,
// limitado a ceiling.
func backoff(attempt int, base, ceiling time.Duration) time.Duration {
	d := base << uint(attempt-1)
	if d <= 0 || d > ceiling {
		d = ceiling
	}
	if half := int64(d / 2); half > 0 {
		d = d/2 + time.Duration(rand.Int63n(half+1))
	}
	return d
}
