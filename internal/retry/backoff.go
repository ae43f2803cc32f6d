// Package retry provides the bounded retry loop and exponential backoff
// calculation used by the transport layer.
package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// maxBackoffExponent bounds the exponent to avoid float overflow.
const maxBackoffExponent = 30

// jitterFraction is the maximum relative perturbation applied to a delay.
const jitterFraction = 0.25

// Delay computes the backoff delay for a 0-based retry attempt: the first
// retry after the initial failed try uses attempt 0.
//
// The raw delay grows geometrically (initial * multiplier^attempt) and is
// capped at max. With jitter enabled the capped delay is perturbed by a
// uniform draw in ±25%, then clamped to be non-negative. With jitter
// disabled the result is deterministic.
func Delay(attempt int, initial, max time.Duration, multiplier float64, jitter bool) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > maxBackoffExponent {
		attempt = maxBackoffExponent
	}

	raw := float64(initial) * math.Pow(multiplier, float64(attempt))
	if raw < 0 || raw > float64(max) {
		raw = float64(max)
	}

	if jitter {
		raw += (rand.Float64()*2 - 1) * jitterFraction * raw
	}
	if raw < 0 {
		return 0
	}
	return time.Duration(raw)
}
