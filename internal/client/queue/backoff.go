package queue

import (
	"math/rand/v2"
	"time"
)

// Backoff maps a failure count to the delay before the next attempt.
type Backoff func(attempts int) time.Duration

// Default retry policy
const (
	DefaultBaseDelay   = time.Second
	DefaultMaxDelay    = 5 * time.Minute
	DefaultMaxAttempts = 8
)

// ExponentialBackoff doubles the delay per attempt up to maxDelay and
// adds up to 50% jitter so retrying clients do not stampede together.
func ExponentialBackoff(base, maxDelay time.Duration) Backoff {
	return func(attempts int) time.Duration {
		delay := maxDelay
		if attempts < 63 {
			if shifted := base << attempts; shifted > 0 && shifted < maxDelay {
				delay = shifted
			}
		}
		return delay + rand.N(delay/2+1)
	}
}
