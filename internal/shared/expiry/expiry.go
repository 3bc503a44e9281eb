// Package expiry holds the single age predicate shared by read-time expiry
// checks and the maintenance sweeper, so the two paths cannot diverge.
package expiry

import "time"

// Expired reports whether an entity created at ts has outlived ttl as of now.
func Expired(ts, now time.Time, ttl time.Duration) bool {
	return now.Sub(ts) > ttl
}

// Cutoff returns the creation-time threshold below which entities are
// expired as of now. Expired(ts, now, ttl) == ts.Before(Cutoff(now, ttl)).
func Cutoff(now time.Time, ttl time.Duration) time.Time {
	return now.Add(-ttl)
}
