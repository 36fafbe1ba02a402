package storage

import "time"

// now truncates to microseconds, the resolution Postgres keeps, so values
// handed back to callers match what a later read returns.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
