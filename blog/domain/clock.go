package domain

import "time"

// Clock supplies the current time to entities so that time-dependent
// invariants stay deterministic in tests.
type Clock func() time.Time

// UTCNow is the production clock.
func UTCNow() time.Time {
	return time.Now().UTC()
}
