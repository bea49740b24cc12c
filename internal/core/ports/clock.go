package ports

import "time"

// Clock abstracts the current time so time-dependent rules (the 48 hour
// overdue window, token ages) are testable.
type Clock interface {
	Now() time.Time
}
