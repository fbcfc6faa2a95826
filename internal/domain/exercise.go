package domain

import "time"

// Exercise is a single logged workout entry tied to one user.
//
// UserID is stored as a plain string, not a validated reference: an exercise
// may outlive (or never match) a user row, and the log query resolves the
// user independently.
type Exercise struct {
	ID          string
	UserID      string
	Description string
	Duration    int
	Date        time.Time
}

// DefaultLogLimit caps log queries when the caller supplies no usable limit.
const DefaultLogLimit = 500

// LogFilter restricts a per-user log query. From and To are inclusive bounds
// applied independently; a nil bound applies no filter on that side. A Limit
// of zero or less means "use DefaultLogLimit".
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int64
}
