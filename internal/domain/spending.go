package domain

import "time"

// Spending is the usage attributed to the window [Start, End]. Depending on
// the query it is either a prorated total or a per-day average.
type Spending struct {
	Start time.Time
	End   time.Time
	Usage Decimal
}
