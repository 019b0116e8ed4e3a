package domain

import "time"

// Reading represents a cumulative meter value at a point in time.
type Reading struct {
	Time  time.Time
	Value Decimal
}

// Equal reports whether r and other carry the same instant and value.
func (r Reading) Equal(other Reading) bool {
	return r.Time.Equal(other.Time) && r.Value.Cmp(other.Value) == 0
}
