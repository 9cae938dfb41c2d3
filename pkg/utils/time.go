// Package utils contains various common utils separated by utility types
package utils

import (
	"time"
)

// CurrentEpochMillis returns the current time as epoch millis, the
// timestamp unit used across the ledger
func CurrentEpochMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// MillisToTime converts an int64 of millis from epoch to Time struct
func MillisToTime(ts int64) time.Time {
	return time.Unix(0, ts*int64(time.Millisecond))
}

// SecsToTime converts an int64 of seconds from epoch to Time struct
func SecsToTime(ts int64) time.Time {
	return time.Unix(ts, 0)
}
