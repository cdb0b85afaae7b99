package utils

import (
	"time"
)

// TransactionTimeLayout is the wall-clock format trade requests carry,
// e.g. "15/09/2021 10:30:00" (DD/MM/YYYY HH:MM:SS).
const TransactionTimeLayout = "02/01/2006 15:04:05"

// ParseTransactionTime parses a request timestamp as local wall-clock time.
func ParseTransactionTime(timeStamp string) (time.Time, error) {
	return time.ParseInLocation(TransactionTimeLayout, timeStamp, time.Local)
}

// SecondsOfDay returns the number of seconds elapsed since local midnight.
func SecondsOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
