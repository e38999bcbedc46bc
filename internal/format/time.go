package format

import (
	"math"
	"time"
)

const (
	filetimeTicksPerSecond = 10_000_000  // FILETIME ticks are 100ns
	filetimeEpochDelta     = 11644473600 // seconds from 1601-01-01 to 1970-01-01
	oleDateEpochDays       = 25569.0     // days from 1899-12-30 to 1970-01-01
	secondsPerDay          = 86400
)

// FiletimeToTime converts a signed FILETIME tick count to a UTC time. Sub-second
// precision is truncated.
func FiletimeToTime(ticks int64) time.Time {
	seconds := ticks / filetimeTicksPerSecond
	return time.Unix(seconds-filetimeEpochDelta, 0).UTC()
}

// OLEDateToTime converts an OLE Automation date (fractional days since
// 1899-12-30) to a UTC time. ok is false for NaN, infinities and values whose
// Unix seconds do not fit in an int64.
func OLEDateToTime(d float64) (time.Time, bool) {
	epoch := (d - oleDateEpochDays) * secondsPerDay
	if math.IsNaN(epoch) || math.IsInf(epoch, 0) || epoch >= math.MaxInt64 || epoch <= math.MinInt64 {
		return time.Time{}, false
	}
	sec, frac := math.Modf(epoch)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC(), true
}
