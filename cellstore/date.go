package cellstore

import (
	"math"
	"time"
)

// DateSystem selects the workbook's date epoch, per spec.md §3's
// set-date-time note ("converted to a numeric day count relative to the
// workbook origin date").
type DateSystem int

const (
	// System1900 counts days from 1899-12-31, with the Lotus 1-2-3
	// phantom-leap-day bug preserved (serial 60 is treated as the
	// non-existent 1900-02-29).
	System1900 DateSystem = iota
	// System1904 counts days from 1904-01-01, with no leap-day
	// compensation.
	System1904
)

// ToSerial converts t to a workbook-relative day-count serial under the
// given date system. Its epoch placement and phantom-leap-day shift
// mirror FromSerial below so that ToSerial and FromSerial round-trip; it
// applies no rounding of its own.
func ToSerial(t time.Time, system DateSystem) float64 {
	t = t.UTC()
	var base time.Time
	switch system {
	case System1904:
		base = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		base = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	days := t.Sub(base).Hours() / 24
	if system == System1900 {
		// Phantom leap day: serials on or after 1900-03-01 are one ahead of
		// the true Julian day count relative to base.
		cutover := time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)
		if !t.Before(cutover) {
			days++
		}
	}
	return days
}

// FromSerial converts a workbook-relative day-count serial back to a
// time.Time, mirroring the teacher's ConvertDate/ConvertDateEx exactly:
// serial 0 is midnight on the epoch's first day, serial >= 61 (1900
// system only) is shifted back one day to compensate for the phantom
// 1900-02-29, and the fractional part is rounded to the nearest second.
func FromSerial(serial float64, system DateSystem) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, errInvalidSerial(serial)
	}
	if serial < 0 {
		return time.Time{}, errNegativeSerial(serial)
	}

	fracSec, dayRollover := serialToFracSec(serial)

	if system == System1904 {
		base := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
		intPart := int(serial) + dayRollover
		return base.Add(time.Duration(intPart)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
	}

	base := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	intPart := int(serial) + dayRollover
	switch {
	case intPart == 0:
		return time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(fracSec) * time.Second), nil
	case intPart >= 61:
		return base.Add(time.Duration(intPart-1)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
	default:
		return base.Add(time.Duration(intPart)*24*time.Hour + time.Duration(fracSec)*time.Second), nil
	}
}

// serialToFracSec converts the fractional-day part of a serial to a whole
// second count within the day (0-86399) plus a day-rollover flag, with
// half-second rounding and an epsilon nudge against floating-point drift.
func serialToFracSec(serial float64) (fracSec int64, dayRollover int) {
	const roundEpsilon = 1e-9
	fracDay := (serial - math.Trunc(serial)) + roundEpsilon
	const nanosInADay = float64(24 * 60 * 60 * 1e9)
	durNanos := time.Duration(fracDay * nanosInADay)
	ns := int(durNanos % time.Second)
	secs := int64(durNanos / time.Second)
	if ns > 500_000_000 {
		secs++
	}
	if secs < 0 {
		secs = 0
	}
	rollover := int(secs / 86400)
	secs = secs % 86400
	return secs, rollover
}
