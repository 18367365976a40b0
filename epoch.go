package astroprop

import (
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	// J2000JD is the Julian date of the J2000 reference epoch.
	J2000JD = 2451545.0
	// secondsPerDay is the number of SI seconds in a day.
	secondsPerDay = 86400.0
)

// j2000 is the reference of every Epoch. Leap seconds are not accounted for.
var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// Epoch is a point in time stored as seconds past J2000.
type Epoch float64

// EpochFromTime converts a time.Time to an Epoch.
func EpochFromTime(dt time.Time) Epoch {
	return Epoch(dt.UTC().Sub(j2000).Seconds())
}

// EpochFromJD converts a Julian date to an Epoch.
func EpochFromJD(jd float64) Epoch {
	return Epoch((jd - J2000JD) * secondsPerDay)
}

// Roll returns the epoch offset by dt seconds.
func (e Epoch) Roll(dt float64) Epoch {
	return e + Epoch(dt)
}

// Sub returns e - o in seconds.
func (e Epoch) Sub(o Epoch) float64 {
	return float64(e - o)
}

// Before returns whether e is strictly before o.
func (e Epoch) Before(o Epoch) bool {
	return e < o
}

// After returns whether e is strictly after o.
func (e Epoch) After(o Epoch) bool {
	return e > o
}

// Seconds returns the number of seconds past J2000.
func (e Epoch) Seconds() float64 {
	return float64(e)
}

// JD returns the Julian date of this epoch.
func (e Epoch) JD() float64 {
	return J2000JD + float64(e)/secondsPerDay
}

// Time returns the UTC time.Time of this epoch.
func (e Epoch) Time() time.Time {
	return j2000.Add(time.Duration(float64(e) * float64(time.Second)))
}

// EpochFromCalendar converts a Gregorian calendar date, where the day may be
// fractional, to an Epoch.
func EpochFromCalendar(year, month int, day float64) Epoch {
	return EpochFromJD(julian.CalendarGregorianToJD(year, month, day))
}

func (e Epoch) String() string {
	return fmt.Sprintf("%s (%.6f s)", e.Time().Format("2006-01-02T15:04:05.000"), float64(e))
}
