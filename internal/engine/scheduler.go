package engine

import (
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// CongratulationEntry is one line of the "who to congratulate" report.
// It is produced on demand and never stored.
type CongratulationEntry struct {
	// Name is the contact's name.
	Name string

	// CongratulationDate is Date rendered as D.M.YYYY.
	CongratulationDate string

	// Date is the weekend-adjusted congratulation day at midnight UTC.
	Date time.Time
}

// CongratulationDay computes when to congratulate someone born on birthday,
// seen from today. Only the month and day of birthday matter.
//
// The birthday is re-stamped onto today's year and the next one. The first
// occurrence whose offset from today lies in [0, LookaheadDays] is kept.
// A Saturday moves to Monday when the offset is below SaturdayShiftLimit, a
// Sunday when it is below SundayShiftLimit; otherwise the reminder is dropped
// because Monday would fall outside the current weekly batch.
//
// The boolean is false when no reminder is due.
func CongratulationDay(birthday, today time.Time) (time.Time, bool) {
	y, m, d := today.Date()
	todayDate := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	thisYear := anniversary(birthday, y)
	nextYear := anniversary(birthday, y+1)

	diffThis := daysBetween(todayDate, thisYear)
	diffNext := daysBetween(todayDate, nextYear)

	switch {
	case diffThis >= 0 && diffThis <= config.LookaheadDays:
		return adjustForWeekend(thisYear, diffThis)
	case diffNext <= config.LookaheadDays:
		return adjustForWeekend(nextYear, diffNext)
	default:
		return time.Time{}, false
	}
}

// FormatCongratulation renders a congratulation date as D.M.YYYY.
func FormatCongratulation(t time.Time) string {
	return t.Format(config.CongratulationLayout)
}

// adjustForWeekend moves weekend dates to the following Monday when that
// Monday still belongs to the lookahead window.
func adjustForWeekend(date time.Time, diff int) (time.Time, bool) {
	switch date.Weekday() {
	case time.Saturday:
		if diff < config.SaturdayShiftLimit {
			return date.AddDate(0, 0, 2), true
		}
		return time.Time{}, false
	case time.Sunday:
		if diff < config.SundayShiftLimit {
			return date.AddDate(0, 0, 1), true
		}
		return time.Time{}, false
	default:
		return date, true
	}
}

// anniversary places the birthday's month and day in the given year.
// time.Date normalizes Feb 29 to March 1st when year is not a leap year.
func anniversary(birthday time.Time, year int) time.Time {
	return time.Date(year, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the signed number of whole days from one UTC midnight to another.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / config.HoursPerDay)
}
