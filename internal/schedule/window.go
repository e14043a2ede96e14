package schedule

import (
	"time"

	"salonbook/internal/domain"
)

// WorkingWindow intersects the salon's and the staff member's weekly
// templates for the given date. The second return value is false when the
// salon is closed or the staff member is off that weekday.
//
// Exclusion periods are deliberately not subtracted here: a break only
// invalidates the candidates that intersect it, so it is applied
// per-candidate by the overlap checker.
func WorkingWindow(salonHours, staffHours domain.WeekSchedule, date time.Time) (Interval, bool) {
	day := date.Weekday()

	salon := salonHours.At(day)
	staff := staffHours.At(day)
	if !salon.Open || !staff.Open {
		return Interval{}, false
	}

	salonIv, ok := dayInterval(salon)
	if !ok {
		return Interval{}, false
	}
	staffIv, ok := dayInterval(staff)
	if !ok {
		return Interval{}, false
	}

	win := Interval{Start: maxMinutes(salonIv.Start, staffIv.Start), End: minMinutes(salonIv.End, staffIv.End)}
	if win.Empty() {
		return Interval{}, false
	}
	return win, true
}

// dayInterval parses one template entry. A malformed or empty entry counts
// as closed rather than open.
func dayInterval(d domain.DayHours) (Interval, bool) {
	start, err := ParseClock(d.Start)
	if err != nil {
		return Interval{}, false
	}
	end, err := ParseClock(d.End)
	if err != nil {
		return Interval{}, false
	}
	iv := Interval{Start: start, End: end}
	if iv.Empty() {
		return Interval{}, false
	}
	return iv, true
}

func maxMinutes(a, b Minutes) Minutes {
	if a > b {
		return a
	}
	return b
}

func minMinutes(a, b Minutes) Minutes {
	if a < b {
		return a
	}
	return b
}
