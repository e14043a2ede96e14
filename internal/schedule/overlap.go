package schedule

import (
	"time"

	"salonbook/internal/domain"
)

// Busy is an occupied clock-time range on a staff member's day.
// AppointmentID is zero for breaks and vacations.
type Busy struct {
	Interval
	AppointmentID int64
}

// IsFree reports whether the candidate interval conflicts with none of the
// busy ranges. excludeAppointmentID skips that appointment's own occupancy,
// which is how a reschedule avoids conflicting with itself.
func IsFree(candidate Interval, busy []Busy, excludeAppointmentID int64) bool {
	for _, b := range busy {
		if excludeAppointmentID != 0 && b.AppointmentID == excludeAppointmentID {
			continue
		}
		if candidate.Overlaps(b.Interval) {
			return false
		}
	}
	return true
}

// AppointmentBusy converts a day's appointments into busy ranges.
// Non-occupying statuses are skipped, and stored times are re-parsed so a
// row persisted with stray seconds still compares at minute precision.
func AppointmentBusy(appts []domain.Appointment) []Busy {
	out := make([]Busy, 0, len(appts))
	for _, a := range appts {
		if !a.Status.Occupies() {
			continue
		}
		start, err := ParseClock(a.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(a.EndTime)
		if err != nil {
			continue
		}
		out = append(out, Busy{Interval: Interval{Start: start, End: end}, AppointmentID: a.ID})
	}
	return out
}

// ExclusionBusy resolves breaks and vacations to concrete busy ranges for
// one date. Inactive rows are ignored; a vacation that covers the date
// blocks the whole day.
func ExclusionBusy(exclusions []domain.Exclusion, date time.Time) []Busy {
	var out []Busy
	for _, e := range exclusions {
		if !e.Active || !exclusionApplies(e, date) {
			continue
		}
		switch e.Type {
		case domain.ExclusionVacation:
			out = append(out, Busy{Interval: Interval{Start: 0, End: EndOfDay}})
		case domain.ExclusionBreak:
			start, err := ParseClock(e.StartTime)
			if err != nil {
				continue
			}
			end, err := ParseClock(e.EndTime)
			if err != nil {
				continue
			}
			iv := Interval{Start: start, End: end}
			if iv.Empty() {
				continue
			}
			out = append(out, Busy{Interval: iv})
		}
	}
	return out
}

func exclusionApplies(e domain.Exclusion, date time.Time) bool {
	switch e.Kind {
	case domain.KindOneOff:
		return inDateRange(e.StartDate, e.EndDate, date)
	case domain.KindRecurring:
		if e.StartDate != nil || e.EndDate != nil {
			if !inDateRange(e.StartDate, e.EndDate, date) {
				return false
			}
		}
		for _, wd := range e.Weekdays {
			if wd == date.Weekday() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// inDateRange compares dates only; nil end means a single-day range when the
// start is set, and a nil start never matches.
func inDateRange(start, end *time.Time, date time.Time) bool {
	if start == nil {
		return false
	}
	d := dateOnly(date)
	s := dateOnly(*start)
	if d.Before(s) {
		return false
	}
	e := s
	if end != nil {
		e = dateOnly(*end)
	}
	return !d.After(e)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
