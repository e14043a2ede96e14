package domain

import "time"

// DayHours is one weekday's entry in a weekly schedule. A zero value means
// closed: a day that was never configured must not be treated as open.
type DayHours struct {
	Open  bool   `json:"open"`
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "18:00"
}

// WeekSchedule is a fixed 7-entry table indexed by time.Weekday (0 = Sunday).
type WeekSchedule [7]DayHours

func (w WeekSchedule) At(d time.Weekday) DayHours {
	return w[int(d)]
}

// NewWeekSchedule builds a schedule that is open Mon-Sat with the given
// hours and closed on Sunday.
func NewWeekSchedule(start, end string) WeekSchedule {
	var w WeekSchedule
	for d := time.Monday; d <= time.Saturday; d++ {
		w[int(d)] = DayHours{Open: true, Start: start, End: end}
	}
	return w
}
