package schedule

// ChainStep is one service of a back-to-back chain: its duration plus the
// busy ranges of the staff member who performs it on the target date.
type ChainStep struct {
	Duration int // minutes
	Busy     []Busy
}

// Slots enumerates the start times at which the whole chain fits inside the
// window without conflicts, stepping by the salon's slot granularity.
//
// The window belongs to the chain's first staff member; later steps are only
// checked for conflicts and for the total fitting before window end. That
// mirrors the product's booking behavior and is intentional.
//
// notBefore discards candidates starting at or before that clock time; pass
// a negative value when the date is not today. excludeAppointmentID is
// forwarded to the overlap checker for reschedules.
//
// The result is eager, ascending and duplicate-free.
func Slots(window Interval, granularity int, chain []ChainStep, excludeAppointmentID int64, notBefore Minutes) []Minutes {
	if granularity <= 0 || len(chain) == 0 || window.Empty() {
		return nil
	}

	total := 0
	for _, step := range chain {
		if step.Duration < 0 {
			return nil
		}
		total += step.Duration
	}
	if total <= 0 {
		return nil
	}

	latest := window.End - Minutes(total)
	if latest < window.Start {
		return nil
	}

	var out []Minutes
	for start := window.Start; start <= latest; start += Minutes(granularity) {
		if notBefore >= 0 && start <= notBefore {
			continue
		}
		if chainFits(start, chain, excludeAppointmentID) {
			out = append(out, start)
		}
	}
	return out
}

func chainFits(start Minutes, chain []ChainStep, excludeAppointmentID int64) bool {
	running := start
	for _, step := range chain {
		iv := Interval{Start: running, End: running + Minutes(step.Duration)}
		if !iv.Empty() && !IsFree(iv, step.Busy, excludeAppointmentID) {
			return false
		}
		running = iv.End
	}
	return true
}
