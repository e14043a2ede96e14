package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Minutes is a clock time expressed as minutes since midnight. All stored
// times are minute precision; seconds are truncated on input so that
// boundary comparisons never depend on sub-minute noise.
type Minutes int

// EndOfDay is the exclusive upper bound of a day's clock times.
const EndOfDay Minutes = 24 * 60

var errBadClock = errors.New("invalid clock time")

// ParseClock parses "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Seconds are dropped, never rounded.
func ParseClock(s string) (Minutes, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", errBadClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", errBadClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", errBadClock, s)
	}
	return Minutes(h*60 + m), nil
}

func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// ClockOf truncates a wall-clock instant to its minute of day.
func ClockOf(t time.Time) Minutes {
	return Minutes(t.Hour()*60 + t.Minute())
}

// Interval is a half-open clock-time range [Start, End).
type Interval struct {
	Start Minutes `json:"start"`
	End   Minutes `json:"end"`
}

func (iv Interval) Empty() bool { return iv.End <= iv.Start }

// Overlaps uses the half-open test: touching boundaries do not overlap,
// so an appointment ending at 10:30 never conflicts with one starting at
// 10:30.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}
