package strategy

import (
	"fmt"
	"time"
)

type ClockTime struct {
	Hour   int
	Minute int
}

func ParseClockTime(s string) (ClockTime, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return ClockTime{}, fmt.Errorf("ParseClockTime: failed to parse %q: %w", s, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("ParseClockTime: %q is not a valid wall clock time", s)
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

func (c ClockTime) minuteOfDay() int {
	return c.Hour*60 + c.Minute
}

// ActiveWindow is the time-of-day range during which directional signals are
// considered. Start is inclusive, End is exclusive.
type ActiveWindow struct {
	Start ClockTime
	End   ClockTime
}

func (w ActiveWindow) Contains(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	return m >= w.Start.minuteOfDay() && m < w.End.minuteOfDay()
}
