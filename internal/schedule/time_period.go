// Package schedule holds the daily heating timetable: time-of-day periods
// and the gap-free, overlap-free schedule built from them.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock time without a date, in seconds since midnight.
type TimeOfDay int

// Midnight is the start of the day.
const Midnight TimeOfDay = 0

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day: expected HH:MM:SS")
	ErrInvalidPeriod    = errors.New("invalid time period: start equals end (only 00:00:00-00:00:00 means the whole day)")
)

// NewTimeOfDay builds a TimeOfDay, validating each component.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d:%02d", ErrInvalidTimeOfDay, hour, minute, second)
	}
	return TimeOfDay(hour*3600 + minute*60 + second), nil
}

// At returns hour:minute as a TimeOfDay. It panics on out-of-range input and
// is meant for literals.
func At(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute, 0)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDayOf extracts the wall-clock time of t in t's location. Sub-second
// precision is dropped.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(h*3600 + m*60 + s)
}

// ParseTimeOfDay accepts "HH:MM:SS" or "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		if len(p) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
		nums[i] = n
	}
	return NewTimeOfDay(nums[0], nums[1], nums[2])
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	v, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// TimePeriod is a half-open daily interval [Start, End). A period with
// Start > End wraps past midnight. Start == End == Midnight is the full-day
// sentinel; any other Start == End is invalid.
type TimePeriod struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// NewTimePeriod returns the period [start, end).
func NewTimePeriod(start, end TimeOfDay) TimePeriod {
	return TimePeriod{Start: start, End: end}
}

// Period is shorthand for NewTimePeriod(At(sh, sm), At(eh, em)).
func Period(startHour, startMinute, endHour, endMinute int) TimePeriod {
	return TimePeriod{Start: At(startHour, startMinute), End: At(endHour, endMinute)}
}

// FullDay returns the sentinel period covering the entire day.
func FullDay() TimePeriod {
	return TimePeriod{Start: Midnight, End: Midnight}
}

func (p TimePeriod) IsFullDay() bool {
	return p.Start == Midnight && p.End == Midnight
}

// Wraps reports whether the period crosses midnight. A period ending exactly
// at midnight (e.g. 22:00-00:00) wraps.
func (p TimePeriod) Wraps() bool {
	return !p.IsFullDay() && p.Start > p.End
}

// Validate rejects zero-length periods other than the full-day sentinel.
func (p TimePeriod) Validate() error {
	if p.Start < 0 || p.Start >= secondsPerDay || p.End < 0 || p.End >= secondsPerDay {
		return ErrInvalidTimeOfDay
	}
	if p.Start == p.End && !p.IsFullDay() {
		return fmt.Errorf("%w: %s", ErrInvalidPeriod, p)
	}
	return nil
}

// Duration is the length of the period.
func (p TimePeriod) Duration() time.Duration {
	return time.Duration(p.length()) * time.Second
}

func (p TimePeriod) length() int {
	if p.IsFullDay() {
		return secondsPerDay
	}
	return (int(p.End) - int(p.Start) + secondsPerDay) % secondsPerDay
}

// Contains reports whether t falls inside the period.
func (p TimePeriod) Contains(t TimeOfDay) bool {
	switch {
	case p.IsFullDay():
		return true
	case p.Start <= p.End:
		return t >= p.Start && t < p.End
	default:
		return t >= p.Start || t < p.End
	}
}

// Overlaps reports whether the two periods share any time. For half-open arcs
// on the daily circle any intersection begins at the start of one of them, so
// checking both starts is sufficient.
func (p TimePeriod) Overlaps(other TimePeriod) bool {
	if p.IsFullDay() || other.IsFullDay() {
		return true
	}
	return p.Contains(other.Start) || other.Contains(p.Start)
}

// Subtract returns the parts of p not covered by other, in ascending order of
// their position within p. Coverage is preserved: the result together with
// the overlap of p and other is exactly p.
func (p TimePeriod) Subtract(other TimePeriod) []TimePeriod {
	if !p.Overlaps(other) {
		return []TimePeriod{p}
	}
	if other.IsFullDay() {
		return nil
	}
	if p.IsFullDay() {
		return subtractFromFullDay(other)
	}

	pieces := p.spans()
	for _, cut := range other.spans() {
		var next []span
		for _, piece := range pieces {
			next = append(next, piece.minus(cut)...)
		}
		pieces = next
	}

	out := make([]TimePeriod, 0, len(pieces))
	for _, s := range pieces {
		out = append(out, s.period())
	}
	return out
}

// subtractFromFullDay keeps the two residual pieces of the day separate for a
// non-wrapping cut rather than joining them into one wrapping period.
func subtractFromFullDay(other TimePeriod) []TimePeriod {
	if other.Wraps() {
		return []TimePeriod{{Start: other.End, End: other.Start}}
	}
	var out []TimePeriod
	if other.Start != Midnight {
		out = append(out, TimePeriod{Start: Midnight, End: other.Start})
	}
	if other.End != Midnight {
		out = append(out, TimePeriod{Start: other.End, End: Midnight})
	}
	return out
}

func (p TimePeriod) String() string {
	return fmt.Sprintf("%02d:%02d - %02d:%02d", p.Start.Hour(), p.Start.Minute(), p.End.Hour(), p.End.Minute())
}

// span is a non-wrapping interval [lo, hi) on the linear day 0..secondsPerDay.
type span struct {
	lo, hi int
}

// spans splits a period at midnight. Zero-length halves are dropped, so a
// period ending at midnight yields a single span.
func (p TimePeriod) spans() []span {
	if p.IsFullDay() {
		return []span{{0, secondsPerDay}}
	}
	if p.Start < p.End {
		return []span{{int(p.Start), int(p.End)}}
	}
	out := []span{{int(p.Start), secondsPerDay}}
	if p.End != Midnight {
		out = append(out, span{0, int(p.End)})
	}
	return out
}

func (s span) minus(cut span) []span {
	if cut.hi <= s.lo || cut.lo >= s.hi {
		return []span{s}
	}
	var out []span
	if s.lo < cut.lo {
		out = append(out, span{s.lo, cut.lo})
	}
	if cut.hi < s.hi {
		out = append(out, span{cut.hi, s.hi})
	}
	return out
}

func (s span) period() TimePeriod {
	if s.lo == 0 && s.hi == secondsPerDay {
		return FullDay()
	}
	return TimePeriod{Start: TimeOfDay(s.lo), End: TimeOfDay(s.hi % secondsPerDay)}
}
