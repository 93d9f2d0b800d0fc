package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"heating_scheduler/internal/models"

	"github.com/google/uuid"
)

// DefaultEntryName names the entry a fresh schedule starts with.
const DefaultEntryName = "default"

var (
	ErrEntryNotFound  = errors.New("schedule entry not found")
	ErrDuplicateEntry = errors.New("schedule entry id already exists")
	ErrInvalidState   = errors.New("invalid heating state: must be ON or OFF")
	ErrCoverage       = errors.New("schedule entries do not cover the day exactly once")
)

// Entry maps a period of the day to a desired heating state.
type Entry struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	TimePeriod   TimePeriod          `json:"time_period"`
	HeatingState models.HeatingState `json:"heating_state"`
}

// NewEntry returns an entry with a freshly generated id.
func NewEntry(name string, period TimePeriod, state models.HeatingState) Entry {
	return Entry{
		ID:           uuid.NewString(),
		Name:         name,
		TimePeriod:   period,
		HeatingState: state,
	}
}

func defaultEntry() Entry {
	return NewEntry(DefaultEntryName, FullDay(), models.HeatingOff)
}

// Schedule is an ordered set of entries whose periods partition the day.
// Every mutation keeps the partition intact and the entries sorted by start.
type Schedule struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// New returns a schedule with a single full-day entry mapped to OFF.
func New(name string) *Schedule {
	return &Schedule{
		Name:    name,
		Entries: []Entry{defaultEntry()},
	}
}

// AddEntry inserts e so that it owns its whole period. Existing entries that
// overlap it are clipped to what remains outside e, or dropped when nothing
// remains. The first residual piece of a clipped entry keeps its id.
func (s *Schedule) AddEntry(e Entry) error {
	if err := e.TimePeriod.Validate(); err != nil {
		return err
	}
	if !e.HeatingState.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidState, e.HeatingState)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if s.indexOf(e.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, e.ID)
	}

	next := make([]Entry, 0, len(s.Entries)+2)
	for _, existing := range s.Entries {
		if !existing.TimePeriod.Overlaps(e.TimePeriod) {
			next = append(next, existing)
			continue
		}
		for i, rest := range existing.TimePeriod.Subtract(e.TimePeriod) {
			residual := existing
			residual.TimePeriod = rest
			if i > 0 {
				residual.ID = uuid.NewString()
			}
			next = append(next, residual)
		}
	}
	s.Entries = append(next, e)
	s.sortEntries()
	return nil
}

// DeleteEntry removes the entry with the given id. The freed interval is
// absorbed by the predecessor, the entry ending where the deleted one starts.
// Deleting the last remaining entry resets the schedule to its default.
func (s *Schedule) DeleteEntry(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	if len(s.Entries) == 1 {
		s.Entries = []Entry{defaultEntry()}
		return nil
	}

	deleted := s.Entries[idx]
	if deleted.TimePeriod.IsFullDay() {
		return fmt.Errorf("%w: full-day entry %s alongside others", ErrCoverage, id)
	}
	pred := -1
	for i, e := range s.Entries {
		if i != idx && e.TimePeriod.End == deleted.TimePeriod.Start {
			pred = i
			break
		}
	}
	if pred < 0 {
		return fmt.Errorf("%w: no entry ends at %s", ErrCoverage, deleted.TimePeriod.Start)
	}

	merged := &s.Entries[pred].TimePeriod
	merged.End = deleted.TimePeriod.End
	if merged.Start == merged.End {
		*merged = FullDay()
	}
	s.Entries = append(s.Entries[:idx], s.Entries[idx+1:]...)
	s.sortEntries()
	return nil
}

// ActiveEntry returns the entry covering the wall-clock time of now.
func (s *Schedule) ActiveEntry(now time.Time) (Entry, bool) {
	t := TimeOfDayOf(now)
	for _, e := range s.Entries {
		if e.TimePeriod.Contains(t) {
			return e, true
		}
	}
	return Entry{}, false
}

// CurrentState is the scheduled heating state at now, OFF when no entry
// matches.
func (s *Schedule) CurrentState(now time.Time) models.HeatingState {
	e, ok := s.ActiveEntry(now)
	if !ok {
		return models.HeatingOff
	}
	return e.HeatingState
}

// Entry looks up an entry by id.
func (s *Schedule) Entry(id string) (Entry, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Entries[i], true
	}
	return Entry{}, false
}

// CheckCoverage verifies that the entries partition the day: each entry ends
// where the next one (circularly, by start) begins and the lengths add up to
// exactly one day. It also validates ids, periods and states.
func (s *Schedule) CheckCoverage() error {
	n := len(s.Entries)
	if n == 0 {
		return fmt.Errorf("%w: no entries", ErrCoverage)
	}
	seen := make(map[string]struct{}, n)
	total := 0
	for _, e := range s.Entries {
		if e.ID == "" {
			return fmt.Errorf("entry %q has no id", e.Name)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, e.ID)
		}
		seen[e.ID] = struct{}{}
		if err := e.TimePeriod.Validate(); err != nil {
			return fmt.Errorf("entry %s: %w", e.ID, err)
		}
		if !e.HeatingState.Valid() {
			return fmt.Errorf("entry %s: %w", e.ID, ErrInvalidState)
		}
		total += e.TimePeriod.length()
	}
	if n == 1 {
		if !s.Entries[0].TimePeriod.IsFullDay() {
			return fmt.Errorf("%w: single entry %s is not full-day", ErrCoverage, s.Entries[0].TimePeriod)
		}
		return nil
	}

	sorted := make([]Entry, n)
	copy(sorted, s.Entries)
	sortByStart(sorted)
	for i, e := range sorted {
		if e.TimePeriod.IsFullDay() {
			return fmt.Errorf("%w: full-day entry %s alongside others", ErrCoverage, e.ID)
		}
		next := sorted[(i+1)%n]
		if e.TimePeriod.End != next.TimePeriod.Start {
			return fmt.Errorf("%w: %s ends at %s but next entry starts at %s",
				ErrCoverage, e.ID, e.TimePeriod.End, next.TimePeriod.Start)
		}
	}
	if total != secondsPerDay {
		return fmt.Errorf("%w: entries span %ds, want %ds", ErrCoverage, total, secondsPerDay)
	}
	return nil
}

// Clone returns a deep copy.
func (s *Schedule) Clone() *Schedule {
	entries := make([]Entry, len(s.Entries))
	copy(entries, s.Entries)
	return &Schedule{Name: s.Name, Entries: entries}
}

func (s *Schedule) indexOf(id string) int {
	for i, e := range s.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Schedule) sortEntries() {
	sortByStart(s.Entries)
}

func sortByStart(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TimePeriod.Start < entries[j].TimePeriod.Start
	})
}
