package schedule

import (
	"math/rand"
	"testing"
	"time"

	"heating_scheduler/internal/models"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onAt(t *testing.T, s *Schedule, tod TimeOfDay) Entry {
	t.Helper()
	now := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC).Add(time.Duration(tod) * time.Second)
	e, ok := s.ActiveEntry(now)
	require.True(t, ok, "no entry covers %s", tod)
	return e
}

func requireCoverage(t *testing.T, s *Schedule) {
	t.Helper()
	require.NoError(t, s.CheckCoverage())
	for m := 0; m < 24*60; m++ {
		tod := TimeOfDay(m * 60)
		hits := 0
		for _, e := range s.Entries {
			if e.TimePeriod.Contains(tod) {
				hits++
			}
		}
		require.Equal(t, 1, hits, "minute %s covered %d times", tod, hits)
	}
}

func names(s *Schedule) []string {
	out := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		out = append(out, e.Name)
	}
	return out
}

func TestNew_SingleFullDayOffEntry(t *testing.T) {
	s := New("Default Heating Schedule")
	require.Len(t, s.Entries, 1)
	assert.True(t, s.Entries[0].TimePeriod.IsFullDay())
	assert.Equal(t, models.HeatingOff, s.Entries[0].HeatingState)
	assert.NotEmpty(t, s.Entries[0].ID)
	requireCoverage(t, s)
}

func TestAddEntry_SplitsDefaultAndLeavesNoGap(t *testing.T) {
	s := New("test")
	require.NoError(t, s.AddEntry(NewEntry("late morning", Period(10, 0, 11, 0), models.HeatingOn)))
	require.NoError(t, s.AddEntry(NewEntry("evening", Period(17, 0, 22, 0), models.HeatingOn)))
	requireCoverage(t, s)

	var tail *Entry
	for i := range s.Entries {
		if s.Entries[i].TimePeriod == Period(22, 0, 0, 0) {
			tail = &s.Entries[i]
		}
	}
	require.NotNil(t, tail, "expected a 22:00-00:00 entry, got %v", s.Entries)
	assert.Equal(t, models.HeatingOff, tail.HeatingState)

	assert.Equal(t, "default", onAt(t, s, At(23, 0)).Name)
	assert.Equal(t, "evening", onAt(t, s, At(18, 0)).Name)
	assert.Equal(t, "late morning", onAt(t, s, At(10, 30)).Name)
	assert.Equal(t, "default", onAt(t, s, At(11, 0)).Name)
}

func TestAddEntry_SortedByStart(t *testing.T) {
	s := New("test")
	require.NoError(t, s.AddEntry(NewEntry("evening", Period(17, 0, 22, 0), models.HeatingOn)))
	require.NoError(t, s.AddEntry(NewEntry("morning", Period(6, 0, 9, 0), models.HeatingOn)))

	for i := 1; i < len(s.Entries); i++ {
		assert.LessOrEqual(t, s.Entries[i-1].TimePeriod.Start, s.Entries[i].TimePeriod.Start)
	}
	assert.Equal(t, []string{"default", "morning", "default", "evening", "default"}, names(s))
}

func TestAddEntry_FullyCoveredEntryDisappears(t *testing.T) {
	s := New("test")
	require.NoError(t, s.AddEntry(NewEntry("short boost", Period(10, 0, 12, 0), models.HeatingOn)))
	require.NoError(t, s.AddEntry(NewEntry("long off", Period(8, 0, 14, 0), models.HeatingOff)))
	requireCoverage(t, s)
	assert.NotContains(t, names(s), "short boost")
}

func TestAddEntry_NewEntryWinsItsInterval(t *testing.T) {
	s := New("test")
	require.NoError(t, s.AddEntry(NewEntry("day", Period(8, 0, 20, 0), models.HeatingOn)))
	require.NoError(t, s.AddEntry(NewEntry("lunch", Period(12, 0, 13, 0), models.HeatingOff)))
	requireCoverage(t, s)

	assert.Equal(t, "day", onAt(t, s, At(11, 59)).Name)
	assert.Equal(t, "lunch", onAt(t, s, At(12, 30)).Name)
	assert.Equal(t, "day", onAt(t, s, At(13, 0)).Name)
}

func TestAddEntry_ClippedEntryKeepsIDOnFirstPiece(t *testing.T) {
	s := New("test")
	day := NewEntry("day", Period(8, 0, 20, 0), models.HeatingOn)
	require.NoError(t, s.AddEntry(day))
	require.NoError(t, s.AddEntry(NewEntry("lunch", Period(12, 0, 13, 0), models.HeatingOff)))

	var ids []string
	for _, e := range s.Entries {
		if e.Name == "day" {
			ids = append(ids, e.ID)
		}
	}
	require.Len(t, ids, 2)
	assert.Contains(t, ids, day.ID)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestAddEntry_WrappingEntry(t *testing.T) {
	s := New("test")
	require.NoError(t, s.AddEntry(NewEntry("night", Period(22, 0, 6, 0), models.HeatingOn)))
	requireCoverage(t, s)
	assert.Equal(t, "night", onAt(t, s, At(23, 0)).Name)
	assert.Equal(t, "night", onAt(t, s, At(2, 0)).Name)
	assert.Equal(t, "default", onAt(t, s, At(6, 0)).Name)

	require.NoError(t, s.AddEntry(NewEntry("midnight off", Period(23, 30, 0, 30), models.HeatingOff)))
	requireCoverage(t, s)
	assert.Equal(t, "midnight off", onAt(t, s, Midnight).Name)
	assert.Equal(t, "night", onAt(t, s, At(23, 0)).Name)
	assert.Equal(t, "night", onAt(t, s, At(1, 0)).Name)
}

func TestAddEntry_FullDayReplacesEverything(t *testing.T) {
	s := New("test")
	require.NoError(t, s.AddEntry(NewEntry("a", Period(1, 0, 2, 0), models.HeatingOn)))
	require.NoError(t, s.AddEntry(NewEntry("b", Period(22, 0, 3, 0), models.HeatingOn)))
	require.NoError(t, s.AddEntry(NewEntry("always", FullDay(), models.HeatingOn)))
	requireCoverage(t, s)
	assert.Equal(t, []string{"always"}, names(s))
}

func TestAddEntry_Rejects(t *testing.T) {
	s := New("test")
	assert.ErrorIs(t, s.AddEntry(NewEntry("zero", Period(9, 0, 9, 0), models.HeatingOn)), ErrInvalidPeriod)
	assert.ErrorIs(t, s.AddEntry(NewEntry("bad", Period(9, 0, 10, 0), "WARM")), ErrInvalidState)
	dup := NewEntry("dup", Period(9, 0, 10, 0), models.HeatingOn)
	dup.ID = s.Entries[0].ID
	assert.ErrorIs(t, s.AddEntry(dup), ErrDuplicateEntry)
	assert.Len(t, s.Entries, 1, "rejected entries must not mutate the schedule")
}

func TestAddEntry_AssignsMissingID(t *testing.T) {
	s := New("test")
	require.NoError(t, s.AddEntry(Entry{Name: "x", TimePeriod: Period(9, 0, 10, 0), HeatingState: models.HeatingOn}))
	e := onAt(t, s, At(9, 30))
	assert.NotEmpty(t, e.ID)
}

func TestDeleteEntry_PredecessorAbsorbsInterval(t *testing.T) {
	s := New("test")
	require.NoError(t, s.AddEntry(NewEntry("morning", Period(6, 0, 9, 0), models.HeatingOn)))
	evening := NewEntry("evening", Period(17, 0, 22, 0), models.HeatingOn)
	require.NoError(t, s.AddEntry(evening))

	require.NoError(t, s.DeleteEntry(evening.ID))
	requireCoverage(t, s)
	assert.NotContains(t, names(s), "evening")

	e := onAt(t, s, At(18, 0))
	assert.Equal(t, "default", e.Name)
	assert.Equal(t, Period(9, 0, 22, 0), e.TimePeriod)
}

func TestDeleteEntry_AcrossMidnight(t *testing.T) {
	s := New("test")
	night := NewEntry("night", Period(22, 0, 6, 0), models.HeatingOn)
	require.NoError(t, s.AddEntry(night))
	early := NewEntry("early", Period(0, 0, 1, 0), models.HeatingOff)
	require.NoError(t, s.AddEntry(early))
	requireCoverage(t, s)

	require.NoError(t, s.DeleteEntry(early.ID))
	requireCoverage(t, s)
	assert.Equal(t, "night", onAt(t, s, At(0, 30)).Name)
}

func TestDeleteEntry_MergeIntoFullDay(t *testing.T) {
	s := New("test")
	day := NewEntry("day", Period(8, 0, 20, 0), models.HeatingOn)
	require.NoError(t, s.AddEntry(day))
	// Re-cover the remainder with one wrapping entry so only two entries remain.
	require.NoError(t, s.AddEntry(NewEntry("night", Period(20, 0, 8, 0), models.HeatingOff)))
	require.Len(t, s.Entries, 2)

	require.NoError(t, s.DeleteEntry(day.ID))
	require.Len(t, s.Entries, 1)
	assert.True(t, s.Entries[0].TimePeriod.IsFullDay())
	assert.Equal(t, "night", s.Entries[0].Name)
	requireCoverage(t, s)
}

func TestDeleteEntry_LastEntryResetsToDefault(t *testing.T) {
	s := New("test")
	only := s.Entries[0].ID
	require.NoError(t, s.DeleteEntry(only))
	requireCoverage(t, s)
	require.Len(t, s.Entries, 1)
	assert.NotEqual(t, only, s.Entries[0].ID)
	assert.Equal(t, models.HeatingOff, s.Entries[0].HeatingState)
}

func TestDeleteEntry_NotFound(t *testing.T) {
	s := New("test")
	assert.ErrorIs(t, s.DeleteEntry("nope"), ErrEntryNotFound)
}

func TestCurrentState(t *testing.T) {
	s := New("test")
	require.NoError(t, s.AddEntry(NewEntry("evening", Period(17, 0, 22, 0), models.HeatingOn)))

	at := func(h, m int) time.Time { return time.Date(2025, time.March, 3, h, m, 0, 0, time.Local) }
	assert.Equal(t, models.HeatingOn, s.CurrentState(at(17, 0)))
	assert.Equal(t, models.HeatingOn, s.CurrentState(at(21, 59)))
	assert.Equal(t, models.HeatingOff, s.CurrentState(at(22, 0)))
	assert.Equal(t, models.HeatingOff, s.CurrentState(at(3, 0)))

	broken := &Schedule{Name: "broken"}
	assert.Equal(t, models.HeatingOff, broken.CurrentState(at(12, 0)))
}

func TestCheckCoverage_DetectsViolations(t *testing.T) {
	gap := &Schedule{Entries: []Entry{
		NewEntry("a", Period(0, 0, 8, 0), models.HeatingOff),
		NewEntry("b", Period(9, 0, 0, 0), models.HeatingOn),
	}}
	assert.ErrorIs(t, gap.CheckCoverage(), ErrCoverage)

	overlap := &Schedule{Entries: []Entry{
		NewEntry("a", Period(0, 0, 10, 0), models.HeatingOff),
		NewEntry("b", Period(9, 0, 0, 0), models.HeatingOn),
	}}
	assert.ErrorIs(t, overlap.CheckCoverage(), ErrCoverage)

	partial := &Schedule{Entries: []Entry{NewEntry("a", Period(0, 0, 10, 0), models.HeatingOff)}}
	assert.ErrorIs(t, partial.CheckCoverage(), ErrCoverage)

	empty := &Schedule{}
	assert.ErrorIs(t, empty.CheckCoverage(), ErrCoverage)

	twice := &Schedule{Entries: []Entry{
		NewEntry("a", Period(0, 0, 12, 0), models.HeatingOff),
		NewEntry("b", Period(12, 0, 0, 0), models.HeatingOn),
		NewEntry("c", Period(0, 0, 12, 0), models.HeatingOff),
		NewEntry("d", Period(12, 0, 0, 0), models.HeatingOn),
	}}
	assert.Error(t, twice.CheckCoverage())
}

func TestAddAndDelete_RandomSequencesKeepCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randomPeriod := func() TimePeriod {
		if rng.Intn(40) == 0 {
			return FullDay()
		}
		for {
			start := TimeOfDay(rng.Intn(96) * 15 * 60)
			end := TimeOfDay(rng.Intn(96) * 15 * 60)
			if start != end {
				return NewTimePeriod(start, end)
			}
		}
	}
	states := []models.HeatingState{models.HeatingOff, models.HeatingOn}

	for run := 0; run < 50; run++ {
		s := New("random")
		for step := 0; step < 30; step++ {
			if len(s.Entries) > 1 && rng.Intn(4) == 0 {
				victim := s.Entries[rng.Intn(len(s.Entries))]
				require.NoError(t, s.DeleteEntry(victim.ID))
			} else {
				e := NewEntry("e", randomPeriod(), states[rng.Intn(2)])
				require.NoError(t, s.AddEntry(e))
				assert.Equal(t, e.ID, onAt(t, s, e.TimePeriod.Start).ID, "new entry must own its start")
			}
			requireCoverage(t, s)
		}
	}
}

func TestSchedule_JSONShape(t *testing.T) {
	s := New("Test Schedule")
	require.NoError(t, s.AddEntry(NewEntry("Evening Heating", Period(17, 0, 22, 0), models.HeatingOn)))

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var raw struct {
		Name    string `json:"name"`
		Entries []struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			TimePeriod struct {
				Start string `json:"start"`
				End   string `json:"end"`
			} `json:"time_period"`
			HeatingState string `json:"heating_state"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "Test Schedule", raw.Name)
	require.Len(t, raw.Entries, 3)
	assert.Equal(t, "17:00:00", raw.Entries[1].TimePeriod.Start)
	assert.Equal(t, "22:00:00", raw.Entries[1].TimePeriod.End)
	assert.Equal(t, "ON", raw.Entries[1].HeatingState)
	assert.Equal(t, "00:00:00", raw.Entries[2].TimePeriod.End)
}

func TestClone_IsIndependent(t *testing.T) {
	s := New("test")
	c := s.Clone()
	require.NoError(t, c.AddEntry(NewEntry("x", Period(1, 0, 2, 0), models.HeatingOn)))
	assert.Len(t, s.Entries, 1)
	assert.Len(t, c.Entries, 3)
}
