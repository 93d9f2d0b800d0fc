package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"heating_scheduler/internal/models"
	"heating_scheduler/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleFile_LoadMissing(t *testing.T) {
	f := NewScheduleFile(filepath.Join(t.TempDir(), "schedule.json"))
	_, err := f.Load()
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestScheduleFile_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")
	f := NewScheduleFile(path)

	s := schedule.New("Home")
	require.NoError(t, s.AddEntry(schedule.NewEntry("morning", schedule.Period(6, 0, 9, 0), models.HeatingOn)))
	require.NoError(t, s.AddEntry(schedule.NewEntry("night", schedule.Period(22, 0, 6, 0), models.HeatingOff)))
	require.NoError(t, f.Save(s))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, s.Name, got.Name)
	assert.Equal(t, s.Entries, got.Entries)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestScheduleFile_SaveMissingDir(t *testing.T) {
	f := NewScheduleFile(filepath.Join(t.TempDir(), "missing", "schedule.json"))
	assert.Error(t, f.Save(schedule.New("x")))
}

func TestScheduleFile_SaveOverwrites(t *testing.T) {
	f := NewScheduleFile(filepath.Join(t.TempDir(), "schedule.json"))
	require.NoError(t, f.Save(schedule.New("first")))
	require.NoError(t, f.Save(schedule.New("second")))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)
}

func TestScheduleFile_LoadRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"malformed json": `{"name": "x", "entries": [`,
		"bad time":       `{"name":"x","entries":[{"id":"a","name":"a","time_period":{"start":"25:00:00","end":"00:00:00"},"heating_state":"ON"}]}`,
		"gap":            `{"name":"x","entries":[{"id":"a","name":"a","time_period":{"start":"06:00:00","end":"09:00:00"},"heating_state":"ON"}]}`,
		"no entries":     `{"name":"x","entries":[]}`,
		"bad state":      `{"name":"x","entries":[{"id":"a","name":"a","time_period":{"start":"00:00:00","end":"00:00:00"},"heating_state":"WARM"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "schedule.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			_, err := NewScheduleFile(path).Load()
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %v", err)
			assert.Equal(t, path, pe.Path)
		})
	}
}
