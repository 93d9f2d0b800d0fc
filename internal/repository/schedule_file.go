package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"heating_scheduler/internal/schedule"

	json "github.com/goccy/go-json"
)

var ErrScheduleNotFound = errors.New("schedule file not found")

// ParseError reports a schedule file that exists but cannot be used.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse schedule %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ScheduleFile stores a schedule as a single JSON document.
type ScheduleFile struct {
	path string
}

func NewScheduleFile(path string) *ScheduleFile {
	return &ScheduleFile{path: path}
}

func (f *ScheduleFile) Path() string { return f.path }

// Load reads and validates the schedule. A file that does not fully cover the
// day is rejected with a *ParseError.
func (f *ScheduleFile) Load() (*schedule.Schedule, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("read schedule %s: %w", f.path, err)
	}

	var s schedule.Schedule
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, &ParseError{Path: f.path, Err: err}
	}
	if err := s.CheckCoverage(); err != nil {
		return nil, &ParseError{Path: f.path, Err: err}
	}
	return &s, nil
}

// Save writes s to a temp file in the same directory and renames it into
// place, so readers never see a partial document. The directory must exist.
func (f *ScheduleFile) Save(s *schedule.Schedule) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp schedule: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(append(b, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp schedule: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp schedule: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp schedule: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace schedule: %w", err)
	}
	return nil
}
