package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/applytrail/applytrail/internal/chronology"
	"github.com/applytrail/applytrail/internal/models"
	"github.com/applytrail/applytrail/internal/world"
)

// dateLayouts are tried in order; values without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// stageEntry is one line of a check-stages input file. JSON input works too
// since it is valid YAML.
type stageEntry struct {
	Type string `yaml:"type"`
	Date string `yaml:"date"`
}

type worldEntry struct {
	ApplicationID int64  `yaml:"application_id"`
	Type          string `yaml:"type"`
	Date          string `yaml:"date"`
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func decodeList[T any](data []byte) ([]T, error) {
	var entries []T
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return entries, nil
}

func parseStageFile(data []byte) ([]chronology.Event, error) {
	entries, err := decodeList[stageEntry](data)
	if err != nil {
		return nil, err
	}

	events := make([]chronology.Event, 0, len(entries))
	for i, e := range entries {
		typ, err := models.ParseStageType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		date, err := parseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		events = append(events, chronology.Event{Type: typ, Date: date})
	}
	return events, nil
}

func parseWorldFile(data []byte) (world.SortedRows, error) {
	entries, err := decodeList[worldEntry](data)
	if err != nil {
		return world.SortedRows{}, err
	}

	rows := make([]world.Row, 0, len(entries))
	for i, e := range entries {
		if e.ApplicationID <= 0 {
			return world.SortedRows{}, fmt.Errorf("entry %d: application_id is required", i)
		}
		typ, err := models.ParseStageType(e.Type)
		if err != nil {
			return world.SortedRows{}, fmt.Errorf("entry %d: %w", i, err)
		}
		date, err := parseDate(e.Date)
		if err != nil {
			return world.SortedRows{}, fmt.Errorf("entry %d: %w", i, err)
		}
		rows = append(rows, world.Row{ApplicationID: e.ApplicationID, Type: typ, Date: date})
	}
	return world.Sorted(rows)
}

// errViolation makes check-stages exit non-zero after it printed the code.
var errViolation = errors.New("stage chronology violated")
