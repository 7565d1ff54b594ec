package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applytrail/applytrail/internal/models"
	"github.com/applytrail/applytrail/internal/world"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01T09:30:00Z", time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-03-01T09:30:00", time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)},
		{" 2024-03-01 09:30:00 ", time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)},
		{"2024-03-01T11:30:00+02:00", time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseDate(tc.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %s, want %s", got, tc.want)
		})
	}

	_, err := parseDate("March 1st")
	assert.Error(t, err)
}

func TestParseStageFile(t *testing.T) {
	yamlInput := []byte(`
- type: APPLIED
  date: 2024-03-01
- type: TECHNICAL
  date: "2024-03-08T10:00:00Z"
`)
	events, err := parseStageFile(yamlInput)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.StageApplied, events[0].Type)
	assert.Equal(t, models.StageTechnical, events[1].Type)

	jsonInput := []byte(`[{"type":"APPLIED","date":"2024-03-01"},{"type":"REJECTED","date":"2024-03-02"}]`)
	events, err = parseStageFile(jsonInput)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	_, err = parseStageFile([]byte(`[{"type":"PHONE","date":"2024-03-01"}]`))
	assert.ErrorIs(t, err, models.ErrInvalidStageType)

	_, err = parseStageFile([]byte(`[{"type":"APPLIED","date":"soon"}]`))
	assert.Error(t, err)

	_, err = parseStageFile([]byte(`{"type": [`))
	assert.Error(t, err)
}

func TestParseWorldFile(t *testing.T) {
	rows, err := parseWorldFile([]byte(`
- {application_id: 2, type: APPLIED, date: 2024-01-01}
- {application_id: 2, type: REJECTED, date: 2024-01-03}
- {application_id: 1, type: APPLIED, date: 2024-01-02}
`))
	require.NoError(t, err)
	assert.Equal(t, 3, rows.Len())

	_, err = parseWorldFile([]byte(`
- {application_id: 1, type: APPLIED, date: 2024-01-01}
- {application_id: 2, type: APPLIED, date: 2024-01-01}
`))
	assert.True(t, errors.Is(err, world.ErrUnsorted), "got %v", err)

	_, err = parseWorldFile([]byte(`[{"type":"APPLIED","date":"2024-01-01"}]`))
	assert.ErrorContains(t, err, "application_id is required")
}
