package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElection_StatusAt(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	e := &Election{StartDate: start, EndDate: end}

	tests := []struct {
		name string
		at   time.Time
		want ElectionStatus
	}{
		{"well before start", start.Add(-time.Hour), StatusUpcoming},
		{"1ms before start", start.Add(-time.Millisecond), StatusUpcoming},
		{"exactly at start", start, StatusOngoing},
		{"mid window", start.Add(6 * time.Hour), StatusOngoing},
		{"exactly at end", end, StatusOngoing},
		{"1ms after end", end.Add(time.Millisecond), StatusEnded},
		{"well after end", end.Add(time.Hour), StatusEnded},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.StatusAt(tc.at))
		})
	}
}
