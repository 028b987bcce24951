package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Monday 2025-03-03 through Friday 2025-03-07.
var week = []string{"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07"}

func TestWorkingDays(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want []string
	}{
		{
			name: "full week window",
			from: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
			want: week,
		},
		{
			name: "window spanning a weekend",
			from: time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			want: []string{"2025-03-07", "2025-03-10"},
		},
		{
			name: "weekend only window is empty",
			from: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
			want: nil,
		},
		{
			name: "time of day is ignored",
			from: time.Date(2025, 3, 3, 23, 59, 0, 0, time.UTC),
			to:   time.Date(2025, 3, 4, 0, 1, 0, 0, time.UTC),
			want: []string{"2025-03-03", "2025-03-04"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorkingDays(tt.from, tt.to))
		})
	}
}

func TestWeekOf(t *testing.T) {
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   time.Time
	}{
		{"monday maps to itself", monday},
		{"midweek", time.Date(2025, 3, 5, 10, 30, 0, 0, time.UTC)},
		{"friday", time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)},
		{"sunday maps to preceding monday", time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, monday, WeekOf(tt.in))
		})
	}
}

func TestAggregateWorkedExample(t *testing.T) {
	roster := []string{"Alice", "Bob"}
	entries := []Entry{
		{Date: "2025-03-03", Employee: "Alice", Time: "Full Day"},
		{Date: "2025-03-04", Employee: "Bob", Time: "Half Day"},
	}

	out := Aggregate(roster, entries, week)
	assert.Len(t, out, 5)

	monday := out[0]
	assert.Equal(t, "2025-03-03", monday.Date)
	assert.ElementsMatch(t, []string{"Bob"}, monday.AvailableEmployees)
	assert.ElementsMatch(t, []string{"Alice"}, monday.FullDayEmployees)
	assert.Empty(t, monday.HalfDayEmployees)

	tuesday := out[1]
	assert.ElementsMatch(t, []string{"Alice"}, tuesday.AvailableEmployees)
	assert.Empty(t, tuesday.FullDayEmployees)
	assert.ElementsMatch(t, []string{"Bob"}, tuesday.HalfDayEmployees)

	for _, day := range out[2:] {
		assert.ElementsMatch(t, roster, day.AvailableEmployees)
		assert.Empty(t, day.FullDayEmployees)
		assert.Empty(t, day.HalfDayEmployees)
	}
}

func TestAggregateClassification(t *testing.T) {
	day := []string{"2025-03-03"}
	roster := []string{"Alice"}

	tests := []struct {
		name     string
		entries  []Entry
		wantFull []string
		wantHalf []string
	}{
		{
			name:     "no rows leaves employee available",
			entries:  nil,
			wantFull: []string{},
			wantHalf: []string{},
		},
		{
			name: "single full day",
			entries: []Entry{
				{Date: "2025-03-03", Employee: "Alice", Time: "Full Day"},
			},
			wantFull: []string{"Alice"},
			wantHalf: []string{},
		},
		{
			name: "single half day",
			entries: []Entry{
				{Date: "2025-03-03", Employee: "Alice", Time: "Half Day"},
			},
			wantFull: []string{},
			wantHalf: []string{"Alice"},
		},
		{
			name: "two half days escalate to full day",
			entries: []Entry{
				{Date: "2025-03-03", Employee: "Alice", Time: "Half Day"},
				{Date: "2025-03-03", Employee: "Alice", Time: "Half Day"},
			},
			wantFull: []string{"Alice"},
			wantHalf: []string{},
		},
		{
			name: "full day wins over half day",
			entries: []Entry{
				{Date: "2025-03-03", Employee: "Alice", Time: "Half Day"},
				{Date: "2025-03-03", Employee: "Alice", Time: "Full Day"},
			},
			wantFull: []string{"Alice"},
			wantHalf: []string{},
		},
		{
			name: "unknown duration unit is ignored",
			entries: []Entry{
				{Date: "2025-03-03", Employee: "Alice", Time: "Quarter Day"},
			},
			wantFull: []string{},
			wantHalf: []string{},
		},
		{
			name: "rows on other dates do not count",
			entries: []Entry{
				{Date: "2025-03-04", Employee: "Alice", Time: "Full Day"},
			},
			wantFull: []string{},
			wantHalf: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Aggregate(roster, tt.entries, day)
			assert.Len(t, out, 1)
			assert.ElementsMatch(t, tt.wantFull, out[0].FullDayEmployees)
			assert.ElementsMatch(t, tt.wantHalf, out[0].HalfDayEmployees)
			assert.Equal(t, len(roster), out[0].Available+out[0].OnLeave)
		})
	}
}

func TestAggregateCountInvariant(t *testing.T) {
	roster := []string{"Alice", "Bob", "Carol", "Dave"}
	entries := []Entry{
		{Date: "2025-03-03", Employee: "Alice", Time: "Full Day"},
		{Date: "2025-03-03", Employee: "Bob", Time: "Half Day"},
		{Date: "2025-03-04", Employee: "Carol", Time: "Half Day"},
		{Date: "2025-03-04", Employee: "Carol", Time: "Half Day"},
		{Date: "2025-03-05", Employee: "Dave", Time: "Full Day"},
		{Date: "2025-03-05", Employee: "Dave", Time: "Half Day"},
	}

	for _, day := range Aggregate(roster, entries, week) {
		assert.Equal(t, len(roster), day.Available+day.OnLeave, "day %s", day.Date)
		assert.Equal(t, day.OnLeave, len(day.FullDayEmployees)+len(day.HalfDayEmployees))
		assert.Equal(t, day.Available, len(day.AvailableEmployees))
	}
}

func TestAggregateIgnoresOffRosterEntries(t *testing.T) {
	day := []string{"2025-03-03"}
	roster := []string{"Alice", "Bob"}
	entries := []Entry{
		{Date: "2025-03-03", Employee: "Alice", Time: "Full Day"},
		// Not a roster member; must not surface in any list.
		{Date: "2025-03-03", Employee: "Admin User", Time: "Full Day"},
		{Date: "2025-03-03", Employee: "Admin User", Time: "Half Day"},
	}

	out := Aggregate(roster, entries, day)
	assert.Len(t, out, 1)
	assert.ElementsMatch(t, []string{"Alice"}, out[0].FullDayEmployees)
	assert.Empty(t, out[0].HalfDayEmployees)
	assert.ElementsMatch(t, []string{"Bob"}, out[0].AvailableEmployees)
	assert.Equal(t, len(roster), out[0].Available+out[0].OnLeave)
}

func TestAggregateEmptyInputs(t *testing.T) {
	t.Run("empty roster and entries", func(t *testing.T) {
		out := Aggregate(nil, nil, week)
		assert.Len(t, out, 5)
		for _, day := range out {
			assert.Zero(t, day.Available)
			assert.Zero(t, day.OnLeave)
			assert.Empty(t, day.AvailableEmployees)
		}
	})

	t.Run("roster without leaves is fully available", func(t *testing.T) {
		out := Aggregate([]string{"Alice", "Bob"}, nil, week)
		for _, day := range out {
			assert.Equal(t, 2, day.Available)
			assert.Zero(t, day.OnLeave)
		}
	})

	t.Run("duplicate roster names collapse", func(t *testing.T) {
		out := Aggregate([]string{"Alice", "Alice"}, nil, []string{"2025-03-03"})
		assert.Equal(t, 1, out[0].Available)
	})
}

func TestAggregateIdempotent(t *testing.T) {
	roster := []string{"Alice", "Bob", "Carol"}
	entries := []Entry{
		{Date: "2025-03-03", Employee: "Alice", Time: "Full Day"},
		{Date: "2025-03-03", Employee: "Bob", Time: "Half Day"},
		{Date: "2025-03-06", Employee: "Carol", Time: "Half Day"},
	}

	first := Aggregate(roster, entries, week)
	second := Aggregate(roster, entries, week)
	assert.Equal(t, first, second)
}
