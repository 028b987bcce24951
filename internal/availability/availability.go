// Package availability turns raw leave rows into per-day availability
// summaries for the admin resource chart. All functions are pure; callers
// resolve employee names and drop unresolvable rows before aggregating.
package availability

import "time"

// DateLayout is the calendar-date format used throughout.
const DateLayout = "2006-01-02"

// Duration units recognized by the aggregator. Any other leave_time value
// is ignored.
const (
	fullDay = "Full Day"
	halfDay = "Half Day"
)

// Entry is one resolved leave row: a calendar date, the employee's display
// name, and the duration unit.
type Entry struct {
	Date     string
	Employee string
	Time     string
}

// DaySummary describes one working day: who is available, who is out for
// the full day, and who is out for half of it.
type DaySummary struct {
	Date               string   `json:"date"`
	Available          int      `json:"available"`
	OnLeave            int      `json:"on_leave"`
	AvailableEmployees []string `json:"available_employees"`
	FullDayEmployees   []string `json:"full_day_employees"`
	HalfDayEmployees   []string `json:"half_day_employees"`
}

// WorkingDays returns the ISO dates of every Monday–Friday between from
// and to inclusive, in chronological order. Weekends are never emitted.
func WorkingDays(from, to time.Time) []string {
	from = truncate(from)
	to = truncate(to)

	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, d.Format(DateLayout))
	}
	return days
}

// WeekOf returns the Monday of the week containing t.
func WeekOf(t time.Time) time.Time {
	t = truncate(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// Aggregate produces one DaySummary per entry of days, classifying each
// roster member as available, on half-day leave, or fully out.
//
// Per employee and day, Full Day and Half Day rows are counted
// independently. One full-day row, or two or more half-day rows, makes the
// employee fully unavailable; exactly one half-day row makes them partially
// unavailable. Name equality is the sole identity key. Entries for names
// outside the roster are ignored, so every summary satisfies
// Available+OnLeave == len(roster).
func Aggregate(roster []string, entries []Entry, days []string) []DaySummary {
	names := dedupe(roster)
	onRoster := make(map[string]struct{}, len(names))
	for _, name := range names {
		onRoster[name] = struct{}{}
	}

	out := make([]DaySummary, 0, len(days))
	for _, day := range days {
		type tally struct {
			full int
			half int
		}
		perEmployee := make(map[string]*tally)
		var order []string

		for _, e := range entries {
			if e.Date != day || e.Employee == "" {
				continue
			}
			if _, ok := onRoster[e.Employee]; !ok {
				continue
			}
			t, ok := perEmployee[e.Employee]
			if !ok {
				t = &tally{}
				perEmployee[e.Employee] = t
				order = append(order, e.Employee)
			}
			switch e.Time {
			case fullDay:
				t.full++
			case halfDay:
				t.half++
			}
		}

		fullList := []string{}
		halfList := []string{}
		onLeave := make(map[string]struct{})
		for _, name := range order {
			t := perEmployee[name]
			switch {
			case t.full > 0 || t.half >= 2:
				fullList = append(fullList, name)
			case t.half == 1:
				halfList = append(halfList, name)
			default:
				continue
			}
			onLeave[name] = struct{}{}
		}

		available := []string{}
		for _, name := range names {
			if _, out := onLeave[name]; !out {
				available = append(available, name)
			}
		}

		out = append(out, DaySummary{
			Date:               day,
			Available:          len(available),
			OnLeave:            len(fullList) + len(halfList),
			AvailableEmployees: available,
			FullDayEmployees:   fullList,
			HalfDayEmployees:   halfList,
		})
	}
	return out
}

func dedupe(roster []string) []string {
	seen := make(map[string]struct{}, len(roster))
	out := make([]string, 0, len(roster))
	for _, name := range roster {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
