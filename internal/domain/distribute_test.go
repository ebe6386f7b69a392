package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// weeksOf builds a template with the given day-slot layout repeated for
// numWeeks weeks. Each inner slice is one day slot's workout ids.
func weeksOf(numWeeks int, daySlots ...[]string) *PlanTemplate {
	week := TemplateWeek{}
	for i, ids := range daySlots {
		week.Days = append(week.Days, TemplateDay{Name: "Day " + string(rune('A'+i)), WorkoutIDs: ids})
	}
	tpl := &PlanTemplate{Name: "test", NumWeeks: numWeeks, DaysPerWeek: len(daySlots)}
	for w := 0; w < numWeeks; w++ {
		tpl.Weeks = append(tpl.Weeks, week)
	}
	return tpl
}

func TestGenerateScheduleOffsets(t *testing.T) {
	// 2024-01-02 is a Tuesday, 2024-01-03 a Wednesday, 2024-01-01 a Monday
	tests := []struct {
		name      string
		start     time.Time
		days      WeekdaySet
		daySlots  [][]string
		wantDates []time.Time
	}{
		{
			name:     "start tuesday, five selected days wrap forward",
			start:    date(2024, time.January, 2), // Tuesday
			days:     NewWeekdaySet(time.Monday, time.Wednesday, time.Friday, time.Sunday, time.Thursday),
			daySlots: [][]string{{"w1"}, {"w2"}, {"w3"}, {"w4"}, {"w5"}},
			wantDates: []time.Time{
				date(2024, time.January, 3), // Wed +1
				date(2024, time.January, 4), // Thu +2
				date(2024, time.January, 5), // Fri +3
				date(2024, time.January, 7), // Sun +5
				date(2024, time.January, 8), // Mon +6
			},
		},
		{
			name:     "start weekday selected keeps offset zero",
			start:    date(2024, time.January, 3), // Wednesday
			days:     NewWeekdaySet(time.Wednesday, time.Friday),
			daySlots: [][]string{{"w1"}, {"w2"}},
			wantDates: []time.Time{
				date(2024, time.January, 3),
				date(2024, time.January, 5),
			},
		},
		{
			name:     "more slots than selected days extend by consecutive days",
			start:    date(2024, time.January, 3), // Wednesday
			days:     NewWeekdaySet(time.Wednesday, time.Friday),
			daySlots: [][]string{{"w1"}, {"w2"}, {"w3"}},
			wantDates: []time.Time{
				date(2024, time.January, 3), // Wed +0
				date(2024, time.January, 5), // Fri +2
				date(2024, time.January, 6), // Sat +3, not back on Wed
			},
		},
		{
			name:     "empty selection schedules consecutive days from start",
			start:    date(2024, time.January, 1),
			days:     NewWeekdaySet(),
			daySlots: [][]string{{"w1"}, {"w2"}, {"w3"}, {"w4"}},
			wantDates: []time.Time{
				date(2024, time.January, 1),
				date(2024, time.January, 2),
				date(2024, time.January, 3),
				date(2024, time.January, 4),
			},
		},
		{
			name:     "single selected day fixes a weekly cadence",
			start:    date(2024, time.January, 2), // Tuesday
			days:     NewWeekdaySet(time.Friday),
			daySlots: [][]string{{"w1"}},
			wantDates: []time.Time{
				date(2024, time.January, 5),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := weeksOf(1, tt.daySlots...)
			items := GenerateSchedule(tpl, tt.start, tt.days)
			if len(items) != len(tt.wantDates) {
				t.Fatalf("GenerateSchedule() produced %d items, want %d", len(items), len(tt.wantDates))
			}
			for i, want := range tt.wantDates {
				if !items[i].Date.Equal(want) {
					t.Errorf("item %d scheduled %v, want %v", i, items[i].Date, want)
				}
				if items[i].Date.Before(tt.start) {
					t.Errorf("item %d scheduled %v before start %v", i, items[i].Date, tt.start)
				}
			}
		})
	}
}

func TestGenerateScheduleWeeklyTranslation(t *testing.T) {
	tpl := weeksOf(4, []string{"squat"}, []string{"bench"}, []string{"deadlift"})
	start := date(2024, time.January, 2) // Tuesday
	days := NewWeekdaySet(time.Monday, time.Wednesday, time.Friday)

	items := GenerateSchedule(tpl, start, days)
	perWeek := 3
	if len(items) != perWeek*4 {
		t.Fatalf("got %d items, want %d", len(items), perWeek*4)
	}

	for w := 0; w < 3; w++ {
		for k := 0; k < perWeek; k++ {
			cur := items[w*perWeek+k].Date
			next := items[(w+1)*perWeek+k].Date
			if !next.Equal(cur.AddDate(0, 0, 7)) {
				t.Errorf("slot %d: week %d date %v, week %d date %v; want exactly +7 days", k, w, cur, w+1, next)
			}
		}
	}
}

func TestGenerateScheduleCountInvariant(t *testing.T) {
	tests := []struct {
		name     string
		tpl      *PlanTemplate
		days     WeekdaySet
		wantSize int
	}{
		{
			name:     "multiple workouts per slot with duplicates",
			tpl:      weeksOf(2, []string{"a", "b", "a"}, []string{"c"}),
			days:     NewWeekdaySet(time.Monday, time.Thursday),
			wantSize: 8,
		},
		{
			name:     "empty slot contributes nothing but consumes its index",
			tpl:      weeksOf(1, []string{"a"}, nil, []string{"b"}),
			days:     NewWeekdaySet(time.Monday, time.Wednesday, time.Friday),
			wantSize: 2,
		},
		{
			name:     "template with no workouts yields empty schedule",
			tpl:      weeksOf(3, nil, nil),
			days:     NewWeekdaySet(time.Monday),
			wantSize: 0,
		},
		{
			name:     "nil template yields empty schedule",
			tpl:      nil,
			days:     NewWeekdaySet(time.Monday),
			wantSize: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := GenerateSchedule(tt.tpl, date(2024, time.March, 5), tt.days)
			if items == nil {
				t.Fatal("GenerateSchedule() returned nil, want empty slice")
			}
			if len(items) != tt.wantSize {
				t.Errorf("got %d items, want %d", len(items), tt.wantSize)
			}
		})
	}
}

func TestGenerateScheduleEmptySlotShiftsLaterSlots(t *testing.T) {
	// middle slot has no workouts; the third slot must still use the third
	// offset, not collapse onto the second
	tpl := weeksOf(1, []string{"a"}, nil, []string{"b"})
	start := date(2024, time.January, 3) // Wednesday
	days := NewWeekdaySet(time.Wednesday, time.Friday, time.Saturday)

	items := GenerateSchedule(tpl, start, days)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if want := date(2024, time.January, 3); !items[0].Date.Equal(want) {
		t.Errorf("first item on %v, want %v", items[0].Date, want)
	}
	if want := date(2024, time.January, 6); !items[1].Date.Equal(want) {
		t.Errorf("second item on %v, want %v (Saturday slot)", items[1].Date, want)
	}
}

func TestGenerateScheduleSingleDayCadence(t *testing.T) {
	tpl := weeksOf(3, []string{"run"})
	start := date(2024, time.January, 2) // Tuesday
	items := GenerateSchedule(tpl, start, NewWeekdaySet(time.Tuesday))

	want := []time.Time{
		date(2024, time.January, 2),
		date(2024, time.January, 9),
		date(2024, time.January, 16),
	}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i := range want {
		if !items[i].Date.Equal(want[i]) {
			t.Errorf("week %d scheduled %v, want %v", i, items[i].Date, want[i])
		}
	}
}

func TestGenerateSchedulePreservesWorkoutOrder(t *testing.T) {
	tpl := weeksOf(1, []string{"first", "second", "first"})
	items := GenerateSchedule(tpl, date(2024, time.January, 1), NewWeekdaySet(time.Monday))

	wantIDs := []string{"first", "second", "first"}
	if len(items) != len(wantIDs) {
		t.Fatalf("got %d items, want %d", len(items), len(wantIDs))
	}
	for i, id := range wantIDs {
		if items[i].WorkoutID != id {
			t.Errorf("item %d workout %q, want %q", i, items[i].WorkoutID, id)
		}
	}
}

func TestParseWeekdaySet(t *testing.T) {
	s, err := ParseWeekdaySet([]string{"Monday", "wed", "FRIDAY"})
	if err != nil {
		t.Fatalf("ParseWeekdaySet() error = %v", err)
	}
	for _, d := range []time.Weekday{time.Monday, time.Wednesday, time.Friday} {
		if _, ok := s[d]; !ok {
			t.Errorf("missing %v in parsed set", d)
		}
	}

	if _, err := ParseWeekdaySet([]string{"febuary"}); err == nil {
		t.Error("ParseWeekdaySet() accepted an invalid weekday")
	}
}
