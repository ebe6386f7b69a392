package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// WeekdaySet is the user's chosen training weekdays. Unordered; may be empty.
type WeekdaySet map[time.Weekday]struct{}

// NewWeekdaySet builds a set from the given weekdays
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	s := make(WeekdaySet, len(days))
	for _, d := range days {
		s[d] = struct{}{}
	}
	return s
}

// ParseWeekday converts a weekday name ("sunday".."saturday", case-insensitive,
// three-letter abbreviations accepted) to a time.Weekday
func ParseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	case "tuesday", "tue":
		return time.Tuesday, nil
	case "wednesday", "wed":
		return time.Wednesday, nil
	case "thursday", "thu":
		return time.Thursday, nil
	case "friday", "fri":
		return time.Friday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("unknown weekday: %q", name)
}

// ParseWeekdaySet converts a list of weekday names into a WeekdaySet
func ParseWeekdaySet(names []string) (WeekdaySet, error) {
	s := make(WeekdaySet, len(names))
	for _, name := range names {
		d, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		s[d] = struct{}{}
	}
	return s, nil
}

// GeneratedItem is one (workout, calendar date) pair produced by
// GenerateSchedule. Never persisted itself; the importer derives bulk
// persistence calls from groups of these.
type GeneratedItem struct {
	WorkoutID string
	Date      time.Time
}

// GenerateSchedule converts a template plus a start date and selected
// training weekdays into concrete dated items. Pure and total: always
// returns a slice (possibly empty), performs no I/O, and is deterministic
// for identical inputs.
//
// Week w of the template is anchored at start+7w days. Day slot k within a
// week resolves to anchor+offset(k), where the offset table walks the
// selected weekdays chronologically from the first occurrence on or after
// the start date. When a week has more day slots than selected weekdays,
// the surplus slots land on consecutive calendar days after the last
// selected weekday rather than cycling back through the selection; that is
// intentional and must not change.
func GenerateSchedule(tpl *PlanTemplate, start time.Time, days WeekdaySet) []GeneratedItem {
	if tpl == nil {
		return []GeneratedItem{}
	}
	start = truncateToDate(start)
	offsets := weekOffsets(start.Weekday(), days)

	items := []GeneratedItem{}
	for w, week := range tpl.Weeks {
		anchor := start.AddDate(0, 0, 7*w)
		for k, day := range week.Days {
			date := anchor.AddDate(0, 0, slotOffset(offsets, k))
			for _, workoutID := range day.WorkoutIDs {
				items = append(items, GeneratedItem{WorkoutID: workoutID, Date: date})
			}
		}
	}
	return items
}

// weekOffsets builds the per-week-slot offset table: day counts from the
// start date to each selected weekday, ordered chronologically starting
// from the first selected weekday on/after the start date. Weekdays earlier
// in the week than that first occurrence wrap into the following week (+7).
// An empty selection anchors a single slot at the start date; slotOffset's
// extension rule then degenerates to one slot per calendar day.
func weekOffsets(startDay time.Weekday, days WeekdaySet) []int {
	if len(days) == 0 {
		return []int{0}
	}

	diffs := make([]int, 0, len(days))
	for d := range days {
		diffs = append(diffs, (int(d)-int(startDay)+7)%7)
	}
	sort.Ints(diffs)

	// diffs are distinct and sorted, so the head is either 0 (the start
	// date's weekday is selected and slot 0 stays on the start date) or the
	// smallest positive distance
	first := diffs[0]

	offsets := make([]int, 0, len(diffs))
	offsets = append(offsets, first)
	for _, v := range diffs {
		if v > first {
			offsets = append(offsets, v)
		}
	}
	for _, v := range diffs {
		if v > 0 && v < first {
			offsets = append(offsets, v+7)
		}
	}
	return offsets
}

// slotOffset maps a day-slot index to its offset within the week. Slots
// beyond the selected-weekday count extend by consecutive days after the
// last selected offset.
func slotOffset(offsets []int, k int) int {
	if k < len(offsets) {
		return offsets[k]
	}
	last := len(offsets) - 1
	return offsets[last] + (k - last)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
