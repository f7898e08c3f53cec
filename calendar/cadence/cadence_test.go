package cadence

import (
	"testing"
	"time"
)

var kolkata = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
	return loc
}()

func TestProjectWeekly(t *testing.T) {
	c := Cadence{
		Name:     "CodeChef Starters",
		Weekday:  time.Wednesday,
		Hour:     20,
		Minute:   0,
		Duration: 2 * time.Hour,
		Interval: 1,
		Timezone: "Asia/Kolkata",
	}

	// a Tuesday
	now := time.Date(2024, time.October, 1, 12, 0, 0, 0, time.UTC)
	occurrences, err := c.Project(now, 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	// Wednesdays between Oct 2nd and Nov 1st
	if len(occurrences) != 5 {
		t.Fatalf("expected 5 occurrences, got %d", len(occurrences))
	}
	first := occurrences[0].StartTime
	want := time.Date(2024, time.October, 2, 20, 0, 0, 0, kolkata)
	if !first.Equal(want) {
		t.Errorf("expected first occurrence at %s, got %s", want, first)
	}
	for i, o := range occurrences {
		if o.StartTime.In(kolkata).Weekday() != time.Wednesday {
			t.Errorf("occurrence %d not on a Wednesday: %s", i, o.StartTime)
		}
		if o.Duration != 2*time.Hour {
			t.Errorf("occurrence %d has duration %s", i, o.Duration)
		}
		if i > 0 {
			if gap := o.StartTime.Sub(occurrences[i-1].StartTime); gap != 7*24*time.Hour {
				t.Errorf("occurrence %d is %s after the previous one", i, gap)
			}
		}
	}
}

func TestProjectWeeklyStrictlyFuture(t *testing.T) {
	c := Cadence{
		Name:     "LeetCode Weekly Contest",
		Weekday:  time.Sunday,
		Hour:     8,
		Minute:   0,
		Duration: 90 * time.Minute,
		Interval: 1,
		Timezone: "Asia/Kolkata",
	}

	// a Sunday: the occurrence of that very day is already in the past
	now := time.Date(2024, time.October, 6, 2, 0, 0, 0, kolkata)
	occurrences, err := c.Project(now, 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(occurrences) == 0 {
		t.Fatal("expected occurrences")
	}
	want := time.Date(2024, time.October, 13, 8, 0, 0, 0, kolkata)
	if !occurrences[0].StartTime.Equal(want) {
		t.Errorf("expected first occurrence at %s, got %s", want, occurrences[0].StartTime)
	}
}

func TestProjectBiweeklyAnchored(t *testing.T) {
	c := Cadence{
		Name:     "LeetCode Biweekly Contest",
		Weekday:  time.Saturday,
		Hour:     20,
		Minute:   0,
		Duration: 90 * time.Minute,
		Interval: 2,
		Anchor:   time.Date(2024, time.October, 11, 0, 0, 0, 0, time.UTC),
		Timezone: "Asia/Kolkata",
	}

	now := time.Date(2024, time.October, 1, 12, 0, 0, 0, time.UTC)
	occurrences, err := c.Project(now, 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	// Oct 12th and Oct 26th
	if len(occurrences) != 2 {
		t.Fatalf("expected 2 occurrences, got %d: %v", len(occurrences), occurrences)
	}
	want := time.Date(2024, time.October, 12, 20, 0, 0, 0, kolkata)
	if !occurrences[0].StartTime.Equal(want) {
		t.Errorf("expected first occurrence at %s, got %s", want, occurrences[0].StartTime)
	}
	for i, o := range occurrences {
		if o.StartTime.In(kolkata).Weekday() != time.Saturday {
			t.Errorf("occurrence %d not on a Saturday: %s", i, o.StartTime)
		}
		if i > 0 {
			if gap := o.StartTime.Sub(occurrences[i-1].StartTime); gap != 14*24*time.Hour {
				t.Errorf("occurrence %d is %s after the previous one", i, gap)
			}
		}
	}
}

func TestProjectBiweeklyKeepsPhasePastAnchor(t *testing.T) {
	c := Cadence{
		Name:     "LeetCode Biweekly Contest",
		Weekday:  time.Saturday,
		Hour:     20,
		Minute:   0,
		Duration: 90 * time.Minute,
		Interval: 2,
		Anchor:   time.Date(2024, time.October, 11, 0, 0, 0, 0, time.UTC),
		Timezone: "Asia/Kolkata",
	}

	// well past the anchor; the alternation phase must not drift
	now := time.Date(2025, time.January, 2, 12, 0, 0, 0, time.UTC)
	occurrences, err := c.Project(now, 1)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(occurrences) == 0 {
		t.Fatal("expected occurrences")
	}
	// anchor + 6 * 14 days lands on Jan 3rd, a Friday, shifted to Saturday the 4th
	want := time.Date(2025, time.January, 4, 20, 0, 0, 0, kolkata)
	if !occurrences[0].StartTime.Equal(want) {
		t.Errorf("expected first occurrence at %s, got %s", want, occurrences[0].StartTime)
	}
}

func TestProjectRejectsInvalidHorizon(t *testing.T) {
	c := Cadence{Name: "test", Weekday: time.Monday, Timezone: "UTC"}
	if _, err := c.Project(time.Now(), 0); err == nil {
		t.Error("expected an error for a zero month horizon")
	}
	if _, err := c.Project(time.Now(), -1); err == nil {
		t.Error("expected an error for a negative month horizon")
	}
}

func TestProjectRejectsUnknownTimezone(t *testing.T) {
	c := Cadence{Name: "test", Weekday: time.Monday, Timezone: "Nowhere/Invalid"}
	if _, err := c.Project(time.Now(), 1); err == nil {
		t.Error("expected an error for an unknown timezone")
	}
}
