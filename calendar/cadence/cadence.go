package cadence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// Cadence describes a fixed recurring contest schedule: a weekday, a time of
// day in a named timezone, a duration, and the number of weeks between
// occurrences. For cadences with Interval > 1 the Anchor date fixes which
// weeks the occurrences land on; only its calendar date matters.
type Cadence struct {
	Name        string
	Description string
	URL         string
	Weekday     time.Weekday
	Hour        int
	Minute      int
	Duration    time.Duration
	Interval    int
	Anchor      time.Time
	Timezone    string
}

// Occurrence is a single projected instance of a cadence.
type Occurrence struct {
	Name        string
	Description string
	URL         string
	StartTime   time.Time
	Duration    time.Duration
}

func nextWeekday(after time.Time, day time.Weekday) time.Time {
	ahead := (int(day) - int(after.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return after.AddDate(0, 0, ahead)
}

// first returns the first occurrence strictly after today. Anchored cadences
// step from the anchor date in Interval-week strides and then shift onto the
// cadence weekday, so the phase of the alternation never drifts.
func (c Cadence) first(today time.Time, loc *time.Location) time.Time {
	var day time.Time
	if c.Interval > 1 && !c.Anchor.IsZero() {
		day = time.Date(c.Anchor.Year(), c.Anchor.Month(), c.Anchor.Day(), 0, 0, 0, 0, loc)
		for !day.After(today) {
			day = day.AddDate(0, 0, 7*c.Interval)
		}
		if day.Weekday() != c.Weekday {
			day = day.AddDate(0, 0, (int(c.Weekday)-int(day.Weekday())+7)%7)
		}
	} else {
		day = nextWeekday(today, c.Weekday)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, loc)
}

// Project expands the cadence into concrete occurrences between now and
// now + months. The first occurrence is strictly in the future relative to
// the day of now; the horizon end date itself is still included.
func (c Cadence) Project(now time.Time, months int) ([]Occurrence, error) {
	if months <= 0 {
		return nil, fmt.Errorf("invalid horizon of %d months", months)
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unable to load timezone %s: %w", c.Timezone, err)
	}

	today := now.In(loc)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)
	endDate := today.AddDate(0, months, 0)

	start := c.first(today, loc)
	interval := c.Interval
	if interval < 1 {
		interval = 1
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.WEEKLY,
		Interval: interval,
		Dtstart:  start,
		Until:    endDate.Add(24*time.Hour - time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to build recurrence for %s: %w", c.Name, err)
	}

	occurrences := make([]Occurrence, 0)
	for _, st := range r.All() {
		occurrences = append(occurrences, Occurrence{
			Name:        c.Name,
			Description: c.Description,
			URL:         c.URL,
			StartTime:   st,
			Duration:    c.Duration,
		})
	}
	return occurrences, nil
}
