package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Event is a single calendar entry built from one or more contests that
// share a platform and a start instant.
type Event struct {
	UID         string
	Platform    string
	Summary     string
	StartTime   time.Time
	Duration    time.Duration
	Description string
	URL         string
}

type Events []Event

func (e Event) EndTime() time.Time {
	return e.StartTime.Add(e.Duration)
}

func (e Event) String() string {
	return fmt.Sprintf("<%s @ %s//%s>", e.Summary, e.StartTime.Format("2006-01-02 15:04 MST"), e.Duration)
}

// EventUID derives the stable identifier of an event. It depends only on the
// platform and the start instant, so regenerating a calendar over the same
// remote data replaces previously imported entries instead of duplicating
// them.
func EventUID(platform string, start time.Time) string {
	return fmt.Sprintf("%s-%d@contestcal", platform, start.UTC().Unix())
}

// divisionOrder is the fixed preference used when several divisions of the
// same round start at the same instant. Anything not listed sorts last.
var divisionOrder = []string{"Div. 2", "Div. 3", "Div. 4", "Div. 1"}

func divisionRank(division string) int {
	for i, d := range divisionOrder {
		if strings.EqualFold(division, d) {
			return i
		}
	}
	return len(divisionOrder)
}

func primary(group Contests) Contest {
	for rank := range divisionOrder {
		for _, c := range group {
			if divisionRank(c.Division) == rank {
				return c
			}
		}
	}
	return group[0]
}

type slot struct {
	platform string
	start    int64
}

// BuildEvents folds contests into calendar events, at most one per platform
// and start instant. Within a time slot the primary contest is picked by
// division preference, ties keeping first-seen order; the names and links of
// the remaining members end up in the event description.
func BuildEvents(contests Contests) Events {
	groups := make(map[slot]Contests)
	order := make([]slot, 0)
	for _, c := range contests {
		k := slot{platform: c.Platform, start: c.StartTime.UTC().Unix()}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], c)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].start == order[j].start {
			return order[i].platform < order[j].platform
		}
		return order[i].start < order[j].start
	})

	events := make(Events, 0, len(order))
	for _, k := range order {
		events = append(events, buildEvent(groups[k]))
	}
	return events
}

func buildEvent(group Contests) Event {
	p := primary(group)

	lines := make([]string, 0, len(group)+2)
	lines = append(lines, fmt.Sprintf("Duration: %s", p.Duration))
	if p.URL != "" {
		lines = append(lines, p.URL)
	}
	others := make(Contests, 0, len(group)-1)
	for _, c := range group {
		if c.Equals(p) {
			continue
		}
		others = append(others, c)
	}
	if len(others) > 0 {
		lines = append(lines, "Other divisions at the same time:")
		for _, c := range others {
			if c.URL != "" {
				lines = append(lines, fmt.Sprintf("- %s (%s)", c.Name, c.URL))
			} else {
				lines = append(lines, fmt.Sprintf("- %s", c.Name))
			}
		}
	}

	return Event{
		UID:         EventUID(p.Platform, p.StartTime),
		Platform:    p.Platform,
		Summary:     p.Name,
		StartTime:   p.StartTime,
		Duration:    p.Duration,
		Description: strings.Join(lines, "\n"),
		URL:         p.URL,
	}
}
