package ical

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/soh335/ical"

	"git.sr.ht/~mariusor/contestcal/calendar"
)

const Version = "2.0"

// Options carries the calendar level attributes of a generated file, plus
// the run wide reminder lead time.
type Options struct {
	Name        string
	Description string
	URL         string
	Version     string
	Remind      time.Duration
}

// escaper covers the TEXT escaping rules of RFC 5545 §3.3.11; the underlying
// encoder writes property values verbatim.
var escaper = strings.NewReplacer("\\", "\\\\", "\n", "\\n", ";", "\\;", ",", "\\,")

func BuildCalendar(events calendar.Events, opt Options) *ical.VCalendar {
	cal := ical.NewBasicVCalendar()
	cal.PRODID = fmt.Sprintf("-//~mariusor//contestcal//EN/%s", opt.Version)
	cal.VERSION = Version

	name := opt.Name
	if name == "" {
		name = "ContestCalendar"
	}
	cal.NAME = name
	cal.X_WR_CALNAME = name

	description := opt.Description
	if description == "" {
		description = name
	}
	cal.DESCRIPTION = description
	cal.X_WR_CALDESC = description

	if opt.URL != "" {
		cal.URL = opt.URL
	}

	cal.REFRESH_INTERVAL = "PT1H"
	cal.X_PUBLISHED_TTL = "PT1H"

	cal.CALSCALE = "GREGORIAN"
	cal.METHOD = "PUBLISH"

	for _, ev := range events {
		tz := ev.StartTime.Location().String()
		e := &ical.VEvent{
			UID:         ev.UID,
			DTSTAMP:     ev.StartTime.UTC(),
			DTSTART:     ev.StartTime,
			DTEND:       ev.EndTime(),
			SUMMARY:     escaper.Replace(ev.Summary),
			DESCRIPTION: escaper.Replace(ev.Description),
			TZID:        tz,
			AllDay:      ev.Duration > 24*time.Hour,
		}
		cal.VComponent = append(cal.VComponent, e)
	}
	return cal
}

// Encode writes the events as an iCalendar document with one DISPLAY alarm
// per event. A negative reminder is a configuration error and produces no
// output at all.
func Encode(w io.Writer, events calendar.Events, opt Options) error {
	if opt.Remind < 0 {
		return &calendar.ConfigError{Reason: fmt.Sprintf("negative reminder lead time %s", opt.Remind)}
	}
	b := bytes.Buffer{}
	if err := BuildCalendar(events, opt).Encode(&b); err != nil {
		return fmt.Errorf("unable to encode calendar: %w", err)
	}
	_, err := io.WriteString(w, InjectAlarms(b.String(), opt.Remind))
	return err
}
