package ical

import (
	"fmt"
	"strings"
	"time"
)

const crlf = "\r\n"

// alarmBlock is the VALARM sub-component added to every VEVENT. The encoder
// underneath has no notion of nested components, so the block is spliced
// into the serialized text, the same way the calendar applications that
// consume these files expect it: right before END:VEVENT.
const alarmBlock = "BEGIN:VALARM" + crlf +
	"TRIGGER:-PT%dM" + crlf +
	"ACTION:DISPLAY" + crlf +
	"DESCRIPTION:Contest reminder" + crlf +
	"END:VALARM" + crlf

// InjectAlarms adds one display alarm per event, firing remind before the
// event start. A zero lead time is valid and fires at the start instant.
func InjectAlarms(ics string, remind time.Duration) string {
	block := fmt.Sprintf(alarmBlock, int(remind.Minutes()))
	return strings.ReplaceAll(ics, "END:VEVENT", block+"END:VEVENT")
}
