package leetcode

import (
	"strings"
	"time"

	"git.sr.ht/~mariusor/contestcal/calendar/cadence"
)

const Label = "leetcode"
const LabelShort = "lc"

const BaseURL = "https://leetcode.com/contest"

// The biweekly anchor pins which Saturdays the alternating contest lands on;
// only its calendar date is used.
var biweeklyAnchor = time.Date(2024, time.October, 11, 0, 0, 0, 0, time.UTC)

var Cadences = []cadence.Cadence{
	{
		Name:        "LeetCode Weekly Contest",
		Description: "LeetCode Weekly Contest.",
		URL:         BaseURL,
		Weekday:     time.Sunday,
		Hour:        8,
		Minute:      0,
		Duration:    90 * time.Minute,
		Interval:    1,
		Timezone:    "Asia/Kolkata",
	},
	{
		Name:        "LeetCode Biweekly Contest",
		Description: "LeetCode Biweekly Contest.",
		URL:         BaseURL,
		Weekday:     time.Saturday,
		Hour:        20,
		Minute:      0,
		Duration:    90 * time.Minute,
		Interval:    2,
		Anchor:      biweeklyAnchor,
		Timezone:    "Asia/Kolkata",
	},
}

func ValidType(typ string) bool {
	typ = strings.ToLower(typ)
	return typ == Label || typ == LabelShort
}
