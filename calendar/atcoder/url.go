package atcoder

import (
	"strings"
	"time"

	"git.sr.ht/~mariusor/contestcal/calendar/cadence"
)

const Label = "atcoder"
const LabelShort = "ac"

const BaseURL = "https://atcoder.jp/contests"

// The ABC runs every Saturday evening JST, which lands at 17:30 IST; the
// standard length is 100 minutes.
var Cadences = []cadence.Cadence{
	{
		Name:        "AtCoder Beginner Contest",
		Description: "Weekly AtCoder Beginner Contest.",
		URL:         BaseURL,
		Weekday:     time.Saturday,
		Hour:        17,
		Minute:      30,
		Duration:    100 * time.Minute,
		Interval:    1,
		Timezone:    "Asia/Kolkata",
	},
}

func ValidType(typ string) bool {
	typ = strings.ToLower(typ)
	return typ == Label || typ == LabelShort
}
