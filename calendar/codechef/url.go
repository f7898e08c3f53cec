package codechef

import (
	"strings"
	"time"

	"git.sr.ht/~mariusor/contestcal/calendar/cadence"
)

const Label = "codechef"
const LabelShort = "cc"

const BaseURL = "https://www.codechef.com/contests"

var Cadences = []cadence.Cadence{
	{
		Name:        "CodeChef Weekly Contest",
		Description: "CodeChef weekly contest.",
		URL:         BaseURL,
		Weekday:     time.Wednesday,
		Hour:        20,
		Minute:      0,
		Duration:    2 * time.Hour,
		Interval:    1,
		Timezone:    "Asia/Kolkata",
	},
}

func ValidType(typ string) bool {
	typ = strings.ToLower(typ)
	return typ == Label || typ == LabelShort
}
