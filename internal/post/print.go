package post

import (
	"log"
	"time"

	"git.sr.ht/~mariusor/contestcal/calendar"
)

const dateFmt = "2006-01-02 15:04"

func ToStdout(groups map[time.Time]calendar.Contests) error {
	f := log.Flags()
	log.SetFlags(0)
	for date, contests := range groups {
		log.Printf("%s\n", date.Format(dateFmt))
		for i, c := range contests {
			log.Printf("#%d %s", i, c)
		}
	}
	log.SetFlags(f)
	return nil
}
