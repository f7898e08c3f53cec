package storage

import (
	"time"

	"git.sr.ht/~mariusor/contestcal/calendar"
)

type DateCursor struct {
	T time.Time
	D time.Duration
}

func Cursor(st time.Time, d time.Duration) DateCursor {
	return DateCursor{
		T: st,
		D: d,
	}
}

type Saver interface {
	SaveContests(calendar.Contests) error
	SaveContest(calendar.Contest) error
}

type Loader interface {
	LoadContests(DateCursor, ...string) (calendar.Contests, error)
	LoadContest(string, time.Time, string) calendar.Contest
}
