package codeforces

import "time"

type contest struct {
	Platform  string
	Name      string
	StartTime time.Time
	Duration  time.Duration
	Division  string
	URL       string
}

type contests []contest
