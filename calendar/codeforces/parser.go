package codeforces

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrBadResponse marks an endpoint that answered but not with the contest
// list shape we expect.
var ErrBadResponse = errors.New("unexpected response from the Codeforces API")

var client = &http.Client{Timeout: 10 * time.Second}

const (
	phaseUpcoming = "BEFORE"
	typeRegular   = "CF"
)

var Divisions = [...]string{"Div. 1", "Div. 2", "Div. 3", "Div. 4"}

func division(name string) string {
	for _, d := range Divisions {
		if strings.Contains(name, d) {
			return d
		}
	}
	return ""
}

type apiContest struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	Phase            string `json:"phase"`
	Kind             string `json:"kind"`
	DurationSeconds  int64  `json:"durationSeconds"`
	StartTimeSeconds int64  `json:"startTimeSeconds"`
}

type apiResponse struct {
	Status  string       `json:"status"`
	Comment string       `json:"comment"`
	Result  []apiContest `json:"result"`
}

// LoadContests fetches the contest list and keeps the upcoming regular
// rounds: phase BEFORE, type CF, with a published start time strictly after
// now. An empty result is not an error.
func LoadContests(u *url.URL, now time.Time) (contests, error) {
	if u == nil {
		return nil, fmt.Errorf("nil URL received")
	}
	res, err := client.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("unable to load contest list: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d %s", res.StatusCode, res.Status)
	}

	raw := bytes.Buffer{}
	if _, err = raw.ReadFrom(res.Body); err != nil {
		return nil, fmt.Errorf("unable to read body: %w", err)
	}

	r := apiResponse{}
	if err = json.Unmarshal(raw.Bytes(), &r); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadResponse, err)
	}
	if r.Status != "OK" {
		if r.Comment != "" {
			return nil, fmt.Errorf("%w: %s", ErrBadResponse, r.Comment)
		}
		return nil, ErrBadResponse
	}

	upcoming := make(contests, 0)
	for _, c := range r.Result {
		if c.Phase != phaseUpcoming || c.Type != typeRegular || c.StartTimeSeconds == 0 {
			continue
		}
		start := time.Unix(c.StartTimeSeconds, 0).UTC()
		if !start.After(now) {
			continue
		}
		upcoming = append(upcoming, contest{
			Platform:  Label,
			Name:      c.Name,
			StartTime: start,
			Duration:  time.Duration(c.DurationSeconds) * time.Second,
			Division:  division(c.Name),
			URL:       ContestURL(c.ID),
		})
	}
	return upcoming, nil
}
