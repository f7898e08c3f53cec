package ical

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"git.sr.ht/~mariusor/contestcal/calendar"
)

const (
	defaultRemind = 10 * time.Minute
	defaultMonths = 6
)

type logFn func(string, ...interface{})

var loadContests = calendar.LoadContests

type handler struct {
	Version string
	Months  int
	Remind  time.Duration
	errFn   logFn
}

func NewHandler(version string) handler {
	return handler{
		Version: version,
		Months:  defaultMonths,
		Remind:  defaultRemind,
		errFn: func(s string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, s+"\n", args...)
		},
	}
}

// ServeHTTP answers /{platform} with the generated calendar of that
// platform, or of all platforms when the parameter is missing. The reminder
// lead can be overridden per request with ?remind=<minutes>.
func (h handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	platform := strings.ToLower(chi.URLParam(r, "platform"))

	var platforms []string
	if platform == "" {
		platforms = calendar.GetPlatforms(nil)
	} else {
		platforms = calendar.GetPlatforms([]string{platform})
		if len(platforms) == 0 {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, "Invalid platform %s", platform)
			return
		}
	}

	remind := h.Remind
	if q := r.URL.Query().Get("remind"); q != "" {
		m, err := strconv.Atoi(q)
		if err != nil || m < 0 {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Invalid remind value %s", q)
			return
		}
		remind = time.Duration(m) * time.Minute
	}

	now := time.Now()
	events := make(calendar.Events, 0)
	for _, p := range platforms {
		contests, err := loadContests(p, now, h.Months)
		if err != nil {
			// the remaining platforms still produce a partial calendar
			h.errFn("Unable to load contests for %s: %s", p, err)
			continue
		}
		events = append(events, calendar.BuildEvents(contests)...)
	}

	name := "ContestCalendar"
	description := name
	if len(platforms) == 1 {
		if label, ok := calendar.Labels[platforms[0]]; ok {
			description = fmt.Sprintf("ContestCalendar, contests on %s", label)
		}
	}

	b := bytes.Buffer{}
	if err := Encode(&b, events, Options{
		Name:        name,
		Description: description,
		URL:         fmt.Sprintf("https://%s/%s", r.Host, platform),
		Version:     h.Version,
		Remind:      remind,
	}); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "%s", err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(b.Bytes())
}
