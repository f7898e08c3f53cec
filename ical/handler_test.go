package ical

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"

	"git.sr.ht/~mariusor/contestcal/calendar"
)

func testRequest(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	Routes("test").ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandlerServesPlatformCalendar(t *testing.T) {
	w := testRequest(t, "/codechef")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("unexpected content type %s", ct)
	}

	parsed, err := ics.ParseCalendar(w.Body)
	if err != nil {
		t.Fatalf("served calendar does not parse: %s", err)
	}
	if len(parsed.Events()) == 0 {
		t.Error("expected events in the served calendar")
	}
}

func TestHandlerResolvesShortNames(t *testing.T) {
	w := testRequest(t, "/lc")
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d: %s", w.Code, w.Body)
	}
}

func TestHandlerUnknownPlatform(t *testing.T) {
	w := testRequest(t, "/topcoder")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestHandlerRemindOverride(t *testing.T) {
	w := testRequest(t, "/codechef?remind=30")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body)
	}
	if !strings.Contains(w.Body.String(), "TRIGGER:-PT30M") {
		t.Error("expected a -PT30M trigger")
	}
}

func TestHandlerURLUsesRequestHost(t *testing.T) {
	w := testRequest(t, "/codechef")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body)
	}
	body := w.Body.String()
	if !strings.Contains(body, "https://example.com/codechef") {
		t.Error("expected the calendar URL to be derived from the request host")
	}
	if strings.Contains(body, "littr.me") {
		t.Error("calendar URL points at a foreign domain")
	}
}

func TestHandlerReportsFailingPlatform(t *testing.T) {
	loader := loadContests
	t.Cleanup(func() { loadContests = loader })
	loadContests = func(platform string, _ time.Time, _ int) (calendar.Contests, error) {
		if platform == "codeforces" {
			return nil, &calendar.NetworkError{URL: "https://codeforces.com", Err: errors.New("timeout")}
		}
		return calendar.Contests{}, nil
	}

	logged := make([]string, 0)
	h := NewHandler("test")
	h.errFn = func(s string, args ...interface{}) {
		logged = append(logged, fmt.Sprintf(s, args...))
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body)
	}
	if len(logged) != 1 {
		t.Fatalf("expected the failing platform to be reported once, got %v", logged)
	}
	if !strings.Contains(logged[0], "codeforces") {
		t.Errorf("report does not name the failing platform: %s", logged[0])
	}
}

func TestHandlerInvalidRemind(t *testing.T) {
	for _, q := range []string{"-5", "soon"} {
		if w := testRequest(t, "/codechef?remind="+q); w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400 for remind=%s, got %d", q, w.Code)
		}
	}
}
