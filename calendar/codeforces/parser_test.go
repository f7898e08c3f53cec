package codeforces

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

var testNow = time.Date(2024, time.November, 1, 12, 0, 0, 0, time.UTC)

func testServer(t *testing.T, status int, body string) *url.URL {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("unable to parse test server URL: %s", err)
	}
	return u
}

func TestLoadContestsFiltersUpcomingRegularRounds(t *testing.T) {
	future := testNow.Add(48 * time.Hour).Unix()
	past := testNow.Add(-48 * time.Hour).Unix()
	body := fmt.Sprintf(`{"status":"OK","result":[
		{"id":2042,"name":"Codeforces Round 999 (Div. 2)","type":"CF","phase":"BEFORE","durationSeconds":7200,"startTimeSeconds":%d},
		{"id":2043,"name":"Codeforces Round 999 (Div. 1)","type":"CF","phase":"BEFORE","durationSeconds":7200,"startTimeSeconds":%d},
		{"id":2044,"name":"ICPC Mirror","type":"ICPC","phase":"BEFORE","durationSeconds":18000,"startTimeSeconds":%d},
		{"id":2045,"name":"Finished Round","type":"CF","phase":"FINISHED","durationSeconds":7200,"startTimeSeconds":%d},
		{"id":2046,"name":"Round without start","type":"CF","phase":"BEFORE","durationSeconds":7200},
		{"id":2047,"name":"Past Round","type":"CF","phase":"BEFORE","durationSeconds":7200,"startTimeSeconds":%d}
	]}`, future, future, future, past, past)

	got, err := LoadContests(testServer(t, http.StatusOK, body), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 contests, got %d: %v", len(got), got)
	}
	for _, c := range got {
		if c.Platform != Label {
			t.Errorf("expected platform %s, got %s", Label, c.Platform)
		}
		if !c.StartTime.After(testNow) {
			t.Errorf("contest %s does not start in the future: %s", c.Name, c.StartTime)
		}
		if c.Duration != 2*time.Hour {
			t.Errorf("contest %s has duration %s", c.Name, c.Duration)
		}
	}
	if got[0].Division != "Div. 2" {
		t.Errorf("expected division Div. 2, got %q", got[0].Division)
	}
	if got[1].Division != "Div. 1" {
		t.Errorf("expected division Div. 1, got %q", got[1].Division)
	}
	if want := ContestURL(2042); got[0].URL != want {
		t.Errorf("expected URL %s, got %s", want, got[0].URL)
	}
}

func TestLoadContestsEmptyResult(t *testing.T) {
	got, err := LoadContests(testServer(t, http.StatusOK, `{"status":"OK","result":[]}`), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no contests, got %d", len(got))
	}
}

func TestLoadContestsServerError(t *testing.T) {
	_, err := LoadContests(testServer(t, http.StatusBadGateway, "upstream error"), testNow)
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrBadResponse) {
		t.Errorf("a transport failure should not map to ErrBadResponse: %s", err)
	}
}

func TestLoadContestsInvalidJSON(t *testing.T) {
	_, err := LoadContests(testServer(t, http.StatusOK, "<html>not json</html>"), testNow)
	if !errors.Is(err, ErrBadResponse) {
		t.Errorf("expected ErrBadResponse, got %v", err)
	}
}

func TestLoadContestsFailedStatus(t *testing.T) {
	_, err := LoadContests(testServer(t, http.StatusOK, `{"status":"FAILED","comment":"contest.list: temporarily unavailable"}`), testNow)
	if !errors.Is(err, ErrBadResponse) {
		t.Errorf("expected ErrBadResponse, got %v", err)
	}
}

func TestLoadContestsNilURL(t *testing.T) {
	if _, err := LoadContests(nil, testNow); err == nil {
		t.Error("expected an error for a nil URL")
	}
}
