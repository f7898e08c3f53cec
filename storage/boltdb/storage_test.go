package boltdb

import (
	"path/filepath"
	"testing"
	"time"

	"git.sr.ht/~mariusor/contestcal/calendar"
	"git.sr.ht/~mariusor/contestcal/storage"
)

var testStart = time.Date(2024, time.November, 3, 14, 35, 0, 0, time.UTC)

func testRepo(t *testing.T) *repo {
	t.Helper()
	return New(Config{
		Path:  filepath.Join(t.TempDir(), DefaultFile),
		LogFn: t.Logf,
		ErrFn: t.Logf,
	})
}

func TestSaveAndLoadContest(t *testing.T) {
	r := testRepo(t)

	c := calendar.Contest{
		Platform:  "codeforces",
		Name:      "Codeforces Round 999 (Div. 2)",
		StartTime: testStart,
		Duration:  2 * time.Hour,
		Division:  "Div. 2",
		URL:       "https://codeforces.com/contests/2042",
	}
	if err := r.SaveContest(c); err != nil {
		t.Fatalf("unable to save contest: %s", err)
	}

	got := r.LoadContest(c.Platform, c.StartTime, c.Name)
	if !got.IsValid() {
		t.Fatal("loaded contest is not valid")
	}
	if !got.Equals(c) {
		t.Errorf("loaded contest differs: %#v != %#v", got, c)
	}
}

func TestSaveContestsSameStartDifferentNames(t *testing.T) {
	r := testRepo(t)

	div1 := calendar.Contest{
		Platform:  "codeforces",
		Name:      "Codeforces Round 999 (Div. 1)",
		StartTime: testStart,
		Duration:  2 * time.Hour,
		Division:  "Div. 1",
	}
	div2 := div1
	div2.Name = "Codeforces Round 999 (Div. 2)"
	div2.Division = "Div. 2"

	if err := r.SaveContests(calendar.Contests{div1, div2}); err != nil {
		t.Fatalf("unable to save contests: %s", err)
	}

	got, err := r.LoadContests(storage.Cursor(testStart.Add(-time.Hour), 2*time.Hour), "codeforces")
	if err != nil {
		t.Fatalf("unable to load contests: %s", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 contests, got %d: %v", len(got), got)
	}
	if !got.Contains(div1) || !got.Contains(div2) {
		t.Errorf("both divisions should survive a round trip: %v", got)
	}
}

func TestLoadContestsFiltersByPlatform(t *testing.T) {
	r := testRepo(t)

	cf := calendar.Contest{Platform: "codeforces", Name: "CF Round", StartTime: testStart, Duration: time.Hour}
	lc := calendar.Contest{Platform: "leetcode", Name: "LC Weekly", StartTime: testStart, Duration: time.Hour}
	if err := r.SaveContests(calendar.Contests{cf, lc}); err != nil {
		t.Fatalf("unable to save contests: %s", err)
	}

	got, err := r.LoadContests(storage.Cursor(testStart.Add(-time.Hour), 2*time.Hour), "leetcode")
	if err != nil {
		t.Fatalf("unable to load contests: %s", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 contest, got %d: %v", len(got), got)
	}
	if got[0].Platform != "leetcode" {
		t.Errorf("expected a leetcode contest, got %s", got[0].Platform)
	}
}

func TestLoadContestOutsideWindow(t *testing.T) {
	r := testRepo(t)

	c := calendar.Contest{Platform: "codeforces", Name: "CF Round", StartTime: testStart, Duration: time.Hour}
	if err := r.SaveContest(c); err != nil {
		t.Fatalf("unable to save contest: %s", err)
	}

	got := r.LoadContest(c.Platform, testStart.AddDate(0, 1, 0), c.Name)
	if got.IsValid() {
		t.Errorf("expected no contest a month later, got %#v", got)
	}
}

func TestSaveContestOverwritesSameName(t *testing.T) {
	r := testRepo(t)

	c := calendar.Contest{Platform: "codeforces", Name: "CF Round", StartTime: testStart, Duration: time.Hour}
	if err := r.SaveContest(c); err != nil {
		t.Fatalf("unable to save contest: %s", err)
	}
	c.Duration = 3 * time.Hour
	if err := r.SaveContest(c); err != nil {
		t.Fatalf("unable to save contest again: %s", err)
	}

	got, err := r.LoadContests(storage.Cursor(testStart.Add(-time.Hour), 2*time.Hour), "codeforces")
	if err != nil {
		t.Fatalf("unable to load contests: %s", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 contest, got %d", len(got))
	}
	if got[0].Duration != 3*time.Hour {
		t.Errorf("expected the updated duration, got %s", got[0].Duration)
	}
}
