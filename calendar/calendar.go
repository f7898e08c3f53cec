package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"git.sr.ht/~mariusor/contestcal/calendar/atcoder"
	"git.sr.ht/~mariusor/contestcal/calendar/cadence"
	"git.sr.ht/~mariusor/contestcal/calendar/codechef"
	"git.sr.ht/~mariusor/contestcal/calendar/codeforces"
	"git.sr.ht/~mariusor/contestcal/calendar/leetcode"
)

var DefaultPlatforms = []string{codeforces.Label, codechef.Label, atcoder.Label, leetcode.Label}

// Generator produces the upcoming contests of a single platform, either by
// querying its live API or by projecting its fixed cadences forward.
type Generator interface {
	Load(now time.Time, months int) (Contests, error)
}

type Contest struct {
	Platform  string
	Name      string
	StartTime time.Time
	Duration  time.Duration
	Division  string
	URL       string
}

type Contests []Contest

func (c Contest) IsValid() bool {
	return !c.StartTime.IsZero() && c.Platform != "" && c.Name != ""
}

func (c Contest) Equals(other Contest) bool {
	return c.Platform == other.Platform &&
		c.Name == other.Name &&
		c.StartTime.Equal(other.StartTime) &&
		c.Duration == other.Duration &&
		c.Division == other.Division &&
		c.URL == other.URL
}

func (c Contest) String() string {
	return c.GoString()
}

func (c Contest) GoString() string {
	fmtTime := c.StartTime.Format("2006-01-02 15:04 MST")
	if len(c.Division) > 0 {
		return fmt.Sprintf("<%s:%s:%s @ %s//%s>", c.Platform, c.Division, c.Name, fmtTime, c.Duration)
	}
	return fmt.Sprintf("<%s:%s @ %s//%s>", c.Platform, c.Name, fmtTime, c.Duration)
}

func (c Contests) String() string {
	return c.GoString()
}

func (c Contests) GoString() string {
	ss := make([]string, len(c))
	for i, cc := range c {
		ss[i] = cc.GoString()
	}
	return fmt.Sprintf("Contests[%d]:\n\t%s\n", len(c), strings.Join(ss, "\n\t"))
}

func (c Contests) Contains(inc Contest) bool {
	for _, cc := range c {
		if cc.Equals(inc) {
			return true
		}
	}
	return false
}

var Labels = map[string]string{
	codeforces.Label: "Codeforces",
	codechef.Label:   "CodeChef",
	atcoder.Label:    "AtCoder",
	leetcode.Label:   "LeetCode",
}

var ShortNames = map[string]string{
	codeforces.Label: "CF",
	codechef.Label:   "CC",
	atcoder.Label:    "AC",
	leetcode.Label:   "LC",
}

func canonical(p string) string {
	switch {
	case codeforces.ValidType(p):
		return codeforces.Label
	case codechef.ValidType(p):
		return codechef.Label
	case atcoder.ValidType(p):
		return atcoder.Label
	case leetcode.ValidType(p):
		return leetcode.Label
	}
	return ""
}

func ValidPlatform(p string) bool {
	return canonical(p) != ""
}

func inStringList(s string, list []string) bool {
	for _, lss := range list {
		if lss == s {
			return true
		}
	}
	return false
}

// GetPlatforms resolves platform codes and short aliases to their canonical
// names, dropping duplicates and anything unknown. An empty selection means
// all platforms.
func GetPlatforms(strs []string) []string {
	if len(strs) == 0 {
		return DefaultPlatforms[:]
	}
	platforms := make([]string, 0, len(strs))
	for _, p := range strs {
		cp := canonical(p)
		if cp == "" || inStringList(cp, platforms) {
			continue
		}
		platforms = append(platforms, cp)
	}
	return platforms
}

type liveGenerator struct {
	platform string
}

func (g liveGenerator) Load(now time.Time, _ int) (Contests, error) {
	u, err := codeforces.APIURL()
	if err != nil {
		return nil, err
	}
	fetched, err := codeforces.LoadContests(u, now)
	if err != nil {
		if errors.Is(err, codeforces.ErrBadResponse) {
			return nil, &ParseError{Platform: codeforces.Label, Err: err}
		}
		return nil, &NetworkError{URL: u.String(), Err: err}
	}
	contests := make(Contests, 0, len(fetched))
	for _, c := range fetched {
		contests = append(contests, *(*Contest)(&c))
	}
	return contests, nil
}

type recurringGenerator struct {
	platform string
	cadences []cadence.Cadence
}

func (g recurringGenerator) Load(now time.Time, months int) (Contests, error) {
	contests := make(Contests, 0)
	for _, c := range g.cadences {
		occurrences, err := c.Project(now, months)
		if err != nil {
			return nil, err
		}
		for _, o := range occurrences {
			contests = append(contests, Contest{
				Platform:  g.platform,
				Name:      o.Name,
				StartTime: o.StartTime,
				Duration:  o.Duration,
				URL:       o.URL,
			})
		}
	}
	return contests, nil
}

// PlatformGenerator returns the schedule generator for a platform code or alias.
func PlatformGenerator(p string) (Generator, error) {
	switch canonical(p) {
	case codeforces.Label:
		return liveGenerator{platform: codeforces.Label}, nil
	case codechef.Label:
		return recurringGenerator{platform: codechef.Label, cadences: codechef.Cadences}, nil
	case atcoder.Label:
		return recurringGenerator{platform: atcoder.Label, cadences: atcoder.Cadences}, nil
	case leetcode.Label:
		return recurringGenerator{platform: leetcode.Label, cadences: leetcode.Cadences}, nil
	}
	return nil, &ConfigError{Reason: fmt.Sprintf("invalid platform %s", p)}
}

// LoadContests loads the upcoming contests of a single platform over the
// given horizon.
func LoadContests(platform string, now time.Time, months int) (Contests, error) {
	g, err := PlatformGenerator(platform)
	if err != nil {
		return nil, err
	}
	return g.Load(now, months)
}
