package cmd

import (
	"fmt"
	"path"
	"time"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/contestcal/calendar"
	"git.sr.ht/~mariusor/contestcal/storage/boltdb"
)

var FetchCmd = cli.Command{
	Name:  "fetch",
	Usage: "Fetches the upcoming contests and persists them",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "platform",
			Usage: "Which platforms to load",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Output debug messages",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Don't persist contests",
		},
		&cli.IntFlag{
			Name:  "months",
			Usage: "How many months of recurring contests to project",
			Value: 6,
		},
	},
	Action: fetchContests,
}

type cal struct {
	debug     bool
	Platforms []string
	months    int
	err       logFn
	log       logFn
}

func New(debug bool, months int, platforms ...string) (*cal, error) {
	return &cal{
		debug:     debug,
		Platforms: calendar.GetPlatforms(platforms),
		months:    months,
		log:       info,
		err:       errFn,
	}, nil
}

// Load fetches the contests of every configured platform. A failing
// platform is reported and skipped.
func (c cal) Load(startDate time.Time) (calendar.Contests, error) {
	contests := make(calendar.Contests, 0)
	for _, p := range c.Platforms {
		cc, err := calendar.LoadContests(p, startDate, c.months)
		if err != nil {
			c.err("Unable to load contests for platform %s: %s", p, err)
			continue
		}
		contests = append(contests, cc...)
		if c.debug {
			c.log("[%s] %d contests", p, len(cc))
		}
	}

	return contests, nil
}

func fetchContests(c *cli.Context) error {
	platforms := stringSliceValues(c, "platform")
	months := c.Int("months")
	debug := c.Bool("debug") || c.GlobalBool("debug")
	dryRun := c.Bool("dry-run") || c.GlobalBool("dry-run")

	f, err := New(debug, months, platforms...)
	if err != nil {
		return err
	}

	if len(f.Platforms) == 0 {
		return fmt.Errorf("no valid platforms have been passed: %s", platforms)
	}

	st := boltdb.New(boltdb.Config{
		Path:  path.Join(c.GlobalString("path"), boltdb.DefaultFile),
		LogFn: nil,
		ErrFn: nil,
	})

	contests, err := f.Load(time.Now())
	for _, cc := range contests {
		if debug {
			f.log("%s: %s @ %s//%s", cc.Platform, cc.Name, cc.StartTime.Format("2006-01-02 15:04 MST"), cc.Duration)
		}
		if dryRun {
			continue
		}
		old := st.LoadContest(cc.Platform, cc.StartTime, cc.Name)
		if !old.Equals(cc) {
			if err := st.SaveContest(cc); err != nil {
				f.err("Error saving %s: %s", cc.Name, err)
			}
		}
	}
	return err
}
