package cmd

import (
	"fmt"
	"path"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/contestcal/storage"
	"git.sr.ht/~mariusor/contestcal/storage/boltdb"
)

var ListCmd = cli.Command{
	Name:  "list",
	Usage: "Lists already saved contests",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "platform",
			Usage: "Which platforms to list",
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "Date at which to start",
			Value: now.Format("2006-01-02"),
		},
		&cli.DurationFlag{
			Name:  "end",
			Usage: "Date interval to check",
			Value: defaultDuration,
		},
	},
	Action: listContests,
}

func listContests(c *cli.Context) error {
	platforms := stringSliceValues(c, "platform")

	start := parseStartDate(c.String("start"))
	duration := c.Duration("end")

	f, err := New(true, 6, platforms...)
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

	f.log("Loading contests for period: %s - %s", start.Format("2006-01-02 Mon, 15:04"), start.Add(duration).Format("2006-01-02 Mon, 15:04"))
	contests, err := st.LoadContests(storage.DateCursor{T: start, D: duration}, f.Platforms...)
	if err != nil {
		return fmt.Errorf("unable to load contests: %w", err)
	}
	if len(contests) == 0 {
		fmt.Printf("nothing found")
		return nil
	}
	for _, cc := range contests {
		fmtTime := cc.StartTime.Format("2006-01-02 15:04 MST")
		if len(cc.Division) > 0 {
			f.log("%s:%s: %s @ %s//%s", cc.Platform, cc.Division, cc.Name, fmtTime, cc.Duration)
		} else {
			f.log("%s: %s @ %s//%s", cc.Platform, cc.Name, fmtTime, cc.Duration)
		}
	}
	return err
}
