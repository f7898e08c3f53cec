package cmd

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/McKael/madon"
	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/contestcal/calendar"
	"git.sr.ht/~mariusor/contestcal/internal/post"
	"git.sr.ht/~mariusor/contestcal/storage"
	"git.sr.ht/~mariusor/contestcal/storage/boltdb"
)

var AnnounceCmd = cli.Command{
	Name:    "announce",
	Aliases: []string{"post"},
	Usage:   "Announces the day's contests to the Fediverse",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "platform",
			Usage: "Which platforms to announce",
			Value: platformsFlagValue(),
		},
		&cli.StringFlag{
			Name:  "date",
			Usage: "Date at which to start",
			Value: defaultStartTime.Format("2006-01-02"),
		},
		&cli.StringFlag{
			Name:  "instance",
			Usage: "The instance to post to",
		},
	},
	Action: Announce(ResolutionDay),
}

type AnnounceConfig struct {
	Path       string
	DryRun     bool
	Date       time.Time
	Resolution time.Duration
	PostFns    []post.PosterFn
	infFn      logFn
	errFn      logFn
}

func shouldPostToInstance(instances []string, inst string) bool {
	if len(instances) == 0 {
		return true
	}
	name := urlHost(inst)
	for _, instance := range instances {
		if strings.EqualFold(urlHost(instance), name) {
			return true
		}
	}
	return false
}

func urlHost(u string) string {
	uu, err := url.ParseRequestURI(u)
	if err != nil {
		return ""
	}
	return uu.Host
}

func Announce(resolution time.Duration) cli.ActionFunc {
	return func(c *cli.Context) error {
		conf := AnnounceConfig{
			DryRun:     c.GlobalBool("dry-run"),
			Date:       parseStartDate(stringValue(c, "date")),
			Resolution: resolution,
			Path:       c.GlobalString("path"),
			infFn:      info,
			errFn:      errFn,
		}

		platforms := calendar.GetPlatforms(stringSliceValues(c, "platform"))
		instances := stringSliceValues(c, "instance")

		if !conf.DryRun {
			creds, err := post.LoadCredentials(DataPath())
			if err != nil {
				return fmt.Errorf("unable to load credentials for the client: %w", err)
			}
			for _, cred := range creds {
				cl, ok := cred.(*madon.Client)
				if !ok || !shouldPostToInstance(instances, cl.InstanceURL) {
					continue
				}
				conf.PostFns = append(conf.PostFns, post.ToMastodon(cl))
			}
		}
		if len(conf.PostFns) == 0 {
			conf.PostFns = append(conf.PostFns, post.ToStdout)
		}
		return LoadAndPost(conf, platforms...)
	}
}

// LoadAndPost loads the stored contests around the configured date and
// hands the groups to every poster.
func LoadAndPost(c AnnounceConfig, platforms ...string) error {
	if c.Resolution == 0 {
		c.Resolution = ResolutionDay
	}
	if len(platforms) == 0 {
		return fmt.Errorf("no valid platforms have been passed")
	}

	repo := boltdb.New(boltdb.Config{
		Path:  path.Join(c.Path, boltdb.DefaultFile),
		LogFn: boltdb.LoggerFn(c.infFn),
		ErrFn: boltdb.LoggerFn(c.errFn),
	})

	contests, err := repo.LoadContests(storage.Cursor(c.Date, c.Resolution), platforms...)
	if err != nil {
		return fmt.Errorf("unable to load contests from storage: %w", err)
	}
	contests = getContestsForTimeAndResolution(contests, c.Date, c.Resolution)

	if len(contests) == 0 {
		info("No contests for the period: %s %s", c.Date.Format("Monday, _2 January 2006"), FormatDuration(c.Resolution))
		return nil
	}

	toPost := make(map[time.Time]calendar.Contests)
	for _, cc := range contests {
		toPost[cc.StartTime] = append(toPost[cc.StartTime], cc)
	}

	for _, postFn := range c.PostFns {
		if err := postFn(toPost); err != nil {
			info("Error trying to post: %s", err)
		}
	}
	return nil
}

func getContestsForTimeAndResolution(contests calendar.Contests, when time.Time, resolution time.Duration) calendar.Contests {
	period := make(calendar.Contests, 0)

	for _, cc := range contests {
		hours := when.Sub(cc.StartTime).Round(resolution).Hours()
		if hours > -0.5*resolution.Hours() && hours <= 0.5*resolution.Hours() {
			period = append(period, cc)
		}
	}
	return period
}

func FormatDuration(d time.Duration) string {
	label := "hour"
	val := float64(d) / float64(time.Hour)
	if d > ResolutionDay {
		label = "day"
		val = float64(d) / float64(ResolutionDay)
	}
	if d > ResolutionWeek {
		label = "week"
		val = float64(d) / float64(ResolutionWeek)
	}
	if d > ResolutionMonthish {
		label = "month"
		val = float64(d) / float64(ResolutionMonthish)
	}
	if val != 1.0 && val != -1.0 {
		label = label + "s"
	}
	return fmt.Sprintf("%+.2g%s", val, label)
}
