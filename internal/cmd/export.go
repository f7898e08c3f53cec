package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/contestcal/calendar"
	"git.sr.ht/~mariusor/contestcal/ical"
)

// platformsFlagValue copies the default platform list for a flag value; the
// flag parser appends into its value when the flag is passed.
func platformsFlagValue() *cli.StringSlice {
	values := make(cli.StringSlice, len(calendar.DefaultPlatforms))
	copy(values, calendar.DefaultPlatforms)
	return &values
}

var ExportCmd = cli.Command{
	Name:    "export",
	Aliases: []string{"generate"},
	Usage:   "Generates an iCalendar file with the upcoming contests",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "platform",
			Usage: "Which platforms to include",
			Value: platformsFlagValue(),
		},
		&cli.IntFlag{
			Name:  "remind",
			Usage: "Reminder lead time in minutes",
			Value: 10,
		},
		&cli.IntFlag{
			Name:  "months",
			Usage: "How many months of recurring contests to project",
			Value: 6,
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "Path of the generated file, '-' for stdout",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "Suppress progress messages",
		},
		&cli.BoolFlag{
			Name:  "open",
			Usage: "Open the generated file with the default application",
		},
		&cli.BoolFlag{
			Name:  "interactive",
			Usage: "Prompt for platforms and reminder lead",
		},
	},
	Action: Export,
}

type ExportConfig struct {
	Platforms []string
	Remind    time.Duration
	Months    int
	Output    string
	Quiet     bool
	Open      bool
	infFn     logFn
	errFn     logFn
}

// Validate checks the configuration before any contest is fetched.
func (c ExportConfig) Validate() error {
	if c.Remind < 0 {
		return &calendar.ConfigError{Reason: fmt.Sprintf("negative reminder lead %s", c.Remind)}
	}
	if c.Months <= 0 {
		return &calendar.ConfigError{Reason: fmt.Sprintf("invalid months count %d", c.Months)}
	}
	if len(c.Platforms) == 0 {
		return &calendar.ConfigError{Reason: "no platforms selected"}
	}
	for _, p := range c.Platforms {
		if !calendar.ValidPlatform(p) {
			return &calendar.ConfigError{Reason: fmt.Sprintf("unknown platform %s", p)}
		}
	}
	return nil
}

// DefaultFilename composes the output name from the date and the short
// names of the platforms that made it into the calendar.
func DefaultFilename(date time.Time, platforms []string) string {
	shorts := make([]string, 0, len(platforms))
	for _, p := range platforms {
		if s, ok := calendar.ShortNames[p]; ok {
			shorts = append(shorts, strings.ToUpper(s))
		}
	}
	return fmt.Sprintf("%s_%s.ics", date.Format("2006-01-02"), strings.Join(shorts, "_"))
}

func Export(c *cli.Context) error {
	conf := ExportConfig{
		Platforms: calendar.GetPlatforms(stringSliceValues(c, "platform")),
		Remind:    time.Duration(c.Int("remind")) * time.Minute,
		Months:    c.Int("months"),
		Output:    c.String("output"),
		Quiet:     c.Bool("quiet"),
		Open:      c.Bool("open"),
		infFn:     info,
		errFn:     errFn,
	}
	if raw := stringSliceValues(c, "platform"); len(conf.Platforms) == 0 && len(raw) > 0 {
		return &calendar.ConfigError{Reason: fmt.Sprintf("unknown platforms %s", strings.Join(raw, ", "))}
	}

	if c.Bool("interactive") {
		if err := promptExportConfig(&conf); err != nil {
			return err
		}
	}
	if conf.Quiet {
		conf.infFn = func(string, ...interface{}) {}
	}

	return RunExport(conf)
}

func promptExportConfig(conf *ExportConfig) error {
	prompt := fmt.Sprintf("Platforms to include [%s]: ", strings.Join(calendar.GetPlatforms(nil), ", "))
	if raw, err := promptValue(prompt); err == nil && raw != "" {
		platforms := calendar.GetPlatforms(strings.Fields(strings.ReplaceAll(raw, ",", " ")))
		if len(platforms) == 0 {
			return &calendar.ConfigError{Reason: fmt.Sprintf("unknown platforms %s", raw)}
		}
		conf.Platforms = platforms
	}
	if raw, err := promptValue("Reminder lead in minutes [10]: "); err == nil && raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil {
			return &calendar.ConfigError{Reason: fmt.Sprintf("invalid reminder lead %s", raw)}
		}
		conf.Remind = time.Duration(m) * time.Minute
	}
	return nil
}

var loadContests = calendar.LoadContests

// RunExport loads the contests of every selected platform, builds the
// grouped events and writes the encoded calendar. A platform that fails to
// load is reported and skipped, the remaining ones still produce a file.
// When nothing produced events, no file is written at all.
func RunExport(conf ExportConfig) error {
	if err := conf.Validate(); err != nil {
		return err
	}

	now := time.Now()
	events := make(calendar.Events, 0)
	loaded := make([]string, 0, len(conf.Platforms))
	for _, p := range conf.Platforms {
		contests, err := loadContests(p, now, conf.Months)
		if err != nil {
			conf.errFn("Unable to load contests for %s: %s", p, err)
			continue
		}
		conf.infFn("Loaded %d contests for %s", len(contests), p)
		events = append(events, calendar.BuildEvents(contests)...)
		loaded = append(loaded, p)
	}
	if len(loaded) == 0 {
		return fmt.Errorf("no contests could be loaded for platforms: %s", strings.Join(conf.Platforms, ", "))
	}
	if len(events) == 0 {
		conf.infFn("No upcoming contests for platforms: %s", strings.Join(loaded, ", "))
		return nil
	}

	output := conf.Output
	if output == "" {
		output = DefaultFilename(now, loaded)
	}

	opt := ical.Options{
		Name:        "ContestCalendar",
		Description: fmt.Sprintf("Programming contests on %s", strings.Join(loaded, ", ")),
		URL:         AppWebsite,
		Version:     AppVersion,
		Remind:      conf.Remind,
	}

	if output == "-" {
		return ical.Encode(os.Stdout, events, opt)
	}

	f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("unable to open output file %s: %w", output, err)
	}
	if err = ical.Encode(f, events, opt); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	conf.infFn("Wrote %d events to %s", len(events), output)

	if conf.Open {
		if err := exec.Command(ExecOpenCmd, output).Run(); err != nil {
			conf.errFn("unable to use %s to open %s: %s", ExecOpenCmd, output, err)
		}
	}
	return nil
}
