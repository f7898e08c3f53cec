package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/contestcal/calendar"
	"git.sr.ht/~mariusor/contestcal/calendar/codeforces"
)

var ShowPlatformsCmd = cli.Command{
	Name:               "platforms",
	Usage:              "Lists supported contest platforms, use --help to see a human readable list",
	Action:             showPlatforms,
	CustomHelpTemplate: showHelp(),
}

var validPlatforms = calendar.DefaultPlatforms

func writeHelpLabels(w io.StringWriter, labels ...string) error {
	for _, lbl := range labels {
		w.WriteString("\t\t")
		w.WriteString(lbl)
		w.WriteString(": ")
		w.WriteString(calendar.Labels[lbl])
		w.WriteString("\n")
	}
	return nil
}

func showHelp() string {
	h := strings.Builder{}
	h.WriteString("Valid platforms:\n")
	writeHelpLabels(&h, validPlatforms...)
	h.WriteString("\n")
	h.WriteString("Divisions recognized for ")
	h.WriteString(calendar.Labels[codeforces.Label])
	h.WriteString(":\n")
	h.WriteString("\t\t")
	h.WriteString(strings.Join(codeforces.Divisions[:], ", "))
	h.WriteString("\n")
	return h.String()
}

func showPlatforms(c *cli.Context) error {
	fmt.Printf("%s\n", strings.Join(calendar.GetPlatforms(nil), ", "))
	return nil
}
