package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/contestcal/internal/cmd"
)

func main() {
	var err error

	ctl := cli.App{
		Name:    fmt.Sprintf("%sctl", cmd.AppName),
		Version: cmd.AppVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "The path for storage",
				Value: cmd.DataPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Output debug messages",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Don't persist or publish anything",
			},
		},
		Commands: []cli.Command{
			cmd.ShowPlatformsCmd,
			cmd.ExportCmd,
			cmd.FetchCmd,
			cmd.ListCmd,
			cmd.AuthorizeCmd,
			cmd.AnnounceCmd,
		},
	}

	err = ctl.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
