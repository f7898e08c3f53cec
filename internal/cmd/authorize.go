package cmd

import (
	"io/fs"

	"github.com/urfave/cli"

	"git.sr.ht/~mariusor/contestcal"
)

var AuthorizeCmd = cli.Command{
	Name:    "auth",
	Aliases: []string{"authorize"},
	Usage:   "Authorizes the application against a Mastodon instance",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "key",
			Usage: "Client application key",
		},
		&cli.StringFlag{
			Name:  "secret",
			Usage: "Client application secret",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "Personal access token",
		},
		&cli.StringFlag{
			Name:  "instance",
			Usage: "The instance to authenticate against",
			Value: "",
		},
		&cli.BoolFlag{
			Name:  "update-account",
			Usage: "Update the details of the mastodon account",
		},
	},
	Action: Authorize,
}

func Authorize(c *cli.Context) error {
	key := c.String("key")
	secret := c.String("secret")
	accessToken := c.String("token")
	instance := c.String("instance")
	dryRun := c.GlobalBool("dry-run")
	update := c.Bool("update-account")

	s, err := fs.Sub(contestcal.AccountDetails, "static")
	if err != nil {
		errFn("Unable to find folder with the account description and name.")
	}

	getTok := getAccessToken("Paste authorization code: ")
	client, err := CheckMastodonCredentialsFile(DataPath(), key, secret, accessToken, instance, dryRun, getTok)
	if err != nil {
		return err
	}
	if update && s != nil {
		return UpdateMastodonAccount(client, s, dryRun)
	}
	info("Success, authorized client for: %s", client.InstanceURL)
	return nil
}
