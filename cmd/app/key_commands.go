package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/projecthub/cmd/app/commands"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-keys",
			Usage: "Generate RSA keypairs for access and refresh token signing",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "bits",
					Aliases: []string{"b"},
					Value:   2048,
					Usage:   "RSA key size in bits (2048 or 4096)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGenerateKeys(
					commands.DefaultIO().Writer,
					int(cmd.Int("bits")),
				)
			},
		},
	}
}
