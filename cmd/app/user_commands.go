package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/projecthub/cmd/app/commands"
	"github.com/allisson/projecthub/internal/app"
	"github.com/allisson/projecthub/internal/config"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Create a user account, typically to bootstrap the first system administrator",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "User email address",
				},
				&cli.StringFlag{
					Name:     "first-name",
					Required: true,
					Usage:    "User first name",
				},
				&cli.StringFlag{
					Name:     "last-name",
					Required: true,
					Usage:    "User last name",
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Initial password",
				},
				&cli.StringFlag{
					Name:    "roles",
					Aliases: []string{"r"},
					Value:   "SYSTEM_ADMIN",
					Usage:   "Comma-separated global roles (USER, PROJECT_ADMIN, USER_ADMIN, SYSTEM_ADMIN, GUEST)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("email"),
					cmd.String("first-name"),
					cmd.String("last-name"),
					cmd.String("password"),
					cmd.String("roles"),
					cmd.String("format"),
				)
			},
		},
	}
}
