package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/meetings/cmd/app/commands"
	"github.com/allisson/meetings/internal/app"
	"github.com/allisson/meetings/internal/config"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Register a user account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Username (4-20 letters, digits or underscores)",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Email address",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password (omit to read it from stdin)",
				},
				&cli.StringFlag{
					Name:    "timezone",
					Aliases: []string{"t"},
					Value:   "UTC",
					Usage:   "IANA time zone name",
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
					commands.DefaultIO(),
					commands.CreateUserParams{
						Username: cmd.String("username"),
						Email:    cmd.String("email"),
						Password: cmd.String("password"),
						Timezone: cmd.String("timezone"),
						Format:   cmd.String("format"),
					},
				)
			},
		},
	}
}
