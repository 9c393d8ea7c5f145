package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/meetings/cmd/app/commands"
	"github.com/allisson/meetings/internal/app"
	"github.com/allisson/meetings/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP API and metrics servers",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "path",
					Aliases: []string{"p"},
					Value:   "migrations",
					Usage:   "Directory holding the postgresql and mysql migration folders",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(
					container.Logger(),
					cmd.String("path"),
					cfg.DBDriver,
					cfg.DBConnectionString,
				)
			},
		},
	}
}
