// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// serveCommand starts the HTTP backend
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the spotifeel HTTP backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to optional TOML configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the browser at the login route after startup",
			},
		},
		Action: r.Serve,
	}
}

// configCommand validates and scaffolds configuration
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect and scaffold configuration",
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Validate environment configuration, listing every missing key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to optional TOML configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigCheck,
			},
			{
				Name:  "init",
				Usage: "Write an example .env file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Destination for the example env file",
						Value: ".env",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}
