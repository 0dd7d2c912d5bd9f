package main

import (
	"context"
	"errors"

	"github.com/desertthunder/spotifeel/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigCheck validates the environment configuration and reports every
// missing key at once.
func (r *Runner) ConfigCheck(ctx context.Context, cmd *cli.Command) error {
	config, err := shared.LoadConfig(cmd.String("config"))
	if errors.Is(err, shared.ErrMissingConfig) {
		r.writePlain("%s %v\n", r.styles.Err("✗ configuration incomplete:"), err)
		r.writePlain("%s\n", r.styles.Help("run `spotifeel config init` to scaffold a .env file"))
		return err
	}
	if err != nil {
		return err
	}

	r.writePlain("%s\n", r.styles.OK("✓ configuration valid"))
	r.writePlain("  redirect URI: %s\n", config.Spotify.RedirectURI)
	r.writePlain("  server:       %s\n", config.Server.Addr())
	r.writePlain("  token dir:    %s\n", config.Tokens.Dir)
	return nil
}

// ConfigInit writes an example .env file.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")

	if err := shared.CreateEnvFile(path); err != nil {
		return err
	}

	r.logger.Infof("example env written to %v", path)
	return r.writePlain("%s %s\n", r.styles.OK("✓ example env written to"), path)
}
