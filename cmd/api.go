package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// APIGet makes a raw GET request against the Deezer API and prints the JSON body
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	path, err := requireArg(cmd, "path")
	if err != nil {
		return err
	}

	r.logger.Info("GET request", "path", path)

	body, err := r.catalog.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}

	return r.writeJSON(body, !cmd.Bool("compact"))
}
