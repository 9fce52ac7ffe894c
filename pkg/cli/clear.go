package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskident-lab/rrit/pkg/cli/config"
	"github.com/riskident-lab/rrit/pkg/utils/logging"
	"github.com/riskident-lab/rrit/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdClear() *cli.Command {
	var repoCfg config.Repository

	return &cli.Command{
		Name:  "clear",
		Usage: "Remove the saved scenario (start a new one)",
		Flags: repoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize scenario store")
			}
			defer safe.Close(ctx, repo)

			if err := repo.Clear(ctx); err != nil {
				return goerr.Wrap(err, "failed to clear scenario")
			}

			logging.Default().Info("Saved scenario removed")
			return nil
		},
	}
}
