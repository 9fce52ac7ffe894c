package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskident-lab/rrit/pkg/cli/config"
	"github.com/riskident-lab/rrit/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var qsetCfg config.QuestionSet

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the category and question files",
		Flags:   qsetCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			qset, err := qsetCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "question set validation failed")
			}

			perCategory := make(map[string]int)
			for _, q := range qset.Questions() {
				perCategory[q.CategoryID.String()]++
			}

			logger.Info("Question set validation passed",
				"categories", len(qset.Categories()),
				"questions", len(qset.Questions()),
			)
			for _, cat := range qset.Categories() {
				logger.Info("Category validated",
					"id", cat.ID,
					"mandatory", cat.Mandatory,
					"critical", cat.Critical,
					"questions", perCategory[cat.ID.String()],
				)
			}

			return nil
		},
	}
}
