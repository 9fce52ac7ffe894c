package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskident-lab/rrit/pkg/cli/config"
	"github.com/riskident-lab/rrit/pkg/domain/model"
	"github.com/riskident-lab/rrit/pkg/domain/types"
	"github.com/riskident-lab/rrit/pkg/usecase"
	"github.com/riskident-lab/rrit/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdSummary() *cli.Command {
	var lang string
	var qsetCfg config.QuestionSet
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "lang",
			Usage:       "Display language (en or fr); defaults to the saved scenario's language",
			Sources:     cli.EnvVars("RRIT_LANG"),
			Destination: &lang,
		},
	}
	flags = append(flags, qsetCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "summary",
		Usage: "Score the saved scenario and print the risk profile summary",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			qset, err := qsetCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load question set")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize scenario store")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo, qset)
			scenario, err := uc.Assessment.Load(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load scenario")
			}
			if scenario == nil {
				fmt.Println("No saved scenario.")
				return nil
			}

			displayLang := scenario.Language
			if lang != "" {
				displayLang = types.ParseLang(lang)
			}

			summary := uc.Assessment.Summarize(ctx, displayLang)
			printSummary(qset, scenario, summary, displayLang)
			return nil
		},
	}
}

func printSummary(qset *model.QuestionSet, scenario *model.Scenario, summary *usecase.Summary, lang types.Lang) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	if lang == types.LangFR {
		bold.Println("Sommaire du profil de risque")
	} else {
		bold.Println("Risk Profile Summary")
	}
	if scenario.Metadata.ProjectName != "" {
		fmt.Printf("%s (%s)\n", scenario.Metadata.ProjectName, scenario.SavedAt().Format("2006-01-02"))
	}
	fmt.Println()

	for _, score := range summary.Scores {
		name := score.CategoryID.String()
		if cat, ok := qset.Category(score.CategoryID); ok {
			name = cat.Name.Resolve(lang)
		}

		weightCell := "-"
		if score.Total > 0 {
			weightCell = fmt.Sprintf("%.1f / %d", score.Weight, score.Total)
		}

		label := score.Classification.Label(lang)
		switch score.Classification {
		case types.ClassificationHigh:
			label = color.New(color.FgRed, color.Bold).Sprint(label)
		case types.ClassificationMedium:
			label = color.New(color.FgYellow).Sprint(label)
		case types.ClassificationLow:
			label = color.New(color.FgGreen).Sprint(label)
		default:
			label = faint.Sprint(label)
		}

		fmt.Printf("%-50s %-10s %s\n", name, weightCell, label)
	}

	if len(summary.Findings) == 0 {
		return
	}

	fmt.Println()
	if lang == types.LangFR {
		bold.Printf("Risques relevés (%d)\n", len(summary.Findings))
	} else {
		bold.Printf("Identified risks (%d)\n", len(summary.Findings))
	}
	for _, finding := range summary.Findings {
		fmt.Printf("- [%s] %s\n", finding.Value, finding.Question)
		if finding.RiskStatement != "" {
			fmt.Printf("  %s\n", finding.RiskStatement)
		}
		for _, m := range finding.Mitigations {
			faint.Printf("    * %s\n", m)
		}
	}
}
