package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/riskident-lab/rrit/pkg/cli/config"
	httpctrl "github.com/riskident-lab/rrit/pkg/controller/http"
	"github.com/riskident-lab/rrit/pkg/service/worker"
	"github.com/riskident-lab/rrit/pkg/usecase"
	"github.com/riskident-lab/rrit/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var autosaveInterval time.Duration
	var qsetCfg config.QuestionSet
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RRIT_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "autosave-interval",
			Usage:       "Interval for autosaving the session (0 disables autosave)",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("RRIT_AUTOSAVE_INTERVAL"),
			Destination: &autosaveInterval,
		},
	}
	flags = append(flags, qsetCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			qset, err := qsetCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load question set")
			}
			logging.Default().Info("Question set loaded",
				"categories", len(qset.Categories()),
				"questions", len(qset.Questions()),
			)

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize scenario store")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close scenario store", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, qset)

			// Resume a saved session if one exists
			if scenario, err := uc.Assessment.Load(ctx); err != nil {
				return goerr.Wrap(err, "failed to restore saved scenario")
			} else if scenario != nil {
				logging.Default().Info("Restored saved scenario",
					"scenario_id", scenario.ID,
					"answers", len(scenario.Answers),
					"saved_at", scenario.SavedAt(),
				)
			}

			var autosave *worker.AutosaveWorker
			if autosaveInterval > 0 {
				autosave = worker.NewAutosaveWorker(uc.Assessment, autosaveInterval)
				if err := autosave.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start autosave worker")
				}
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, egCtx := errgroup.WithContext(sigCtx)

			eg.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})

			eg.Go(func() error {
				<-egCtx.Done()
				logging.Default().Info("Shutting down")

				if autosave != nil {
					autosave.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if err := eg.Wait(); err != nil {
				return err
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
