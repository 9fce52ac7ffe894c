package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskident-lab/rrit/pkg/domain/interfaces"
	"github.com/riskident-lab/rrit/pkg/repository/firestore"
	"github.com/riskident-lab/rrit/pkg/repository/localfile"
	"github.com/riskident-lab/rrit/pkg/repository/memory"
	"github.com/riskident-lab/rrit/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for scenario store backend configuration
type Repository struct {
	backend    string
	storageDir string
	projectID  string
	databaseID string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Scenario store backend (localfile, firestore or memory)",
			Value:       "localfile",
			Sources:     cli.EnvVars("RRIT_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "storage-dir",
			Usage:       "Directory for the localfile backend",
			Value:       ".rrit",
			Sources:     cli.EnvVars("RRIT_STORAGE_DIR"),
			Destination: &r.storageDir,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars("RRIT_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("RRIT_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes and returns a scenario repository based on the
// configured backend. The caller is responsible for calling Close() on the
// returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.ScenarioRepository, error) {
	switch r.backend {
	case "localfile":
		repo, err := localfile.New(r.storageDir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize localfile repository")
		}
		logging.Default().Info("Using localfile scenario store", "path", repo.Path())
		return repo, nil

	case "firestore":
		if r.projectID == "" {
			return nil, goerr.New("firestore-project-id is required when using firestore backend")
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore scenario store",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory scenario store (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}
