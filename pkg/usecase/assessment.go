package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskident-lab/rrit/pkg/domain/interfaces"
	"github.com/riskident-lab/rrit/pkg/domain/model"
	"github.com/riskident-lab/rrit/pkg/domain/types"
	"github.com/riskident-lab/rrit/pkg/utils/logging"
)

// AssessmentUseCase orchestrates one assessment session: the answer store,
// the scoring engine, and the scenario persistence slot.
type AssessmentUseCase struct {
	repo  interfaces.ScenarioRepository
	qset  *model.QuestionSet
	store *model.AnswerStore
	clock func() time.Time
	newID func() string

	idMu       sync.Mutex
	scenarioID types.ScenarioID
}

// QuestionSet returns the loaded question catalog
func (uc *AssessmentUseCase) QuestionSet() *model.QuestionSet {
	return uc.qset
}

// SetAnswer records an answer, replacing any prior answer for the question
func (uc *AssessmentUseCase) SetAnswer(ctx context.Context, id types.QuestionID, value types.AnswerValue) error {
	if err := uc.store.SetAnswer(id, value); err != nil {
		return goerr.Wrap(err, "failed to set answer")
	}
	return nil
}

// Answer returns the recorded answer for a question, if any
func (uc *AssessmentUseCase) Answer(id types.QuestionID) (types.AnswerValue, bool) {
	return uc.store.Answer(id)
}

// Answers returns all recorded answers in question order
func (uc *AssessmentUseCase) Answers() []model.Answer {
	return uc.store.Answers()
}

// SelectCategories replaces the optional category selection
func (uc *AssessmentUseCase) SelectCategories(ctx context.Context, ids []types.CategoryID) error {
	if err := uc.store.SetSelectedCategories(ids); err != nil {
		return goerr.Wrap(err, "failed to set category selection")
	}
	return nil
}

// SelectedCategories returns the canonical selection, mandatory categories
// always included.
func (uc *AssessmentUseCase) SelectedCategories() []types.CategoryID {
	return uc.store.SelectedCategories()
}

// SetLanguage sets the active display language
func (uc *AssessmentUseCase) SetLanguage(lang types.Lang) error {
	return uc.store.SetLanguage(lang)
}

// Language returns the active display language
func (uc *AssessmentUseCase) Language() types.Lang {
	return uc.store.Language()
}

// SetMetadata replaces the scenario metadata
func (uc *AssessmentUseCase) SetMetadata(meta model.Metadata) {
	uc.store.SetMetadata(meta)
}

// Metadata returns the scenario metadata
func (uc *AssessmentUseCase) Metadata() model.Metadata {
	return uc.store.Metadata()
}

// Dirty reports whether there are unsaved changes
func (uc *AssessmentUseCase) Dirty() bool {
	return uc.store.Dirty()
}

// Summary is the scoring output for the current session
type Summary struct {
	Language types.Lang            `json:"language"`
	Scores   []model.CategoryScore `json:"scores"`
	Findings []model.RiskFinding   `json:"findings"`
	Answered int                   `json:"answered"`
}

// Summarize scores every selected category and collects the per-question
// risk annex, resolved to the given language.
func (uc *AssessmentUseCase) Summarize(ctx context.Context, lang types.Lang) *Summary {
	if !lang.IsValid() {
		lang = uc.store.Language()
	}
	return &Summary{
		Language: lang,
		Scores:   model.Score(uc.qset, uc.store),
		Findings: model.RiskFindings(uc.qset, uc.store, lang),
		Answered: len(uc.store.Answers()),
	}
}

// Save snapshots the session into a scenario and overwrites the persisted
// slot. A storage failure is recoverable: the in-memory state is left
// untouched and the returned error wraps ErrSaveFailed so callers surface
// a warning instead of failing the session.
func (uc *AssessmentUseCase) Save(ctx context.Context) (*model.Scenario, error) {
	uc.idMu.Lock()
	if uc.scenarioID == "" {
		uc.scenarioID = types.ScenarioID(uc.newID())
	}
	id := uc.scenarioID
	uc.idMu.Unlock()

	scenario := &model.Scenario{
		ID:                         id,
		FormatVersion:              model.FormatVersion,
		Language:                   uc.store.Language(),
		Answers:                    uc.store.Answers(),
		SelectedOptionalCategories: uc.store.SelectedOptionalCategories(),
		Metadata:                   uc.store.Metadata(),
		SavedAtEpochMillis:         uc.clock().UnixMilli(),
	}

	if err := scenario.Validate(); err != nil {
		return nil, goerr.Wrap(err, "refusing to save invalid scenario")
	}

	if err := uc.repo.Put(ctx, scenario); err != nil {
		logging.From(ctx).Warn("scenario save failed, session state kept in memory",
			"error", err.Error(), "scenario_id", id)
		return nil, goerr.Wrap(ErrSaveFailed, err.Error(), goerr.V("scenario_id", id))
	}

	uc.store.MarkSaved()
	return scenario, nil
}

// Load restores the persisted scenario into the session. An empty slot, a
// corrupt record, and an unrecognized format version all yield (nil, nil):
// absent, never an error and never a partial restore. The effective
// category selection is recomputed from the restored answers unioned with
// the persisted optional selection.
func (uc *AssessmentUseCase) Load(ctx context.Context) (*model.Scenario, error) {
	scenario, err := uc.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, interfaces.ErrScenarioNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read scenario store")
	}

	if !scenario.IsCurrentVersion() {
		logging.From(ctx).Info("stored scenario has unrecognized format version, treating as absent",
			"version", scenario.FormatVersion)
		return nil, nil
	}

	skipped, err := uc.store.Restore(scenario)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to restore scenario")
	}
	if len(skipped) > 0 {
		logging.From(ctx).Warn("some restored answers reference unknown questions and were skipped",
			"skipped", skipped)
	}

	uc.idMu.Lock()
	uc.scenarioID = scenario.ID
	uc.idMu.Unlock()

	return scenario, nil
}

// Clear removes the persisted record and resets the session. Idempotent.
func (uc *AssessmentUseCase) Clear(ctx context.Context) error {
	if err := uc.repo.Clear(ctx); err != nil {
		return goerr.Wrap(err, "failed to clear scenario store")
	}
	uc.store.Reset()

	uc.idMu.Lock()
	uc.scenarioID = ""
	uc.idMu.Unlock()
	return nil
}
