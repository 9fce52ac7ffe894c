package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/riskident-lab/rrit/pkg/domain/interfaces"
	"github.com/riskident-lab/rrit/pkg/domain/model"
)

type UseCases struct {
	Assessment *AssessmentUseCase
}

type Option func(*AssessmentUseCase)

// WithClock overrides the time source, used by tests
func WithClock(clock func() time.Time) Option {
	return func(uc *AssessmentUseCase) {
		uc.clock = clock
	}
}

// WithIDGenerator overrides the scenario ID generator, used by tests
func WithIDGenerator(newID func() string) Option {
	return func(uc *AssessmentUseCase) {
		uc.newID = newID
	}
}

func New(repo interfaces.ScenarioRepository, qset *model.QuestionSet, opts ...Option) *UseCases {
	assessment := &AssessmentUseCase{
		repo:  repo,
		qset:  qset,
		store: model.NewAnswerStore(qset),
		clock: func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(assessment)
	}

	return &UseCases{
		Assessment: assessment,
	}
}
