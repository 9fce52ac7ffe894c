package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskident-lab/rrit/pkg/domain/interfaces"
	"github.com/riskident-lab/rrit/pkg/domain/model"
	"github.com/riskident-lab/rrit/pkg/domain/types"
	"github.com/riskident-lab/rrit/pkg/utils/logging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// scenarioDocument is the Firestore representation of a scenario. Field
// names mirror the JSON wire format of the persisted record.
type scenarioDocument struct {
	ID                         string           `firestore:"id"`
	FormatVersion              string           `firestore:"formatVersion"`
	Language                   string           `firestore:"language"`
	Answers                    []answerDocument `firestore:"answers"`
	SelectedOptionalCategories []string         `firestore:"selectedOptionalCategories"`
	ProjectName                string           `firestore:"projectName"`
	ProjectDescription         string           `firestore:"projectDescription"`
	AssessmentDate             string           `firestore:"assessmentDate"`
	CompletedBy                string           `firestore:"completedBy"`
	SavedAtEpochMillis         int64            `firestore:"savedAtEpochMillis"`
}

type answerDocument struct {
	QuestionID string `firestore:"questionId"`
	Value      string `firestore:"value"`
}

// Firestore stores the scenario as a single document keyed by the fixed
// storage key.
type Firestore struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ScenarioRepository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces the scenario collection, used to isolate
// test runs against a shared project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
	}
}

// New creates a Firestore-backed scenario store
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{client: client}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Firestore) collection() string {
	if f.collectionPrefix != "" {
		return f.collectionPrefix + "_scenarios"
	}
	return "scenarios"
}

func (f *Firestore) docRef() *firestore.DocumentRef {
	return f.client.Collection(f.collection()).Doc(model.StorageKey)
}

// Put stores the scenario, overwriting any existing record
func (f *Firestore) Put(ctx context.Context, scenario *model.Scenario) error {
	if scenario == nil {
		return goerr.New("cannot store nil scenario")
	}

	doc := toDocument(scenario)
	if _, err := f.docRef().Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to store scenario")
	}
	return nil
}

// Get retrieves the stored scenario. A missing document and an
// unmarshalable record are both reported as not found.
func (f *Firestore) Get(ctx context.Context) (*model.Scenario, error) {
	snap, err := f.docRef().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrScenarioNotFound, "no scenario document")
		}
		return nil, goerr.Wrap(err, "failed to get scenario document")
	}

	var doc scenarioDocument
	if err := snap.DataTo(&doc); err != nil {
		logging.From(ctx).Warn("stored scenario is corrupt, treating as absent",
			"collection", f.collection(), "error", err.Error())
		return nil, goerr.Wrap(interfaces.ErrScenarioNotFound, "corrupt scenario document")
	}

	return fromDocument(&doc), nil
}

// Clear removes the stored record. Idempotent: deleting a missing
// document succeeds.
func (f *Firestore) Clear(ctx context.Context) error {
	if _, err := f.docRef().Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete scenario document")
	}
	return nil
}

// Close releases the Firestore client
func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func toDocument(s *model.Scenario) *scenarioDocument {
	doc := &scenarioDocument{
		ID:                 string(s.ID),
		FormatVersion:      s.FormatVersion,
		Language:           s.Language.String(),
		ProjectName:        s.Metadata.ProjectName,
		ProjectDescription: s.Metadata.ProjectDescription,
		AssessmentDate:     s.Metadata.AssessmentDate,
		CompletedBy:        s.Metadata.CompletedBy,
		SavedAtEpochMillis: s.SavedAtEpochMillis,
	}
	for _, ans := range s.Answers {
		doc.Answers = append(doc.Answers, answerDocument{
			QuestionID: ans.QuestionID.String(),
			Value:      ans.Value.String(),
		})
	}
	for _, id := range s.SelectedOptionalCategories {
		doc.SelectedOptionalCategories = append(doc.SelectedOptionalCategories, id.String())
	}
	return doc
}

func fromDocument(doc *scenarioDocument) *model.Scenario {
	s := &model.Scenario{
		ID:            types.ScenarioID(doc.ID),
		FormatVersion: doc.FormatVersion,
		Language:      types.Lang(doc.Language),
		Metadata: model.Metadata{
			ProjectName:        doc.ProjectName,
			ProjectDescription: doc.ProjectDescription,
			AssessmentDate:     doc.AssessmentDate,
			CompletedBy:        doc.CompletedBy,
		},
		SavedAtEpochMillis: doc.SavedAtEpochMillis,
	}
	for _, ans := range doc.Answers {
		s.Answers = append(s.Answers, model.Answer{
			QuestionID: types.QuestionID(ans.QuestionID),
			Value:      types.AnswerValue(ans.Value),
		})
	}
	for _, id := range doc.SelectedOptionalCategories {
		s.SelectedOptionalCategories = append(s.SelectedOptionalCategories, types.CategoryID(id))
	}
	return s
}
