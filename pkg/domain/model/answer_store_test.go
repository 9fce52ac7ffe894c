package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/riskident-lab/rrit/pkg/domain/model"
	"github.com/riskident-lab/rrit/pkg/domain/types"
)

func TestAnswerStoreSetAnswer(t *testing.T) {
	qset := testQuestionSet(t)
	store := model.NewAnswerStore(qset)

	t.Run("records and replaces", func(t *testing.T) {
		gt.NoError(t, store.SetAnswer("catAq1", types.AnswerYes))
		v, ok := store.Answer("catAq1")
		gt.Value(t, ok).Equal(true)
		gt.Value(t, v).Equal(types.AnswerYes)

		gt.NoError(t, store.SetAnswer("catAq1", types.AnswerNo))
		v, _ = store.Answer("catAq1")
		gt.Value(t, v).Equal(types.AnswerNo)
	})

	t.Run("rejects unknown question", func(t *testing.T) {
		gt.Error(t, store.SetAnswer("no_such_question", types.AnswerYes))
	})

	t.Run("rejects invalid value", func(t *testing.T) {
		gt.Error(t, store.SetAnswer("catAq1", types.AnswerValue("maybe")))
	})

	t.Run("unanswered is distinct from every value", func(t *testing.T) {
		_, ok := store.Answer("catAq2")
		gt.Value(t, ok).Equal(false)
	})
}

func TestAnswerStoreAnswersOrder(t *testing.T) {
	qset := testQuestionSet(t)
	store := model.NewAnswerStore(qset)

	// Answer out of declaration order; Answers() returns catalog order.
	gt.NoError(t, store.SetAnswer("catDq1", types.AnswerNo))
	gt.NoError(t, store.SetAnswer("catAq2", types.AnswerYes))
	gt.NoError(t, store.SetAnswer("catBq3", types.AnswerUnknown))

	answers := store.Answers()
	gt.Array(t, answers).Length(3)
	gt.Value(t, answers[0].QuestionID).Equal(types.QuestionID("catAq2"))
	gt.Value(t, answers[1].QuestionID).Equal(types.QuestionID("catBq3"))
	gt.Value(t, answers[2].QuestionID).Equal(types.QuestionID("catDq1"))
}

func TestAnswerStoreSelection(t *testing.T) {
	qset := testQuestionSet(t)
	store := model.NewAnswerStore(qset)

	t.Run("mandatory always in scope", func(t *testing.T) {
		gt.Array(t, store.SelectedCategories()).Equal([]types.CategoryID{"A", "B"})
		gt.Value(t, store.IsSelected("A")).Equal(true)
		gt.Value(t, store.IsSelected("C")).Equal(false)
	})

	t.Run("optional selection adds in declaration order", func(t *testing.T) {
		gt.NoError(t, store.SetSelectedCategories([]types.CategoryID{"D", "C"}))
		gt.Array(t, store.SelectedCategories()).Equal([]types.CategoryID{"A", "B", "C", "D"})
		gt.Array(t, store.SelectedOptionalCategories()).Equal([]types.CategoryID{"C", "D"})
	})

	t.Run("mandatory IDs in the input are not persisted as optional", func(t *testing.T) {
		gt.NoError(t, store.SetSelectedCategories([]types.CategoryID{"A", "C"}))
		gt.Array(t, store.SelectedOptionalCategories()).Equal([]types.CategoryID{"C"})
	})

	t.Run("unknown category rejected, selection unchanged", func(t *testing.T) {
		gt.Error(t, store.SetSelectedCategories([]types.CategoryID{"C", "Z"}))
		gt.Array(t, store.SelectedOptionalCategories()).Equal([]types.CategoryID{"C"})
	})

	t.Run("deselect by replacing with empty set", func(t *testing.T) {
		gt.NoError(t, store.SetSelectedCategories(nil))
		gt.Array(t, store.SelectedCategories()).Equal([]types.CategoryID{"A", "B"})
	})
}

func TestAnswerStoreDirty(t *testing.T) {
	qset := testQuestionSet(t)
	store := model.NewAnswerStore(qset)

	gt.Value(t, store.Dirty()).Equal(false)

	gt.NoError(t, store.SetAnswer("catAq1", types.AnswerYes))
	gt.Value(t, store.Dirty()).Equal(true)

	store.MarkSaved()
	gt.Value(t, store.Dirty()).Equal(false)

	store.SetMetadata(model.Metadata{ProjectName: "payroll migration"})
	gt.Value(t, store.Dirty()).Equal(true)
}

func TestAnswerStoreReset(t *testing.T) {
	qset := testQuestionSet(t)
	store := model.NewAnswerStore(qset)

	gt.NoError(t, store.SetLanguage(types.LangFR))
	gt.NoError(t, store.SetAnswer("catAq1", types.AnswerNo))
	gt.NoError(t, store.SetSelectedCategories([]types.CategoryID{"C"}))
	store.SetMetadata(model.Metadata{ProjectName: "x"})

	store.Reset()

	gt.Array(t, store.Answers()).Length(0)
	gt.Array(t, store.SelectedOptionalCategories()).Length(0)
	gt.Value(t, store.Metadata()).Equal(model.Metadata{})
	gt.Value(t, store.Dirty()).Equal(false)
	// language survives a reset
	gt.Value(t, store.Language()).Equal(types.LangFR)
}

func TestAnswerStoreRestore(t *testing.T) {
	qset := testQuestionSet(t)

	t.Run("round trip", func(t *testing.T) {
		store := model.NewAnswerStore(qset)
		scenario := &model.Scenario{
			FormatVersion: model.FormatVersion,
			Language:      types.LangFR,
			Answers: []model.Answer{
				{QuestionID: "catAq1", Value: types.AnswerNo},
				{QuestionID: "catCq2", Value: types.AnswerUnknown},
			},
			SelectedOptionalCategories: []types.CategoryID{"C"},
			Metadata:                   model.Metadata{ProjectName: "hris rollout", CompletedBy: "J. Tremblay"},
		}

		skipped, err := store.Restore(scenario)
		gt.NoError(t, err).Required()
		gt.Array(t, skipped).Length(0)
		gt.Value(t, store.Language()).Equal(types.LangFR)
		gt.Value(t, store.Metadata().ProjectName).Equal("hris rollout")
		gt.Value(t, store.Dirty()).Equal(false)

		v, ok := store.Answer("catCq2")
		gt.Value(t, ok).Equal(true)
		gt.Value(t, v).Equal(types.AnswerUnknown)
	})

	t.Run("skips answers for removed questions", func(t *testing.T) {
		store := model.NewAnswerStore(qset)
		scenario := &model.Scenario{
			FormatVersion: model.FormatVersion,
			Language:      types.LangEN,
			Answers: []model.Answer{
				{QuestionID: "retired_question", Value: types.AnswerNo},
				{QuestionID: "catAq1", Value: types.AnswerYes},
			},
		}

		skipped, err := store.Restore(scenario)
		gt.NoError(t, err).Required()
		gt.Array(t, skipped).Equal([]types.QuestionID{"retired_question"})
		gt.Array(t, store.Answers()).Length(1)
	})

	t.Run("selection recomputed from answered categories", func(t *testing.T) {
		// A record whose optional selection list lost category D but still
		// carries a D answer must bring D back into scope.
		store := model.NewAnswerStore(qset)
		scenario := &model.Scenario{
			FormatVersion: model.FormatVersion,
			Language:      types.LangEN,
			Answers: []model.Answer{
				{QuestionID: "catDq1", Value: types.AnswerNo},
			},
			SelectedOptionalCategories: []types.CategoryID{"C"},
		}

		_, err := store.Restore(scenario)
		gt.NoError(t, err).Required()
		gt.Array(t, store.SelectedCategories()).Equal([]types.CategoryID{"A", "B", "C", "D"})
	})

	t.Run("invalid language falls back to english", func(t *testing.T) {
		store := model.NewAnswerStore(qset)
		scenario := &model.Scenario{FormatVersion: model.FormatVersion, Language: "de"}
		_, err := store.Restore(scenario)
		gt.NoError(t, err).Required()
		gt.Value(t, store.Language()).Equal(types.LangEN)
	})

	t.Run("nil scenario rejected", func(t *testing.T) {
		store := model.NewAnswerStore(qset)
		_, err := store.Restore(nil)
		gt.Error(t, err)
	})
}
