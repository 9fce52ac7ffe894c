package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/riskident-lab/rrit/pkg/domain/model"
	"github.com/riskident-lab/rrit/pkg/domain/types"
)

func TestNewQuestionSetValidation(t *testing.T) {
	categories := []model.Category{
		{ID: "A", Name: model.Text{types.LangEN: "A"}, Mandatory: true, Critical: true},
		{ID: "B", Name: model.Text{types.LangEN: "B"}, Mandatory: true, Critical: true},
		{ID: "C", Name: model.Text{types.LangEN: "C"}},
	}
	questions := []model.Question{
		{ID: "q1", CategoryID: "A", Text: model.Text{types.LangEN: "Q1"}},
		{ID: "q2", CategoryID: "C", Text: model.Text{types.LangEN: "Q2"}},
	}

	t.Run("valid", func(t *testing.T) {
		qset, err := model.NewQuestionSet(categories, questions)
		gt.NoError(t, err).Required()
		gt.Array(t, qset.MandatoryCategories()).Equal([]types.CategoryID{"A", "B"})

		q, ok := qset.Question("q2")
		gt.Value(t, ok).Equal(true)
		gt.Value(t, q.CategoryID).Equal(types.CategoryID("C"))

		_, ok = qset.Category("Z")
		gt.Value(t, ok).Equal(false)
	})

	t.Run("duplicate question ID", func(t *testing.T) {
		dup := append(questions, model.Question{
			ID: "q1", CategoryID: "B", Text: model.Text{types.LangEN: "dup"},
		})
		_, err := model.NewQuestionSet(categories, dup)
		gt.Error(t, err)
	})

	t.Run("duplicate category ID", func(t *testing.T) {
		dup := append(categories, model.Category{ID: "C", Name: model.Text{types.LangEN: "C2"}})
		_, err := model.NewQuestionSet(dup, questions)
		gt.Error(t, err)
	})

	t.Run("question with unknown category", func(t *testing.T) {
		bad := append(questions, model.Question{
			ID: "q3", CategoryID: "Z", Text: model.Text{types.LangEN: "orphan"},
		})
		_, err := model.NewQuestionSet(categories, bad)
		gt.Error(t, err)
	})

	t.Run("wrong mandatory count", func(t *testing.T) {
		one := []model.Category{
			{ID: "A", Name: model.Text{types.LangEN: "A"}, Mandatory: true},
			{ID: "B", Name: model.Text{types.LangEN: "B"}},
		}
		_, err := model.NewQuestionSet(one, nil)
		gt.Error(t, err)
	})

	t.Run("category without name", func(t *testing.T) {
		unnamed := []model.Category{
			{ID: "A", Name: model.Text{}, Mandatory: true},
			{ID: "B", Name: model.Text{types.LangEN: "B"}, Mandatory: true},
		}
		_, err := model.NewQuestionSet(unnamed, nil)
		gt.Error(t, err)
	})
}

func TestTextResolve(t *testing.T) {
	full := model.Text{types.LangEN: "hello", types.LangFR: "bonjour"}
	gt.Value(t, full.Resolve(types.LangFR)).Equal("bonjour")
	gt.Value(t, full.Resolve(types.LangEN)).Equal("hello")

	// missing translation falls back to english
	enOnly := model.Text{types.LangEN: "hello"}
	gt.Value(t, enOnly.Resolve(types.LangFR)).Equal("hello")

	list := model.TextList{types.LangEN: []string{"a", "b"}}
	gt.Array(t, list.Resolve(types.LangFR)).Equal([]string{"a", "b"})
}
