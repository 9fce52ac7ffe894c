package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/riskident-lab/rrit/pkg/domain/types"
)

func TestParseAnswerValue(t *testing.T) {
	cases := map[string]types.AnswerValue{
		"yes":            types.AnswerYes,
		"Yes":            types.AnswerYes,
		"y":              types.AnswerYes,
		"Oui":            types.AnswerYes,
		"o":              types.AnswerYes,
		"no":             types.AnswerNo,
		"Non":            types.AnswerNo,
		"n":              types.AnswerNo,
		"unknown":        types.AnswerUnknown,
		"Inconnu":        types.AnswerUnknown,
		"don't know":     types.AnswerUnknown,
		"na":             types.AnswerNotApplicable,
		"N/A":            types.AnswerNotApplicable,
		"S.O.":           types.AnswerNotApplicable,
		"not applicable": types.AnswerNotApplicable,
		"not_applicable": types.AnswerNotApplicable,
		"Sans objet":     types.AnswerNotApplicable,
		" yes ":          types.AnswerYes,
	}

	for input, want := range cases {
		got, err := types.ParseAnswerValue(input)
		gt.NoError(t, err)
		gt.Value(t, got).Equal(want)
	}
}

func TestParseAnswerValueRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "maybe", "peut-être", "1"} {
		_, err := types.ParseAnswerValue(input)
		gt.Error(t, err)
	}
}

func TestAnswerValueWeight(t *testing.T) {
	gt.Value(t, types.AnswerNo.Weight()).Equal(1.0)
	gt.Value(t, types.AnswerUnknown.Weight()).Equal(0.5)
	gt.Value(t, types.AnswerYes.Weight()).Equal(0.0)
	gt.Value(t, types.AnswerNotApplicable.Weight()).Equal(0.0)
}

func TestAnswerValueIsRisk(t *testing.T) {
	gt.Bool(t, types.AnswerNo.IsRisk()).True()
	gt.Bool(t, types.AnswerUnknown.IsRisk()).True()
	gt.Bool(t, types.AnswerYes.IsRisk()).False()
	gt.Bool(t, types.AnswerNotApplicable.IsRisk()).False()
}

func TestParseLang(t *testing.T) {
	gt.Value(t, types.ParseLang("fr")).Equal(types.LangFR)
	gt.Value(t, types.ParseLang("fr-CA")).Equal(types.LangFR)
	gt.Value(t, types.ParseLang("FR")).Equal(types.LangFR)
	gt.Value(t, types.ParseLang("en")).Equal(types.LangEN)
	gt.Value(t, types.ParseLang("en-US")).Equal(types.LangEN)
	gt.Value(t, types.ParseLang("de")).Equal(types.LangEN)
	gt.Value(t, types.ParseLang("")).Equal(types.LangEN)
}

func TestClassificationLabel(t *testing.T) {
	gt.Value(t, types.ClassificationHigh.Label(types.LangEN)).Equal("Requires Risk Mitigation")
	gt.Value(t, types.ClassificationHigh.Label(types.LangFR)).Equal("Requiert une atténuation des risques")
	gt.Value(t, types.ClassificationNotReviewed.Label(types.LangEN)).Equal("Not reviewed")
	gt.Value(t, types.ClassificationNotReviewed.Label(types.LangFR)).Equal("Non examiné")
}

func TestCategoryIDValidate(t *testing.T) {
	gt.NoError(t, types.CategoryID("A").Validate())
	gt.NoError(t, types.CategoryID("data-security").Validate())
	gt.Error(t, types.CategoryID("").Validate())
	gt.Error(t, types.CategoryID("no spaces").Validate())
}

func TestQuestionIDValidate(t *testing.T) {
	gt.NoError(t, types.QuestionID("catAq1").Validate())
	gt.Error(t, types.QuestionID("").Validate())
}

func TestScenarioIDValidate(t *testing.T) {
	gt.NoError(t, types.ScenarioID("2b6c2a52-6a5f-4f3a-9f1e-8f90a1b2c3d4").Validate())
	gt.Error(t, types.ScenarioID("").Validate())
	gt.Error(t, types.ScenarioID("-leading-dash").Validate())
}
