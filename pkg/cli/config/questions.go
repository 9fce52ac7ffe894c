package config

import (
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/riskident-lab/rrit/pkg/domain/model"
	"github.com/riskident-lab/rrit/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// QuestionSet holds CLI flags for the question catalog configuration:
// a TOML file defining the categories and a JSON file with the bilingual
// questions (the original tool's data file format).
type QuestionSet struct {
	categoriesPath string
	questionsPath  string
}

// Flags returns CLI flags for question set configuration
func (q *QuestionSet) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "categories",
			Usage:       "Path to the categories TOML file",
			Value:       "data/categories.toml",
			Sources:     cli.EnvVars("RRIT_CATEGORIES"),
			Destination: &q.categoriesPath,
		},
		&cli.StringFlag{
			Name:        "questions",
			Usage:       "Path to the bilingual questions JSON file",
			Value:       "data/questions.json",
			Sources:     cli.EnvVars("RRIT_QUESTIONS"),
			Destination: &q.questionsPath,
		},
	}
}

// categoryConfig is one [[category]] entry in the TOML file
type categoryConfig struct {
	ID        string `toml:"id"`
	NameEN    string `toml:"name_en"`
	NameFR    string `toml:"name_fr"`
	Mandatory bool   `toml:"mandatory"`
	Critical  bool   `toml:"critical"`
}

type categoriesFile struct {
	Categories []categoryConfig `toml:"category"`
}

// questionRecord is one entry in the questions JSON file. The field names
// follow the original data file (rrit_questions_bilingual.json).
type questionRecord struct {
	ID            string              `json:"id"`
	Category      string              `json:"category"`
	Text          map[string]string   `json:"text"`
	Why           map[string]string   `json:"why"`
	RiskStatement map[string]string   `json:"risk_statement"`
	Mitigations   map[string][]string `json:"mitigations"`
}

// questionsFile accepts both a bare array and a {"questions": [...]}
// wrapper, like the original loader did.
type questionsFile struct {
	Questions []questionRecord `json:"questions"`
}

// Configure loads and validates the question catalog
func (q *QuestionSet) Configure() (*model.QuestionSet, error) {
	categories, err := loadCategories(q.categoriesPath)
	if err != nil {
		return nil, err
	}

	questions, err := loadQuestions(q.questionsPath)
	if err != nil {
		return nil, err
	}

	qset, err := model.NewQuestionSet(categories, questions)
	if err != nil {
		return nil, goerr.Wrap(err, "question set validation failed",
			goerr.V("categories", q.categoriesPath), goerr.V("questions", q.questionsPath))
	}
	return qset, nil
}

func loadCategories(path string) ([]model.Category, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read categories file", goerr.V("path", path))
	}

	var file categoriesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse categories TOML", goerr.V("path", path))
	}

	categories := make([]model.Category, 0, len(file.Categories))
	for _, c := range file.Categories {
		categories = append(categories, model.Category{
			ID: types.CategoryID(c.ID),
			Name: model.Text{
				types.LangEN: c.NameEN,
				types.LangFR: c.NameFR,
			},
			Mandatory: c.Mandatory,
			Critical:  c.Critical,
		})
	}
	return categories, nil
}

func loadQuestions(path string) ([]model.Question, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read questions file", goerr.V("path", path))
	}

	var records []questionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		var file questionsFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, goerr.Wrap(err, "failed to parse questions JSON", goerr.V("path", path))
		}
		records = file.Questions
	}

	questions := make([]model.Question, 0, len(records))
	for _, rec := range records {
		questions = append(questions, model.Question{
			ID:            types.QuestionID(rec.ID),
			CategoryID:    types.CategoryID(rec.Category),
			Text:          toText(rec.Text),
			Why:           toText(rec.Why),
			RiskStatement: toText(rec.RiskStatement),
			Mitigations:   toTextList(rec.Mitigations),
		})
	}
	return questions, nil
}

func toText(m map[string]string) model.Text {
	text := make(model.Text, len(m))
	for lang, s := range m {
		text[types.Lang(lang)] = s
	}
	return text
}

func toTextList(m map[string][]string) model.TextList {
	list := make(model.TextList, len(m))
	for lang, items := range m {
		list[types.Lang(lang)] = items
	}
	return list
}
