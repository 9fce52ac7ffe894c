package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/riskident-lab/rrit/pkg/cli/config"
	"github.com/riskident-lab/rrit/pkg/domain/types"
)

const testCategoriesTOML = `
[[category]]
id = "A"
name_en = "Regulatory Compliance"
name_fr = "Conformité réglementaire"
mandatory = true
critical = true

[[category]]
id = "B"
name_en = "Data Security and Privacy"
name_fr = "Sécurité des données et confidentialité"
mandatory = true
critical = true

[[category]]
id = "C"
name_en = "HR Technology"
name_fr = "Technologie RH"
`

const testQuestionsJSON = `[
  {
    "id": "q_data_resident",
    "category": "B",
    "text": {
      "en": "Is all personal data stored in an approved jurisdiction?",
      "fr": "Toutes les données personnelles sont-elles stockées dans un territoire approuvé?"
    },
    "why": {"en": "Residency obligations apply to employee data."},
    "risk_statement": {"en": "Data may be stored outside approved jurisdictions."},
    "mitigations": {"en": ["Confirm hosting region with the vendor."]}
  },
  {
    "id": "q_vendor_assessed",
    "category": "A",
    "text": {"en": "Has the vendor passed a compliance assessment?"}
  },
  {
    "id": "q_integration_ready",
    "category": "C",
    "text": {"en": "Does the product integrate with the existing HRIS?"}
  }
]`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestQuestionSetConfigure(t *testing.T) {
	cfg := config.NewQuestionSetForTest(
		writeFixture(t, "categories.toml", testCategoriesTOML),
		writeFixture(t, "questions.json", testQuestionsJSON),
	)

	qset, err := cfg.Configure()
	gt.NoError(t, err).Required()

	gt.Array(t, qset.Categories()).Length(3)
	gt.Array(t, qset.Questions()).Length(3)
	gt.Array(t, qset.MandatoryCategories()).Equal([]types.CategoryID{"A", "B"})

	q, ok := qset.Question("q_data_resident")
	gt.Value(t, ok).Equal(true)
	gt.Value(t, q.CategoryID).Equal(types.CategoryID("B"))
	gt.Value(t, q.Text.Resolve(types.LangFR)).
		Equal("Toutes les données personnelles sont-elles stockées dans un territoire approuvé?")
	gt.Array(t, q.Mitigations.Resolve(types.LangEN)).Length(1)

	cat, ok := qset.Category("A")
	gt.Value(t, ok).Equal(true)
	gt.Value(t, cat.Critical).Equal(true)
	gt.Value(t, cat.Name.Resolve(types.LangFR)).Equal("Conformité réglementaire")
}

func TestQuestionSetConfigureWrappedQuestions(t *testing.T) {
	cfg := config.NewQuestionSetForTest(
		writeFixture(t, "categories.toml", testCategoriesTOML),
		writeFixture(t, "questions.json", `{"questions": `+testQuestionsJSON+`}`),
	)

	qset, err := cfg.Configure()
	gt.NoError(t, err).Required()
	gt.Array(t, qset.Questions()).Length(3)
}

func TestQuestionSetConfigureErrors(t *testing.T) {
	t.Run("missing categories file", func(t *testing.T) {
		cfg := config.NewQuestionSetForTest(
			filepath.Join(t.TempDir(), "nope.toml"),
			writeFixture(t, "questions.json", testQuestionsJSON),
		)
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("malformed questions JSON", func(t *testing.T) {
		cfg := config.NewQuestionSetForTest(
			writeFixture(t, "categories.toml", testCategoriesTOML),
			writeFixture(t, "questions.json", "{not json"),
		)
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("question referencing unknown category fails validation", func(t *testing.T) {
		badQuestions := `[{"id": "q1", "category": "Z", "text": {"en": "Orphan?"}}]`
		cfg := config.NewQuestionSetForTest(
			writeFixture(t, "categories.toml", testCategoriesTOML),
			writeFixture(t, "questions.json", badQuestions),
		)
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("single mandatory category fails validation", func(t *testing.T) {
		oneMandatory := `
[[category]]
id = "A"
name_en = "A"
mandatory = true
`
		cfg := config.NewQuestionSetForTest(
			writeFixture(t, "categories.toml", oneMandatory),
			writeFixture(t, "questions.json", "[]"),
		)
		_, err := cfg.Configure()
		gt.Error(t, err)
	})
}

func TestDefaultDataFiles(t *testing.T) {
	// the repo ships a complete catalog; make sure it stays loadable
	root := filepath.Join("..", "..", "..")
	cfg := config.NewQuestionSetForTest(
		filepath.Join(root, "data", "categories.toml"),
		filepath.Join(root, "data", "questions.json"),
	)

	qset, err := cfg.Configure()
	gt.NoError(t, err).Required()
	gt.Array(t, qset.MandatoryCategories()).Equal([]types.CategoryID{"A", "B"})
	gt.Number(t, len(qset.Questions())).GreaterOrEqual(20)
	for _, q := range qset.Questions() {
		gt.Value(t, q.Text.Resolve(types.LangEN)).NotEqual("")
		gt.Value(t, q.Text.Resolve(types.LangFR)).NotEqual("")
	}
}
