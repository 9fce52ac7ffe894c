package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskident-lab/rrit/pkg/domain/types"
)

// Category is a named grouping of related questions. Mandatory categories
// are always in scope; critical categories force the highest classification
// as soon as a single negative or unknown answer is recorded.
type Category struct {
	ID        types.CategoryID
	Name      Text
	Mandatory bool
	Critical  bool
}

// Validate checks if the Category is valid
func (c *Category) Validate() error {
	if err := c.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid category ID")
	}
	if c.Name.IsEmpty() {
		return goerr.New("category name is required", goerr.V("id", c.ID))
	}
	return nil
}

// Question is a single questionnaire item. Every question belongs to
// exactly one category; membership does not change after load.
type Question struct {
	ID            types.QuestionID
	CategoryID    types.CategoryID
	Text          Text
	Why           Text
	RiskStatement Text
	Mitigations   TextList
}

// Validate checks if the Question is valid
func (q *Question) Validate() error {
	if err := q.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid question ID")
	}
	if err := q.CategoryID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid category ID", goerr.V("question", q.ID))
	}
	if q.Text.IsEmpty() {
		return goerr.New("question text (en) is required", goerr.V("id", q.ID))
	}
	return nil
}

// QuestionSet is the read-only question catalog loaded once at startup:
// an ordered sequence of questions plus their category definitions.
type QuestionSet struct {
	categories  []Category
	questions   []Question
	categoryIdx map[types.CategoryID]int
	questionIdx map[types.QuestionID]int
}

// NewQuestionSet builds a QuestionSet and validates it: IDs must be unique,
// every question must belong to a known category, and exactly two
// categories must be mandatory.
func NewQuestionSet(categories []Category, questions []Question) (*QuestionSet, error) {
	qs := &QuestionSet{
		categories:  categories,
		questions:   questions,
		categoryIdx: make(map[types.CategoryID]int, len(categories)),
		questionIdx: make(map[types.QuestionID]int, len(questions)),
	}

	mandatory := 0
	for i, cat := range categories {
		if err := cat.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid category")
		}
		if _, exists := qs.categoryIdx[cat.ID]; exists {
			return nil, goerr.New("duplicate category ID", goerr.V("id", cat.ID))
		}
		qs.categoryIdx[cat.ID] = i
		if cat.Mandatory {
			mandatory++
		}
	}
	if mandatory != 2 {
		return nil, goerr.New("exactly two categories must be mandatory", goerr.V("mandatory", mandatory))
	}

	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid question")
		}
		if _, exists := qs.questionIdx[q.ID]; exists {
			return nil, goerr.New("duplicate question ID", goerr.V("id", q.ID))
		}
		if _, known := qs.categoryIdx[q.CategoryID]; !known {
			return nil, goerr.New("question references unknown category",
				goerr.V("question", q.ID), goerr.V("category", q.CategoryID))
		}
		qs.questionIdx[q.ID] = i
	}

	return qs, nil
}

// Categories returns the category definitions in declaration order
func (qs *QuestionSet) Categories() []Category {
	return qs.categories
}

// Questions returns the questions in declaration order
func (qs *QuestionSet) Questions() []Question {
	return qs.questions
}

// Category looks up a category by ID
func (qs *QuestionSet) Category(id types.CategoryID) (*Category, bool) {
	i, ok := qs.categoryIdx[id]
	if !ok {
		return nil, false
	}
	return &qs.categories[i], true
}

// Question looks up a question by ID
func (qs *QuestionSet) Question(id types.QuestionID) (*Question, bool) {
	i, ok := qs.questionIdx[id]
	if !ok {
		return nil, false
	}
	return &qs.questions[i], true
}

// MandatoryCategories returns the IDs of the mandatory categories in
// declaration order.
func (qs *QuestionSet) MandatoryCategories() []types.CategoryID {
	var ids []types.CategoryID
	for _, cat := range qs.categories {
		if cat.Mandatory {
			ids = append(ids, cat.ID)
		}
	}
	return ids
}
