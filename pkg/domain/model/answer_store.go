package model

import (
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskident-lab/rrit/pkg/domain/types"
)

// AnswerStore is the authoritative in-memory state of an assessment in
// progress: the recorded answers, the canonical category selection, the
// active language, and the scenario metadata. Renderers push changes into
// it and scoring reads only from it; presentation state is never a source
// of truth.
//
// The category selection is one canonical set. Mandatory categories are
// always in scope and cannot be deselected; callers select and deselect
// optional categories only, and every view of the selection is derived
// from the same set.
type AnswerStore struct {
	mu       sync.RWMutex
	qset     *QuestionSet
	answers  map[types.QuestionID]types.AnswerValue
	optional map[types.CategoryID]bool
	language types.Lang
	metadata Metadata
	dirty    bool
}

// NewAnswerStore creates an empty store bound to a question set
func NewAnswerStore(qset *QuestionSet) *AnswerStore {
	return &AnswerStore{
		qset:     qset,
		answers:  make(map[types.QuestionID]types.AnswerValue),
		optional: make(map[types.CategoryID]bool),
		language: types.LangEN,
	}
}

// SetAnswer records an answer for a question, replacing any prior answer.
// An unknown question ID or an invalid value is rejected with an error.
func (s *AnswerStore) SetAnswer(id types.QuestionID, value types.AnswerValue) error {
	if !value.IsValid() {
		return goerr.New("invalid answer value", goerr.V("question", id), goerr.V("value", value))
	}
	if _, ok := s.qset.Question(id); !ok {
		return goerr.New("unknown question ID", goerr.V("question", id))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[id] = value
	s.dirty = true
	return nil
}

// Answer returns the recorded answer for a question, if any
func (s *AnswerStore) Answer(id types.QuestionID) (types.AnswerValue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.answers[id]
	return v, ok
}

// Answers returns all recorded answers in question-set order. Questions
// without a recorded answer are omitted, which distinguishes "unanswered"
// from every legal value.
func (s *AnswerStore) Answers() []Answer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.answersLocked()
}

func (s *AnswerStore) answersLocked() []Answer {
	answers := make([]Answer, 0, len(s.answers))
	for _, q := range s.qset.Questions() {
		if v, ok := s.answers[q.ID]; ok {
			answers = append(answers, Answer{QuestionID: q.ID, Value: v})
		}
	}
	return answers
}

// SetSelectedCategories replaces the optional category selection. Mandatory
// categories are implicitly always selected and may be, but need not be,
// included. An ID absent from the category catalog is an error and leaves
// the selection unchanged.
func (s *AnswerStore) SetSelectedCategories(ids []types.CategoryID) error {
	optional := make(map[types.CategoryID]bool, len(ids))
	for _, id := range ids {
		cat, ok := s.qset.Category(id)
		if !ok {
			return goerr.New("unknown category ID", goerr.V("category", id))
		}
		if !cat.Mandatory {
			optional[id] = true
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.optional = optional
	s.dirty = true
	return nil
}

// SelectedCategories returns the canonical selection in category
// declaration order. It always includes the mandatory categories.
func (s *AnswerStore) SelectedCategories() []types.CategoryID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedLocked()
}

func (s *AnswerStore) selectedLocked() []types.CategoryID {
	var ids []types.CategoryID
	for _, cat := range s.qset.Categories() {
		if cat.Mandatory || s.optional[cat.ID] {
			ids = append(ids, cat.ID)
		}
	}
	return ids
}

// IsSelected reports whether a category is currently in scope
func (s *AnswerStore) IsSelected(id types.CategoryID) bool {
	cat, ok := s.qset.Category(id)
	if !ok {
		return false
	}
	if cat.Mandatory {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.optional[id]
}

// SelectedOptionalCategories returns only the explicitly selected optional
// categories, in declaration order. This is what gets persisted.
func (s *AnswerStore) SelectedOptionalCategories() []types.CategoryID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]types.CategoryID, 0, len(s.optional))
	for _, cat := range s.qset.Categories() {
		if !cat.Mandatory && s.optional[cat.ID] {
			ids = append(ids, cat.ID)
		}
	}
	return ids
}

// SetLanguage sets the active display language
func (s *AnswerStore) SetLanguage(lang types.Lang) error {
	if !lang.IsValid() {
		return goerr.New("invalid language", goerr.V("language", lang))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
	s.dirty = true
	return nil
}

// Language returns the active display language
func (s *AnswerStore) Language() types.Lang {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// SetMetadata replaces the scenario metadata
func (s *AnswerStore) SetMetadata(meta Metadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metadata = meta
	s.dirty = true
}

// Metadata returns the scenario metadata
func (s *AnswerStore) Metadata() Metadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metadata
}

// Dirty reports whether the store changed since the last successful save
func (s *AnswerStore) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// MarkSaved clears the dirty flag after a successful save
func (s *AnswerStore) MarkSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

// Reset clears all answers, the optional selection, and the metadata.
// The language is kept; starting a new scenario does not switch languages.
func (s *AnswerStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = make(map[types.QuestionID]types.AnswerValue)
	s.optional = make(map[types.CategoryID]bool)
	s.metadata = Metadata{}
	s.dirty = false
}

// Restore replaces the store contents from a persisted scenario. Answers
// referencing questions no longer in the catalog are skipped and reported.
// The effective selection is recomputed as the persisted optional selection
// unioned with the categories of the restored answers, so a restored
// session always scores every category it has answers for.
func (s *AnswerStore) Restore(scenario *Scenario) (skipped []types.QuestionID, err error) {
	if scenario == nil {
		return nil, goerr.New("cannot restore nil scenario")
	}

	answers := make(map[types.QuestionID]types.AnswerValue, len(scenario.Answers))
	optional := make(map[types.CategoryID]bool)

	for _, id := range scenario.SelectedOptionalCategories {
		cat, ok := s.qset.Category(id)
		if !ok {
			continue
		}
		if !cat.Mandatory {
			optional[id] = true
		}
	}

	for _, ans := range scenario.Answers {
		q, ok := s.qset.Question(ans.QuestionID)
		if !ok {
			skipped = append(skipped, ans.QuestionID)
			continue
		}
		value, perr := types.ParseAnswerValue(ans.Value.String())
		if perr != nil {
			skipped = append(skipped, ans.QuestionID)
			continue
		}
		answers[ans.QuestionID] = value
		if cat, ok := s.qset.Category(q.CategoryID); ok && !cat.Mandatory {
			optional[q.CategoryID] = true
		}
	}

	lang := scenario.Language
	if !lang.IsValid() {
		lang = types.LangEN
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = answers
	s.optional = optional
	s.language = lang
	s.metadata = scenario.Metadata
	s.dirty = false
	return skipped, nil
}
