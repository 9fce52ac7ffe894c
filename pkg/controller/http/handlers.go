package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskident-lab/rrit/pkg/domain/model"
	"github.com/riskident-lab/rrit/pkg/domain/types"
	"github.com/riskident-lab/rrit/pkg/utils/errutil"
)

// requestLang resolves the display language for a request: explicit
// ?lang= query first, the session language otherwise.
func (s *Server) requestLang(r *http.Request) types.Lang {
	if q := r.URL.Query().Get("lang"); q != "" {
		return types.ParseLang(q)
	}
	return s.uc.Assessment.Language()
}

type questionView struct {
	ID            types.QuestionID `json:"id"`
	CategoryID    types.CategoryID `json:"categoryId"`
	Text          string           `json:"text"`
	Why           string           `json:"why,omitempty"`
	RiskStatement string           `json:"riskStatement,omitempty"`
	Mitigations   []string         `json:"mitigations,omitempty"`
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	lang := s.requestLang(r)

	questions := s.uc.Assessment.QuestionSet().Questions()
	views := make([]questionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, questionView{
			ID:            q.ID,
			CategoryID:    q.CategoryID,
			Text:          q.Text.Resolve(lang),
			Why:           q.Why.Resolve(lang),
			RiskStatement: q.RiskStatement.Resolve(lang),
			Mitigations:   q.Mitigations.Resolve(lang),
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"language":  lang,
		"questions": views,
	})
}

type categoryView struct {
	ID        types.CategoryID `json:"id"`
	Name      string           `json:"name"`
	Mandatory bool             `json:"mandatory"`
	Critical  bool             `json:"critical"`
	Selected  bool             `json:"selected"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	lang := s.requestLang(r)

	categories := s.uc.Assessment.QuestionSet().Categories()
	views := make([]categoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, categoryView{
			ID:        cat.ID,
			Name:      cat.Name.Resolve(lang),
			Mandatory: cat.Mandatory,
			Critical:  cat.Critical,
			Selected:  contains(s.uc.Assessment.SelectedCategories(), cat.ID),
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"language":   lang,
		"categories": views,
	})
}

func contains(ids []types.CategoryID, id types.CategoryID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (s *Server) handleGetAnswers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"answers": s.uc.Assessment.Answers(),
	})
}

func (s *Server) handlePutAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	questionID := types.QuestionID(chi.URLParam(r, "questionID"))

	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	value, err := types.ParseAnswerValue(req.Value)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	if err := s.uc.Assessment.SetAnswer(ctx, questionID, value); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"questionId": questionID,
		"value":      value,
	})
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"categories": s.uc.Assessment.SelectedCategories(),
	})
}

func (s *Server) handlePutSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Categories []types.CategoryID `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	if err := s.uc.Assessment.SelectCategories(ctx, req.Categories); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"categories": s.uc.Assessment.SelectedCategories(),
	})
}

func (s *Server) handleGetMetadata(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.uc.Assessment.Metadata())
}

func (s *Server) handlePutMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var meta model.Metadata
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	s.uc.Assessment.SetMetadata(meta)
	respondJSON(w, http.StatusOK, meta)
}

func (s *Server) handlePutLanguage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	lang := types.Lang(req.Language)
	if err := s.uc.Assessment.SetLanguage(lang); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"language": lang})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	lang := s.requestLang(r)
	respondJSON(w, http.StatusOK, s.uc.Assessment.Summarize(r.Context(), lang))
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scenario, err := s.uc.Assessment.Save(ctx)
	if err != nil {
		// Persistence failure is non-fatal: the session keeps working and
		// the renderer shows a warning.
		respondJSON(w, http.StatusOK, map[string]any{
			"saved":   false,
			"warning": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"saved":    true,
		"scenario": scenario,
	})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scenario, err := s.uc.Assessment.Load(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}
	if scenario == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondJSON(w, http.StatusOK, scenario)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.uc.Assessment.Clear(ctx); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
