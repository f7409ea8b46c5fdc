package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"slintsurvey/internal/model"
	"slintsurvey/internal/service"
)

// SurveyHandler serves the catalog and respondent drafts
type SurveyHandler struct {
	surveySvc *service.SurveyService
	logger    *zap.Logger
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService, logger *zap.Logger) *SurveyHandler {
	return &SurveyHandler{
		surveySvc: surveySvc,
		logger:    logger,
	}
}

// Schema handles GET /v1/survey/schema
func (h *SurveyHandler) Schema(w http.ResponseWriter, r *http.Request) {
	schema := h.surveySvc.Schema()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"title":    schema.Title(),
		"sections": schema.Views(),
	})
}

// Visibility handles POST /v1/survey/visibility
func (h *SurveyHandler) Visibility(w http.ResponseWriter, r *http.Request) {
	var req model.VisibilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sections": h.surveySvc.Visibility(req.Answers),
	})
}

// StartDraft handles POST /v1/survey/drafts
func (h *SurveyHandler) StartDraft(w http.ResponseWriter, r *http.Request) {
	view, err := h.surveySvc.StartDraft(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// GetDraft handles GET /v1/survey/drafts/{id}
func (h *SurveyHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	view, err := h.surveySvc.Draft(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SetAnswer handles PUT /v1/survey/drafts/{id}/answers/{questionId}
func (h *SurveyHandler) SetAnswer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req model.SetAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.surveySvc.SetAnswer(r.Context(), vars["id"], vars["questionId"], req.Value)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ClearAnswer handles DELETE /v1/survey/drafts/{id}/answers/{questionId}
func (h *SurveyHandler) ClearAnswer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	view, err := h.surveySvc.ClearAnswer(r.Context(), vars["id"], vars["questionId"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SubmitDraft handles POST /v1/survey/drafts/{id}/submit
func (h *SurveyHandler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	resp, err := h.surveySvc.Submit(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"ok": true, "id": resp.ID})
}
