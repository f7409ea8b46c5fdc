package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"slintsurvey/internal/model"
	"slintsurvey/internal/repository"
	"slintsurvey/internal/service"
	"slintsurvey/internal/survey"
	"slintsurvey/internal/transport/rest/middleware"
)

const maxBodyBytes = 1 << 20

// AuthHandler handles admin sessions and the survey access gate
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	middleware.SetSessionCookie(w, r, middleware.AdminCookie, resp.Token, service.SessionTTL)
	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearCookie(w, r, middleware.AdminCookie)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GrantAccess handles POST /v1/survey/access
func (h *AuthHandler) GrantAccess(w http.ResponseWriter, r *http.Request) {
	var req model.AccessCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, "Access code is required.")
		return
	}

	token, err := h.authSvc.ValidateAccessCode(req.Code)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	middleware.SetSessionCookie(w, r, middleware.AccessCookie, token, service.SessionTTL)
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "token": token})
}

// CheckAccess handles GET /v1/survey/access. It accepts the same bearer
// token or cookie as the protected survey routes and answers 401 without one.
func (h *AuthHandler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	token := middleware.SurveyAccessToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]bool{"granted": false})
		return
	}
	if _, err := h.authSvc.CheckSurveyAccess(token); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]bool{"granted": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"granted": true})
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps service errors to status codes; anything unknown is
// logged and reported as a 500 without detail
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, survey.ErrNotReady), errors.Is(err, service.ErrUnknownQuestion):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnknownDraft), errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
