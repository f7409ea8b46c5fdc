package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"slintsurvey/internal/service"
)

type contextKey string

const (
	AdminKey        contextKey = "admin"
	SurveyAccessKey contextKey = "surveyAccess"
)

// Cookie names shared with the web client
const (
	AdminCookie  = "slint_admin_session"
	AccessCookie = "slint_survey_access"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireAdmin validates the admin session from the cookie, the
// Authorization header or, for WebSocket upgrades, the token query param
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r, AdminCookie)
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			unauthorized(w, "missing admin session")
			return
		}

		claims, err := m.authSvc.ValidateAdminToken(token)
		if err != nil {
			unauthorized(w, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), AdminKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSurveyAccess validates the survey access grant from the cookie or
// the Authorization header
func (m *AuthMiddleware) RequireSurveyAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := SurveyAccessToken(r)
		if token == "" {
			unauthorized(w, "survey access code required")
			return
		}

		if _, err := m.authSvc.CheckSurveyAccess(token); err != nil {
			unauthorized(w, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), SurveyAccessKey, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdmin extracts the admin username from context
func GetAdmin(ctx context.Context) string {
	if v, ok := ctx.Value(AdminKey).(string); ok {
		return v
	}
	return ""
}

// HasSurveyAccess reports whether the request passed RequireSurveyAccess
func HasSurveyAccess(ctx context.Context) bool {
	v, _ := ctx.Value(SurveyAccessKey).(bool)
	return v
}

// SurveyAccessToken returns the survey access token carried by the request,
// bearer header first, then the access cookie
func SurveyAccessToken(r *http.Request) string {
	return extractToken(r, AccessCookie)
}

// extractToken prefers a bearer token over the named cookie
func extractToken(r *http.Request, cookie string) string {
	if token := extractBearerToken(r); token != "" {
		return token
	}
	if c, err := r.Cookie(cookie); err == nil {
		return c.Value
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
