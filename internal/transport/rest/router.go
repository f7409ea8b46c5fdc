package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"slintsurvey/internal/service"
	"slintsurvey/internal/transport/rest/handler"
	"slintsurvey/internal/transport/rest/middleware"
	"slintsurvey/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	SurveyService   *service.SurveyService
	ResponseService *service.ResponseService
	ReportService   *service.ReportService
	WSHub           *ws.Hub
	AllowedOrigins  []string
	Logger          *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	surveyHandler := handler.NewSurveyHandler(c.SurveyService, logger)
	responseHandler := handler.NewResponseHandler(c.ResponseService, logger)
	reportHandler := handler.NewReportHandler(c.ReportService, logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(middleware.CORS(c.AllowedOrigins))
	r.Use(middleware.RequestLogger(logger))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	v1.HandleFunc("/survey/access", authHandler.GrantAccess).Methods("POST", "OPTIONS")
	v1.HandleFunc("/survey/access", authHandler.CheckAccess).Methods("GET", "OPTIONS")
	v1.HandleFunc("/survey/schema", surveyHandler.Schema).Methods("GET", "OPTIONS")
	v1.HandleFunc("/survey/visibility", surveyHandler.Visibility).Methods("POST", "OPTIONS")

	// Respondent routes (require survey access)
	respondent := v1.NewRoute().Subrouter()
	respondent.Use(authMW.RequireSurveyAccess)

	respondent.HandleFunc("/survey/drafts", surveyHandler.StartDraft).Methods("POST", "OPTIONS")
	respondent.HandleFunc("/survey/drafts/{id}", surveyHandler.GetDraft).Methods("GET", "OPTIONS")
	respondent.HandleFunc("/survey/drafts/{id}/answers/{questionId}", surveyHandler.SetAnswer).Methods("PUT", "OPTIONS")
	respondent.HandleFunc("/survey/drafts/{id}/answers/{questionId}", surveyHandler.ClearAnswer).Methods("DELETE", "OPTIONS")
	respondent.HandleFunc("/survey/drafts/{id}/submit", surveyHandler.SubmitDraft).Methods("POST", "OPTIONS")
	respondent.HandleFunc("/responses", responseHandler.Submit).Methods("POST", "OPTIONS")

	// Admin routes (require admin session)
	admin := v1.NewRoute().Subrouter()
	admin.Use(authMW.RequireAdmin)

	admin.HandleFunc("/responses", responseHandler.List).Methods("GET", "OPTIONS")
	admin.HandleFunc("/responses/{id}", responseHandler.Get).Methods("GET", "OPTIONS")
	admin.HandleFunc("/responses/{id}", responseHandler.Delete).Methods("DELETE", "OPTIONS")
	admin.HandleFunc("/reports/dashboard", reportHandler.Dashboard).Methods("GET", "OPTIONS")
	admin.HandleFunc("/reports/counts/{questionId}", reportHandler.Counts).Methods("GET", "OPTIONS")
	admin.HandleFunc("/reports/export.csv", reportHandler.Export).Methods("GET", "OPTIONS")

	if c.WSHub != nil {
		wsHandler := ws.NewHandler(c.WSHub, c.AllowedOrigins, logger)
		admin.HandleFunc("/ws/dashboard", wsHandler.DashboardWS).Methods("GET")
	}

	return r
}
