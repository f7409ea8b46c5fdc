package service

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"slintsurvey/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidAccessCode  = errors.New("invalid access code")
)

const (
	// SessionTTL bounds both the admin session and the survey access grant
	SessionTTL = 8 * time.Hour

	surveyScope = "survey"
)

// AuthSettings carries the shared credentials checked by AuthService
type AuthSettings struct {
	AdminUsername string
	AdminPassword string
	AccessCode    string
	JWTSecret     string
}

// AuthService handles admin login and the respondent access code gate
type AuthService struct {
	adminUsername string
	adminPassword string
	accessCode    string
	jwtSecret     []byte
	now           func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(settings AuthSettings) *AuthService {
	return &AuthService{
		adminUsername: settings.AdminUsername,
		adminPassword: settings.AdminPassword,
		accessCode:    strings.TrimSpace(settings.AccessCode),
		jwtSecret:     []byte(settings.JWTSecret),
		now:           time.Now,
	}
}

// Login validates admin credentials and returns a session token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if !equal(username, s.adminUsername) || !equal(password, s.adminPassword) {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	claims := &model.AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	tokenString, err := s.sign(claims)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: tokenString}, nil
}

// ValidateAdminToken validates an admin session token and returns its claims
func (s *AuthService) ValidateAdminToken(tokenString string) (*model.AdminClaims, error) {
	claims := &model.AdminClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Username == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateAccessCode compares the trimmed code with the configured one and,
// on a match, issues a survey access token
func (s *AuthService) ValidateAccessCode(code string) (string, error) {
	if s.accessCode == "" || !equal(strings.TrimSpace(code), s.accessCode) {
		return "", ErrInvalidAccessCode
	}

	now := s.now()
	return s.sign(&model.SurveyAccessClaims{
		Scope: surveyScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	})
}

// CheckSurveyAccess validates a survey access token
func (s *AuthService) CheckSurveyAccess(tokenString string) (*model.SurveyAccessClaims, error) {
	claims := &model.SurveyAccessClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Scope != surveyScope {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthService) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
