package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are JWT claims for the admin dashboard session
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SurveyAccessClaims are JWT claims granted after a valid survey access code
type SurveyAccessClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token string `json:"token"`
}

// AccessCodeRequest is the request body for survey access validation
type AccessCodeRequest struct {
	Code string `json:"code"`
}
