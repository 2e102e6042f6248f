package model

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	Staff *StaffMember `json:"staff"`
}

// TokenClaims is the decoded staff identity carried by a session token.
type TokenClaims struct {
	StaffID uuid.UUID `json:"staff_id"`
	Email   string    `json:"email"`
	Role    StaffRole `json:"role"`
}
