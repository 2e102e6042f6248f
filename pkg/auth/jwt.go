package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/model"
)

// TokenService issues and validates staff session tokens. Revoke supports the
// forced-logout path: a revoked token fails validation for the rest of its
// natural lifetime.
type TokenService interface {
	Generate(staff *model.StaffMember) (string, error)
	Validate(token string) (*model.TokenClaims, error)
	Revoke(token string)
}

type Config struct {
	Secret      string
	ExpiryHours int
}

type tokenService struct {
	secret  []byte
	expiry  time.Duration
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewTokenService(cfg Config) TokenService {
	expiry := time.Duration(cfg.ExpiryHours) * time.Hour
	if expiry <= 0 {
		expiry = 12 * time.Hour
	}
	return &tokenService{
		secret:  []byte(cfg.Secret),
		expiry:  expiry,
		revoked: make(map[string]time.Time),
	}
}

func (s *tokenService) Generate(staff *model.StaffMember) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   staff.ID.String(),
		"email": staff.Email,
		"role":  string(staff.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) Validate(tokenStr string) (*model.TokenClaims, error) {
	s.mu.Lock()
	_, isRevoked := s.revoked[tokenStr]
	s.mu.Unlock()
	if isRevoked {
		return nil, fmt.Errorf("token has been revoked")
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	staffID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &model.TokenClaims{
		StaffID: staffID,
		Email:   email,
		Role:    model.StaffRole(role),
	}, nil
}

func (s *tokenService) Revoke(tokenStr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenStr] = time.Now()

	// Drop entries older than any plausible token lifetime.
	cutoff := time.Now().Add(-24 * time.Hour)
	for t, at := range s.revoked {
		if at.Before(cutoff) {
			delete(s.revoked, t)
		}
	}
}
