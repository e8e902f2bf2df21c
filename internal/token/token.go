// internal/token/token.go
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErrors "github.com/unclebandit/mailflow-backend/internal/errors"
)

// Token purposes. A token minted for one purpose never validates for another,
// so an activation link cannot be replayed as a session.
const (
	PurposeSession       = "session"
	PurposeActivation    = "activation"
	PurposePasswordReset = "password_reset"
)

// Claims carried by every signed token.
type Claims struct {
	UserID  int    `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Manager signs and validates the account lifecycle tokens.
type Manager struct {
	secret        []byte
	issuer        string
	sessionExpiry time.Duration
	linkExpiry    time.Duration
}

func NewManager(secret, issuer string, sessionExpiry, linkExpiry time.Duration) *Manager {
	return &Manager{
		secret:        []byte(secret),
		issuer:        issuer,
		sessionExpiry: sessionExpiry,
		linkExpiry:    linkExpiry,
	}
}

// Generate mints a signed token for the given user and purpose.
func (m *Manager) Generate(userID int, email, role, purpose string) (string, error) {
	now := time.Now()

	expiry := m.linkExpiry
	if purpose == PurposeSession {
		expiry = m.sessionExpiry
	}

	claims := Claims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, expiry and purpose.
func (m *Manager) Validate(tokenString, purpose string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, appErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Purpose != purpose {
		return nil, appErrors.ErrInvalidToken
	}
	return claims, nil
}
