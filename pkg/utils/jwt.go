package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CashierClaims represents the claims in a cashier access token. Tokens
// are issued by the auth collaborator; this service only verifies them.
type CashierClaims struct {
	CashierID   uuid.UUID `json:"cashier_id"`
	CashierName string    `json:"cashier_name"`
	TerminalID  string    `json:"terminal_id"`
	Roles       []string  `json:"roles"`
	jwt.RegisteredClaims
}

// JWTManager verifies cashier access tokens
type JWTManager struct {
	secretKey []byte
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secretKey: []byte(secret)}
}

// ValidateAccessToken validates an access token and returns the claims
func (m *JWTManager) ValidateAccessToken(tokenString string) (*CashierClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CashierClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CashierClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// GenerateAccessToken signs a cashier token. Kept for local development
// and tests; production tokens come from the auth service.
func (m *JWTManager) GenerateAccessToken(cashierID uuid.UUID, cashierName, terminalID string, roles []string, expiry time.Duration) (string, error) {
	claims := &CashierClaims{
		CashierID:   cashierID,
		CashierName: cashierName,
		TerminalID:  terminalID,
		Roles:       roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "retailpos-api",
			Subject:   cashierID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}
