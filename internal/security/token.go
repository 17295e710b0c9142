package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when an apprentice token fails verification
var ErrInvalidToken = errors.New("invalid token")

// ApprenticeClaims are the JWT claims for an apprentice session. The
// subject holds the apprentice ID; each authenticated request re-issues
// the token, so expiry slides forward with activity.
type ApprenticeClaims struct {
	Name    string `json:"name"`
	TutorID int64  `json:"tutor_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies apprentice session tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer with the given signing secret
// and session lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured session lifetime
func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}

// Issue creates a signed token for the apprentice, valid for the
// configured lifetime from now.
func (ti *TokenIssuer) Issue(apprenticeID int64, name string, tutorID int64) (string, error) {
	now := time.Now()
	claims := ApprenticeClaims{
		Name:    name,
		TutorID: tutorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(apprenticeID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns the apprentice ID and claims
func (ti *TokenIssuer) Parse(tokenString string) (int64, *ApprenticeClaims, error) {
	claims := &ApprenticeClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, nil, ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, nil, ErrInvalidToken
	}
	return id, claims, nil
}
