// Package token issues and validates the JWT pairs used by the JSON API.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const (
	accessTTL  = 24 * time.Hour
	refreshTTL = 7 * 24 * time.Hour
)

type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Type     string `json:"typ"` // access | refresh
	jwt.RegisteredClaims
}

type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type Issuer struct {
	secret []byte
}

func NewIssuer(secret string) *Issuer { return &Issuer{secret: []byte(secret)} }

// Issue signs an access/refresh pair for a user.
func (i *Issuer) Issue(userID, username, role string) (Pair, error) {
	access, err := i.sign(userID, username, role, "access", accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := i.sign(userID, username, role, "refresh", refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

func (i *Issuer) sign(userID, username, role, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "jeetech",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Validate parses an access token.
func (i *Issuer) Validate(tokenString string) (*Claims, error) {
	return i.parse(tokenString, "access")
}

// Refresh validates a refresh token and issues a fresh pair.
func (i *Issuer) Refresh(refreshToken string) (Pair, error) {
	claims, err := i.parse(refreshToken, "refresh")
	if err != nil {
		return Pair{}, err
	}
	return i.Issue(claims.UserID, claims.Username, claims.Role)
}

func (i *Issuer) parse(tokenString, wantType string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Type != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
