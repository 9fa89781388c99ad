package session

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// tokenCodec signs and validates the session cookie. The cookie carries
// only an opaque session id; all session state lives server-side.
type tokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func newTokenCodec(secret string, ttl time.Duration) *tokenCodec {
	return &tokenCodec{secret: []byte(secret), ttl: ttl}
}

type tokenClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (tc *tokenCodec) sign(sessionID string) (string, error) {
	now := time.Now()
	claims := &tokenClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tc.secret)
}

func (tc *tokenCodec) parse(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tc.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.SessionID, nil
}
