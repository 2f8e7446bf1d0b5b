package utils

import (
	"errors"
	"time"

	"motoschool/config"

	"github.com/golang-jwt/jwt"
)

// The checkout session id travels in a signed cookie so a client cannot
// forge another visitor's session key.

// SignSessionID wraps a checkout session id in a signed token.
func SignSessionID(sessionID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": sessionID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.SessionSigningSecret))
}

// VerifySessionCookie validates a signed session token and returns the
// embedded session id.
func VerifySessionCookie(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.SessionSigningSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid session token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("session token does not contain a valid 'sub' claim")
	}

	return sub, nil
}
