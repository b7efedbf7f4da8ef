package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/harentsoaR/medics-admin/internal/models"
)

type Claims struct {
	SessionID string      `json:"sid"`
	User      models.User `json:"user"`
	jwt.RegisteredClaims
}

func (m *Manager) encode(sid string, u models.User) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("session secret is not configured")
	}
	claims := &Claims{
		SessionID: sid,
		User:      u,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(m.now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) decode(raw string) (*Claims, error) {
	if len(m.secret) == 0 {
		return nil, errors.New("session secret is not configured")
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}
	if claims.SessionID == "" {
		return nil, errors.New("session token has no session id")
	}
	return claims, nil
}

func (m *Manager) now() time.Time {
	if m.clock != nil {
		return m.clock()
	}
	return time.Now()
}
