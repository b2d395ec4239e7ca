package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/178inaba/duty-attendance/entity"
	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "duty-attendance"

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewSessionToken signs an HS256 token for the identity.
func NewSessionToken(secret string, ttl time.Duration, ident entity.Identity, now time.Time) (string, error) {
	claims := Claims{
		Username: ident.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(ident.UserID),
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseSessionToken(secret, tokenString string) (entity.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(sessionIssuer))
	if err != nil {
		return entity.Identity{}, fmt.Errorf("parse: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return entity.Identity{}, jwt.ErrTokenInvalidClaims
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return entity.Identity{}, errors.New("invalid subject")
	}

	return entity.Identity{UserID: userID, Username: claims.Username}, nil
}
