package common

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pixelforge/pixelforge/common/config"
)

type AccessClaims struct {
	UserId int `json:"uid"`
	Role   int `json:"role"`
	jwt.StandardClaims
}

// GenerateAccessToken signs an HS256 token for the user valid for config.AccessTokenTTL.
func GenerateAccessToken(userId int, role int) (string, error) {
	return generateAccessToken(userId, role, time.Now(), config.AccessTokenTTL, config.JWTSecret)
}

func generateAccessToken(userId int, role int, now time.Time, ttl time.Duration, secret string) (string, error) {
	claims := AccessClaims{
		UserId: userId,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.Itoa(userId),
			Issuer:    config.ServiceName,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseAccessToken verifies signature and expiry and returns the claims.
func ParseAccessToken(tokenString string) (*AccessClaims, error) {
	return parseAccessToken(tokenString, config.JWTSecret)
}

func parseAccessToken(tokenString string, secret string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserId == 0 {
		return nil, fmt.Errorf("invalid access token")
	}
	return claims, nil
}
