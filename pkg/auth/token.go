package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/yathra/yathra/pkg/util"
)

const tokenValidity = 7 * 24 * time.Hour
const tokenIssuer = "yathra"

func signingSecret() []byte {
	env := util.GetEnvironmentVariables()

	secret := env["YATHRA_JWT_SECRET"]
	if secret == "" {
		secret = "yathra-development-secret"
	}

	return []byte(secret)
}

// GenerateToken issues a signed token for an account. The role travels in the
// audience claim so middleware can gate staff-only endpoints.
func GenerateToken(subject string, role string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{role},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenValidity)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(signingSecret())
}

// ParseToken validates a token and returns its subject and role.
func ParseToken(tokenString string) (string, string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return signingSecret(), nil
	})
	if err != nil {
		return "", "", err
	}

	if !token.Valid {
		return "", "", errors.New("invalid token")
	}

	role := ""
	if len(claims.Audience) > 0 {
		role = claims.Audience[0]
	}

	return claims.Subject, role, nil
}
