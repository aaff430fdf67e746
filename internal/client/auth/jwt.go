package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/bpkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims extends the registered claims with the signed-in identity so
// offline logins can restore it without a server round-trip.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string
	Email       string
	DisplayName string
}

func generateToken(id Identity, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID:      id.ID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
	})
	return token.SignedString(secretKey)
}

func parseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrorSessionExpired
		}
		return nil, common.ErrorInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrorInvalidToken
	}
	return claims, nil
}
