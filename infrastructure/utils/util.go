package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
	"social-publisher/domain/model"
	"social-publisher/infrastructure/logger"
)

const tokenLifetime = 30 * 24 * time.Hour

func GetCurrentTime() time.Time {
	return time.Now().UTC()
}

// GenerateToken issues the bearer token for a user. HS256, 30 day expiry.
func GenerateToken(userID, email, secretKey string) (string, error) {
	now := GetCurrentTime()
	claims := model.UserClaims{
		UserID: userID,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenLifetime).Unix(),
			Issuer:    userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while generate token")
		return "", err
	}
	return tokenString, nil
}
