package utils

import (
	"time"

	"github.com/Siddique-web/EchoPlay/internal/config"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateToken issues a signed session token for the given user.
func GenerateToken(userID uint, isAdmin bool, cfg *config.Config) (string, error) {
	expiration, err := time.ParseDuration(cfg.JWT.Expiration)
	if err != nil {
		expiration = 24 * time.Hour
	}

	claims := jwt.MapClaims{
		"user_id":  userID,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}
