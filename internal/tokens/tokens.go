package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/soulbrew/blog-services/internal/config"
	"github.com/soulbrew/blog-services/internal/models"
)

// GenerateAccessToken creates a signed JWT access token for the user.
// The avatar claim rides along so the editor UI can render the author
// byline without a second lookup.
func GenerateAccessToken(cfg *config.Config, u *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":    u.Sub,
		"name":   u.Name,
		"email":  u.Email,
		"avatar": u.Avatar,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// ParseAccessToken validates a token signed by GenerateAccessToken and
// returns its claims.
func ParseAccessToken(cfg *config.Config, raw string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
