package highscore

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lixenwraith/oncoarena/parameter"
	"github.com/lixenwraith/oncoarena/service"
)

// ErrBadToken is returned when a submission token fails verification
var ErrBadToken = errors.New("invalid score token")

// ScoreClaims is the signed body of a score submission
// The score travels inside the token so it cannot be altered in transit
type ScoreClaims struct {
	Score service.Score `json:"score"`
	jwt.RegisteredClaims
}

// SignScore issues a short-lived HS256 token carrying s
func SignScore(secret []byte, s service.Score, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("sign score: empty secret")
	}
	claims := ScoreClaims{
		Score: s,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   s.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(parameter.HighScoreTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign score: %w", err)
	}
	return signed, nil
}

// ParseScore verifies raw against secret and returns the carried score
func ParseScore(secret []byte, raw string) (service.Score, error) {
	var claims ScoreClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return service.Score{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	return claims.Score, nil
}
