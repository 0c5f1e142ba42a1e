package jwt

import (
	"Surplus-Reduction-Backend/domain"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const TokenLifetime = time.Hour

type (
	JWTService interface {
		IssueToken(payload map[string]any) (string, error)
		ValidateToken(token string) (domain.Identity, error)
		IssueOrReuseToken(existing string, payload map[string]any) (token string, reused bool, err error)
	}

	jwtService struct {
		secretKey string
		lifetime  time.Duration
		now       func() time.Time
	}
)

func NewJWTService(secretKey string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		lifetime:  TokenLifetime,
		now:       time.Now,
	}
}

// IssueToken signs payload as-is. exp and iat are always set by the
// service, and jti makes every minted token distinct.
func (j *jwtService) IssueToken(payload map[string]any) (string, error) {
	claims := jwt.MapClaims{}
	for key, value := range payload {
		claims[key] = value
	}

	now := j.now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(j.lifetime).Unix()
	claims["jti"] = uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateToken(token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrTokenNotFound
	}

	parser := jwt.Parser{}
	claims := jwt.MapClaims{}
	t_Token, err := parser.ParseWithClaims(token, claims, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrTokenExpired
		}
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.Identity{}, domain.ErrTokenInvalid
	}
	if _, ok := claims["exp"]; !ok {
		return domain.Identity{}, domain.ErrTokenInvalid
	}

	return domain.NewIdentity(claims), nil
}

func (j *jwtService) IssueOrReuseToken(existing string, payload map[string]any) (string, bool, error) {
	if existing != "" {
		if _, err := j.ValidateToken(existing); err == nil {
			return existing, true, nil
		}
	}

	token, err := j.IssueToken(payload)
	if err != nil {
		return "", false, err
	}
	return token, false, nil
}
