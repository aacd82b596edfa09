package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("token is invalid")
	ErrInvalidClaim = errors.New("token claims are invalid")
)

type Claims struct {
	StaffID string    `json:"staff_id"`
	Email   string    `json:"email"`
	TokenID string    `json:"token_id"`
	Type    TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

type JWT interface {
	GenerateTokenPair(staffID, email string) (TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string, tokenType TokenType) (Claims, error)
	RefreshTokens(refreshToken string) (TokenPair, error)
}

type jwtImpl struct {
	cfg *config.Config
}

func New(cfg *config.Config) JWT {
	return &jwtImpl{cfg: cfg}
}

// ExtractTokenFromHeader returns the bearer token from an Authorization header value.
func ExtractTokenFromHeader(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}

func (j *jwtImpl) GenerateTokenPair(staffID, email string) (TokenPair, error) {
	accessExpiry := timezone.Now().Add(time.Duration(j.cfg.JWT.AccessExpireMin) * time.Minute)
	refreshExpiry := timezone.Now().Add(time.Duration(j.cfg.JWT.RefreshExpireMin) * time.Minute)

	access, err := j.sign(staffID, email, AccessToken, accessExpiry, j.cfg.JWT.AccessSecret)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := j.sign(staffID, email, RefreshToken, refreshExpiry, j.cfg.JWT.RefreshSecret)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExpiry,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

func (j *jwtImpl) ValidateToken(_ context.Context, tokenString string, tokenType TokenType) (Claims, error) {
	secret := j.cfg.JWT.AccessSecret
	if tokenType == RefreshToken {
		secret = j.cfg.JWT.RefreshSecret
	}

	claims := Claims{}

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpiredToken
	case err != nil:
		return Claims{}, ErrInvalidToken
	case !token.Valid:
		return Claims{}, ErrInvalidToken
	case claims.Type != tokenType:
		return Claims{}, ErrInvalidClaim
	}

	return claims, nil
}

func (j *jwtImpl) RefreshTokens(refreshToken string) (TokenPair, error) {
	claims, err := j.ValidateToken(context.Background(), refreshToken, RefreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	return j.GenerateTokenPair(claims.StaffID, claims.Email)
}

func (j *jwtImpl) sign(staffID, email string, tokenType TokenType, expiresAt time.Time, secret string) (string, error) {
	claims := Claims{
		StaffID: staffID,
		Email:   email,
		TokenID: uuid.NewString(),
		Type:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(timezone.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
