package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bryanmylee/LetsMeetService/internal/config"
	"github.com/bryanmylee/LetsMeetService/internal/model"
)

// Claims is the JWT payload shared by access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims
	EventID   string `json:"evt"`
	Username  string `json:"uid"`
	IsAdmin   bool   `json:"adm"`
	TokenType string `json:"typ"`
}

// JWT implements TokenManager with two independent HMAC secrets.
type JWT struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewJWT creates a new JWT token manager from the auth configuration.
func NewJWT(cfg config.Auth) *JWT {
	return &JWT{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

// WithClock replaces the time source used for issuing and validating tokens.
func (j *JWT) WithClock(now func() time.Time) *JWT {
	j.now = now
	return j
}

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// GenerateAccessToken creates a short-lived access token.
func (j *JWT) GenerateAccessToken(identity model.Identity) (string, error) {
	return j.generate(identity, typeAccess, j.accessSecret, j.accessTTL)
}

// GenerateRefreshToken creates a long-lived refresh token.
func (j *JWT) GenerateRefreshToken(identity model.Identity) (string, error) {
	return j.generate(identity, typeRefresh, j.refreshSecret, j.refreshTTL)
}

// ParseAccessToken validates an access token and returns its identity.
func (j *JWT) ParseAccessToken(tokenString string) (model.Identity, error) {
	return j.parse(tokenString, typeAccess, j.accessSecret)
}

// ParseRefreshToken validates a refresh token and returns its identity.
func (j *JWT) ParseRefreshToken(tokenString string) (model.Identity, error) {
	return j.parse(tokenString, typeRefresh, j.refreshSecret)
}

func (j *JWT) generate(identity model.Identity, tokenType string, secret []byte, ttl time.Duration) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		EventID:   identity.EventID,
		Username:  identity.Username,
		IsAdmin:   identity.IsAdmin,
		TokenType: tokenType,
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, nil
}

func (j *JWT) parse(tokenString, tokenType string, secret []byte) (model.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to parse %s token: %w: %w", tokenType, classify(err), err)
	}
	if claims.EventID == "" || claims.Username == "" {
		return model.Identity{}, fmt.Errorf("%s token has no subject: %w", tokenType, model.ErrMalformedToken)
	}
	if claims.TokenType != tokenType {
		return model.Identity{}, fmt.Errorf("token type mismatch %q: %w", claims.TokenType, model.ErrInvalidToken)
	}

	return model.Identity{
		EventID:  claims.EventID,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	}, nil
}

// classify maps a jwt validation error onto a model sentinel. The signature is
// checked before claims, so a forged token is never reported as expired.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return model.ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.ErrTokenExpired
	default:
		return model.ErrInvalidToken
	}
}
