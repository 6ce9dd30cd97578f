package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lumenworks/sitecms/backend/go-services/internal/config"
	"github.com/lumenworks/sitecms/backend/go-services/internal/models"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/middleware"
)

const issuer = "site-cms"

var ErrRevoked = errors.New("token has been revoked")

// GenerateAccessToken creates a signed JWT access token for the user
func GenerateAccessToken(cfg *config.Config, u *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
		"iss":   issuer,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.Auth.JWTSecret))
}

// RevocationChecker reports logged-out tokens.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Verifier checks HS256 access tokens issued by GenerateAccessToken and
// rejects revoked ones. It satisfies middleware.Verifier.
type Verifier struct {
	secret  []byte
	revoked RevocationChecker
}

func NewVerifier(cfg *config.Config, revoked RevocationChecker) *Verifier {
	return &Verifier{secret: []byte(cfg.Auth.JWTSecret), revoked: revoked}
}

func (v *Verifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	claims, err := v.Parse(raw)
	if err != nil {
		return nil, err
	}
	if v.revoked != nil {
		revoked, err := v.revoked.IsRevoked(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("revocation check: %w", err)
		}
		if revoked {
			return nil, ErrRevoked
		}
	}
	return mapToken(claims), nil
}

// Parse validates signature, algorithm, issuer and expiry and returns the claims.
func (v *Verifier) Parse(raw string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if exp, err := claims.GetExpirationTime(); err != nil || exp == nil {
		return nil, errors.New("exp claim not present")
	}
	return claims, nil
}

// ExpiresAt returns the exp claim of a verified token.
func (v *Verifier) ExpiresAt(raw string) (time.Time, error) {
	claims, err := v.Parse(raw)
	if err != nil {
		return time.Time{}, err
	}
	exp, _ := claims.GetExpirationTime()
	return exp.Time, nil
}

type mapToken jwt.MapClaims

// Claims decodes the token claims into v through JSON.
func (t mapToken) Claims(v interface{}) error {
	b, err := json.Marshal(jwt.MapClaims(t))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
