// Package authtoken issues and validates the HS256-signed access/refresh
// JWT pair that authenticates HTTP callers. The claim carries the
// derived identity.ID directly rather than a database user id, so
// authenticating a request never needs a separate account table lookup.
package authtoken

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tradecircle/backend/pkg/identity"
)

// TokenType distinguishes access from refresh tokens so a refresh token
// can never be used to authenticate a request directly.
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"

	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

// Claims is the JWT payload. Subject is the caller-supplied principal
// (e.g. an OAuth "sub" or email) that identity.FromPrincipal hashes into
// an Identity; Identity is carried alongside it so validation never has
// to re-derive it.
type Claims struct {
	Subject  string    `json:"sub"`
	Identity string    `json:"identity"`
	Type     TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// Service signs and verifies token pairs with a single HMAC secret.
type Service struct {
	secret []byte
	pepper string
}

func NewService(secret, pepper string) *Service {
	return &Service{secret: []byte(secret), pepper: pepper}
}

// IssuePair mints an access/refresh pair for subject, returning the
// derived Identity alongside them so the caller can use it immediately
// without a second parse.
func (s *Service) IssuePair(subject string) (accessToken, refreshToken string, id identity.ID, err error) {
	id = identity.FromPrincipal(subject, s.pepper)
	now := time.Now()

	access, err := s.sign(subject, id, TypeAccess, now, accessTTL)
	if err != nil {
		return "", "", identity.Zero, fmt.Errorf("authtoken: sign access: %w", err)
	}
	refresh, err := s.sign(subject, id, TypeRefresh, now, refreshTTL)
	if err != nil {
		return "", "", identity.Zero, fmt.Errorf("authtoken: sign refresh: %w", err)
	}
	return access, refresh, id, nil
}

func (s *Service) sign(subject string, id identity.ID, typ TokenType, now time.Time, ttl time.Duration) (string, error) {
	claims := &Claims{
		Subject:  subject,
		Identity: id.String(),
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and verifies token, requiring it to be of want type.
func (s *Service) Validate(token string, want TokenType) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("authtoken: parse: %w", err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("authtoken: invalid token")
	}
	if claims.Type != want {
		return nil, fmt.Errorf("authtoken: expected %s token, got %s", want, claims.Type)
	}
	return claims, nil
}

// Refresh validates a refresh token and mints a new access token for the
// same subject/identity.
func (s *Service) Refresh(refreshToken string) (accessToken string, err error) {
	claims, err := s.Validate(refreshToken, TypeRefresh)
	if err != nil {
		return "", err
	}
	id, err := identity.Parse(claims.Identity)
	if err != nil {
		return "", fmt.Errorf("authtoken: bad identity claim: %w", err)
	}
	return s.sign(claims.Subject, id, TypeAccess, time.Now(), accessTTL)
}

// IdentityOf extracts the Identity from validated access-token claims.
func IdentityOf(c *Claims) (identity.ID, error) {
	return identity.Parse(c.Identity)
}
