package auth

import (
	"errors"
	"slices"
	"time"

	"github.com/ahmetcoskunkizilkaya/storefront/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the signed payload carried by access tokens.
type Claims struct {
	UserID    string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.RegisteredClaims
}

func (c *Claims) ParseUserID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewTokenService(secret, issuer, audience string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// Issue signs a token for user that expires after the configured TTL.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:    user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify returns the claims of a valid token, or nil on any failure.
func (s *TokenService) Verify(tokenString string) *Claims {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.Keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}

// Keyfunc resolves the HMAC secret for HS256 tokens only.
func (s *TokenService) Keyfunc(token *jwt.Token) (any, error) {
	if token.Method != jwt.SigningMethodHS256 {
		return nil, jwt.ErrSignatureInvalid
	}
	return s.secret, nil
}

// Accepts checks the issuer, audience and expiry of claims that were already
// signature-verified by another parser.
func (s *TokenService) Accepts(claims *Claims) bool {
	if claims == nil || claims.ExpiresAt == nil || !claims.ExpiresAt.After(s.now()) {
		return false
	}
	return claims.Issuer == s.issuer && slices.Contains(claims.Audience, s.audience)
}
