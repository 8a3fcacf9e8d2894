// Package auth implements credential hashing, access token issuance and
// verification, and the bearer-token guard for protected requests.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is written to and required in the "iss" claim.
const Issuer = "bookmarks"

// Claims are the identity facts carried by an access token.
type Claims struct {
	UserID string
	Email  string
}

// accessClaims is the JWT payload: registered claims plus the email.
type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Option customizes a TokenIssuer or TokenVerifier.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// TokenIssuer mints HS256 access tokens valid for a fixed TTL.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret []byte, ttl time.Duration, opts ...Option) *TokenIssuer {
	o := buildOptions(opts)
	return &TokenIssuer{secret: secret, ttl: ttl, now: o.now}
}

// Issue signs claims together with iat, exp = iat + TTL, a unique jti and
// the issuer name.
func (i *TokenIssuer) Issue(c Claims) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   c.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			ID:        uuid.NewString(),
		},
		Email: c.Email,
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// TokenVerifier checks tokens minted by a TokenIssuer with the same secret.
type TokenVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewTokenVerifier(secret []byte, opts ...Option) *TokenVerifier {
	o := buildOptions(opts)
	return &TokenVerifier{
		secret: secret,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(Issuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithStrictDecoding(),
			jwt.WithTimeFunc(o.now),
		),
	}
}

// Verify decodes the token, checks its signature and then its expiry.
// Malformed or forged tokens yield common.ErrInvalidToken; a genuine token
// past its expiry yields common.ErrTokenExpired.
func (v *TokenVerifier) Verify(tokenString string) (Claims, error) {
	claims := &accessClaims{}

	token, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Claims{}, common.ErrTokenExpired
		}
		return Claims{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return Claims{}, common.ErrInvalidToken
	}

	return Claims{UserID: claims.Subject, Email: claims.Email}, nil
}
