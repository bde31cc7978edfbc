package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an issued token when none is configured
const DefaultTokenTTL = 24 * time.Hour

// signingMethod is the only algorithm accepted by Validate
var signingMethod = jwt.SigningMethodHS256

// Claims is the signed identity assertion carried by a bearer token
type Claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// TokenCodec issues and validates HMAC-signed bearer tokens. The secret is
// fixed for the lifetime of the codec; a new secret invalidates every token
// issued with the old one.
type TokenCodec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// TokenOption configures a TokenCodec
type TokenOption func(*TokenCodec)

// WithIssuer stamps and requires the iss claim
func WithIssuer(issuer string) TokenOption {
	return func(c *TokenCodec) {
		c.issuer = issuer
	}
}

// WithClock overrides the time source used for issuing and validating
func WithClock(now func() time.Time) TokenOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

// NewTokenCodec creates a codec signing with secret
func NewTokenCodec(secret []byte, opts ...TokenOption) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is required")
	}

	c := &TokenCodec{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs an assertion for userID that expires ttl from now
func (c *TokenCodec) Issue(userID int64, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(signingMethod, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Validate checks signature, algorithm and expiry and returns the subject
// user id. Every failure wraps ErrInvalidToken.
func (c *TokenCodec) Validate(token string) (int64, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidToken, describeJWTError(err))
	}
	if claims.UserID <= 0 {
		return 0, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.UserID, nil
}

// describeJWTError reduces jwt library errors to a short reason for logs
func describeJWTError(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature is invalid"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "unverifiable"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "required claim missing"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "issuer mismatch"
	default:
		return err.Error()
	}
}
