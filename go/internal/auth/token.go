package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken    = errors.New("invalid access token")
	ErrUnauthenticated = errors.New("authentication required")
	ErrNoParticipant   = errors.New("authenticated user has no participant profile")
	ErrForbidden       = errors.New("admin privileges required")
)

// Claims are the access-token claims issued by the identity provider.
// The subject is the auth user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 access tokens.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Verify parses token and returns the auth user id it was issued for.
func (v *Verifier) Verify(token string) (uuid.UUID, *Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return uuid.Nil, nil, ErrInvalidToken
	}

	authUserID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	return authUserID, claims, nil
}

// Issue signs a token for authUserID. Production tokens come from the identity
// provider; this is used by tests.
func (v *Verifier) Issue(authUserID uuid.UUID, email string, ttl time.Duration) (string, error) {
	now := v.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   authUserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
