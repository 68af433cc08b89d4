package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for every verification failure. Signature,
// issuer, audience and expiry problems are deliberately indistinguishable.
var ErrInvalidToken = errors.New("invalid token")

// Config holds the signing settings. It is built once at startup and never
// mutated; missing values are a startup-fatal condition, not a request error.
type Config struct {
	Secret              string
	Issuer              string
	Audience            string
	ExpirationInMinutes int
}

// Claims are the identity claims carried by a session token.
type Claims struct {
	Name     string `json:"name"`
	StatusID int    `json:"status_id"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim as a user id.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// Issuer mints and verifies HS256 session tokens.
type Issuer struct {
	cfg Config
}

// NewIssuer constructs an Issuer from an immutable config.
func NewIssuer(cfg Config) *Issuer {
	return &Issuer{cfg: cfg}
}

// Issue creates a signed token for the user and returns it together with its
// absolute expiration time (UTC).
func (i *Issuer) Issue(userID uint, name string, statusID int) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(i.cfg.ExpirationInMinutes) * time.Minute)

	claims := Claims{
		Name:     name,
		StatusID: statusID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ID:        uuid.NewString(),
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks the signature, issuer, audience and expiry of a token and
// returns its claims. Expiry is checked with a 30s leeway for clock skew.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(i.cfg.Secret), nil
	},
		jwt.WithIssuer(i.cfg.Issuer),
		jwt.WithAudience(i.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
