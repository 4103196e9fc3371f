// Package tokens implements the HMAC-signed token codec. Access and
// refresh tokens share one claims shape and signing secret and differ
// only in TTL (refresh tokens also carry a JTI), so a refresh token is
// accepted anywhere an access token is. Known limitation, kept for
// compatibility with the existing token format.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the single failure for bad signature, malformed
// structure and expiry. Callers must not learn which one it was.
var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCodec(secret []byte, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (c *Codec) IssueAccess(userID uint, email string) (string, time.Time, error) {
	return c.issue(userID, email, c.accessTTL, "")
}

func (c *Codec) IssueRefresh(userID uint, email string) (string, time.Time, error) {
	return c.issue(userID, email, c.refreshTTL, uuid.NewString())
}

func (c *Codec) issue(userID uint, email string, ttl time.Duration, jti string) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        jti,
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (c *Codec) Validate(raw string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
