// Package jwtx signs and verifies the opaque auth tokens handed to API
// clients. A token is an HS256 JWT over the user id and a token class;
// the signature check lets us reject garbage cheaply, while the service
// layer still confirms the token is on the user's active list so that
// logout actually revokes it.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tickbox/tickbox/pkg/idx"
)

// AccessAuth is the only token class issued today. The field exists so
// other classes (e.g. password reset) can be added without changing the
// wire format.
const AccessAuth = "auth"

var (
	ErrEmptySecret  = errors.New("jwtx: signing secret must not be empty")
	ErrInvalidToken = errors.New("jwtx: invalid token")
)

// Claims is the payload embedded in an auth token.
type Claims struct {
	UserID string `json:"_id"`
	Access string `json:"access"`

	jwt.RegisteredClaims
}

// Codec signs and verifies auth tokens with a process-wide secret. The
// secret is read-only after construction.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Sign produces a token for the given user id with the auth class.
// Tokens carry no expiry; revocation is the only removal mechanism.
// The jti makes every issued token string unique, so revoking one
// session never touches another session of the same user.
func (c *Codec) Sign(userID string) (string, error) {
	claims := Claims{
		UserID: userID,
		Access: AccessAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now().UTC()),
			ID:       idx.New().String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks the token's signature and shape. Malformed, tampered,
// or wrong-class tokens all collapse to ErrInvalidToken; callers must
// not leak which case occurred.
func (c *Codec) Verify(token string) (Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	if claims.UserID == "" || claims.Access != AccessAuth {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
