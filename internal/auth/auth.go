package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrMissingAuthHeader = errors.New("Authorization header missing")
	ErrBadAuthHeader     = errors.New("Authorization header must be 'Bearer <token>'")
	ErrInvalidToken      = errors.New("invalid or expired token")
)

// Identity is the verified subject of a bearer token.
type Identity struct {
	Subject string
	Email   string
}

// TokenVerifier resolves a raw bearer token into an identity. Handlers
// receive one explicitly instead of reaching for ambient auth state.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// JWTVerifier verifies HS256-signed tokens.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(raw string) (*Identity, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	id := &Identity{}
	if sub, ok := claims["sub"].(string); ok {
		id.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if id.Subject == "" && id.Email == "" {
		return nil, ErrInvalidToken
	}
	return id, nil
}

// Issue signs a token for the given identity. The server does not mint
// tokens for clients in production; this backs tests and tooling.
func (v *JWTVerifier) Issue(id Identity, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   id.Subject,
		"email": id.Email,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// BearerToken extracts the token from an Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingAuthHeader
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrBadAuthHeader
	}
	return parts[1], nil
}
