package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer   = "parley"
	audience = "parley-web"
)

var ErrInvalidValue = errors.New("invalid or tampered cookie value")

var (
	// PersistUntil is the expiry given to every stored cookie.
	PersistUntil = time.Date(2038, time.January, 19, 4, 14, 7, 0, time.UTC)

	// Expired is the expiry written when a cookie is removed.
	Expired = time.Unix(0, 0).UTC()
)

// Claims carries a stored cookie value. The subject is the cookie name so a
// value signed for one key cannot be replayed under another.
type Claims struct {
	jwt.RegisteredClaims
	Value string `json:"val"`
}

// CookieStore keeps small client preferences in signed cookies.
type CookieStore struct {
	secret []byte
	secure bool
}

// NewCookieStore creates a CookieStore signing with secret. secure marks
// cookies as HTTPS only.
func NewCookieStore(secret string, secure bool) *CookieStore {
	return &CookieStore{secret: []byte(secret), secure: secure}
}

// Sign wraps value in an HS256 token bound to key.
func (s *CookieStore) Sign(key, value string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   key,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(PersistUntil),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Value: value,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks a token produced by Sign for key and returns its value.
func (s *CookieStore) Verify(key, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidValue
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience), jwt.WithSubject(key))
	if err != nil {
		return "", ErrInvalidValue
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidValue
	}

	return claims.Value, nil
}

// Set stores value under key until PersistUntil.
func (s *CookieStore) Set(w http.ResponseWriter, key, value string) error {
	signed, err := s.Sign(key, value)
	if err != nil {
		return err
	}

	http.SetCookie(w, s.cookie(key, signed, PersistUntil))
	return nil
}

// Get returns the value stored under key. A missing, expired or tampered
// cookie reports false.
func (s *CookieStore) Get(r *http.Request, key string) (string, bool) {
	c, err := r.Cookie(key)
	if err != nil || c.Value == "" {
		return "", false
	}

	value, err := s.Verify(key, c.Value)
	if err != nil {
		return "", false
	}
	return value, true
}

// Remove clears key by overwriting it with an already expired cookie.
func (s *CookieStore) Remove(w http.ResponseWriter, key string) {
	c := s.cookie(key, "", Expired)
	c.MaxAge = -1
	http.SetCookie(w, c)
}

func (s *CookieStore) cookie(key, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
