// internal/httpserver/player.go
//
// Anonymous player identity.
//
// Every browser is a player. The player id is a random UUID carried as the
// subject of an HS256 JWT in an HttpOnly cookie (or an Authorization bearer
// header for non-browser clients). A missing, expired or tampered token
// mints a new player.

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const tokenIssuer = "birdle"

// PlayerTokens issues and verifies player tokens.
type PlayerTokens struct {
	Secret     []byte
	CookieName string
	TTL        time.Duration
	Secure     bool // production: Secure + SameSite=None
}

type ctxPlayerKey struct{}

// sign creates an HS256 token for id.
func (p PlayerTokens) sign(id string, now time.Time) (string, time.Time, error) {
	exp := now.Add(p.TTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(p.Secret)
	return ss, exp, err
}

// verify returns the player id carried by tok.
func (p PlayerTokens) verify(tok string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		return p.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", fmt.Errorf("subject: %w", err)
	}
	return id.String(), nil
}

// setCookie writes the player cookie with appropriate security attributes.
func (p PlayerTokens) setCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if p.Secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     p.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the player cookie.
func (p PlayerTokens) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(p.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// withPlayer resolves the player for every request, minting one if needed.
func (p PlayerTokens) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if tok := p.bearerOrCookie(r); tok != "" {
			var err error
			if id, err = p.verify(tok); err != nil {
				if !errors.Is(err, jwt.ErrTokenExpired) {
					log.Debug().Err(err).Msg("player token rejected")
				}
				id = ""
			}
		}
		if id == "" {
			id = uuid.NewString()
			tok, exp, err := p.sign(id, time.Now())
			if err != nil {
				log.Error().Err(err).Msg("sign player token")
				writeError(w, http.StatusInternalServerError, "sign_failed", "")
				return
			}
			p.setCookie(w, tok, exp)
			log.Debug().Str("player", id).Msg("new player")
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxPlayerKey{}, id)))
	})
}

// playerID returns the id placed in the context by withPlayer.
func playerID(r *http.Request) string {
	id, _ := r.Context().Value(ctxPlayerKey{}).(string)
	return id
}
