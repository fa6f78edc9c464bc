package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SARVESHVARADKAR123/memberclub/internal/transport"
)

// JWT returns middleware that validates HS256 JWTs issued by the identity
// provider. The subject becomes the caller's user id and the optional "role"
// claim its role.
func JWT(secret []byte, iss, aud string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, err := extractToken(r)
			if err != nil {
				transport.WriteError(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}

			parsed, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
				// Only accept HMAC.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			}, jwt.WithIssuer(iss), jwt.WithAudience(aud))
			if err != nil || !parsed.Valid {
				transport.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			claims, ok := parsed.Claims.(jwt.MapClaims)
			if !ok {
				transport.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid token claims")
				return
			}
			sub, _ := claims["sub"].(string)
			if sub == "" {
				transport.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid token claims")
				return
			}
			role, _ := claims["role"].(string)

			ctx := InjectRole(InjectUserID(r.Context(), sub), role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers whose token does not carry the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			transport.WriteError(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing token")
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("invalid token format")
	}

	return parts[1], nil
}
