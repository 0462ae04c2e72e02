// internal/adapters/in/http/middleware/session.go
package middleware

import (
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"gamestore/internal/domain/session"
)

// FirebaseAuthClient is an alias so consumers can depend on
// *middleware.FirebaseAuthClient without importing the SDK directly.
type FirebaseAuthClient = fbauth.Client

// SessionMiddleware resolves the request session:
//
//   - Authorization: Bearer <ID_TOKEN>  -> verified principal session
//   - X-Device-Id: <id>                 -> anonymous device session
//
// A present-but-invalid bearer token is rejected with 401; a missing
// token is not an error (the storefront works signed out).
type SessionMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if strings.HasPrefix(authHeader, "Bearer ") {
			if m == nil || m.FirebaseAuth == nil {
				http.Error(w, "auth not configured", http.StatusServiceUnavailable)
				return
			}

			idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if idToken == "" {
				http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
				return
			}

			token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			uid := strings.TrimSpace(token.UID)
			if uid == "" {
				http.Error(w, "invalid uid in token", http.StatusUnauthorized)
				return
			}

			s := session.Principal(uid, claimString(token, "name"), claimString(token, "email"))
			log.Printf("[session] principal uid=%s path=%s", uid, r.URL.Path)
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
			return
		}

		deviceID := strings.TrimSpace(r.Header.Get("X-Device-Id"))
		s := session.Anonymous(deviceID)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

func claimString(token *fbauth.Token, key string) string {
	if token == nil || token.Claims == nil {
		return ""
	}
	if raw, ok := token.Claims[key]; ok {
		if s, ok2 := raw.(string); ok2 {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
