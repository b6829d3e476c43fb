package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"entrega.dev/internal/auth"
	"entrega.dev/internal/obs"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

// publicPaths lists routes reachable without a bearer token. Everything else
// behind the gate requires a valid token.
var publicPaths = []string{
	"/users/login",
	"/users/register",
	"/healthz",
	"/readyz",
	"/metrics",
	"/info",
	"/",
}

// withAuth is the authorization gate. Preflight requests and the public
// allow-list pass through untouched; every other request must carry a valid
// bearer token. All rejection responses share the same generic body so a
// caller cannot distinguish an expired token from a forged one; the specific
// reason goes to the server log only.
func (a *API) withAuth(next http.Handler) http.Handler {
	if a == nil || a.tokens == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			a.rejectUnauthorized(w, r, err)
			return
		}

		subject, err := a.tokens.Validate(token)
		if err != nil {
			a.rejectUnauthorized(w, r, err)
			return
		}

		ctx := auth.ContextWithSubject(r.Context(), subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rejectUnauthorized sends the uniform 401 and records the concrete failure
// class server-side.
func (a *API) rejectUnauthorized(w http.ResponseWriter, r *http.Request, cause error) {
	obs.LogEntry(map[string]any{
		"ts":         time.Now().UTC().Format(time.RFC3339Nano),
		"level":      "warn",
		"msg":        "token_rejected",
		"request_id": RequestIDFromContext(r.Context()),
		"path":       r.URL.Path,
		"reason":     cause.Error(),
	})
	w.Header().Set("WWW-Authenticate", `Bearer realm="entrega"`)
	writeError(w, r, http.StatusUnauthorized, "unauthorized")
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
