package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// CurrentUser extracts the authenticated username stored by UserMiddleware,
// or "" when the request carries none.
func CurrentUser(r *http.Request) string {
	if val, ok := r.Context().Value(currentUserKey).(string); ok {
		return val
	}
	return ""
}

// UserMiddleware resolves the already-authenticated username for the
// request (X-User header, else the session_user cookie set by the upstream
// login layer) and stores it in the request context. Authentication
// mechanics themselves live outside this service.
func UserMiddleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user := e.Request.Header.Get("X-User")
		if user == "" {
			if cookie, err := e.Request.Cookie("session_user"); err == nil {
				user = cookie.Value
			}
		}
		if user != "" {
			ctx := context.WithValue(e.Request.Context(), currentUserKey, user)
			e.Request = e.Request.WithContext(ctx)
		}
		return e.Next()
	}
}

// requireUser returns the request's username or writes a 401.
func requireUser(e *core.RequestEvent) (string, bool) {
	user := CurrentUser(e.Request)
	if user == "" {
		e.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return "", false
	}
	return user, true
}
