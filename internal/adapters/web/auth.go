package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"erp-dashboard/internal/app"

	"github.com/golang-jwt/jwt/v5"
)

const authCookie = "auth_token"

type sessionKey struct{}

// sessionFromContext returns the session stored in ctx by RequireAuth, or nil.
func sessionFromContext(ctx context.Context) *app.Session {
	v, _ := ctx.Value(sessionKey{}).(*app.Session)
	return v
}

// jwtClaims is the JWT payload struct used for signing and parsing. The
// token ID is the server-side session ID.
type jwtClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) parseToken(raw string) (*jwtClaims, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(h.opts.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RequireAuth is chi middleware that validates the auth_token cookie, checks
// the session it names still exists and injects it into the request context.
// Returns 401 otherwise.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(authCookie)
		if err != nil {
			writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}
		claims, err := h.parseToken(cookie.Value)
		if err != nil {
			writeError(w, r, "invalid or expired token", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}
		sess, err := h.svc.Session(r.Context(), claims.ID)
		if errors.Is(err, app.ErrSessionNotFound) {
			writeError(w, r, "session expired", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows the request only when the session has one of roles.
// Must run after RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessionFromContext(r.Context())
			if sess == nil || !slices.Contains(roles, sess.Role) {
				writeError(w, r, "insufficient permissions", "FORBIDDEN", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type userResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// authState mirrors the client's auth store.
type authState struct {
	User            userResponse `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	ExpiresAt       time.Time    `json:"expiresAt"`
}

func newAuthState(s *app.Session) authState {
	return authState{
		User:            userResponse{Email: s.Email, Name: s.Name, Role: s.Role},
		IsAuthenticated: true,
		ExpiresAt:       s.ExpiresAt,
	}
}

// login handles POST /api/auth/login.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, r, "email and password are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	session, err := h.svc.Authenticate(r.Context(), app.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	claims := &jwtClaims{
		Email: session.Email,
		Role:  session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.Email,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.opts.JWTSecret))
	if err != nil {
		writeError(w, r, "token generation failed", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, h.cookie(signed, int(h.opts.SessionTTL.Seconds())))
	writeJSON(w, newAuthState(session))
}

// logout handles POST /api/auth/logout: ends the session named by the
// cookie, if any, and clears the cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(authCookie); err == nil {
		if claims, err := h.parseToken(cookie.Value); err == nil {
			if err := h.svc.Logout(r.Context(), claims.ID); err != nil {
				h.logger.WithError(err).Warn("logout: session not removed")
			}
		}
	}
	http.SetCookie(w, h.cookie("", -1))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     authCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.opts.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	}
}

// me handles GET /api/auth/me.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		writeError(w, r, "not authenticated", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}
	writeJSON(w, newAuthState(sess))
}
