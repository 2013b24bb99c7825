package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/julienschmidt/httprouter"
)

const (
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "user_role"
)

// GenerateToken signs an HS256 token carrying the user's identity and role.
func GenerateToken(user *model.User, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Protect verifies the bearer token on a route and attaches the verified
// user id and role to the request context. Handlers never re-derive
// identity from the request body.
func Protect(secret string, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				rejectUnauthorized(w, "Missing Authorization header")
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				rejectUnauthorized(w, "Invalid Authorization header format")
				return
			}
			tokenString := authHeader[len("Bearer "):]

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				log.Warn("Rejected invalid token",
					"request_id", requestIDFromContext(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				rejectUnauthorized(w, "Invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				rejectUnauthorized(w, "Invalid token payload")
				return
			}

			userID, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			if userID == "" {
				rejectUnauthorized(w, "Invalid token payload")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, UserRoleKey, role)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// AdminOnly gates a protected route on the admin role. Must run after
// Protect so the role claim is present in the context.
func AdminOnly(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if UserRoleFromContext(r.Context()) != model.RoleAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"code":"FORBIDDEN","error":"Access denied, admin role required"}`))
			return
		}
		next(w, r, ps)
	}
}

// UserIDFromContext returns the authenticated caller's id, empty when the
// request did not pass through Protect.
func UserIDFromContext(ctx context.Context) string {
	if v := ctx.Value(UserIDKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func UserRoleFromContext(ctx context.Context) string {
	if v := ctx.Value(UserRoleKey); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func rejectUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"code":"UNAUTHORIZED","error":"` + message + `"}`))
}
