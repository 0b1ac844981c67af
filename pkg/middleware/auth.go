package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"aigc-studio-mock-api/pkg/database"
	"aigc-studio-mock-api/pkg/metrics"
	"aigc-studio-mock-api/pkg/models"
	"aigc-studio-mock-api/pkg/utils"

	"go.uber.org/zap"
)

// ContextKey 用于在context中存储用户信息的键
type ContextKey string

const (
	UserContextKey ContextKey = "user"
)

// Authenticator resolves a session token to its user.
type Authenticator interface {
	Authenticate(token string) (models.User, error)
}

// AuthMiddleware Bearer token 认证中间件
func AuthMiddleware(auth Authenticator, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 从Authorization头获取token
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				metrics.AuthFailuresTotal.WithLabelValues("missing").Inc()
				utils.WriteUnauthorizedResponse(w, "Not authenticated")
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

			user, err := auth.Authenticate(token)
			if err != nil {
				reason := "invalid_token"
				message := "Invalid token"
				if errors.Is(err, database.ErrInactive) {
					reason = "inactive"
					message = "Inactive user"
				}
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				log.Debug("authentication failed", zap.String("path", r.URL.Path), zap.String("reason", reason))
				utils.WriteUnauthorizedResponse(w, message)
				return
			}

			// 将用户信息添加到请求context中
			setLogUser(r.Context(), user.ID)
			ctx := context.WithValue(r.Context(), UserContextKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin 要求当前用户为管理员，必须挂在 AuthMiddleware 之后
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok || !user.IsAdmin() {
			utils.WriteForbiddenResponse(w, "Admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext 从context中获取用户信息
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok && user != nil
}

// RequireUser 要求用户必须已认证的辅助函数
func RequireUser(ctx context.Context) (*models.User, error) {
	user, ok := GetUserFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("user not authenticated")
	}
	return user, nil
}
