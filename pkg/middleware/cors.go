package middleware

import (
	"net/http"

	"aigc-studio-mock-api/pkg/config"

	"github.com/go-chi/cors"
)

// CORS 创建CORS中间件；MOCK_ALLOW_CORS=false 时不输出任何 CORS 头
func CORS(cfg *config.Config) func(http.Handler) http.Handler {
	if !cfg.AllowCORS {
		return func(next http.Handler) http.Handler { return next }
	}

	// 配置CORS选项
	corsOptions := cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
			http.MethodPatch,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			"Link",
			"X-Total-Count",
			"X-Request-Id",
		},
		AllowCredentials: true,
		MaxAge:           300, // 5分钟
	}

	// 通配来源同时允许凭据时回显请求的 Origin，浏览器不接受 "*" 搭配凭据
	if len(cfg.AllowedOrigins) == 0 || contains(cfg.AllowedOrigins, "*") {
		corsOptions.AllowedOrigins = nil
		corsOptions.AllowOriginFunc = func(r *http.Request, origin string) bool { return true }
	}

	return cors.Handler(corsOptions)
}

// contains 检查切片是否包含指定的字符串
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
