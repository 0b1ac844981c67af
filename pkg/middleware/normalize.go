package middleware

import (
	"net/http"
	"strings"
)

// Normalize 修正经反向代理转发的请求：去掉路径首尾空白，
// 并按 X-Forwarded-Proto / X-Forwarded-Host 还原外部地址，供 BaseURL 拼接项目封面链接
func Normalize() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if trimmed := strings.TrimSpace(r.URL.Path); trimmed != r.URL.Path {
				r.URL.Path = trimmed
			}
			if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
				r.URL.Scheme = proto
			}
			if host := r.Header.Get("X-Forwarded-Host"); host != "" {
				r.Host = host
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BaseURL returns scheme://host of the request as seen by the client, without a trailing slash.
func BaseURL(r *http.Request) string {
	scheme := r.URL.Scheme
	if scheme == "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}
	return scheme + "://" + r.Host
}
