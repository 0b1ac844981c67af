package utils

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PresignClaims 预签名下载链接的声明
type PresignClaims struct {
	ObjectKey      string `json:"object_key"`
	OrganizationID int    `json:"organization_id"`
	jwt.RegisteredClaims
}

// PresignSigner 使用 HS256 为对象存储下载链接签名
type PresignSigner struct {
	secretKey []byte
	baseURL   string
	ttl       time.Duration
}

// NewPresignSigner 创建签名服务
func NewPresignSigner(secretKey, baseURL string, ttl time.Duration) *PresignSigner {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &PresignSigner{
		secretKey: []byte(secretKey),
		baseURL:   strings.TrimRight(baseURL, "/"),
		ttl:       ttl,
	}
}

// ObjectURL returns the unsigned public URL of an object key.
func (s *PresignSigner) ObjectURL(objectKey string) string {
	return s.baseURL + "/" + objectKey
}

// Sign 生成带签名参数的下载链接，返回链接与过期时间
func (s *PresignSigner) Sign(objectKey string, organizationID int, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.ttl)
	claims := &PresignClaims{
		ObjectKey:      objectKey,
		OrganizationID: organizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   objectKey,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign object url: %w", err)
	}

	q := url.Values{}
	q.Set("expires", fmt.Sprintf("%d", expiresAt.Unix()))
	q.Set("signature", signed)
	return s.ObjectURL(objectKey) + "?" + q.Encode(), expiresAt, nil
}

// Verify 校验签名参数
func (s *PresignSigner) Verify(signature string) (*PresignClaims, error) {
	token, err := jwt.ParseWithClaims(signature, &PresignClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse signature: %w", err)
	}

	claims, ok := token.Claims.(*PresignClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid signature claims")
	}
	return claims, nil
}
