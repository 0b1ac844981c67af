package utils

import (
	"crypto/rand"
	"math/big"
	"sync"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// TokenSource 生成 `{prefix}-{suffix}` 形式的随机 token
type TokenSource interface {
	Token(prefix string, length int) string
}

// RandomTokenSource draws suffixes from crypto/rand.
type RandomTokenSource struct{}

// Token 返回 prefix-XXXX，后缀由大小写字母与数字组成
func (RandomTokenSource) Token(prefix string, length int) string {
	if length <= 0 {
		length = 12
	}
	limit := big.NewInt(int64(len(tokenAlphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand 不可用时退化为固定字符，仍保持长度
			b[i] = tokenAlphabet[i%len(tokenAlphabet)]
			continue
		}
		b[i] = tokenAlphabet[n.Int64()]
	}
	return prefix + "-" + string(b)
}

// SequentialTokenSource yields predictable tokens: prefix-000000000001, prefix-000000000002, ...
type SequentialTokenSource struct {
	mu sync.Mutex
	n  int
}

// Token returns the next zero-padded counter value truncated to length.
func (s *SequentialTokenSource) Token(prefix string, length int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	if length <= 0 {
		length = 12
	}
	digits := make([]byte, length)
	v := s.n
	for i := length - 1; i >= 0; i-- {
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	return prefix + "-" + string(digits)
}
