package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// VerifyPassword 校验密码：先做明文比较，失败且存储值以 `$` 开头时再按哈希校验。
// 支持 passlib 的 $pbkdf2-sha256$ 格式与 bcrypt ($2a$/$2b$/$2y$)。
func VerifyPassword(provided, stored string) bool {
	if stored == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(stored)) == 1 {
		return true
	}
	if !strings.HasPrefix(stored, "$") {
		return false
	}
	switch {
	case strings.HasPrefix(stored, "$pbkdf2-sha256$"):
		return verifyPBKDF2SHA256(provided, stored)
	case strings.HasPrefix(stored, "$2a$"), strings.HasPrefix(stored, "$2b$"), strings.HasPrefix(stored, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(provided)) == nil
	}
	return false
}

// HashPassword 生成 bcrypt 哈希，供种子数据与测试使用
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// verifyPBKDF2SHA256 parses $pbkdf2-sha256$<rounds>$<salt>$<checksum>, salt and
// checksum in passlib's adapted base64 ('.' instead of '+', no padding).
func verifyPBKDF2SHA256(provided, stored string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 5 {
		return false
	}
	rounds, err := strconv.Atoi(parts[2])
	if err != nil || rounds <= 0 {
		return false
	}
	salt, err := decodeAB64(parts[3])
	if err != nil {
		return false
	}
	checksum, err := decodeAB64(parts[4])
	if err != nil || len(checksum) == 0 {
		return false
	}
	derived := pbkdf2.Key([]byte(provided), salt, rounds, len(checksum), sha256.New)
	return subtle.ConstantTimeCompare(derived, checksum) == 1
}

func decodeAB64(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.ReplaceAll(s, ".", "+"))
}
