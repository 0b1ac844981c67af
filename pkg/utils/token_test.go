package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomTokenSource(t *testing.T) {
	ts := RandomTokenSource{}
	re := regexp.MustCompile(`^mock-token-[A-Za-z0-9]{12}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		tok := ts.Token("mock-token", 12)
		assert.Regexp(t, re, tok)
		seen[tok] = true
	}
	assert.Len(t, seen, 50)

	assert.Regexp(t, `^upload-[A-Za-z0-9]{8}$`, ts.Token("upload", 8))
}

func TestSequentialTokenSource(t *testing.T) {
	ts := &SequentialTokenSource{}
	assert.Equal(t, "mock-token-000000000001", ts.Token("mock-token", 12))
	assert.Equal(t, "id-000002", ts.Token("id", 6))
	assert.Equal(t, "wx-000000000003", ts.Token("wx", 12))
}
