package utils

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresignSigner(t *testing.T) {
	signer := NewPresignSigner("test-secret", "https://oss.test/", 10*time.Minute)
	now := time.Now().UTC().Truncate(time.Second)

	assert.Equal(t, "https://oss.test/1/a.png", signer.ObjectURL("1/a.png"))

	signed, expiresAt, err := signer.Sign("1/a.png", 1, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(10*time.Minute), expiresAt)
	assert.True(t, strings.HasPrefix(signed, "https://oss.test/1/a.png?"))

	u, err := url.Parse(signed)
	require.NoError(t, err)
	claims, err := signer.Verify(u.Query().Get("signature"))
	require.NoError(t, err)
	assert.Equal(t, "1/a.png", claims.ObjectKey)
	assert.Equal(t, 1, claims.OrganizationID)

	other := NewPresignSigner("other-secret", "https://oss.test", time.Minute)
	_, err = other.Verify(u.Query().Get("signature"))
	assert.Error(t, err)
}

func TestPresignSignerExpired(t *testing.T) {
	signer := NewPresignSigner("test-secret", "https://oss.test", time.Minute)
	signed, _, err := signer.Sign("1/a.png", 1, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	_, err = signer.Verify(u.Query().Get("signature"))
	assert.Error(t, err)
}
