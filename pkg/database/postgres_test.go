package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 需要本地 PostgreSQL：TEST_POSTGRES_DSN=postgres://... go test ./pkg/database
func TestPostgresPersisterRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	p, err := NewPostgresPersister(dsn)
	require.NoError(t, err)
	defer p.Close()

	snap := fixtureSnapshot()
	snap.Tokens["mock-token-pg"] = 1
	require.NoError(t, p.Save(snap))

	loaded, err := p.Load()
	require.NoError(t, err)
	assert.Len(t, loaded.Users, len(snap.Users))
	assert.Equal(t, 1, loaded.Tokens["mock-token-pg"])
}

func TestNewPersister(t *testing.T) {
	p, err := NewPersister(DatabaseConfig{DataPath: "x.json"})
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewPersister(DatabaseConfig{DataPath: "x.json", PersistChanges: true})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "file", p.Name())
}
