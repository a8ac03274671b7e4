package local_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaimtop/studygo/storage/local"
)

func Test_SessionRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "studygo.db")
	db, err := local.OpenPath(path)
	require.NoError(t, err, "parent directories are created on demand")
	defer func() { _ = db.Close() }()

	repo := local.NewSessionRepository(db)

	// missing key reads as empty, not as an error
	val, err := repo.Get("token")
	require.NoError(t, err)
	assert.Empty(t, val)

	require.NoError(t, repo.Set("token", "tok-1"))
	val, err = repo.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", val)

	// upsert
	require.NoError(t, repo.Set("token", "tok-2"))
	val, err = repo.Get("token")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", val)

	require.NoError(t, repo.Delete("token"))
	val, err = repo.Get("token")
	require.NoError(t, err)
	assert.Empty(t, val)

	// deleting a missing key is a no-op
	require.NoError(t, repo.Delete("token"))
}

func Test_SessionRepository_persistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studygo.db")

	db, err := local.OpenPath(path)
	require.NoError(t, err)
	require.NoError(t, local.NewSessionRepository(db).Set("userInfo", `{"id":1}`))
	require.NoError(t, db.Close())

	db, err = local.OpenPath(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	val, err := local.NewSessionRepository(db).Get("userInfo")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, val)
}
