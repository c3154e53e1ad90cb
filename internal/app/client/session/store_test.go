package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photoshare/internal/domain/user"
)

func testSession() *Session {
	return &Session{
		AccessToken:  "T1",
		RefreshToken: "R1",
		Username:     "alice",
		Avatar:       "https://x/a.png",
		UserData: &user.Profile{
			Username:      "alice",
			Email:         "alice@example.com",
			Avatar:        "https://x/a.png",
			CommentsCount: 3,
			ImagesCount:   7,
			CreatedAt:     time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	// До первого сохранения - пустая сессия, не ошибка
	sess, err := store.Load()
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())

	require.NoError(t, store.Save(testSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "T1", loaded.AccessToken)
	assert.Equal(t, "R1", loaded.RefreshToken)
	assert.Equal(t, "alice", loaded.Username)
	assert.Equal(t, "https://x/a.png", loaded.Avatar)
	require.NotNil(t, loaded.UserData)
	assert.Equal(t, 7, loaded.UserData.ImagesCount)
	assert.True(t, loaded.Authenticated())
}

func TestFileStore_Clear(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	require.NoError(t, store.Save(testSession()))
	require.NoError(t, store.Clear())

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, sess.AccessToken)
	assert.Empty(t, sess.RefreshToken)
	assert.Empty(t, sess.Username)
	assert.Nil(t, sess.UserData)

	// Повторная очистка не ошибка
	require.NoError(t, store.Clear())
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer store.Close()

	sess, err := store.Load()
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())

	require.NoError(t, store.Save(testSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "T1", loaded.AccessToken)
	require.NotNil(t, loaded.UserData)
	assert.Equal(t, "alice@example.com", loaded.UserData.Email)

	// Последняя запись побеждает
	updated := testSession()
	updated.AccessToken = "T2"
	require.NoError(t, store.Save(updated))

	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "T2", loaded.AccessToken)
}

func TestSQLiteStore_Clear(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(testSession()))
	require.NoError(t, store.Clear())

	sess, err := store.Load()
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.UserData)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	sess, err := store.Load()
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())

	require.NoError(t, store.Save(testSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "alice", loaded.Username)

	// Load отдает копию: изменение снаружи не трогает хранилище,
	// включая вложенный кэш профиля
	loaded.AccessToken = "hacked"
	loaded.UserData.Username = "mallory"
	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "T1", again.AccessToken)
	assert.Equal(t, "alice", again.UserData.Username)

	// И Save не оставляет хранилищу чужой указатель на профиль
	saved := testSession()
	require.NoError(t, store.Save(saved))
	saved.UserData.Username = "mallory"
	again, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "alice", again.UserData.Username)

	require.NoError(t, store.Clear())
	sess, err = store.Load()
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}
