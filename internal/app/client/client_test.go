package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"photoshare/internal/app/client/config"
	"photoshare/internal/app/client/session"
	"photoshare/internal/domain/comment"
	"photoshare/internal/domain/user"
)

func newTestApp(t *testing.T, handler http.Handler, flow string) (*App, session.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		ServerAddress:  strings.TrimPrefix(srv.URL, "http://"),
		SignupFlow:     flow,
		RequestTimeout: 5 * time.Second,
		SearchIdle:     5 * time.Second,
	}
	store := session.NewMemoryStore()
	return NewWithStore(cfg, slog.Default(), store), store
}

func TestApp_SignIn_ReplacesSession(t *testing.T) {
	app, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "T1",
			"refresh_token": "R1",
			"username":      "alice",
			"avatar":        "https://x/alice.png",
		})
	}), config.SignupFlowNotify)

	// Сессия предыдущего пользователя, с кэшем профиля
	seedSession(t, store, &session.Session{
		AccessToken:  "old-T",
		RefreshToken: "old-R",
		Username:     "bob",
		Avatar:       "https://x/bob.png",
		UserData:     &user.Profile{Username: "bob"},
	})

	require.NoError(t, app.SignIn(context.Background(), "alice", "pw"))

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "T1", sess.AccessToken)
	assert.Equal(t, "R1", sess.RefreshToken)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, "https://x/alice.png", sess.Avatar)
	assert.Nil(t, sess.UserData, "от предыдущего пользователя ничего не остается")
}

func TestApp_SignIn_FailureLeavesSession(t *testing.T) {
	app, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid password"})
	}), config.SignupFlowNotify)
	seedSession(t, store, &session.Session{AccessToken: "T1", Username: "alice"})

	err := app.SignIn(context.Background(), "alice", "wrong")
	require.Error(t, err)

	sess, _ := store.Load()
	assert.Equal(t, "T1", sess.AccessToken)
	assert.Equal(t, "alice", sess.Username)
}

func TestApp_SignUp_NotifyFlow(t *testing.T) {
	var confirmCalls int64
	app, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/auth/signup":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{
				"access_token":  "T1",
				"refresh_token": "R1",
			})
		case strings.HasPrefix(r.URL.Path, "/api/auth/confirmed_email/"):
			atomic.AddInt64(&confirmCalls, 1)
			json.NewEncoder(w).Encode(map[string]string{"message": "Email confirmed"})
		default:
			t.Fatalf("неожиданный запрос: %s", r.URL.Path)
		}
	}), config.SignupFlowNotify)

	err := app.SignUp(context.Background(), user.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw",
	})
	require.NoError(t, err)

	// Пара токенов сохранена, подтверждение остается за письмом
	sess, _ := store.Load()
	assert.Equal(t, "T1", sess.AccessToken)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, int64(0), atomic.LoadInt64(&confirmCalls))
}

func TestApp_SignUp_AutoConfirmFlow(t *testing.T) {
	var confirmCalls int64
	var confirmPath string
	app, _ := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/auth/signup":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{
				"access_token":  "T1",
				"refresh_token": "R1",
			})
		case strings.HasPrefix(r.URL.Path, "/api/auth/confirmed_email/"):
			atomic.AddInt64(&confirmCalls, 1)
			confirmPath = r.URL.Path
			json.NewEncoder(w).Encode(map[string]string{"message": "Email confirmed"})
		default:
			t.Fatalf("неожиданный запрос: %s", r.URL.Path)
		}
	}), config.SignupFlowAutoConfirm)

	err := app.SignUp(context.Background(), user.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&confirmCalls))
	assert.Equal(t, "/api/auth/confirmed_email/T1", confirmPath)
}

func TestApp_Logout_ClearsOnlyOn205(t *testing.T) {
	status := http.StatusInternalServerError
	app, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}), config.SignupFlowNotify)
	seedSession(t, store, &session.Session{AccessToken: "T1", Username: "alice"})

	require.Error(t, app.Logout(context.Background()))
	assert.True(t, app.IsAuthenticated(), "без 205 сессия остается")

	status = http.StatusResetContent
	require.NoError(t, app.Logout(context.Background()))
	assert.False(t, app.IsAuthenticated())
}

func TestApp_Profile_CachesSnapshot(t *testing.T) {
	app, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/me", r.URL.Path)
		json.NewEncoder(w).Encode(user.Profile{
			ID:          1,
			Username:    "alice",
			Email:       "alice@example.com",
			ImagesCount: 4,
		})
	}), config.SignupFlowNotify)
	seedSession(t, store, &session.Session{AccessToken: "T1"})

	profile, err := app.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)

	cached, err := app.CachedProfile()
	require.NoError(t, err)
	assert.Equal(t, "alice", cached.Username)
	assert.Equal(t, 4, cached.ImagesCount)
}

func TestApp_CachedProfile_Missing(t *testing.T) {
	app, _ := newTestApp(t, http.NotFoundHandler(), config.SignupFlowNotify)

	_, err := app.CachedProfile()
	require.ErrorIs(t, err, user.ErrNotFound)
}

func TestApp_AddComment_BlankRejected(t *testing.T) {
	var calls int64
	app, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&calls, 1)
	}), config.SignupFlowNotify)
	seedSession(t, store, &session.Session{AccessToken: "T1"})

	_, err := app.AddComment(context.Background(), 1, "  \t ")
	require.ErrorIs(t, err, comment.ErrEmpty)
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls))
}

func TestApp_Gallery_LoadsUserImages(t *testing.T) {
	app, store := newTestApp(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/images/by_user", r.URL.Path)
		w.Write([]byte(`{"items":[{"id":10,"link":"https://cdn/a.jpg","tags":[]},{"id":20,"link":"https://cdn/b.jpg","tags":[]}],"total":2,"page":1,"size":10}`))
	}), config.SignupFlowNotify)
	seedSession(t, store, &session.Session{AccessToken: "T1"})

	g, err := app.Gallery(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())
	assert.Equal(t, 10, g.Items()[0].Image.ID)
	assert.Equal(t, 20, g.Items()[1].Image.ID)
}
