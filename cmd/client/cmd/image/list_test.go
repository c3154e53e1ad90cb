package image

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"photoshare/cmd/client/cmd/types"
	"photoshare/internal/app/client"
	"photoshare/internal/app/client/config"
	"photoshare/internal/app/client/session"
)

func newListTestRoot(t *testing.T) *cobra.Command {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/images/by_user", r.URL.Path)
		w.Write([]byte(`{"items":[{"id":10,"link":"https://cdn/a.jpg","tags":[]}],"total":1,"page":1,"size":10}`))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		ServerAddress:  strings.TrimPrefix(srv.URL, "http://"),
		RequestTimeout: 5 * time.Second,
	}
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(&session.Session{AccessToken: "T1"}))
	app := client.NewWithStore(cfg, slog.Default(), store)

	root := &cobra.Command{Use: "photoshare"}
	root.PersistentFlags().Bool("json", false, "вывод в формате JSON")
	root.AddCommand(listCmd)
	root.SetContext(context.WithValue(context.Background(), types.ClientAppKey, app))
	// cobra присваивает контекст корня дочерней команде только при пустом ctx,
	// поэтому сбрасываем контекст, оставшийся от предыдущего теста.
	listCmd.SetContext(root.Context())
	return root
}

func TestListCmd_JSONFlag(t *testing.T) {
	root := newListTestRoot(t)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"list", "--json"})
	require.NoError(t, root.Execute())

	// Глобальный --json переключает вывод галереи на JSON
	var items []struct {
		Image struct {
			ID   int    `json:"id"`
			Link string `json:"link"`
		}
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].Image.ID)
	assert.Equal(t, "https://cdn/a.jpg", items[0].Image.Link)
}

func TestListCmd_ExplicitFormatWins(t *testing.T) {
	root := newListTestRoot(t)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"list", "--json", "--format", "table"})
	require.NoError(t, root.Execute())

	assert.Contains(t, buf.String(), "Найдено изображений: 1")
	assert.Contains(t, buf.String(), "https://cdn/a.jpg")
}