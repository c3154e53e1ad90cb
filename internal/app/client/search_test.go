package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photoshare/internal/app/client/session"
	"photoshare/internal/domain/image"
)

func TestSearch_IdleTimerReverts(t *testing.T) {
	s := NewSearchController(nil, 30*time.Millisecond)

	s.Begin()
	s.SetQuery("sunset")
	require.Equal(t, SearchActive, s.State())
	require.Equal(t, "sunset", s.Query())

	// Enter не нажат: по истечении таймера поиск сворачивается
	assert.Eventually(t, func() bool {
		return s.State() == SearchIdle
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, s.Query())
}

func TestSearch_SubmitBeforeTimer(t *testing.T) {
	gw, store := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/images/search_bytag/sunset", r.URL.Path)
		json.NewEncoder(w).Encode(image.Page{Items: []image.Image{
			{ID: 1, Description: "закат"},
			{ID: 2, Description: "еще закат"},
		}})
	}))
	seedSession(t, store, &session.Session{AccessToken: "T1"})

	s := NewSearchController(gw, 50*time.Millisecond)
	s.Begin()
	s.SetQuery("sunset")

	first, err := s.Submit(context.Background())
	require.NoError(t, err)

	// Показан первый результат, таймер снят и Displaying не сбрасывается
	assert.Equal(t, SearchDisplaying, s.State())
	assert.Equal(t, 1, first.ID)
	require.NotNil(t, s.Result())
	assert.Equal(t, "закат", s.Result().Description)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, SearchDisplaying, s.State())
}

func TestSearch_NoResults(t *testing.T) {
	gw, store := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(image.Page{Items: []image.Image{}})
	}))
	seedSession(t, store, &session.Session{AccessToken: "T1"})

	s := NewSearchController(gw, time.Second)
	s.Begin()
	s.SetQuery("nosuchtag")

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, image.ErrNoResults)
	assert.Equal(t, SearchIdle, s.State())
	assert.Empty(t, s.Query())
}

func TestSearch_SubmitWithoutBegin(t *testing.T) {
	s := NewSearchController(nil, time.Second)

	_, err := s.Submit(context.Background())
	require.ErrorIs(t, err, image.ErrNoResults)
	assert.Equal(t, SearchIdle, s.State())
}

func TestSearch_QueryIgnoredWhenIdle(t *testing.T) {
	s := NewSearchController(nil, time.Second)

	s.SetQuery("sunset")
	assert.Empty(t, s.Query(), "ввод вне активного поиска не запоминается")
}

func TestSearch_CloseDuringSubmit(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	gw, store := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		<-release
		json.NewEncoder(w).Encode(image.Page{Items: []image.Image{{ID: 1}}})
	}))
	seedSession(t, store, &session.Session{AccessToken: "T1"})

	s := NewSearchController(gw, time.Minute)
	s.Begin()
	s.SetQuery("sunset")

	done := make(chan struct{})
	var submitErr error
	go func() {
		defer close(done)
		_, submitErr = s.Submit(context.Background())
	}()

	// Закрываем поиск, пока запрос висит на сервере
	<-entered
	s.Close()
	close(release)
	<-done

	// Запоздавший ответ не перебивает закрытие
	require.ErrorIs(t, submitErr, image.ErrNoResults)
	assert.Equal(t, SearchIdle, s.State())
	assert.Nil(t, s.Result())
	assert.Empty(t, s.Query())
}

func TestSearch_Close(t *testing.T) {
	s := NewSearchController(nil, 30*time.Millisecond)
	s.Begin()
	s.SetQuery("sunset")

	s.Close()
	assert.Equal(t, SearchIdle, s.State())
	assert.Empty(t, s.Query())
	assert.Nil(t, s.Result())

	// Снятый таймер не срабатывает после закрытия
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, SearchIdle, s.State())
}

func TestSearch_BeginRestartsTimer(t *testing.T) {
	s := NewSearchController(nil, 200*time.Millisecond)
	s.Begin()
	s.SetQuery("first")

	// Повторное открытие перевзводит таймер и сбрасывает результат
	time.Sleep(120 * time.Millisecond)
	s.Begin()
	require.Equal(t, SearchActive, s.State())

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, SearchActive, s.State(), "старый таймер не должен сработать")
}
