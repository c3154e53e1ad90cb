package client

import (
	"context"
	gosync "sync"
	"time"

	"photoshare/internal/domain/image"
)

// SearchState - состояние контроллера поиска.
type SearchState int

const (
	// SearchIdle - поиск не активен, запрос пуст.
	SearchIdle SearchState = iota
	// SearchActive - поле ввода открыто, запущен таймер бездействия.
	SearchActive
	// SearchDisplaying - показан первый результат последнего поиска.
	SearchDisplaying
)

// SearchController - поиск изображений по тегу с таймером бездействия.
//
// Переходы: Idle -> Active (Begin, таймер взведен) -> Displaying (Submit,
// есть результаты) -> Idle (Close). Истекший таймер или пустой результат
// возвращают контроллер в Idle и очищают запрос.
type SearchController struct {
	mu     gosync.Mutex
	gw     *Gateway
	state  SearchState
	query  string
	timer  *time.Timer
	idle   time.Duration
	result *image.Image
}

func NewSearchController(gw *Gateway, idle time.Duration) *SearchController {
	return &SearchController{gw: gw, idle: idle}
}

// State возвращает текущее состояние.
func (s *SearchController) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Query возвращает текущий текст запроса.
func (s *SearchController) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Result возвращает показанный результат, если состояние Displaying.
func (s *SearchController) Result() *image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Begin открывает поиск и взводит таймер бездействия: если за отведенное
// время не нажат Enter, поиск закрывается и запрос очищается.
func (s *SearchController) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.state = SearchActive
	s.result = nil
	s.timer = time.AfterFunc(s.idle, s.expire)
}

// SetQuery запоминает введенный текст запроса.
func (s *SearchController) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SearchActive {
		s.query = q
	}
}

// expire срабатывает по таймеру: открытый поиск сворачивается.
// Если пользователь уже успел отправить запрос, таймер опоздал и молчит.
func (s *SearchController) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SearchActive {
		return
	}
	s.state = SearchIdle
	s.query = ""
	s.timer = nil
}

// Submit - нажатие Enter: снимает таймер и выполняет поиск.
// Первый найденный результат переводит контроллер в Displaying;
// пустой ответ возвращает в Idle с ошибкой image.ErrNoResults.
func (s *SearchController) Submit(ctx context.Context) (*image.Image, error) {
	s.mu.Lock()
	if s.state != SearchActive {
		s.mu.Unlock()
		return nil, image.ErrNoResults
	}
	s.stopTimerLocked()
	query := s.query
	s.mu.Unlock()

	page, err := s.gw.SearchByTag(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Пока шел запрос, поиск могли закрыть
	if s.state != SearchActive {
		return nil, image.ErrNoResults
	}

	if err != nil {
		s.state = SearchIdle
		s.query = ""
		return nil, err
	}

	if len(page.Items) == 0 {
		s.state = SearchIdle
		s.query = ""
		return nil, image.ErrNoResults
	}

	first := page.Items[0]
	s.state = SearchDisplaying
	s.result = &first
	return &first, nil
}

// Close закрывает модальное окно: снимает таймер, очищает запрос.
func (s *SearchController) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.state = SearchIdle
	s.query = ""
	s.result = nil
}

func (s *SearchController) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
