package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/exp/slog"

	"photoshare/internal/app/client/config"
	"photoshare/internal/app/client/session"
	"photoshare/internal/domain/comment"
	"photoshare/internal/domain/image"
	"photoshare/internal/domain/user"
)

// App - клиентское приложение PhotoShare: конфигурация, сессия и шлюз к API.
// Все состояние между запусками живет в session.Store.
type App struct {
	config  *config.Config
	log     *slog.Logger
	store   session.Store
	gateway *Gateway
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := newStore(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации хранилища сессии: %w", err)
	}

	return NewWithStore(cfg, log, store), nil
}

// NewWithStore собирает приложение с готовым хранилищем сессии.
// Хранилище подключаемое, поэтому тесты обходятся без файлов и базы.
func NewWithStore(cfg *config.Config, log *slog.Logger, store session.Store) *App {
	return &App{
		config:  cfg,
		log:     log,
		store:   store,
		gateway: NewGateway(cfg, store, log),
	}
}

func newStore(cfg *config.Config, log *slog.Logger) (session.Store, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendSQLite:
		store, err := session.NewSQLiteStore(cfg.SessionPath)
		if err != nil {
			log.Warn("Не удалось инициализировать SQLite, используем файл", "error", err)
			return session.NewFileStore(filepath.Join(cfg.ConfigDir, "session.json")), nil
		}
		return store, nil
	case config.SessionBackendMemory:
		return session.NewMemoryStore(), nil
	default:
		return session.NewFileStore(cfg.SessionPath), nil
	}
}

// Timeout - таймаут одного запроса к API, для дедлайнов в командах.
func (a *App) Timeout() time.Duration {
	return a.config.RequestTimeout
}

// IsAuthenticated проверяет, есть ли в сессии access-токен.
func (a *App) IsAuthenticated() bool {
	sess, err := a.store.Load()
	if err != nil {
		a.log.Warn("не удалось прочитать сессию", "error", err)
		return false
	}
	return sess.Authenticated()
}

// Session возвращает текущую сессию.
func (a *App) Session() (*session.Session, error) {
	return a.store.Load()
}

// ==================== Auth ====================

// SignUp регистрирует аккаунт и сохраняет выданную пару токенов.
// Дальнейшее поведение зависит от стратегии signup_flow.
func (a *App) SignUp(ctx context.Context, req user.SignupRequest) error {
	pair, err := a.gateway.SignUp(ctx, req)
	if err != nil {
		return err
	}

	sess := &session.Session{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Username:     req.Username,
	}
	if err := a.store.Save(sess); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	a.log.Info("Пользователь зарегистрирован", "username", req.Username)

	if a.config.SignupFlow == config.SignupFlowAutoConfirm {
		if err := a.gateway.ConfirmEmail(ctx, pair.AccessToken); err != nil {
			return fmt.Errorf("ошибка автоподтверждения почты: %w", err)
		}
		a.log.Info("Почта подтверждена автоматически")
	}

	return nil
}

// SignIn выполняет вход и целиком заменяет сессию: от предыдущего
// пользователя не остается ни токенов, ни кэша профиля.
func (a *App) SignIn(ctx context.Context, username, password string) error {
	loginResp, err := a.gateway.Login(ctx, username, password)
	if err != nil {
		return err
	}

	sess := &session.Session{
		AccessToken:  loginResp.AccessToken,
		RefreshToken: loginResp.RefreshToken,
		Username:     loginResp.Username,
		Avatar:       loginResp.Avatar,
	}
	if err := a.store.Save(sess); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	a.log.Info("Вход выполнен успешно", "username", loginResp.Username)
	return nil
}

// Logout завершает сессию. Локальная сессия очищается только после
// подтверждения сервера (205); иначе она остается нетронутой.
func (a *App) Logout(ctx context.Context) error {
	if err := a.gateway.Logout(ctx); err != nil {
		return err
	}

	if err := a.store.Clear(); err != nil {
		return fmt.Errorf("ошибка очистки сессии: %w", err)
	}

	a.log.Info("Выход выполнен")
	return nil
}

// RequestEmailConfirm просит повторно отправить письмо подтверждения.
func (a *App) RequestEmailConfirm(ctx context.Context, email string) error {
	return a.gateway.RequestEmailConfirm(ctx, email)
}

// ConfirmEmail завершает подтверждение почты по токену из письма.
func (a *App) ConfirmEmail(ctx context.Context, token string) error {
	return a.gateway.ConfirmEmail(ctx, token)
}

// ==================== Profile ====================

// Profile запрашивает профиль текущего пользователя и кэширует снимок
// в сессии до следующего запроса.
func (a *App) Profile(ctx context.Context) (*user.Profile, error) {
	profile, err := a.gateway.Me(ctx)
	if err != nil {
		return nil, err
	}

	sess, err := a.store.Load()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
	}
	sess.UserData = profile
	if err := a.store.Save(sess); err != nil {
		a.log.Warn("не удалось закэшировать профиль", "error", err)
	}

	return profile, nil
}

// CachedProfile возвращает снимок профиля из сессии, если он там есть.
func (a *App) CachedProfile() (*user.Profile, error) {
	sess, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	if sess.UserData == nil {
		return nil, user.ErrNotFound
	}
	return sess.UserData, nil
}

// ProfileOf возвращает профиль другого пользователя, без кэширования.
func (a *App) ProfileOf(ctx context.Context, username string) (*user.Profile, error) {
	return a.gateway.ProfileOf(ctx, username)
}

// ==================== Images ====================

// Gallery загружает изображения текущего пользователя.
func (a *App) Gallery(ctx context.Context) (*Gallery, error) {
	page, err := a.gateway.ImagesByUser(ctx)
	if err != nil {
		return nil, err
	}

	a.log.Debug("Галерея загружена", "count", len(page.Items))
	return NewGallery(a.gateway, page.Items), nil
}

// UploadImage загружает файл с описанием и тегами.
func (a *App) UploadImage(ctx context.Context, path, description, tags string) (*image.Image, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	img, err := a.gateway.UploadImage(ctx, description, tags, filepath.Base(path), content)
	if err != nil {
		return nil, err
	}

	a.log.Info("Изображение загружено", "id", img.ID)
	return img, nil
}

// UpdateImage меняет описание изображения.
func (a *App) UpdateImage(ctx context.Context, id int, description string) (*image.Image, error) {
	return a.gateway.UpdateImage(ctx, id, description)
}

// AddComment добавляет комментарий к изображению по id,
// без загрузки галереи.
func (a *App) AddComment(ctx context.Context, imageID int, text string) (*comment.Comment, error) {
	if isBlank(text) {
		return nil, comment.ErrEmpty
	}
	return a.gateway.AddComment(ctx, imageID, text)
}

// SetRating ставит изображению оценку.
func (a *App) SetRating(ctx context.Context, imageID int, rating float64) error {
	return a.gateway.SetRating(ctx, imageID, rating)
}

// AverageRating возвращает среднюю оценку изображения.
func (a *App) AverageRating(ctx context.Context, imageID int) (float64, error) {
	return a.gateway.AverageRating(ctx, imageID)
}

// NewSearch создает контроллер поиска по тегу с настроенным
// таймером бездействия.
func (a *App) NewSearch() *SearchController {
	return NewSearchController(a.gateway, a.config.SearchIdle)
}
