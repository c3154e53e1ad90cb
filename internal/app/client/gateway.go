package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/singleflight"

	"photoshare/internal/app/client/config"
	"photoshare/internal/app/client/session"
	"photoshare/internal/domain/comment"
	"photoshare/internal/domain/image"
	"photoshare/internal/domain/user"
)

// Gateway - единственная точка доступа к API: подставляет bearer-токен,
// следит за таймаутами через контекст вызывающего и прозрачно обновляет
// пару токенов по первому 401.
type Gateway struct {
	client    *http.Client
	log       *slog.Logger
	store     session.Store
	baseURL   string
	userAgent string
	refresh   singleflight.Group
}

func NewGateway(cfg *config.Config, store session.Store, log *slog.Logger) *Gateway {
	client := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &Gateway{
		client:    client,
		log:       log,
		store:     store,
		baseURL:   cfg.BaseURL(),
		userAgent: "PhotoShare-Client/1.0",
	}
}

// bodyFunc строит тело запроса заново для каждой попытки отправки,
// иначе повтор после обновления токена ушел бы с вычитанным Reader.
type bodyFunc func() (io.Reader, string, error)

func jsonBody(v interface{}) bodyFunc {
	return func() (io.Reader, string, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func formBody(values url.Values) bodyFunc {
	return func() (io.Reader, string, error) {
		return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded", nil
	}
}

func multipartBody(field, filename string, content []byte) bodyFunc {
	return func() (io.Reader, string, error) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile(field, filename)
		if err != nil {
			return nil, "", fmt.Errorf("ошибка подготовки формы: %w", err)
		}
		if _, err := part.Write(content); err != nil {
			return nil, "", fmt.Errorf("ошибка записи файла в форму: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, "", fmt.Errorf("ошибка завершения формы: %w", err)
		}
		return &buf, w.FormDataContentType(), nil
	}
}

// send выполняет запрос. Для авторизованных вызовов действует инвариант:
// без access-токена в сессии запрос в сеть не уходит вовсе.
func (g *Gateway) send(ctx context.Context, method, path string, body bodyFunc, authed bool) (*http.Response, error) {
	var token string
	if authed {
		sess, err := g.store.Load()
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
		}
		if !sess.Authenticated() {
			g.log.Debug("запрос отклонен: нет токена", "method", method, "path", path)
			return nil, ErrNoToken
		}
		token = sess.AccessToken

		// Если по exp видно, что токен уже истек, обновляем заранее,
		// не сжигая запрос ради гарантированного 401.
		if tokenExpired(token) && sess.RefreshToken != "" {
			if fresh, err := g.refreshTokens(ctx); err == nil {
				token = fresh
			}
		}
	}

	resp, err := g.attempt(ctx, method, path, body, token)
	if err != nil {
		return nil, err
	}

	if authed && resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()

		fresh, err := g.refreshTokens(ctx)
		if err != nil {
			// ErrUnauthorized - сервер отверг refresh-токен, сессия очищена.
			// Сетевая ошибка сессию не трогает и уходит наверх как есть.
			if errors.Is(err, ErrUnauthorized) {
				return nil, ErrUnauthorized
			}
			return nil, fmt.Errorf("обновление токена: %w", err)
		}

		resp, err = g.attempt(ctx, method, path, body, fresh)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			resp.Body.Close()
			if err := g.store.Clear(); err != nil {
				g.log.Warn("не удалось очистить сессию", "error", err)
			}
			return nil, ErrUnauthorized
		}
	}

	return resp, nil
}

func (g *Gateway) attempt(ctx context.Context, method, path string, body bodyFunc, token string) (*http.Response, error) {
	var reqBody io.Reader
	var contentType string
	if body != nil {
		var err error
		reqBody, contentType, err = body()
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", g.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	g.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

// refreshTokens обменивает refresh-токен на новую пару. Сколько бы вызовов
// ни уперлось в 401 одновременно, обмен выполняется один раз.
// Отказ сервера в обмене очищает сессию целиком и возвращает
// ErrUnauthorized; сетевые ошибки сессию не трогают.
func (g *Gateway) refreshTokens(ctx context.Context) (string, error) {
	v, err, _ := g.refresh.Do("refresh", func() (interface{}, error) {
		sess, err := g.store.Load()
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
		}
		if sess.RefreshToken == "" {
			if err := g.store.Clear(); err != nil {
				g.log.Warn("не удалось очистить сессию", "error", err)
			}
			return nil, ErrUnauthorized
		}

		resp, err := g.attempt(ctx, http.MethodGet, "/api/auth/refresh_token", nil, sess.RefreshToken)
		if err != nil {
			return nil, err
		}

		var pair user.TokenPair
		if err := g.parseResponse(resp, &pair); err != nil {
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				// Сервер вердикт по токену не вынес, это не отказ в обмене
				return nil, err
			}
			if clearErr := g.store.Clear(); clearErr != nil {
				g.log.Warn("не удалось очистить сессию", "error", clearErr)
			}
			g.log.Debug("обновление токена отклонено", "error", err)
			return nil, ErrUnauthorized
		}

		sess.AccessToken = pair.AccessToken
		sess.RefreshToken = pair.RefreshToken
		if err := g.store.Save(sess); err != nil {
			return nil, fmt.Errorf("ошибка сохранения сессии: %w", err)
		}

		g.log.Debug("пара токенов обновлена")
		return pair.AccessToken, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

// tokenExpired смотрит на exp без проверки подписи: подпись проверяет сервер,
// клиенту достаточно знать, стоит ли идти с этим токеном вообще.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (g *Gateway) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	g.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"body", string(body),
	)

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Detail: errorDetail(body)}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}

// errorDetail достает текст ошибки из тела: FastAPI кладет его в detail,
// часть ручек отвечает message.
func errorDetail(body []byte) string {
	var errResp struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	if errResp.Message != "" {
		return errResp.Message
	}
	var detail string
	if err := json.Unmarshal(errResp.Detail, &detail); err == nil {
		return detail
	}
	return string(errResp.Detail)
}

// ==================== Auth ====================

// SignUp регистрирует аккаунт. Сервер отвечает 201 и парой токенов.
func (g *Gateway) SignUp(ctx context.Context, req user.SignupRequest) (*user.TokenPair, error) {
	resp, err := g.send(ctx, http.MethodPost, "/api/auth/signup", jsonBody(req), false)
	if err != nil {
		return nil, err
	}

	var pair user.TokenPair
	if err := g.parseResponse(resp, &pair); err != nil {
		return nil, err
	}

	return &pair, nil
}

// Login выполняет вход. Единственная ручка с form-encoded телом.
func (g *Gateway) Login(ctx context.Context, username, password string) (*user.LoginResponse, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}

	resp, err := g.send(ctx, http.MethodPost, "/api/auth/login", formBody(form), false)
	if err != nil {
		return nil, err
	}

	var loginResp user.LoginResponse
	if err := g.parseResponse(resp, &loginResp); err != nil {
		return nil, err
	}

	return &loginResp, nil
}

// Logout завершает сессию на сервере. Успех - строго 205 Reset Content;
// на любом другом статусе вызывающий не должен трогать локальную сессию.
func (g *Gateway) Logout(ctx context.Context) error {
	resp, err := g.send(ctx, http.MethodGet, "/api/auth/logout", nil, true)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusResetContent {
		resp.Body.Close()
		return nil
	}

	if err := g.parseResponse(resp, nil); err != nil {
		return err
	}
	return &APIError{Status: resp.StatusCode, Detail: "сервер не завершил сессию"}
}

// RequestEmailConfirm просит сервер повторно отправить письмо подтверждения.
// 401 здесь означает "письмо уже отправлено или адрес подтвержден".
func (g *Gateway) RequestEmailConfirm(ctx context.Context, email string) error {
	resp, err := g.send(ctx, http.MethodPost, "/api/auth/request_email", jsonBody(user.RequestEmail{Email: email}), false)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return user.ErrConfirmPending
	}

	return g.parseResponse(resp, nil)
}

// ConfirmEmail завершает подтверждение почты по токену из письма.
func (g *Gateway) ConfirmEmail(ctx context.Context, token string) error {
	resp, err := g.send(ctx, http.MethodGet, "/api/auth/confirmed_email/"+url.PathEscape(token), nil, false)
	if err != nil {
		return err
	}

	return g.parseResponse(resp, nil)
}

// ==================== Users ====================

// Me возвращает профиль текущего пользователя.
func (g *Gateway) Me(ctx context.Context) (*user.Profile, error) {
	resp, err := g.send(ctx, http.MethodGet, "/api/users/me", nil, true)
	if err != nil {
		return nil, err
	}

	var profile user.Profile
	if err := g.parseResponse(resp, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// ProfileOf возвращает профиль другого пользователя по имени.
func (g *Gateway) ProfileOf(ctx context.Context, username string) (*user.Profile, error) {
	resp, err := g.send(ctx, http.MethodGet, "/api/users/profile/"+url.PathEscape(username), nil, true)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, user.ErrNotFound
	}

	var profile user.Profile
	if err := g.parseResponse(resp, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// ==================== Images ====================

// ImagesByUser возвращает страницу изображений текущего пользователя
// в порядке ответа сервера.
func (g *Gateway) ImagesByUser(ctx context.Context) (*image.Page, error) {
	resp, err := g.send(ctx, http.MethodGet, "/api/images/by_user", nil, true)
	if err != nil {
		return nil, err
	}

	var page image.Page
	if err := g.parseResponse(resp, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// SearchByTag ищет изображения по тегу.
func (g *Gateway) SearchByTag(ctx context.Context, tag string) (*image.Page, error) {
	resp, err := g.send(ctx, http.MethodGet, "/api/images/search_bytag/"+url.PathEscape(tag), nil, true)
	if err != nil {
		return nil, err
	}

	var page image.Page
	if err := g.parseResponse(resp, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// UploadImage загружает файл. Описание и теги сервер принимает
// query-параметрами, сам файл - multipart-формой.
func (g *Gateway) UploadImage(ctx context.Context, description, tags, filename string, content []byte) (*image.Image, error) {
	query := url.Values{
		"description": {description},
		"tags":        {tags},
	}

	resp, err := g.send(ctx, http.MethodPost, "/api/images/?"+query.Encode(),
		multipartBody("file", filename, content), true)
	if err != nil {
		return nil, err
	}

	var img image.Image
	if err := g.parseResponse(resp, &img); err != nil {
		return nil, err
	}

	return &img, nil
}

// GetImage возвращает изображение по id.
func (g *Gateway) GetImage(ctx context.Context, id int) (*image.Image, error) {
	resp, err := g.send(ctx, http.MethodGet, "/api/images/"+strconv.Itoa(id), nil, true)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, image.ErrNotFound
	}

	var img image.Image
	if err := g.parseResponse(resp, &img); err != nil {
		return nil, err
	}

	return &img, nil
}

// UpdateImage меняет описание изображения.
func (g *Gateway) UpdateImage(ctx context.Context, id int, description string) (*image.Image, error) {
	resp, err := g.send(ctx, http.MethodPatch, "/api/images/"+strconv.Itoa(id),
		jsonBody(image.UpdateRequest{Description: description}), true)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, image.ErrNotFound
	}

	var img image.Image
	if err := g.parseResponse(resp, &img); err != nil {
		return nil, err
	}

	return &img, nil
}

// DeleteImage удаляет изображение на сервере.
func (g *Gateway) DeleteImage(ctx context.Context, id int) error {
	resp, err := g.send(ctx, http.MethodDelete, "/api/images/"+strconv.Itoa(id), nil, true)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return image.ErrNotFound
	}

	return g.parseResponse(resp, nil)
}

// ==================== Comments and ratings ====================

// AddComment добавляет комментарий к изображению.
func (g *Gateway) AddComment(ctx context.Context, imageID int, text string) (*comment.Comment, error) {
	resp, err := g.send(ctx, http.MethodPost, "/api/comment/"+strconv.Itoa(imageID),
		jsonBody(comment.AddRequest{Comment: text}), true)
	if err != nil {
		return nil, err
	}

	var c comment.Comment
	if err := g.parseResponse(resp, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// SetRating ставит изображению оценку от 1 до 5.
func (g *Gateway) SetRating(ctx context.Context, imageID int, rating float64) error {
	resp, err := g.send(ctx, http.MethodPost, "/api/ratings/"+strconv.Itoa(imageID),
		jsonBody(image.RatingRequest{Rating: rating}), true)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return image.ErrNotFound
	}

	return g.parseResponse(resp, nil)
}

// AverageRating возвращает среднюю оценку изображения.
func (g *Gateway) AverageRating(ctx context.Context, imageID int) (float64, error) {
	resp, err := g.send(ctx, http.MethodGet, "/api/ratings/"+strconv.Itoa(imageID), nil, true)
	if err != nil {
		return 0, err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return 0, image.ErrNotFound
	}

	var rating image.RatingResponse
	if err := g.parseResponse(resp, &rating); err != nil {
		return 0, err
	}

	return rating.Rating, nil
}
