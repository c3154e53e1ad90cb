package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore хранит сессию в локальной базе SQLite.
// Таблица на одну строку: повторное сохранение перезаписывает ее.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			access_token TEXT NOT NULL DEFAULT '',
			refresh_token TEXT NOT NULL DEFAULT '',
			username TEXT NOT NULL DEFAULT '',
			avatar TEXT NOT NULL DEFAULT '',
			user_data TEXT,
			updated_at DATETIME NOT NULL
		);
	`)

	return err
}

func (s *SQLiteStore) Load() (*Session, error) {
	var sess Session
	var userData sql.NullString

	err := s.db.QueryRow(`
		SELECT access_token, refresh_token, username, avatar, user_data
		FROM session WHERE id = 1
	`).Scan(&sess.AccessToken, &sess.RefreshToken, &sess.Username, &sess.Avatar, &userData)

	if err == sql.ErrNoRows {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
	}

	if userData.Valid && userData.String != "" {
		if err := json.Unmarshal([]byte(userData.String), &sess.UserData); err != nil {
			return nil, fmt.Errorf("ошибка парсинга профиля: %w", err)
		}
	}

	return &sess, nil
}

func (s *SQLiteStore) Save(sess *Session) error {
	var userData []byte
	if sess.UserData != nil {
		var err error
		userData, err = json.Marshal(sess.UserData)
		if err != nil {
			return fmt.Errorf("ошибка сериализации профиля: %w", err)
		}
	}

	_, err := s.db.Exec(`
		INSERT INTO session (id, access_token, refresh_token, username, avatar, user_data, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			username = excluded.username,
			avatar = excluded.avatar,
			user_data = excluded.user_data,
			updated_at = excluded.updated_at
	`, sess.AccessToken, sess.RefreshToken, sess.Username, sess.Avatar,
		string(userData), time.Now().UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
