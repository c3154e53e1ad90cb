package session

import gosync "sync"

// MemoryStore - хранилище в памяти, в основном для тестов.
type MemoryStore struct {
	mu   gosync.Mutex
	sess *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sess == nil {
		return &Session{}, nil
	}
	return cloneSession(m.sess), nil
}

func (m *MemoryStore) Save(sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sess = cloneSession(sess)
	return nil
}

// cloneSession копирует сессию вместе с кэшем профиля, иначе вызывающий
// и хранилище делят один указатель UserData.
func cloneSession(sess *Session) *Session {
	copied := *sess
	if sess.UserData != nil {
		profile := *sess.UserData
		copied.UserData = &profile
	}
	return &copied
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sess = nil
	return nil
}
