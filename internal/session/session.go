// Package session управляет сессиями администраторов консоли: токеном доступа
// и закэшированной записью администратора. Каждая сессия принадлежит одному
// браузеру и адресуется своим идентификатором, который едет в контексте
// запроса. Все чтения и записи идут через Manager, который уведомляет
// подписчиков о входе, выходе и истечении сессии.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/subscription-admin-console/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
)

// Ключи, под которыми токен и администратор лежат в хранилище. Стираются вместе.
const (
	TokenKey = "admin_token"
	AdminKey = "admin_user"
)

var (
	// ErrNoSession возвращается, когда сохранённой сессии нет.
	ErrNoSession = errors.New("session not found")
	// ErrNoID в контексте нет идентификатора сессии.
	ErrNoID = errors.New("session id missing in context")
)

type ctxKey struct{}

// NewID выдаёт новый случайный идентификатор сессии.
func NewID() string {
	return uuid.NewString()
}

// WithID кладёт идентификатор сессии в контекст.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IDFrom достаёт идентификатор сессии из контекста.
func IDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// Session сохранённые учётные данные администратора.
type Session struct {
	Token     string
	Admin     *models.Admin
	ExpiresAt *time.Time // из claim exp токена, без проверки подписи
}

// New собирает сессию и вычисляет срок её действия по токену.
func New(token string, admin *models.Admin) *Session {
	return &Session{
		Token:     token,
		Admin:     admin,
		ExpiresAt: tokenExpiry(token),
	}
}

// Expired сообщает, истёк ли токен на момент now. Токен без exp не истекает.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

func tokenExpiry(token string) *time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	exp := claims.ExpiresAt.Time
	return &exp
}

// Store постоянное хранилище сессий по идентификатору.
// Load возвращает ErrNoSession, если сессии с таким id нет.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, s *Session) error
	Delete(ctx context.Context, id string) error
}

// Reason причина изменения сессии.
type Reason string

const (
	ReasonLogin   Reason = "login"
	ReasonLogout  Reason = "logout"
	ReasonExpired Reason = "expired"
)

// Event уведомление об изменении сессии.
type Event struct {
	Reason Reason
	Admin  *models.Admin
	At     time.Time
}

// Observer получает события сессии.
type Observer func(ctx context.Context, e Event)

// Manager единственная точка доступа к сессиям. Сессия выбирается по
// идентификатору из контекста, без него сессии нет.
type Manager struct {
	store Store
	log   *slog.Logger

	mu        sync.RWMutex
	observers []Observer
}

// NewManager создаёт менеджер поверх хранилища.
func NewManager(store Store, log *slog.Logger) *Manager {
	return &Manager{
		store: store,
		log:   log,
	}
}

// Subscribe добавляет подписчика на события сессии.
func (m *Manager) Subscribe(o Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// Get возвращает сессию вызывающего или ErrNoSession.
func (m *Manager) Get(ctx context.Context) (*Session, error) {
	const op = "session.Get"
	id, ok := IDFrom(ctx)
	if !ok {
		return nil, ErrNoSession
	}
	s, err := m.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// Token возвращает сохранённый токен или пустую строку, если сессии нет.
func (m *Manager) Token(ctx context.Context) (string, error) {
	s, err := m.Get(ctx)
	if errors.Is(err, ErrNoSession) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.Token, nil
}

// Set сохраняет токен и администратора после успешного входа.
func (m *Manager) Set(ctx context.Context, token string, admin models.Admin) error {
	const op = "session.Set"
	id, ok := IDFrom(ctx)
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrNoID)
	}
	if token == "" {
		return fmt.Errorf("%s: empty token", op)
	}
	s := New(token, &admin)
	if err := m.store.Save(ctx, id, s); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m.notify(ctx, Event{Reason: ReasonLogin, Admin: s.Admin, At: time.Now()})
	return nil
}

// Clear стирает токен и администратора вместе и уведомляет подписчиков.
// Без идентификатора в контексте стирать нечего.
func (m *Manager) Clear(ctx context.Context, reason Reason) error {
	const op = "session.Clear"
	id, ok := IDFrom(ctx)
	if !ok {
		return nil
	}
	var admin *models.Admin
	if s, err := m.store.Load(ctx, id); err == nil {
		admin = s.Admin
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m.log.Info("session cleared", sl.Op(op), slog.String("reason", string(reason)))
	m.notify(ctx, Event{Reason: reason, Admin: admin, At: time.Now()})
	return nil
}

func (m *Manager) notify(ctx context.Context, e Event) {
	m.mu.RLock()
	observers := make([]Observer, len(m.observers))
	copy(observers, m.observers)
	m.mu.RUnlock()

	for _, o := range observers {
		o(ctx, e)
	}
}
