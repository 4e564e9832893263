package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/subscription-admin-console/internal/config"
	"github.com/magabrotheeeer/subscription-admin-console/internal/models"
)

// NewRedisClient подключается к redis и проверяет соединение.
func NewRedisClient(ctx context.Context, cfg config.RedisConnection) (*redis.Client, error) {
	const op = "session.NewRedisClient"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return db, nil
}

// RedisStore хранит сессии в redis, чтобы несколько экземпляров консоли видели их одинаково.
// Ключи сессии лежат под prefix+id+":" и живут не дольше токена.
type RedisStore struct {
	db     *redis.Client
	prefix string
}

// NewRedisStore создаёт хранилище; prefix отделяет ключи консоли от прочих.
func NewRedisStore(db *redis.Client, prefix string) *RedisStore {
	return &RedisStore{db: db, prefix: prefix}
}

func (s *RedisStore) tokenKey(id string) string { return s.prefix + id + ":" + TokenKey }
func (s *RedisStore) adminKey(id string) string { return s.prefix + id + ":" + AdminKey }

func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	const op = "session.RedisStore.Load"
	vals, err := s.db.MGet(ctx, s.tokenKey(id), s.adminKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	token, _ := vals[0].(string)
	if token == "" {
		return nil, ErrNoSession
	}
	var admin *models.Admin
	if raw, ok := vals[1].(string); ok && raw != "" && raw != "null" {
		admin = &models.Admin{}
		if err := json.Unmarshal([]byte(raw), admin); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return New(token, admin), nil
}

func (s *RedisStore) Save(ctx context.Context, id string, sess *Session) error {
	const op = "session.RedisStore.Save"
	var ttl time.Duration
	if sess.ExpiresAt != nil {
		ttl = time.Until(*sess.ExpiresAt)
		if ttl <= 0 {
			return fmt.Errorf("%s: session already expired", op)
		}
	}
	adminJSON, err := json.Marshal(sess.Admin)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = s.db.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.tokenKey(id), sess.Token, ttl)
		p.Set(ctx, s.adminKey(id), adminJSON, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	const op = "session.RedisStore.Delete"
	if err := s.db.Del(ctx, s.tokenKey(id), s.adminKey(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
