package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"whatsapp-storefront-be/internal/repository/contract"
	"whatsapp-storefront-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

// SessionRepository persists sessions in Redis so state survives process
// restarts and is shared across replicas.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) contract.SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(tenantId, userId string) string {
	return "chat:session:" + store.Key(tenantId, userId)
}

func (r *SessionRepository) Get(ctx context.Context, tenantId, userId string) (*store.Session, bool, error) {
	data, err := r.client.Get(ctx, sessionKey(tenantId, userId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get session: %w", err)
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, false, fmt.Errorf("decode session: %w", err)
	}
	return &session, true, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	key := sessionKey(session.TenantId, session.UserId)
	// No TTL: hand-off stickiness must survive arbitrary quiet periods.
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, tenantId, userId string) error {
	if err := r.client.Del(ctx, sessionKey(tenantId, userId)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
