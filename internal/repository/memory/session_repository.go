package memory

import (
	"context"

	"whatsapp-storefront-be/internal/repository/contract"
	"whatsapp-storefront-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps sessions until an explicit reset. Growth is
// bounded only by the user population; hand-off stickiness must survive
// arbitrary gaps between messages.
func NewSessionRepository() contract.SessionRepository {
	c := cache.New(cache.NoExpiration, 0)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Get(ctx context.Context, tenantId, userId string) (*store.Session, bool, error) {
	if x, found := r.cache.Get(store.Key(tenantId, userId)); found {
		return x.(*store.Session), true, nil
	}
	return nil, false, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	r.cache.Set(store.Key(session.TenantId, session.UserId), session, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, tenantId, userId string) error {
	r.cache.Delete(store.Key(tenantId, userId))
	return nil
}
