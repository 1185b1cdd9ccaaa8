package contract

import (
	"context"

	"whatsapp-storefront-be/pkg/store"
)

// SessionRepository stores conversation state keyed by tenant and user.
// Implementations may expire entries; a miss is reported via the bool.
type SessionRepository interface {
	Get(ctx context.Context, tenantId, userId string) (*store.Session, bool, error)
	Save(ctx context.Context, session *store.Session) error
	Delete(ctx context.Context, tenantId, userId string) error
}
