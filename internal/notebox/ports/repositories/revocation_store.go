package repositories

import (
	"context"
	"time"
)

// RevocationStore хранит идентификаторы отозванных токенов до истечения их срока.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error

	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
