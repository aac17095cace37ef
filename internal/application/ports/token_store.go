package ports

import (
	"context"
	"time"
)

// TokenRevocationStore lista de refresh tokens revocados (por jti) hasta su expiración.
type TokenRevocationStore interface {
	// Revoke marca tokenID de forma atómica y devuelve false si ya estaba revocado.
	Revoke(ctx context.Context, tokenID string, until time.Time) (bool, error)
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
