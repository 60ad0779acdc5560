// Package identity supplies the owner identity attached to ingested
// invoices. Resolution never blocks ingestion: when no identity is
// available the anonymous sentinel is used, which puts the invoice on the
// short retention window.
package identity

import (
	"context"

	"github.com/ridwanfathin/invoice-vault/internal/domain"
)

// OwnerResolver resolves the owner identity for an ingestion request.
type OwnerResolver interface {
	// Resolve returns an owner ID. Implementations fall back to the
	// anonymous sentinel instead of returning an error.
	Resolve(ctx context.Context) string
}

// StaticResolver resolves every request to a fixed owner ID.
type StaticResolver struct {
	userID string
}

// NewStaticResolver creates a resolver that always returns userID.
// An empty userID resolves to the anonymous sentinel.
func NewStaticResolver(userID string) *StaticResolver {
	if userID == "" {
		userID = domain.AnonymousUserID
	}
	return &StaticResolver{userID: userID}
}

// Resolve returns the configured owner ID.
func (r *StaticResolver) Resolve(ctx context.Context) string {
	return r.userID
}
