package service

import (
	"context"
	"time"

	"github.com/ridwanfathin/invoice-vault/internal/config"
	"github.com/ridwanfathin/invoice-vault/internal/domain"
	"github.com/ridwanfathin/invoice-vault/internal/repository"
)

// Cutoffs holds the per-class creation-time cutoffs for one sweep.
// Invoices created strictly before their class cutoff are expired; a
// record created exactly at the cutoff survives.
type Cutoffs struct {
	Anonymous     time.Time
	Authenticated time.Time
}

// RetentionEngine decides which stored invoices have outlived their
// retention window. Anonymous and authenticated invoices carry materially
// different windows, so the two classes are queried separately and never
// share a predicate.
type RetentionEngine struct {
	repo   repository.InvoiceRepository
	policy config.RetentionPolicy
}

// NewRetentionEngine creates a retention engine with the given policy
func NewRetentionEngine(repo repository.InvoiceRepository, policy config.RetentionPolicy) *RetentionEngine {
	return &RetentionEngine{
		repo:   repo,
		policy: policy,
	}
}

// Cutoffs computes the per-class cutoffs for a sweep at now.
func (e *RetentionEngine) Cutoffs(now time.Time) Cutoffs {
	return Cutoffs{
		Anonymous:     now.Add(-e.policy.AnonymousTTL),
		Authenticated: now.Add(-e.policy.AuthenticatedTTL),
	}
}

// FindExpired returns every invoice whose class TTL has elapsed at now.
// The two class queries partition the population by owner, so their union
// is disjoint by construction. If either query fails the whole sweep
// fails; expiring only one class would leave an asymmetric cleanup run.
func (e *RetentionEngine) FindExpired(ctx context.Context, now time.Time) ([]domain.Invoice, error) {
	cutoffs := e.Cutoffs(now)

	anonymous, err := e.repo.FindOwnedBefore(ctx, e.policy.AnonymousUserID, cutoffs.Anonymous)
	if err != nil {
		return nil, &QueryError{Class: "anonymous", Err: err}
	}

	authenticated, err := e.repo.FindNotOwnedBefore(ctx, e.policy.AnonymousUserID, cutoffs.Authenticated)
	if err != nil {
		return nil, &QueryError{Class: "authenticated", Err: err}
	}

	return append(anonymous, authenticated...), nil
}
