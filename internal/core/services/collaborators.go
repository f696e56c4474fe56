package services

import (
	"context"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
)

// Notifier hands notification facts to delivery. It must not block and never reports failure.
type Notifier interface {
	Notify(ctx context.Context, note domain.Notification)
}

// Locker runs fn while holding a named lock. Implementations fail with redis.ErrLockNotObtained
// when another holder owns it.
type Locker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, domain.Notification) {}

type localLocker struct{}

func (localLocker) WithLock(ctx context.Context, _ string, _ time.Duration, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
