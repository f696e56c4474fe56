package services

import (
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/core/scheduling"
	"github.com/SscSPs/boutique_ops/internal/platform/cache"
	"github.com/SscSPs/boutique_ops/internal/platform/config"
	"github.com/SscSPs/boutique_ops/internal/platform/metrics"
	"github.com/SscSPs/boutique_ops/internal/platform/redis"
)

// Collaborators are the infrastructure pieces services talk to besides repositories. Any of them
// may be nil: Redis falls back to in-process caching and unguarded generation, Notifier to a no-op.
type Collaborators struct {
	Metrics  *metrics.Metrics
	Redis    *redis.Client
	Notifier Notifier
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps Collaborators) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	pattern := scheduling.TeamPattern{RotationAnchor: cfg.TeamRotationAnchor, Ramadan: cfg.Ramadan}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}

	// Scope resolution comes first since every other service depends on it
	container.Scope = NewScopeService(repos.BoutiqueRepo)

	// One coverage cache is shared by everything that can make a cached roster stale
	coverageCache := cache.NewCoverageCache(cfg.CoverageCacheTTL, deps.Metrics)

	container.Schedule = NewScheduleService(repos, container.Scope, pattern,
		WithCoverageCache(coverageCache),
		WithScheduleMetrics(deps.Metrics),
		WithGuestCoverage(cfg.FeatureGuestCoverage),
	)
	container.Target = NewTargetService(repos, container.Scope, pattern, cfg.RoleWeights,
		WithGenerationLock(deps.Redis, cfg.TargetGenerationLockTTL),
		WithTargetMetrics(deps.Metrics),
		WithYearOverYearCache(cache.NewSnapshot[int64]("yoy_sales", cfg.SnapshotCacheTTL, deps.Redis, deps.Metrics)),
	)
	container.Sales = NewSalesService(repos, container.Scope, nil)
	container.Leave = NewLeaveService(repos, container.Scope,
		WithLeaveNotifier(notifier),
		WithLeaveCoverageCache(coverageCache),
	)
	container.Task = NewTaskService(repos, container.Scope, pattern,
		WithTaskNotifier(notifier),
		WithTaskReminders(cfg.FeatureTaskReminders),
	)
	container.Employee = NewEmployeeService(repos, container.Scope, coverageCache, nil)

	return container
}
