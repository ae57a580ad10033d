package health

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/safeexplore/internal/logger"
)

// Status is the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates every check failed.
	Unhealthy Status = "error"
)

// CheckResult is one component check outcome.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// Component names in Report.Checks.
const (
	ComponentStorage = "storage"
	ComponentCatalog = "catalog"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	store   StorePinger
	catalog CatalogChecker
}

// New creates a Service. catalog can be nil.
func New(store StorePinger, catalog CatalogChecker) *Service {
	return &Service{store: store, catalog: catalog}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	log := logger.FromContext(ctx)
	checks := make(map[string]CheckResult, 2)

	checks[ComponentStorage] = CheckOK
	if err := s.store.Ping(ctx); err != nil {
		log.Warn("storage health check failed", zap.Error(err))
		checks[ComponentStorage] = CheckError
	}

	if s.catalog != nil {
		checks[ComponentCatalog] = CheckOK
		if err := s.catalog.HealthCheck(ctx); err != nil {
			log.Warn("catalog health check failed", zap.Error(err))
			checks[ComponentCatalog] = CheckError
		}
	}

	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed == len(checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}
	return Report{Status: status, Checks: checks}
}
