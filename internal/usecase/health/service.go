package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the engine answers but the blog index is missing.
	Degraded Status = "degraded"
	// Unhealthy indicates the engine is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckSkipped marks a check that depends on a failed one.
	CheckSkipped CheckResult = "skipped"
)

// Check names.
const (
	CheckDatabase = "database"
	CheckIndex    = "index"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	indexes   IndexChecker
	indexName string
}

// New creates a Service. indexes can be nil to skip the index check.
func New(db DBPinger, indexes IndexChecker, indexName string) *Service {
	return &Service{db: db, indexes: indexes, indexName: indexName}
}

// Check pings the engine, then verifies the blog index exists.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks[CheckDatabase] = CheckError
		if s.indexes != nil {
			checks[CheckIndex] = CheckSkipped
		}
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks[CheckDatabase] = CheckOK

	status := Healthy
	if s.indexes != nil {
		if ok, err := s.indexes.IndexExists(ctx, s.indexName); err != nil || !ok {
			checks[CheckIndex] = CheckError
			status = Degraded
		} else {
			checks[CheckIndex] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
