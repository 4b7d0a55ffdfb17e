// Package health reports liveness of the search backend connection.
package health

import "context"

// Status represents the backend health status.
type Status string

const (
	// Healthy indicates the backend can serve requests.
	Healthy Status = "healthy"
	// Unhealthy indicates the backend is unreachable or degraded.
	Unhealthy Status = "unhealthy"
)

// Service coordinates backend health checks.
type Service struct {
	backend ClusterChecker
}

// New creates a health service.
func New(backend ClusterChecker) *Service {
	return &Service{backend: backend}
}

// Check reports the current backend status.
func (s *Service) Check(ctx context.Context) Status {
	if err := s.backend.ClusterHealthy(ctx); err != nil {
		return Unhealthy
	}
	return Healthy
}
