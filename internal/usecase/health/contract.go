package health

import "context"

// ClusterChecker reports search cluster availability.
type ClusterChecker interface {
	ClusterHealthy(ctx context.Context) error
}
