package health

import (
	"context"
	"errors"
	"testing"
)

type mockChecker struct {
	err error
}

func (m *mockChecker) ClusterHealthy(_ context.Context) error { return m.err }

func TestCheck_Healthy(t *testing.T) {
	svc := New(&mockChecker{})

	if got := svc.Check(context.Background()); got != Healthy {
		t.Errorf("status: got %q, want %q", got, Healthy)
	}
}

func TestCheck_Unhealthy(t *testing.T) {
	svc := New(&mockChecker{err: errors.New("cluster status \"red\"")})

	if got := svc.Check(context.Background()); got != Unhealthy {
		t.Errorf("status: got %q, want %q", got, Unhealthy)
	}
}
