package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/specflow/internal/config"
	"github.com/felixgeelhaar/specflow/internal/store"
)

type stubChecker struct {
	name   string
	result *Result
	delay  time.Duration
}

func (s stubChecker) Name() string { return s.name }

func (s stubChecker) Check(ctx context.Context) *Result {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return Unhealthy("timed out")
		case <-time.After(s.delay):
		}
	}
	return s.result
}

type failingBackend struct{ *store.MemoryBackend }

func (*failingBackend) Read(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func TestManager_CheckKeepsRegistrationOrder(t *testing.T) {
	m := NewManager()
	m.AddChecker(stubChecker{name: "slow", result: Healthy("ok"), delay: 20 * time.Millisecond})
	m.AddChecker(stubChecker{name: "fast", result: Degraded("meh")})
	m.AddChecker(stubChecker{name: "nil"})

	reports := m.Check(context.Background())
	require.Len(t, reports, 3)
	assert.Equal(t, "slow", reports[0].Name)
	assert.Equal(t, "fast", reports[1].Name)
	assert.Equal(t, StatusUnhealthy, reports[2].Result.Status, "nil result counts as unhealthy")
	assert.Positive(t, reports[0].Result.Latency)
}

func TestManager_Timeout(t *testing.T) {
	m := NewManager().WithTimeout(10 * time.Millisecond)
	m.AddChecker(stubChecker{name: "hang", result: Healthy("never"), delay: time.Second})

	reports := m.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, reports[0].Result.Status)
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"none", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := make([]Report, len(tt.statuses))
			for i, s := range tt.statuses {
				reports[i] = Report{Name: string(s), Result: NewResult(s, "")}
			}
			assert.Equal(t, tt.want, OverallStatus(reports))
		})
	}
}

func TestConfigChecker(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, StatusHealthy, NewConfigChecker(config.Default()).Check(ctx).Status)

	bad := config.Default()
	bad.Export.GroupBy = "owner"
	result := NewConfigChecker(bad).Check(ctx)
	assert.Equal(t, StatusUnhealthy, result.Status)
	assert.Contains(t, result.Message, "owner")

	assert.Equal(t, StatusUnhealthy, NewConfigChecker(nil).Check(ctx).Status)
}

func TestStoreChecker(t *testing.T) {
	ctx := context.Background()

	empty := store.NewMemoryBackend()
	assert.Equal(t, StatusHealthy, NewStoreChecker(empty).Check(ctx).Status)

	populated := store.NewMemoryBackend()
	require.NoError(t, populated.Write(ctx, store.Namespace, []byte(`[{"id":"a"},{"id":"b"}]`)))
	result := NewStoreChecker(populated).Check(ctx)
	assert.Equal(t, StatusHealthy, result.Status)
	assert.Equal(t, 2, result.Details["specs"])

	corrupt := store.NewMemoryBackend()
	require.NoError(t, corrupt.Write(ctx, store.Namespace, []byte(`{broken`)))
	assert.Equal(t, StatusDegraded, NewStoreChecker(corrupt).Check(ctx).Status)

	unreadable := NewStoreChecker(&failingBackend{store.NewMemoryBackend()}).Check(ctx)
	assert.Equal(t, StatusDegraded, unreadable.Status)
	assert.Equal(t, "disk on fire", unreadable.Details["error"])
}
