package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChecker is a configurable health checker for registry tests.
type fakeChecker struct {
	name string
	err  error
}

func (f *fakeChecker) Name() string { return f.name }

func (f *fakeChecker) Check(_ context.Context) error { return f.err }

func TestHealthRegistry_Register(t *testing.T) {
	registry := NewHealthRegistry()

	err := registry.Register(&fakeChecker{name: "mongodb"})
	require.NoError(t, err)

	err = registry.Register(&fakeChecker{name: "mongodb"})
	assert.ErrorIs(t, err, ErrDuplicateChecker)
}

func TestHealthRegistry_CheckAll_Empty(t *testing.T) {
	registry := NewHealthRegistry()

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusHealthy, result.Status)
	assert.Empty(t, result.Checks)
	assert.WithinDuration(t, time.Now(), result.Timestamp, time.Second)
}

func TestHealthRegistry_CheckAll_AllHealthy(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&fakeChecker{name: "mongodb"}))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusHealthy, result.Status)
	require.Contains(t, result.Checks, "mongodb")
	assert.Equal(t, HealthStatusHealthy, result.Checks["mongodb"].Status)
}

func TestHealthRegistry_CheckAll_OneUnhealthy(t *testing.T) {
	registry := NewHealthRegistry()
	require.NoError(t, registry.Register(&fakeChecker{name: "mongodb", err: errors.New("no reachable servers")}))
	require.NoError(t, registry.Register(&fakeChecker{name: "other"}))

	result := registry.CheckAll(context.Background())

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	require.Contains(t, result.Checks, "mongodb")
	assert.Equal(t, HealthStatusUnhealthy, result.Checks["mongodb"].Status)
	assert.Equal(t, "no reachable servers", result.Checks["mongodb"].Message)
	assert.Equal(t, HealthStatusHealthy, result.Checks["other"].Status)
}
