package mocks

import (
	context "context"
	time "time"

	mock "github.com/stretchr/testify/mock"
	ports "lakeweather.bot/internal/ports"
)

// ObservationCache is a mock type for the ports.ObservationCache type
type ObservationCache struct {
	mock.Mock
}

type ObservationCache_Expecter struct {
	mock *mock.Mock
}

func (_m *ObservationCache) EXPECT() *ObservationCache_Expecter {
	return &ObservationCache_Expecter{mock: &_m.Mock}
}

// Get provides a mock function with given fields: ctx, key
func (_m *ObservationCache) Get(ctx context.Context, key string) ([]ports.ObservationData, error) {
	ret := _m.Called(ctx, key)

	var r0 []ports.ObservationData
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]ports.ObservationData)
	}
	return r0, ret.Error(1)
}

// Get is a helper method to define mock.On call
func (_e *ObservationCache_Expecter) Get(ctx interface{}, key interface{}) *mock.Call {
	return _e.mock.On("Get", ctx, key)
}

// Set provides a mock function with given fields: ctx, key, observations, ttl
func (_m *ObservationCache) Set(ctx context.Context, key string, observations []ports.ObservationData, ttl time.Duration) error {
	ret := _m.Called(ctx, key, observations, ttl)
	return ret.Error(0)
}

// Set is a helper method to define mock.On call
func (_e *ObservationCache_Expecter) Set(ctx interface{}, key interface{}, observations interface{}, ttl interface{}) *mock.Call {
	return _e.mock.On("Set", ctx, key, observations, ttl)
}

// NewObservationCache creates a new instance of ObservationCache. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewObservationCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *ObservationCache {
	m := &ObservationCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
