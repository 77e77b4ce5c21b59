package mocks

import (
	context "context"
	time "time"

	mock "github.com/stretchr/testify/mock"
)

// CacheProvider is a mock type for the ports.CacheProvider type
type CacheProvider struct {
	mock.Mock
}

type CacheProvider_Expecter struct {
	mock *mock.Mock
}

func (_m *CacheProvider) EXPECT() *CacheProvider_Expecter {
	return &CacheProvider_Expecter{mock: &_m.Mock}
}

// Get provides a mock function with given fields: ctx, key
func (_m *CacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	ret := _m.Called(ctx, key)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// Get is a helper method to define mock.On call
func (_e *CacheProvider_Expecter) Get(ctx interface{}, key interface{}) *mock.Call {
	return _e.mock.On("Get", ctx, key)
}

// Set provides a mock function with given fields: ctx, key, value, ttl
func (_m *CacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ret := _m.Called(ctx, key, value, ttl)
	return ret.Error(0)
}

// Set is a helper method to define mock.On call
func (_e *CacheProvider_Expecter) Set(ctx interface{}, key interface{}, value interface{}, ttl interface{}) *mock.Call {
	return _e.mock.On("Set", ctx, key, value, ttl)
}

// Delete provides a mock function with given fields: ctx, key
func (_m *CacheProvider) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

// Delete is a helper method to define mock.On call
func (_e *CacheProvider_Expecter) Delete(ctx interface{}, key interface{}) *mock.Call {
	return _e.mock.On("Delete", ctx, key)
}

// Exists provides a mock function with given fields: ctx, key
func (_m *CacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

// Exists is a helper method to define mock.On call
func (_e *CacheProvider_Expecter) Exists(ctx interface{}, key interface{}) *mock.Call {
	return _e.mock.On("Exists", ctx, key)
}

// Clear provides a mock function with given fields: ctx
func (_m *CacheProvider) Clear(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// Clear is a helper method to define mock.On call
func (_e *CacheProvider_Expecter) Clear(ctx interface{}) *mock.Call {
	return _e.mock.On("Clear", ctx)
}

// NewCacheProvider creates a new instance of CacheProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCacheProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *CacheProvider {
	m := &CacheProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
