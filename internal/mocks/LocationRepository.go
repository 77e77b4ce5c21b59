package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	ports "lakeweather.bot/internal/ports"
)

// LocationRepository is a mock type for the ports.LocationRepository type
type LocationRepository struct {
	mock.Mock
}

type LocationRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *LocationRepository) EXPECT() *LocationRepository_Expecter {
	return &LocationRepository_Expecter{mock: &_m.Mock}
}

// FindByUserID provides a mock function with given fields: ctx, userID
func (_m *LocationRepository) FindByUserID(ctx context.Context, userID int64) (*ports.LocationData, error) {
	ret := _m.Called(ctx, userID)

	var r0 *ports.LocationData
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*ports.LocationData)
	}
	return r0, ret.Error(1)
}

// FindByUserID is a helper method to define mock.On call
func (_e *LocationRepository_Expecter) FindByUserID(ctx interface{}, userID interface{}) *mock.Call {
	return _e.mock.On("FindByUserID", ctx, userID)
}

// Upsert provides a mock function with given fields: ctx, loc
func (_m *LocationRepository) Upsert(ctx context.Context, loc *ports.LocationData) error {
	ret := _m.Called(ctx, loc)
	return ret.Error(0)
}

// Upsert is a helper method to define mock.On call
func (_e *LocationRepository_Expecter) Upsert(ctx interface{}, loc interface{}) *mock.Call {
	return _e.mock.On("Upsert", ctx, loc)
}

// Count provides a mock function with given fields: ctx
func (_m *LocationRepository) Count(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)

	var r0 int64
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(int64)
	}
	return r0, ret.Error(1)
}

// Count is a helper method to define mock.On call
func (_e *LocationRepository_Expecter) Count(ctx interface{}) *mock.Call {
	return _e.mock.On("Count", ctx)
}

// NewLocationRepository creates a new instance of LocationRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewLocationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *LocationRepository {
	m := &LocationRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
