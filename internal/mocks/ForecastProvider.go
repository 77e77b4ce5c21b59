package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	ports "lakeweather.bot/internal/ports"
)

// ForecastProvider is a mock type for the ports.ForecastProvider type
type ForecastProvider struct {
	mock.Mock
}

type ForecastProvider_Expecter struct {
	mock *mock.Mock
}

func (_m *ForecastProvider) EXPECT() *ForecastProvider_Expecter {
	return &ForecastProvider_Expecter{mock: &_m.Mock}
}

// GetForecast provides a mock function with given fields: ctx, coords
func (_m *ForecastProvider) GetForecast(ctx context.Context, coords ports.Coordinates) ([]ports.ObservationData, error) {
	ret := _m.Called(ctx, coords)

	var r0 []ports.ObservationData
	if rf, ok := ret.Get(0).(func(context.Context, ports.Coordinates) []ports.ObservationData); ok {
		r0 = rf(ctx, coords)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]ports.ObservationData)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, ports.Coordinates) error); ok {
		r1 = rf(ctx, coords)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetForecast is a helper method to define mock.On call
func (_e *ForecastProvider_Expecter) GetForecast(ctx interface{}, coords interface{}) *mock.Call {
	return _e.mock.On("GetForecast", ctx, coords)
}

// GetProviderName provides a mock function with given fields:
func (_m *ForecastProvider) GetProviderName() string {
	ret := _m.Called()
	return ret.String(0)
}

// GetProviderName is a helper method to define mock.On call
func (_e *ForecastProvider_Expecter) GetProviderName() *mock.Call {
	return _e.mock.On("GetProviderName")
}

// NewForecastProvider creates a new instance of ForecastProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewForecastProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *ForecastProvider {
	m := &ForecastProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
