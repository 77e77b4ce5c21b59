package mocks

import (
	time "time"

	mock "github.com/stretchr/testify/mock"
)

// MetricsRecorder is a mock type for the ports.MetricsRecorder type
type MetricsRecorder struct {
	mock.Mock
}

type MetricsRecorder_Expecter struct {
	mock *mock.Mock
}

func (_m *MetricsRecorder) EXPECT() *MetricsRecorder_Expecter {
	return &MetricsRecorder_Expecter{mock: &_m.Mock}
}

// RecordForecastRequest provides a mock function with given fields: outcome
func (_m *MetricsRecorder) RecordForecastRequest(outcome string) {
	_m.Called(outcome)
}

// RecordForecastRequest is a helper method to define mock.On call
func (_e *MetricsRecorder_Expecter) RecordForecastRequest(outcome interface{}) *mock.Call {
	return _e.mock.On("RecordForecastRequest", outcome)
}

// RecordProviderCall provides a mock function with given fields: provider, success, duration
func (_m *MetricsRecorder) RecordProviderCall(provider string, success bool, duration time.Duration) {
	_m.Called(provider, success, duration)
}

// RecordProviderCall is a helper method to define mock.On call
func (_e *MetricsRecorder_Expecter) RecordProviderCall(provider interface{}, success interface{}, duration interface{}) *mock.Call {
	return _e.mock.On("RecordProviderCall", provider, success, duration)
}

// RecordCacheResult provides a mock function with given fields: hit
func (_m *MetricsRecorder) RecordCacheResult(hit bool) {
	_m.Called(hit)
}

// RecordCacheResult is a helper method to define mock.On call
func (_e *MetricsRecorder_Expecter) RecordCacheResult(hit interface{}) *mock.Call {
	return _e.mock.On("RecordCacheResult", hit)
}

// RecordLocationUpsert provides a mock function with given fields: success
func (_m *MetricsRecorder) RecordLocationUpsert(success bool) {
	_m.Called(success)
}

// RecordLocationUpsert is a helper method to define mock.On call
func (_e *MetricsRecorder_Expecter) RecordLocationUpsert(success interface{}) *mock.Call {
	return _e.mock.On("RecordLocationUpsert", success)
}

// NewMetricsRecorder creates a new instance of MetricsRecorder. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMetricsRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MetricsRecorder {
	m := &MetricsRecorder{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
