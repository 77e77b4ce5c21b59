package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ports "lakeweather.bot/internal/ports"
)

// ConfigProvider is a mock type for the ports.ConfigProvider type
type ConfigProvider struct {
	mock.Mock
}

type ConfigProvider_Expecter struct {
	mock *mock.Mock
}

func (_m *ConfigProvider) EXPECT() *ConfigProvider_Expecter {
	return &ConfigProvider_Expecter{mock: &_m.Mock}
}

// GetWeatherConfig provides a mock function with given fields:
func (_m *ConfigProvider) GetWeatherConfig() ports.WeatherConfig {
	ret := _m.Called()
	return ret.Get(0).(ports.WeatherConfig)
}

// GetWeatherConfig is a helper method to define mock.On call
func (_e *ConfigProvider_Expecter) GetWeatherConfig() *mock.Call {
	return _e.mock.On("GetWeatherConfig")
}

// GetForecastConfig provides a mock function with given fields:
func (_m *ConfigProvider) GetForecastConfig() ports.ForecastConfig {
	ret := _m.Called()
	return ret.Get(0).(ports.ForecastConfig)
}

// GetForecastConfig is a helper method to define mock.On call
func (_e *ConfigProvider_Expecter) GetForecastConfig() *mock.Call {
	return _e.mock.On("GetForecastConfig")
}

// NewConfigProvider creates a new instance of ConfigProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewConfigProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *ConfigProvider {
	m := &ConfigProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
