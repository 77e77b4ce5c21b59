package mocks

import (
	mock "github.com/stretchr/testify/mock"
	ports "lakeweather.bot/internal/ports"
)

// Logger is a mock type for the ports.Logger type
type Logger struct {
	mock.Mock
}

type Logger_Expecter struct {
	mock *mock.Mock
}

func (_m *Logger) EXPECT() *Logger_Expecter {
	return &Logger_Expecter{mock: &_m.Mock}
}

func (_m *Logger) call(method string, msg string, fields []ports.Field) {
	_va := make([]interface{}, len(fields))
	for _i := range fields {
		_va[_i] = fields[_i]
	}
	var _ca []interface{}
	_ca = append(_ca, msg)
	_ca = append(_ca, _va...)
	_m.MethodCalled(method, _ca...)
}

// Debug provides a mock function with given fields: msg, fields
func (_m *Logger) Debug(msg string, fields ...ports.Field) {
	_m.call("Debug", msg, fields)
}

// Info provides a mock function with given fields: msg, fields
func (_m *Logger) Info(msg string, fields ...ports.Field) {
	_m.call("Info", msg, fields)
}

// Warn provides a mock function with given fields: msg, fields
func (_m *Logger) Warn(msg string, fields ...ports.Field) {
	_m.call("Warn", msg, fields)
}

// Error provides a mock function with given fields: msg, fields
func (_m *Logger) Error(msg string, fields ...ports.Field) {
	_m.call("Error", msg, fields)
}

func (_e *Logger_Expecter) on(method string, msg interface{}, fields []interface{}) *mock.Call {
	return _e.mock.On(method, append([]interface{}{msg}, fields...)...)
}

// Debug is a helper method to define mock.On call
func (_e *Logger_Expecter) Debug(msg interface{}, fields ...interface{}) *mock.Call {
	return _e.on("Debug", msg, fields)
}

// Info is a helper method to define mock.On call
func (_e *Logger_Expecter) Info(msg interface{}, fields ...interface{}) *mock.Call {
	return _e.on("Info", msg, fields)
}

// Warn is a helper method to define mock.On call
func (_e *Logger_Expecter) Warn(msg interface{}, fields ...interface{}) *mock.Call {
	return _e.on("Warn", msg, fields)
}

// Error is a helper method to define mock.On call
func (_e *Logger_Expecter) Error(msg interface{}, fields ...interface{}) *mock.Call {
	return _e.on("Error", msg, fields)
}

// NewLogger creates a new instance of Logger. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewLogger(t interface {
	mock.TestingT
	Cleanup(func())
}) *Logger {
	m := &Logger{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// NewPermissiveLogger returns a Logger mock that accepts any log call
func NewPermissiveLogger(t interface {
	mock.TestingT
	Cleanup(func())
}) *Logger {
	m := NewLogger(t)
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		for n := 0; n <= 6; n++ {
			args := make([]interface{}, n+1)
			for i := range args {
				args[i] = mock.Anything
			}
			m.On(method, args...).Maybe()
		}
	}
	return m
}
