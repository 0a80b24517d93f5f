package search

import (
	"github.com/cristianoliveira/barscan/internal/storage"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

// Match provides a mock function with given fields: e, query.
func (_m *MockProvider) Match(e storage.Entry, query string) bool {
	ret := _m.Called(e, query)

	var r0 bool
	if rf, ok := ret.Get(0).(func(storage.Entry, string) bool); ok {
		r0 = rf(e, query)
	} else {
		r0 = ret.Get(0).(bool)
	}
	return r0
}

// Name provides a mock function with given fields: .
func (_m *MockProvider) Name() string {
	ret := _m.Called()
	return ret.String(0)
}
