package clipboard

import "github.com/stretchr/testify/mock"

// MockCopier is a testify mock of Copier.
//
//	m := new(MockCopier)
//	m.On("Copy", "0012345678905").Return(nil)
type MockCopier struct {
	mock.Mock
}

// Copy records the call and returns the configured error.
func (m *MockCopier) Copy(text string) error {
	args := m.Called(text)
	return args.Error(0)
}
