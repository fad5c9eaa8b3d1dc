package mock

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockPythonService struct {
	mock.Mock
}

func (m *MockPythonService) CreateEnv(ctx context.Context, dir string) error {
	args := m.Called(ctx, dir)
	return args.Error(0)
}

func (m *MockPythonService) Install(ctx context.Context, dir, requirements string) error {
	args := m.Called(ctx, dir, requirements)
	return args.Error(0)
}

func (m *MockPythonService) SitePackages(dir string) (string, error) {
	args := m.Called(dir)
	return args.String(0), args.Error(1)
}
