package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gemini-transcriber/internal/app/api/gemini"
)

// MockService is a testify mock of gemini.Service.
type MockService struct {
	mock.Mock
}

func NewMockService() *MockService {
	return &MockService{}
}

func (m *MockService) Upload(ctx context.Context, path string) (gemini.UploadedFile, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(gemini.UploadedFile), args.Error(1)
}

func (m *MockService) Generate(ctx context.Context, model, prompt string, file gemini.UploadedFile) (gemini.Response, error) {
	args := m.Called(ctx, model, prompt, file)
	return args.Get(0).(gemini.Response), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// Factory returns a gemini.Factory handing out this mock.
func (m *MockService) Factory() gemini.Factory {
	return func(context.Context) (gemini.Service, error) {
		return m, nil
	}
}

// FailingFactory returns a gemini.Factory that always fails with err.
func FailingFactory(err error) gemini.Factory {
	return func(context.Context) (gemini.Service, error) {
		return nil, err
	}
}
