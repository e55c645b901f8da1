package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vlnch/anonbox/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) (models.Document, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Document), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, doc models.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockStore) Update(ctx context.Context, mutate func(doc *models.Document) error) error {
	args := m.Called(ctx, mutate)
	return args.Error(0)
}
