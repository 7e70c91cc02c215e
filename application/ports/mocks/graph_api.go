package mocks

import (
	"context"

	"pagegraph/domain/core/entities"
	"pagegraph/domain/core/valueobjects"

	"github.com/stretchr/testify/mock"
)

// MockGraphAPI is a testify mock of ports.GraphAPI
type MockGraphAPI struct {
	mock.Mock
}

func (m *MockGraphAPI) GetObject(ctx context.Context, id string, fields valueobjects.FieldSpec) (entities.Record, error) {
	args := m.Called(ctx, id, fields)
	rec, _ := args.Get(0).(entities.Record)
	return rec, args.Error(1)
}

func (m *MockGraphAPI) GetConnection(ctx context.Context, id, connection string, fields valueobjects.FieldSpec, limit int, extra map[string]string) (*entities.RawCollection, error) {
	args := m.Called(ctx, id, connection, fields, limit, extra)
	raw, _ := args.Get(0).(*entities.RawCollection)
	return raw, args.Error(1)
}

// Fields matches a field spec by its rendered expression
func Fields(expr string) interface{} {
	return mock.MatchedBy(func(spec valueobjects.FieldSpec) bool {
		return spec.String() == expr
	})
}
