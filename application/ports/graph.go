package ports

import (
	"context"

	"pagegraph/domain/core/entities"
	"pagegraph/domain/core/valueobjects"
)

// GraphAPI defines the interface to the upstream social graph.
// This is a port in hexagonal architecture - the orchestration doesn't know
// about the HTTP transport behind it.
type GraphAPI interface {
	// GetObject retrieves a single object by id with the given fields
	GetObject(ctx context.Context, id string, fields valueobjects.FieldSpec) (entities.Record, error)

	// GetConnection retrieves one page of an object's edge. limit bounds the
	// number of requested items; extra carries parameters such as metric and
	// period. An empty field spec omits the fields parameter.
	GetConnection(ctx context.Context, id, connection string, fields valueobjects.FieldSpec, limit int, extra map[string]string) (*entities.RawCollection, error)
}
