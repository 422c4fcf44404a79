package app

import (
	"context"
)

// ApplicationService is the single interface the CLI and web adapters call.
// It decouples presentation from the reporting core. Implementations must
// contain no display logic of any kind.
type ApplicationService interface {
	// ListEntities returns the keys of the entities that support listings.
	ListEntities() []string

	// ListRecords returns one page of current-month records of an entity
	// together with its statistics. Malformed paging and month inputs are
	// defaulted, never rejected.
	ListRecords(ctx context.Context, req ListRecordsRequest) (*ListRecordsResult, error)

	// GetRecord returns a single live record by id.
	GetRecord(ctx context.Context, entity string, id int64) (*RecordResult, error)

	// ListCategories returns the live categories of an entity.
	ListCategories(ctx context.Context, entity string) (*CategoryListResult, error)

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}
