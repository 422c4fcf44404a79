package app

import (
	"context"

	"backoffice/internal/core"
)

// Pinger reports whether a backend is reachable. *pgxpool.Pool and
// *memstore.Store both satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type appService struct {
	reporting core.ReportingService
	backend   Pinger
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(reporting core.ReportingService, backend Pinger) ApplicationService {
	return &appService{reporting: reporting, backend: backend}
}

func (s *appService) ListEntities() []string {
	entities := core.Entities()
	names := make([]string, len(entities))
	for i, e := range entities {
		names[i] = e.Name
	}
	return names
}

// ListRecords resolves the entity and delegates to the reporting service.
func (s *appService) ListRecords(ctx context.Context, req ListRecordsRequest) (*ListRecordsResult, error) {
	e, err := core.LookupEntity(req.Entity)
	if err != nil {
		return nil, err
	}

	summary, err := s.reporting.Summarize(ctx, e, core.ListQuery{
		Search: req.Search,
		Month:  req.Month,
		Page:   core.NewPagination(req.Page, req.Limit),
	})
	if err != nil {
		return nil, err
	}
	return &ListRecordsResult{Summary: summary}, nil
}

func (s *appService) GetRecord(ctx context.Context, entity string, id int64) (*RecordResult, error) {
	e, err := core.LookupEntity(entity)
	if err != nil {
		return nil, err
	}
	rec, err := s.reporting.GetRecord(ctx, e, id)
	if err != nil {
		return nil, err
	}
	return &RecordResult{Entity: e.Name, Record: rec}, nil
}

func (s *appService) ListCategories(ctx context.Context, entity string) (*CategoryListResult, error) {
	e, err := core.LookupEntity(entity)
	if err != nil {
		return nil, err
	}
	cats, err := s.reporting.ListCategories(ctx, e)
	if err != nil {
		return nil, err
	}
	return &CategoryListResult{Entity: e.Name, Categories: cats}, nil
}

func (s *appService) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}
