package app

import "backoffice/internal/core"

// ListRecordsResult is returned by ListRecords.
type ListRecordsResult struct {
	Summary *core.Summary
}

// RecordResult is returned by GetRecord.
type RecordResult struct {
	Entity string
	Record *core.Record
}

// CategoryListResult is returned by ListCategories.
type CategoryListResult struct {
	Entity     string
	Categories []core.Category
}
