package app

// ListRecordsRequest carries raw query-string values; the service parses them.
type ListRecordsRequest struct {
	Entity string
	Page   string
	Limit  string
	Search string
	Month  string // YYYY-MM
}
