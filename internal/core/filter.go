package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Filter is the predicate applied to every listing and aggregation query.
// The live-record rules are always present; Search and Total are set only
// when the caller supplied a non-blank search term.
type Filter struct {
	StateID        int64
	ExcludeDeleted bool
	Search         string           // trimmed term, matched case-insensitively as a substring
	Total          *decimal.Decimal // set when Search parses as a positive number
}

// BuildFilter turns a free-text search term into a Filter.
func BuildFilter(search string) Filter {
	f := Filter{StateID: StateActive, ExcludeDeleted: true}

	term := strings.TrimSpace(search)
	if term == "" {
		return f
	}
	f.Search = term
	if d, err := decimal.NewFromString(term); err == nil && d.IsPositive() {
		f.Total = &d
	}
	return f
}

// HasSearch reports whether the filter narrows beyond the live-record rules.
func (f Filter) HasSearch() bool {
	return f.Search != ""
}

// Matches evaluates the filter against an in-memory record. categoryDesc is
// the description of the record's category, or empty when it has none.
func (f Filter) Matches(e Entity, r Record, categoryDesc string) bool {
	if r.StateID != f.StateID {
		return false
	}
	if f.ExcludeDeleted && r.DeletedAt != nil {
		return false
	}
	if !f.HasSearch() {
		return true
	}

	needle := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(r.Code), needle) {
		return true
	}
	if e.HasDescription() && r.Descripcion != nil && strings.Contains(strings.ToLower(*r.Descripcion), needle) {
		return true
	}
	if categoryDesc != "" && strings.Contains(strings.ToLower(categoryDesc), needle) {
		return true
	}
	return f.Total != nil && r.Total.Equal(*f.Total)
}

// where renders the filter as a SQL condition over the record table aliased
// as r. New positional arguments are appended to args.
func (f Filter) where(e Entity, args []any) (string, []any) {
	args = append(args, f.StateID)
	cond := fmt.Sprintf("r.id_estado = $%d", len(args))
	if f.ExcludeDeleted {
		cond += " AND r.deleted_at IS NULL"
	}
	if !f.HasSearch() {
		return cond, args
	}

	args = append(args, likePattern(f.Search))
	p := len(args)
	alts := []string{fmt.Sprintf("r.%s ILIKE $%d", e.CodeColumn, p)}
	if e.HasDescription() {
		alts = append(alts, fmt.Sprintf("r.%s ILIKE $%d", e.DescriptionColumn, p))
	}
	alts = append(alts, fmt.Sprintf(
		"EXISTS (SELECT 1 FROM %s c WHERE c.id = r.id_categoria AND c.descripcion ILIKE $%d)",
		e.CategoryTable, p))
	if f.Total != nil {
		args = append(args, *f.Total)
		alts = append(alts, fmt.Sprintf("r.total = $%d::numeric", len(args)))
	}

	return cond + " AND (" + strings.Join(alts, " OR ") + ")", args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps term for a substring LIKE match, escaping wildcards so
// the term is matched literally.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
