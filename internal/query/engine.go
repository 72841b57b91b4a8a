package query

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// FieldFunc maps a field name to its value on a record. The second return
// reports whether the record carries the field at all; a carried field with
// a nil value is "present but null".
type FieldFunc[T any] func(record T, field string) (value any, ok bool)

// Envelope wraps one page of evaluated results with its pagination facts.
//
// TotalMatches counts every record that passed the filters, before offset
// and limit. DisplayedResults == len(Items). Truncated is true exactly when
// DisplayedResults < TotalMatches.
type Envelope[T any] struct {
	TotalMatches     int  `json:"totalMatches"`
	DisplayedResults int  `json:"displayedResults"`
	Truncated        bool `json:"truncated"`
	Items            []T  `json:"items"`
}

// Evaluate applies q to records: filter (AND), stable sort, offset, limit.
// Filter validation happens in ParseQuery; Evaluate never partially applies
// a query.
func Evaluate[T any](records []T, q Query, field FieldFunc[T], opts Options, regexes *RegexCache) Envelope[T] {
	if regexes == nil {
		regexes = NewRegexCache()
	}

	kept := make([]T, 0, len(records))
	for _, r := range records {
		if allMatch(r, q.Filters, field, opts, regexes) {
			kept = append(kept, r)
		}
	}
	total := len(kept)

	if q.Sort != nil {
		sortRecords(kept, *q.Sort, field, opts)
	}

	// Offset applies before limit.
	if q.Offset > 0 {
		if q.Offset >= len(kept) {
			kept = kept[:0]
		} else {
			kept = kept[q.Offset:]
		}
	}
	if q.Limit > 0 && len(kept) > q.Limit {
		kept = kept[:q.Limit]
	}

	return Envelope[T]{
		TotalMatches:     total,
		DisplayedResults: len(kept),
		Truncated:        len(kept) < total,
		Items:            kept,
	}
}

func allMatch[T any](r T, filters []Filter, field FieldFunc[T], opts Options, regexes *RegexCache) bool {
	for _, f := range filters {
		val, ok := field(r, f.Field)
		if !ok {
			val = nil
		}
		if !matches(f, val, opts, regexes) {
			return false
		}
	}
	return true
}

// sortRecords orders kept in place. Records missing the sort field keep
// their relative order at the end regardless of direction.
func sortRecords[T any](kept []T, spec SortSpec, field FieldFunc[T], opts Options) {
	sort.SliceStable(kept, func(i, j int) bool {
		li, iok := fetchSortable(kept[i], spec.Field, field)
		lj, jok := fetchSortable(kept[j], spec.Field, field)
		if !iok || !jok {
			return iok && !jok
		}
		if spec.Descending {
			return lessValues(lj, li, opts.CaseInsensitive)
		}
		return lessValues(li, lj, opts.CaseInsensitive)
	})
}

func fetchSortable[T any](r T, name string, field FieldFunc[T]) (any, bool) {
	v, ok := field(r, name)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func lessValues(a, b any, fold bool) bool {
	if fa, err := cast.ToFloat64E(a); err == nil {
		if fb, err := cast.ToFloat64E(b); err == nil {
			return fa < fb
		}
	}
	sa, sb := cast.ToString(a), cast.ToString(b)
	if fold {
		return strings.ToLower(sa) < strings.ToLower(sb)
	}
	return sa < sb
}
