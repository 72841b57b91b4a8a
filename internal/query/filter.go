// Package query provides the unified predicate/sort/limit engine used by
// every component that exposes queryable records.
package query

import (
	"strconv"
	"strings"

	"lens/internal/errors"
)

// Operator is a filter comparison operator.
type Operator string

const (
	OpEq    Operator = "="
	OpEqEq  Operator = "=="
	OpNe    Operator = "!="
	OpGt    Operator = ">"
	OpLt    Operator = "<"
	OpGe    Operator = ">="
	OpLe    Operator = "<="
	OpMatch Operator = "~=" // case-insensitive regex
	OpRange Operator = ".." // inclusive min..max
)

// Filter is one (field, operator, literal) predicate. Stateless; constructed
// per query and discarded after evaluation.
type Filter struct {
	Field string   `json:"field"`
	Op    Operator `json:"op"`
	Value string   `json:"value"`
}

// SortSpec orders results by one field. Descending reverses only the
// comparison direction, never tie order.
type SortSpec struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// Query is a parsed filter/sort/limit/offset request. Filters combine with
// logical AND only.
type Query struct {
	Filters []Filter  `json:"filters"`
	Sort    *SortSpec `json:"sort,omitempty"`
	Limit   int       `json:"limit"`
	Offset  int       `json:"offset"`
}

// operator tokens, longest first so that ">=" wins over ">".
var operatorTokens = []Operator{OpEqEq, OpNe, OpGe, OpLe, OpMatch, OpGt, OpLt, OpEq}

// ParseQuery parses a query string of &-separated terms, e.g.
// "lines>50&complexity>10&sort=-complexity&limit=3". Any malformed term
// rejects the whole query; filters are never partially applied.
func ParseQuery(s string) (Query, error) {
	q := Query{}
	if strings.TrimSpace(s) == "" {
		return q, nil
	}

	for _, term := range strings.Split(s, "&") {
		term = strings.TrimSpace(term)
		if term == "" {
			return Query{}, errors.Newf(errors.InvalidFilterSyntax, "empty query term")
		}

		field, op, value, err := splitTerm(term)
		if err != nil {
			return Query{}, err
		}

		// sort/limit/offset are directives, not filters.
		if op == OpEq {
			switch field {
			case "sort":
				spec := SortSpec{Field: value}
				if strings.HasPrefix(value, "-") {
					spec = SortSpec{Field: value[1:], Descending: true}
				}
				if spec.Field == "" {
					return Query{}, errors.Newf(errors.InvalidFilterSyntax, "empty sort field in %q", term)
				}
				q.Sort = &spec
				continue
			case "limit":
				n, err := strconv.Atoi(value)
				if err != nil || n < 0 {
					return Query{}, errors.Newf(errors.InvalidFilterSyntax, "invalid limit %q", value)
				}
				q.Limit = n
				continue
			case "offset":
				n, err := strconv.Atoi(value)
				if err != nil || n < 0 {
					return Query{}, errors.Newf(errors.InvalidFilterSyntax, "invalid offset %q", value)
				}
				q.Offset = n
				continue
			}
		}

		f := Filter{Field: field, Op: op, Value: value}

		// "field=min..max" is range syntax.
		if (op == OpEq || op == OpEqEq) && strings.Contains(value, "..") {
			f.Op = OpRange
		}
		if err := validateFilter(f); err != nil {
			return Query{}, err
		}
		q.Filters = append(q.Filters, f)
	}

	return q, nil
}

// splitTerm finds the operator in a term and splits it into field, operator
// and literal value.
func splitTerm(term string) (string, Operator, string, error) {
	for _, op := range operatorTokens {
		idx := strings.Index(term, string(op))
		if idx <= 0 {
			continue
		}
		field := strings.TrimSpace(term[:idx])
		value := strings.TrimSpace(term[idx+len(op):])
		if field == "" {
			break
		}
		return field, op, value, nil
	}
	return "", "", "", errors.Newf(errors.InvalidFilterSyntax, "no operator in query term %q", term)
}

// validateFilter rejects structurally invalid filters up front, so that a
// bad query fails synchronously and completely. An invalid regex pattern is
// deliberately NOT rejected here: it evaluates to "matches nothing".
func validateFilter(f Filter) error {
	if f.Field == "" {
		return errors.Newf(errors.InvalidFilterSyntax, "empty field name")
	}
	switch f.Op {
	case OpEq, OpEqEq, OpNe, OpGt, OpLt, OpGe, OpLe, OpMatch:
		return nil
	case OpRange:
		if strings.Count(f.Value, "..") != 1 {
			return errors.Newf(errors.InvalidFilterSyntax, "range needs exactly one '..' separator, got %q", f.Value)
		}
		return nil
	default:
		return errors.Newf(errors.InvalidFilterSyntax, "unknown operator %q", string(f.Op))
	}
}
