package query

import (
	"strings"

	"github.com/spf13/cast"
)

// Options control per-call-site comparison behavior. Each evaluating
// component fixes these explicitly; engine defaults are all false.
type Options struct {
	// CaseInsensitive lowers both operands of string equality and ordering
	// comparisons. Regex matching is always case-insensitive.
	CaseInsensitive bool
	// MatchAnyListElement lets an equality, inequality or regex filter on a
	// list-valued field succeed when any element satisfies it. Ordering and
	// range operators never enumerate list elements.
	MatchAnyListElement bool
	// NullNotEqual makes "!=" succeed against a missing (nil) field value.
	// All other operators always fail on nil.
	NullNotEqual bool
}

// matches evaluates one filter against a field value already fetched from a
// record. val == nil means the field is absent for this record.
func matches(f Filter, val any, opts Options, regexes *RegexCache) bool {
	if val == nil {
		return f.Op == OpNe && opts.NullNotEqual
	}

	if opts.MatchAnyListElement && listEligible(f.Op) {
		if elems, ok := asList(val); ok {
			for _, e := range elems {
				if matchScalar(f, e, opts, regexes) {
					return true
				}
			}
			return false
		}
	}
	return matchScalar(f, val, opts, regexes)
}

func matchScalar(f Filter, val any, opts Options, regexes *RegexCache) bool {
	switch f.Op {
	case OpMatch:
		return regexes.Match(f.Value, cast.ToString(val))
	case OpRange:
		lo, hi, ok := splitRange(f.Value)
		if !ok {
			return false
		}
		return inRange(val, lo, hi, opts.CaseInsensitive)
	}

	// Numeric comparison applies only when both operands coerce cleanly;
	// otherwise fall back to string comparison.
	if lv, err := cast.ToFloat64E(val); err == nil {
		if rv, err := cast.ToFloat64E(f.Value); err == nil {
			return compareNumeric(f.Op, lv, rv)
		}
	}
	return compareString(f.Op, cast.ToString(val), f.Value, opts.CaseInsensitive)
}

func compareNumeric(op Operator, lv, rv float64) bool {
	switch op {
	case OpEq, OpEqEq:
		return lv == rv
	case OpNe:
		return lv != rv
	case OpGt:
		return lv > rv
	case OpLt:
		return lv < rv
	case OpGe:
		return lv >= rv
	case OpLe:
		return lv <= rv
	}
	return false
}

func compareString(op Operator, lv, rv string, fold bool) bool {
	if fold {
		lv = strings.ToLower(lv)
		rv = strings.ToLower(rv)
	}
	switch op {
	case OpEq, OpEqEq:
		return lv == rv
	case OpNe:
		return lv != rv
	case OpGt:
		return lv > rv
	case OpLt:
		return lv < rv
	case OpGe:
		return lv >= rv
	case OpLe:
		return lv <= rv
	}
	return false
}

// listEligible reports whether an operator participates in per-element list
// matching. Ordering and range comparisons apply to the whole value only.
func listEligible(op Operator) bool {
	switch op {
	case OpEq, OpEqEq, OpNe, OpMatch:
		return true
	}
	return false
}

// inRange compares numerically when the value and both bounds coerce to
// float64, otherwise lexicographically. Both forms are inclusive.
func inRange(val any, lo, hi string, fold bool) bool {
	if v, err := cast.ToFloat64E(val); err == nil {
		if nlo, err := cast.ToFloat64E(lo); err == nil {
			if nhi, err := cast.ToFloat64E(hi); err == nil {
				return v >= nlo && v <= nhi
			}
		}
	}
	s := cast.ToString(val)
	if fold {
		s = strings.ToLower(s)
		lo = strings.ToLower(lo)
		hi = strings.ToLower(hi)
	}
	return s >= lo && s <= hi
}

func splitRange(s string) (lo, hi string, ok bool) {
	parts := strings.SplitN(s, "..", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

func asList(val any) ([]any, bool) {
	switch v := val.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}
