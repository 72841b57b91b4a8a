package query

import (
	"testing"
)

type record struct {
	Name       string
	Lines      int
	Complexity int
	Tags       []string
	Owner      any // nil means absent
}

func recordField(r record, field string) (any, bool) {
	switch field {
	case "name":
		return r.Name, true
	case "lines":
		return r.Lines, true
	case "complexity":
		return r.Complexity, true
	case "tags":
		return r.Tags, true
	case "owner":
		return r.Owner, true
	}
	return nil, false
}

var fixtures = []record{
	{Name: "parseConfig", Lines: 120, Complexity: 15, Tags: []string{"config", "io"}},
	{Name: "Render", Lines: 40, Complexity: 3, Tags: []string{"ui"}},
	{Name: "handleRequest", Lines: 80, Complexity: 12, Tags: []string{"http"}, Owner: "alice"},
	{Name: "handleShutdown", Lines: 15, Complexity: 2, Tags: []string{"http"}, Owner: "bob"},
	{Name: "walkTree", Lines: 200, Complexity: 15, Tags: nil},
}

func mustParse(t *testing.T, s string) Query {
	t.Helper()
	q, err := ParseQuery(s)
	if err != nil {
		t.Fatalf("ParseQuery(%q): %v", s, err)
	}
	return q
}

func names(items []record) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEvaluateFiltering(t *testing.T) {
	tests := []struct {
		name  string
		query string
		opts  Options
		want  []string
	}{
		{
			name:  "numeric greater",
			query: "complexity>10",
			want:  []string{"parseConfig", "handleRequest", "walkTree"},
		},
		{
			name:  "conjunction narrows",
			query: "complexity>10&lines>100",
			want:  []string{"parseConfig", "walkTree"},
		},
		{
			name:  "string equality case sensitive by default",
			query: "name=render",
			want:  []string{},
		},
		{
			name:  "string equality folded",
			query: "name=render",
			opts:  Options{CaseInsensitive: true},
			want:  []string{"Render"},
		},
		{
			name:  "regex is always case insensitive",
			query: "name~=^HANDLE",
			want:  []string{"handleRequest", "handleShutdown"},
		},
		{
			name:  "invalid regex matches nothing",
			query: "name~=[unclosed",
			want:  []string{},
		},
		{
			name:  "range inclusive on both ends",
			query: "lines=40..120",
			want:  []string{"parseConfig", "Render", "handleRequest"},
		},
		{
			name:  "string range compares lexicographically",
			query: "name=h..q",
			want:  []string{"parseConfig", "handleRequest", "handleShutdown"},
		},
		{
			name:  "string range respects case by default",
			query: "name=H..Q",
			want:  []string{},
		},
		{
			name:  "string range folded",
			query: "name=H..Q",
			opts:  Options{CaseInsensitive: true},
			want:  []string{"parseConfig", "handleRequest", "handleShutdown"},
		},
		{
			name:  "list field matches any element",
			query: "tags=http",
			opts:  Options{MatchAnyListElement: true},
			want:  []string{"handleRequest", "handleShutdown"},
		},
		{
			name:  "list regex matches any element",
			query: "tags~=^ht",
			opts:  Options{MatchAnyListElement: true},
			want:  []string{"handleRequest", "handleShutdown"},
		},
		{
			name:  "ordering never applies per list element",
			query: "tags>a",
			opts:  Options{MatchAnyListElement: true},
			want:  []string{},
		},
		{
			name:  "nil field never equal",
			query: "owner=alice",
			want:  []string{"handleRequest"},
		},
		{
			name:  "nil field not-equal only with option",
			query: "owner!=alice",
			opts:  Options{NullNotEqual: true},
			want:  []string{"parseConfig", "Render", "handleShutdown", "walkTree"},
		},
		{
			name:  "nil field not-equal without option excludes nil",
			query: "owner!=alice",
			want:  []string{"handleShutdown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Evaluate(fixtures, mustParse(t, tt.query), recordField, tt.opts, nil)
			if got := names(env.Items); !equalStrings(got, tt.want) {
				t.Errorf("items = %v, want %v", got, tt.want)
			}
			if env.TotalMatches != len(tt.want) {
				t.Errorf("TotalMatches = %d, want %d", env.TotalMatches, len(tt.want))
			}
			if env.Truncated {
				t.Error("Truncated = true for unlimited query")
			}
		})
	}
}

func TestEvaluateSortLimitOffset(t *testing.T) {
	// Descending sort with a stable tie: parseConfig and walkTree share
	// complexity 15 and must keep input order.
	env := Evaluate(fixtures, mustParse(t, "sort=-complexity&limit=3"), recordField, Options{}, nil)
	want := []string{"parseConfig", "walkTree", "handleRequest"}
	if got := names(env.Items); !equalStrings(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	if env.TotalMatches != 5 || env.DisplayedResults != 3 || !env.Truncated {
		t.Errorf("envelope = %+v, want total 5 displayed 3 truncated", env)
	}

	env = Evaluate(fixtures, mustParse(t, "sort=lines&offset=2&limit=2"), recordField, Options{}, nil)
	want = []string{"handleRequest", "parseConfig"}
	if got := names(env.Items); !equalStrings(got, want) {
		t.Errorf("offset page = %v, want %v", got, want)
	}

	// Offset beyond the result set yields an empty page, not an error.
	env = Evaluate(fixtures, mustParse(t, "offset=99"), recordField, Options{}, nil)
	if env.DisplayedResults != 0 || env.TotalMatches != 5 || !env.Truncated {
		t.Errorf("past-end envelope = %+v", env)
	}
}

func TestEvaluateDisplayedCount(t *testing.T) {
	// DisplayedResults == max(0, min(limit, total-offset)) across combinations.
	for _, tc := range []struct {
		limit, offset, want int
	}{
		{0, 0, 5},
		{3, 0, 3},
		{3, 3, 2},
		{3, 5, 0},
		{10, 2, 3},
	} {
		q := Query{Limit: tc.limit, Offset: tc.offset}
		env := Evaluate(fixtures, q, recordField, Options{}, nil)
		if env.DisplayedResults != tc.want {
			t.Errorf("limit=%d offset=%d: displayed %d, want %d", tc.limit, tc.offset, env.DisplayedResults, tc.want)
		}
		if env.Truncated != (env.DisplayedResults < env.TotalMatches) {
			t.Errorf("limit=%d offset=%d: truncated inconsistent with counts", tc.limit, tc.offset)
		}
	}
}

func TestEqualityAndInequalityAreInverse(t *testing.T) {
	cache := NewRegexCache()
	for _, r := range fixtures {
		eq := matches(Filter{Field: "lines", Op: OpEq, Value: "80"}, r.Lines, Options{}, cache)
		ne := matches(Filter{Field: "lines", Op: OpNe, Value: "80"}, r.Lines, Options{}, cache)
		if eq == ne {
			t.Errorf("%s: = and != both %v for lines=%d", r.Name, eq, r.Lines)
		}
	}
}

func TestSortMissingFieldGoesLast(t *testing.T) {
	env := Evaluate(fixtures, mustParse(t, "sort=owner"), recordField, Options{}, nil)
	got := names(env.Items)
	// alice, bob first; records without an owner keep input order after.
	want := []string{"handleRequest", "handleShutdown", "parseConfig", "Render", "walkTree"}
	if !equalStrings(got, want) {
		t.Errorf("items = %v, want %v", got, want)
	}
}
