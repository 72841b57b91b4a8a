package query

import (
	"testing"

	"lens/internal/errors"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Query
		wantErr bool
	}{
		{
			name:  "empty string",
			input: "",
			want:  Query{},
		},
		{
			name:  "single comparison",
			input: "complexity>10",
			want:  Query{Filters: []Filter{{Field: "complexity", Op: OpGt, Value: "10"}}},
		},
		{
			name:  "two char operator wins over one char",
			input: "lines>=50",
			want:  Query{Filters: []Filter{{Field: "lines", Op: OpGe, Value: "50"}}},
		},
		{
			name:  "conjunction with sort and limit",
			input: "lines>50&complexity>10&sort=-complexity&limit=3",
			want: Query{
				Filters: []Filter{
					{Field: "lines", Op: OpGt, Value: "50"},
					{Field: "complexity", Op: OpGt, Value: "10"},
				},
				Sort:  &SortSpec{Field: "complexity", Descending: true},
				Limit: 3,
			},
		},
		{
			name:  "ascending sort",
			input: "sort=name",
			want:  Query{Sort: &SortSpec{Field: "name"}},
		},
		{
			name:  "range syntax",
			input: "lines=10..50",
			want:  Query{Filters: []Filter{{Field: "lines", Op: OpRange, Value: "10..50"}}},
		},
		{
			name:  "regex operator",
			input: "name~=^handle",
			want:  Query{Filters: []Filter{{Field: "name", Op: OpMatch, Value: "^handle"}}},
		},
		{
			name:  "offset",
			input: "offset=5",
			want:  Query{Offset: 5},
		},
		{
			name:    "no operator",
			input:   "complexity",
			wantErr: true,
		},
		{
			name:    "empty term",
			input:   "lines>10&&complexity>2",
			wantErr: true,
		},
		{
			name:    "double range separator",
			input:   "lines=10..20..30",
			wantErr: true,
		},
		{
			name:    "negative limit",
			input:   "limit=-1",
			wantErr: true,
		},
		{
			name:    "non numeric offset",
			input:   "offset=abc",
			wantErr: true,
		},
		{
			name:    "empty sort field",
			input:   "sort=-",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuery(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseQuery(%q) expected error, got %+v", tt.input, got)
				}
				if errors.CodeOf(err) != errors.InvalidFilterSyntax {
					t.Errorf("error code = %s, want %s", errors.CodeOf(err), errors.InvalidFilterSyntax)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQuery(%q) error: %v", tt.input, err)
			}
			if len(got.Filters) != len(tt.want.Filters) {
				t.Fatalf("got %d filters, want %d", len(got.Filters), len(tt.want.Filters))
			}
			for i, f := range got.Filters {
				if f != tt.want.Filters[i] {
					t.Errorf("filter %d = %+v, want %+v", i, f, tt.want.Filters[i])
				}
			}
			if (got.Sort == nil) != (tt.want.Sort == nil) {
				t.Fatalf("sort = %+v, want %+v", got.Sort, tt.want.Sort)
			}
			if got.Sort != nil && *got.Sort != *tt.want.Sort {
				t.Errorf("sort = %+v, want %+v", *got.Sort, *tt.want.Sort)
			}
			if got.Limit != tt.want.Limit || got.Offset != tt.want.Offset {
				t.Errorf("limit/offset = %d/%d, want %d/%d", got.Limit, got.Offset, tt.want.Limit, tt.want.Offset)
			}
		})
	}
}

func TestParseQueryRejectsWholeQuery(t *testing.T) {
	_, err := ParseQuery("lines>10&bogus")
	if err == nil {
		t.Fatal("expected error for query with one malformed term")
	}
}
