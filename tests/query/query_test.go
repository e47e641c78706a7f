package query_test

import (
	"testing"

	"github.com/verdantapp/verdant/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "note_impacts", "ni").
		Project("note_id", "noteId").
		Project("action_type", "actionType").
		Project("classified_at", "classifiedAt")
}

func ptr(s string) *string { return &s }

func TestProjectionMapTable(t *testing.T) {
	p := testProjection()
	got := p.Table()
	want := "public.note_impacts ni"
	if got != want {
		t.Errorf("Table() = %q, want %q", got, want)
	}
}

func TestProjectionMapAlias(t *testing.T) {
	p := testProjection()
	if got := p.Alias(); got != "ni" {
		t.Errorf("Alias() = %q, want %q", got, "ni")
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	got := p.Columns()
	want := "ni.note_id, ni.action_type, ni.classified_at"
	if got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumnList(t *testing.T) {
	p := testProjection()
	got := p.ColumnList()
	if len(got) != 3 {
		t.Fatalf("ColumnList() length = %d, want 3", len(got))
	}
	want := []string{"ni.note_id", "ni.action_type", "ni.classified_at"}
	for i, col := range got {
		if col != want[i] {
			t.Errorf("ColumnList()[%d] = %q, want %q", i, col, want[i])
		}
	}
}

func TestProjectionMapColumnLookup(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name     string
		viewName string
		want     string
	}{
		{"mapped field", "actionType", "ni.action_type"},
		{"mapped camel", "classifiedAt", "ni.classified_at"},
		{"unmapped passthrough", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "single ascending",
			input: "actionType",
			want:  []query.SortField{{Field: "actionType", Descending: false}},
		},
		{
			name:  "single descending",
			input: "-classifiedAt",
			want:  []query.SortField{{Field: "classifiedAt", Descending: true}},
		},
		{
			name:  "multiple mixed",
			input: "actionType,-classifiedAt",
			want: []query.SortField{
				{Field: "actionType", Descending: false},
				{Field: "classifiedAt", Descending: true},
			},
		},
		{
			name:  "with spaces",
			input: " actionType , -classifiedAt ",
			want: []query.SortField{
				{Field: "actionType", Descending: false},
				{Field: "classifiedAt", Descending: true},
			},
		},
		{
			name:  "empty parts skipped",
			input: "actionType,,classifiedAt",
			want: []query.SortField{
				{Field: "actionType", Descending: false},
				{Field: "classifiedAt", Descending: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Errorf("ParseSortFields(%q) = %v, want nil", tt.input, got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	sql, args := b.Build()

	wantSQL := "SELECT ni.note_id, ni.action_type, ni.classified_at FROM public.note_impacts ni"
	if sql != wantSQL {
		t.Errorf("Build() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("Build() args = %v, want empty", args)
	}
}

func TestBuilderBuildCount(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.note_impacts ni"
	if sql != wantSQL {
		t.Errorf("BuildCount() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want empty", args)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p, query.SortField{Field: "classifiedAt", Descending: true})
	sql, args := b.BuildPage(2, 10)

	wantSQL := "SELECT ni.note_id, ni.action_type, ni.classified_at FROM public.note_impacts ni ORDER BY ni.classified_at DESC LIMIT 10 OFFSET 10"
	if sql != wantSQL {
		t.Errorf("BuildPage() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("BuildPage() args = %v, want empty", args)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	sql, args := b.BuildSingle("noteId", "abc-123")

	wantSQL := "SELECT ni.note_id, ni.action_type, ni.classified_at FROM public.note_impacts ni WHERE ni.note_id = $1"
	if sql != wantSQL {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "abc-123" {
		t.Errorf("BuildSingle() args = %v, want [abc-123]", args)
	}
}

func TestBuilderWhereEquals(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereEquals("actionType", "car_to_bike")
	sql, args := b.Build()

	wantSQL := "SELECT ni.note_id, ni.action_type, ni.classified_at FROM public.note_impacts ni WHERE ni.action_type = $1"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "car_to_bike" {
		t.Errorf("args = %v, want [car_to_bike]", args)
	}
}

func TestBuilderWhereEqualsNilSkipped(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereEquals("actionType", nil)
	sql, args := b.Build()

	wantSQL := "SELECT ni.note_id, ni.action_type, ni.classified_at FROM public.note_impacts ni"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereEqualsNilPointerSkipped(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	var actionType *string
	b.WhereEquals("actionType", actionType)
	_, args := b.Build()

	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereSearch(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereSearch(ptr("bike"), "actionType", "noteId")
	sql, args := b.Build()

	wantSQL := "SELECT ni.note_id, ni.action_type, ni.classified_at FROM public.note_impacts ni WHERE (ni.action_type ILIKE $1 OR ni.note_id ILIKE $2)"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 2 || args[0] != "%bike%" || args[1] != "%bike%" {
		t.Errorf("args = %v, want [%%bike%% %%bike%%]", args)
	}
}

func TestBuilderWhereSearchNilSkipped(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereSearch(nil, "actionType")
	_, args := b.Build()

	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderMultipleConditions(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereEquals("actionType", "car_to_bike")
	b.WhereSearch(ptr("commute"), "noteId")
	sql, args := b.Build()

	wantSQL := "SELECT ni.note_id, ni.action_type, ni.classified_at FROM public.note_impacts ni WHERE ni.action_type = $1 AND (ni.note_id ILIKE $2)"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 2 {
		t.Errorf("args length = %d, want 2", len(args))
	}
	if args[0] != "car_to_bike" {
		t.Errorf("args[0] = %v, want car_to_bike", args[0])
	}
	if args[1] != "%commute%" {
		t.Errorf("args[1] = %v, want %%commute%%", args[1])
	}
}

func TestBuilderOrderByFields(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p, query.SortField{Field: "noteId", Descending: false})
	b.OrderByFields([]query.SortField{
		{Field: "classifiedAt", Descending: true},
		{Field: "actionType", Descending: false},
	})
	sql, _ := b.Build()

	wantSQL := "SELECT ni.note_id, ni.action_type, ni.classified_at FROM public.note_impacts ni ORDER BY ni.classified_at DESC, ni.action_type ASC"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
}

func TestBuilderDefaultSort(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p, query.SortField{Field: "classifiedAt", Descending: true})
	sql, _ := b.Build()

	wantSQL := "SELECT ni.note_id, ni.action_type, ni.classified_at FROM public.note_impacts ni ORDER BY ni.classified_at DESC"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
}

func TestBuilderBuildCountWithConditions(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereEquals("actionType", "car_to_bike")
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.note_impacts ni WHERE ni.action_type = $1"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "car_to_bike" {
		t.Errorf("args = %v, want [car_to_bike]", args)
	}
}

func TestBuilderBuildPageWithConditions(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p, query.SortField{Field: "noteId"})
	b.WhereSearch(ptr("recycl"), "actionType")
	sql, args := b.BuildPage(3, 25)

	wantSQL := "SELECT ni.note_id, ni.action_type, ni.classified_at FROM public.note_impacts ni WHERE (ni.action_type ILIKE $1) ORDER BY ni.note_id ASC LIMIT 25 OFFSET 50"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "%recycl%" {
		t.Errorf("args = %v, want [%%recycl%%]", args)
	}
}
