package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDivideRowWide(t *testing.T) {
	secs := buildSections(10)

	wantTypes := []SectionType{Horizontal, LowerArc, UpperArc, LowerArc, Horizontal}
	wantCounts := []int{2, 2, 3, 2, 1}
	wantRoles := []Role{RoleLeftLower, RoleLeftLower, RoleUpper, RoleRightLower, RoleRightLower}

	if len(secs) != 5 {
		t.Fatalf("len(sections) = %d, want 5", len(secs))
	}
	for i, sec := range secs {
		if sec.Type != wantTypes[i] {
			t.Errorf("sections[%d].Type = %v, want %v", i, sec.Type, wantTypes[i])
		}
		if len(sec.Cols) != wantCounts[i] {
			t.Errorf("sections[%d] has %d cols, want %d", i, len(sec.Cols), wantCounts[i])
		}
		if sec.Role != wantRoles[i] {
			t.Errorf("sections[%d].Role = %v, want %v", i, sec.Role, wantRoles[i])
		}
	}
}

func TestDivideRowColumnCoverage(t *testing.T) {
	// Every column index must appear exactly once, in order, for any width.
	for total := 1; total <= 20; total++ {
		var got []int
		for _, sec := range buildSections(total) {
			got = append(got, sec.Cols...)
		}
		want := make([]int, total)
		for i := range want {
			want[i] = i
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("total=%d column coverage mismatch (-want +got):\n%s", total, diff)
		}
	}
}

func TestDivideRowMedium(t *testing.T) {
	tests := []struct {
		total      int
		wantCounts []int
	}{
		{total: 5, wantCounts: []int{1, 1, 1, 1, 1}},
		{total: 6, wantCounts: []int{1, 1, 2, 1, 1}},
		{total: 8, wantCounts: []int{1, 1, 4, 1, 1}},
	}

	for _, tt := range tests {
		secs := buildSections(tt.total)
		if len(secs) != 5 {
			t.Fatalf("total=%d: len(sections) = %d, want 5", tt.total, len(secs))
		}
		for i, sec := range secs {
			if len(sec.Cols) != tt.wantCounts[i] {
				t.Errorf("total=%d sections[%d] has %d cols, want %d",
					tt.total, i, len(sec.Cols), tt.wantCounts[i])
			}
		}
	}
}

func TestDivideRowNarrow(t *testing.T) {
	for _, total := range []int{1, 2, 3, 4} {
		secs := buildSections(total)
		if len(secs) != 1 {
			t.Fatalf("total=%d: len(sections) = %d, want 1", total, len(secs))
		}
		if secs[0].Type != Horizontal {
			t.Errorf("total=%d: Type = %v, want Horizontal", total, secs[0].Type)
		}
		if secs[0].Role != RoleNone {
			t.Errorf("total=%d: Role = %v, want RoleNone", total, secs[0].Role)
		}
		if len(secs[0].Cols) != total {
			t.Errorf("total=%d: %d cols, want %d", total, len(secs[0].Cols), total)
		}
	}
}

func TestDivideRowNineDropsEmptyTrailing(t *testing.T) {
	// Exactly 9 columns leaves no remainder for the trailing horizontal run.
	secs := buildSections(9)
	if len(secs) != 4 {
		t.Fatalf("len(sections) = %d, want 4 (empty trailing run dropped)", len(secs))
	}
	if secs[len(secs)-1].Type != LowerArc {
		t.Errorf("last section = %v, want LowerArc", secs[len(secs)-1].Type)
	}
}

func TestBuildSectionsEmpty(t *testing.T) {
	if secs := buildSections(0); secs != nil {
		t.Errorf("buildSections(0) = %v, want nil", secs)
	}
}

func TestSectionTypeString(t *testing.T) {
	tests := []struct {
		typ  SectionType
		want string
	}{
		{Horizontal, "H"},
		{UpperArc, "UPPER"},
		{LowerArc, "LOWER"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
