package layout

import (
	"fmt"

	"github.com/keebtools/grinarray/pkg/geom"
)

// SectionType tags a contiguous run of columns within one row.
type SectionType int

const (
	// Horizontal is a straight run of keys with zero rotation.
	Horizontal SectionType = iota
	// UpperArc places keys on the upper side of an arc.
	UpperArc
	// LowerArc places keys on the lower side of an arc.
	LowerArc
)

// String returns the section type's short name.
func (t SectionType) String() string {
	switch t {
	case Horizontal:
		return "H"
	case UpperArc:
		return "UPPER"
	case LowerArc:
		return "LOWER"
	}
	return fmt.Sprintf("SectionType(%d)", int(t))
}

// Role names which arc a section belongs to. Roles are assigned when the row
// is divided, so three-center mode never has to infer a section's arc by
// comparing center values.
type Role int

const (
	// RoleNone marks a section outside any arc (a row too short to curve).
	RoleNone Role = iota
	// RoleLeftLower is the lower arc left of the upper section, and the
	// leading horizontal run that feeds into it.
	RoleLeftLower
	// RoleUpper is the central upper arc.
	RoleUpper
	// RoleRightLower is the lower arc right of the upper section, and the
	// trailing horizontal run that follows it.
	RoleRightLower
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleLeftLower:
		return "left_lower"
	case RoleUpper:
		return "upper"
	case RoleRightLower:
		return "right_lower"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Section is a contiguous run of column indices within one row, tagged with
// its type and arc role. Theta0, Center and Radius are filled in during
// layout; sections are recomputed on every pass and do not outlive it.
type Section struct {
	Type   SectionType
	Role   Role
	Cols   []int
	Theta0 float64
	Center geom.Point
	Radius float64
}

// sectionDef is a (type, role, count) triple produced by row division.
type sectionDef struct {
	typ   SectionType
	role  Role
	count int
}

// divideRow splits totalCols columns into the fixed Grin pattern
// H → lower → upper → lower → H. Wide rows (≥9) get counts [2,2,3,2,rest];
// medium rows (5–8) get [1,1,max(n−4,1),1,1]; anything shorter is a single
// horizontal run.
func divideRow(totalCols int) []sectionDef {
	switch {
	case totalCols >= 9:
		return []sectionDef{
			{Horizontal, RoleLeftLower, 2},
			{LowerArc, RoleLeftLower, 2},
			{UpperArc, RoleUpper, 3},
			{LowerArc, RoleRightLower, 2},
			{Horizontal, RoleRightLower, totalCols - 9},
		}
	case totalCols >= 5:
		return []sectionDef{
			{Horizontal, RoleLeftLower, 1},
			{LowerArc, RoleLeftLower, 1},
			{UpperArc, RoleUpper, max(totalCols-4, 1)},
			{LowerArc, RoleRightLower, 1},
			{Horizontal, RoleRightLower, 1},
		}
	default:
		return []sectionDef{{Horizontal, RoleNone, totalCols}}
	}
}

// buildSections expands the row division into sections with explicit column
// indices. Zero-count definitions are dropped.
func buildSections(totalCols int) []Section {
	if totalCols == 0 {
		return nil
	}

	var sections []Section
	col := 0
	for _, def := range divideRow(totalCols) {
		if def.count <= 0 {
			continue
		}
		cols := make([]int, def.count)
		for i := range cols {
			cols[i] = col + i
		}
		sections = append(sections, Section{Type: def.typ, Role: def.role, Cols: cols})
		col += def.count
	}
	return sections
}
