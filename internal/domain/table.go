// Package domain defines the entities of the reservation engine: tables and
// their combination state, reservations, layout presets, deleted-reservation
// records, and the GORM rows used to persist them. The types carry no
// behaviour beyond validation helpers and copy semantics; business rules live
// in the services package.
package domain

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
)

// Shape is the footprint of a table on the floor plan.
type Shape string

const (
	ShapeRound     Shape = "round"
	ShapeSquare    Shape = "square"
	ShapeRectangle Shape = "rectangle"
)

// Valid reports whether s is one of the supported shapes.
func (s Shape) Valid() bool {
	switch s {
	case ShapeRound, ShapeSquare, ShapeRectangle:
		return true
	}
	return false
}

// Role tags the combination variant a table is in.
type Role int

const (
	// Standalone tables are not part of any group.
	Standalone Role = iota
	// CombinedPrimary tables represent a merged group on the floor plan.
	CombinedPrimary
	// CombinedSecondary tables are hidden members of a group.
	CombinedSecondary
)

// String returns a lowercase label for logs and API payloads.
func (r Role) String() string {
	switch r {
	case CombinedPrimary:
		return "primary"
	case CombinedSecondary:
		return "secondary"
	default:
		return "standalone"
	}
}

// Placement is the pre-combine state of one table, captured so a split can
// restore it. Nil fields mean "not captured" and fall back to the default
// layout on restore.
type Placement struct {
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
	Seats *int     `json:"seats,omitempty"`
	Shape *Shape   `json:"shape,omitempty"`
}

// Combination is the tagged variant describing group membership.
//
//   - Standalone: every other field is empty.
//   - CombinedPrimary: Members lists the other table ids, DisplayName is the
//     composite label (e.g. "5/6") and Snapshot holds the pre-combine
//     placement of every member, the primary included.
//   - CombinedSecondary: Members holds exactly the primary id.
type Combination struct {
	Role        Role
	Members     []string
	DisplayName string
	Snapshot    map[string]Placement
}

// Table is a physical or composite seating unit.
type Table struct {
	ID     string
	Number int
	Seats  int
	X      float64
	Y      float64
	Shape  Shape
	Width  float64
	Height float64

	Combination Combination
}

// Visible reports whether the table is drawn on the floor plan. Hidden
// secondaries are represented by their primary.
func (t Table) Visible() bool { return t.Combination.Role != CombinedSecondary }

// PrimaryID returns the id of the group primary for a secondary table, or the
// table's own id otherwise.
func (t Table) PrimaryID() string {
	if t.Combination.Role == CombinedSecondary && len(t.Combination.Members) > 0 {
		return t.Combination.Members[0]
	}
	return t.ID
}

// Label is the name shown to staff: the composite label of a group primary or
// the table number.
func (t Table) Label() string {
	if t.Combination.Role == CombinedPrimary && t.Combination.DisplayName != "" {
		return t.Combination.DisplayName
	}
	return strconv.Itoa(t.Number)
}

// Placement captures the restorable fields of t.
func (t Table) Placement() Placement {
	x, y, seats, shape := t.X, t.Y, t.Seats, t.Shape
	return Placement{X: &x, Y: &y, Seats: &seats, Shape: &shape}
}

// Clone returns a deep copy of t that shares no memory with it.
func (t Table) Clone() Table {
	out := t
	out.Combination.Members = slices.Clone(t.Combination.Members)
	if t.Combination.Snapshot != nil {
		out.Combination.Snapshot = make(map[string]Placement, len(t.Combination.Snapshot))
		for id, p := range t.Combination.Snapshot {
			out.Combination.Snapshot[id] = p.clone()
		}
	}
	return out
}

// CloneTables deep-copies a table list.
func CloneTables(in []Table) []Table {
	if in == nil {
		return nil
	}
	out := make([]Table, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

func (p Placement) clone() Placement {
	var out Placement
	if p.X != nil {
		v := *p.X
		out.X = &v
	}
	if p.Y != nil {
		v := *p.Y
		out.Y = &v
	}
	if p.Seats != nil {
		v := *p.Seats
		out.Seats = &v
	}
	if p.Shape != nil {
		v := *p.Shape
		out.Shape = &v
	}
	return out
}

// tableJSON is the persisted wire form. It keeps the flat field layout of the
// stored blobs (combinedWith / displayName / originalPositions).
type tableJSON struct {
	ID                string               `json:"id"`
	Number            int                  `json:"number"`
	Seats             int                  `json:"seats"`
	X                 float64              `json:"x"`
	Y                 float64              `json:"y"`
	Shape             Shape                `json:"shape"`
	Width             float64              `json:"width,omitempty"`
	Height            float64              `json:"height,omitempty"`
	CombinedWith      []string             `json:"combinedWith,omitempty"`
	DisplayName       string               `json:"displayName,omitempty"`
	OriginalPositions map[string]Placement `json:"originalPositions,omitempty"`
}

// MarshalJSON flattens the combination variant into the persisted form.
func (t Table) MarshalJSON() ([]byte, error) {
	w := tableJSON{
		ID: t.ID, Number: t.Number, Seats: t.Seats,
		X: t.X, Y: t.Y, Shape: t.Shape,
		Width: t.Width, Height: t.Height,
	}
	switch t.Combination.Role {
	case CombinedPrimary:
		w.CombinedWith = t.Combination.Members
		w.DisplayName = t.Combination.DisplayName
		w.OriginalPositions = t.Combination.Snapshot
	case CombinedSecondary:
		w.CombinedWith = t.Combination.Members
	}
	return json.Marshal(w)
}

// UnmarshalJSON classifies the flat persisted form into a variant:
// combinedWith plus displayName is a primary, combinedWith alone is a
// secondary, anything else is standalone.
func (t *Table) UnmarshalJSON(data []byte) error {
	var w tableJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = Table{
		ID: w.ID, Number: w.Number, Seats: w.Seats,
		X: w.X, Y: w.Y, Shape: w.Shape,
		Width: w.Width, Height: w.Height,
	}
	switch {
	case len(w.CombinedWith) > 0 && w.DisplayName != "":
		t.Combination = Combination{
			Role:        CombinedPrimary,
			Members:     w.CombinedWith,
			DisplayName: w.DisplayName,
			Snapshot:    maps.Clone(w.OriginalPositions),
		}
	case len(w.CombinedWith) > 0:
		t.Combination = Combination{Role: CombinedSecondary, Members: w.CombinedWith[:1]}
	}
	return nil
}

// TableWithStatus is the derived read model for one visible table in a
// requested date/time window.
type TableWithStatus struct {
	Table              Table        `json:"table"`
	IsReserved         bool         `json:"isReserved"`
	CurrentReservation *Reservation `json:"currentReservation,omitempty"`
}
