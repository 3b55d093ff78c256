package domain

import "time"

// LayoutPreset is a named snapshot of the full table list. Only the name can
// change after it is saved.
type LayoutPreset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tables    []Table   `json:"tables"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy of p.
func (p LayoutPreset) Clone() LayoutPreset {
	p.Tables = CloneTables(p.Tables)
	return p
}

// DefaultTables returns a fresh copy of the seed floor plan: small round
// tables at the front, four-seaters in the middle, rectangles along the side
// and a back row ending in the eight-seat table.
func DefaultTables() []Table {
	return []Table{
		{ID: "t1", Number: 1, Seats: 2, X: 80, Y: 100, Shape: ShapeRound},
		{ID: "t2", Number: 2, Seats: 2, X: 200, Y: 100, Shape: ShapeRound},
		{ID: "t3", Number: 3, Seats: 2, X: 320, Y: 100, Shape: ShapeRound},

		{ID: "t4", Number: 4, Seats: 4, X: 80, Y: 220, Shape: ShapeSquare},
		{ID: "t5", Number: 5, Seats: 4, X: 200, Y: 220, Shape: ShapeSquare},
		{ID: "t6", Number: 6, Seats: 4, X: 320, Y: 220, Shape: ShapeSquare},

		{ID: "t7", Number: 7, Seats: 6, X: 460, Y: 100, Shape: ShapeRectangle, Width: 120, Height: 60},
		{ID: "t8", Number: 8, Seats: 6, X: 460, Y: 220, Shape: ShapeRectangle, Width: 120, Height: 60},

		{ID: "t9", Number: 9, Seats: 4, X: 80, Y: 340, Shape: ShapeRound},
		{ID: "t10", Number: 10, Seats: 4, X: 200, Y: 340, Shape: ShapeRound},
		{ID: "t11", Number: 11, Seats: 4, X: 320, Y: 340, Shape: ShapeRound},
		{ID: "t12", Number: 12, Seats: 8, X: 460, Y: 340, Shape: ShapeRectangle, Width: 140, Height: 70},
	}
}

// DefaultTable looks up a table of the seed floor plan by id.
func DefaultTable(id string) (Table, bool) {
	for _, t := range DefaultTables() {
		if t.ID == id {
			return t, true
		}
	}
	return Table{}, false
}
