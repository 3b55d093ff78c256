package services

import "github.com/tbourn/table-reservations/internal/domain"

// DefaultUndoDepth is the number of layout snapshots kept when no depth is
// configured.
const DefaultUndoDepth = 20

// LayoutEditor wraps the registry's mutations with a bounded undo history.
//
// Before a mutation the full table list is copied; the copy is pushed only if
// the mutation succeeds and changed something. When the history is full the
// oldest snapshot is dropped. Reservations are outside the undo scope.
type LayoutEditor struct {
	registry *TableRegistry
	history  [][]domain.Table
	depth    int
}

// NewLayoutEditor returns an editor over registry keeping at most depth
// snapshots. Depths below one fall back to DefaultUndoDepth.
func NewLayoutEditor(registry *TableRegistry, depth int) *LayoutEditor {
	if depth < 1 {
		depth = DefaultUndoDepth
	}
	return &LayoutEditor{registry: registry, depth: depth}
}

// record runs mutate and, if it changed the layout, remembers the layout as
// it was before.
func (e *LayoutEditor) record(mutate func() (bool, error)) (bool, error) {
	before := e.registry.List()
	changed, err := mutate()
	if err != nil || !changed {
		return false, err
	}
	if len(e.history) == e.depth {
		e.history = append(e.history[:0:0], e.history[1:]...)
	}
	e.history = append(e.history, before)
	return true, nil
}

// UpdateSeats applies seat counts by id.
func (e *LayoutEditor) UpdateSeats(updates []SeatUpdate) (bool, error) {
	return e.record(func() (bool, error) { return e.registry.UpdateSeats(updates) })
}

// UpdateShape sets the shape of one table.
func (e *LayoutEditor) UpdateShape(id string, shape domain.Shape) (bool, error) {
	return e.record(func() (bool, error) { return e.registry.UpdateShape(id, shape) })
}

// UpdatePosition moves one table.
func (e *LayoutEditor) UpdatePosition(id string, x, y float64) (bool, error) {
	return e.record(func() (bool, error) { return e.registry.UpdatePosition(id, x, y) })
}

// Combine merges tables into a group and returns the new primary.
func (e *LayoutEditor) Combine(ids []string) (domain.Table, error) {
	var primary domain.Table
	_, err := e.record(func() (bool, error) {
		p, err := e.registry.Combine(ids)
		if err != nil {
			return false, err
		}
		primary = p
		return true, nil
	})
	return primary, err
}

// Uncombine splits the group containing id.
func (e *LayoutEditor) Uncombine(id string) (bool, error) {
	return e.record(func() (bool, error) { return e.registry.Uncombine(id) })
}

// Load replaces the whole layout.
func (e *LayoutEditor) Load(tables []domain.Table) (bool, error) {
	return e.record(func() (bool, error) { return e.registry.Load(tables) })
}

// Undo restores the most recent snapshot. It returns false when there is
// nothing to undo.
func (e *LayoutEditor) Undo() bool {
	n := len(e.history)
	if n == 0 {
		return false
	}
	snap := e.history[n-1]
	e.history = e.history[:n-1]
	e.registry.tables = snap
	return true
}

// CanUndo reports whether Undo would do anything.
func (e *LayoutEditor) CanUndo() bool { return len(e.history) > 0 }

// Depth returns the number of snapshots currently held.
func (e *LayoutEditor) Depth() int { return len(e.history) }
