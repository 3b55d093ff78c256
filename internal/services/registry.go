package services

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tbourn/table-reservations/internal/domain"
)

// SeatUpdate sets the seat count of one table.
type SeatUpdate struct {
	ID    string `json:"id"`
	Seats int    `json:"seats"`
}

// TableRegistry is the authoritative list of tables and their geometry.
//
// Every mutation builds a new slice and swaps it in only when it succeeds, so a
// failed call never leaves a partially updated registry behind. Mutations
// report whether anything changed so the layout editor can skip recording
// no-ops in its undo history.
//
// TableRegistry is not safe for concurrent use; the Engine serialises access.
type TableRegistry struct {
	tables []domain.Table
}

// NewTableRegistry returns a registry seeded with tables, or with the default
// floor plan when tables is empty.
func NewTableRegistry(tables []domain.Table) *TableRegistry {
	if len(tables) == 0 {
		tables = domain.DefaultTables()
	}
	return &TableRegistry{tables: domain.CloneTables(tables)}
}

// List returns every table, hidden group members included.
func (r *TableRegistry) List() []domain.Table {
	return domain.CloneTables(r.tables)
}

// Visible returns the standalone tables and group primaries.
func (r *TableRegistry) Visible() []domain.Table {
	out := make([]domain.Table, 0, len(r.tables))
	for _, t := range r.tables {
		if t.Visible() {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Get looks a table up by id.
func (r *TableRegistry) Get(id string) (domain.Table, bool) {
	if i := r.index(id); i >= 0 {
		return r.tables[i].Clone(), true
	}
	return domain.Table{}, false
}

func (r *TableRegistry) index(id string) int {
	return slices.IndexFunc(r.tables, func(t domain.Table) bool { return t.ID == id })
}

// Combine merges the given tables into one group with ids[0] as primary.
//
// The primary's seats become the sum of all members and its label the member
// numbers in ascending order joined by "/". Every member's placement is
// recorded on the primary so Uncombine can restore it. Duplicate ids are
// ignored; fewer than two distinct ids fail with ErrInsufficientTables.
func (r *TableRegistry) Combine(ids []string) (domain.Table, error) {
	ids = dedupe(ids)
	if len(ids) < 2 {
		return domain.Table{}, ErrInsufficientTables
	}

	next := domain.CloneTables(r.tables)
	pos := make([]int, len(ids))
	for i, id := range ids {
		idx := slices.IndexFunc(next, func(t domain.Table) bool { return t.ID == id })
		if idx < 0 {
			return domain.Table{}, fmt.Errorf("%w: %s", ErrTableNotFound, id)
		}
		if next[idx].Combination.Role != domain.Standalone {
			return domain.Table{}, fmt.Errorf("%w: %s", ErrTableCombined, id)
		}
		pos[i] = idx
	}

	seats := 0
	numbers := make([]int, 0, len(ids))
	snapshot := make(map[string]domain.Placement, len(ids))
	for _, idx := range pos {
		t := next[idx]
		seats += t.Seats
		numbers = append(numbers, t.Number)
		snapshot[t.ID] = t.Placement()
	}
	slices.Sort(numbers)
	labels := make([]string, len(numbers))
	for i, n := range numbers {
		labels[i] = strconv.Itoa(n)
	}

	primaryID := ids[0]
	primary := &next[pos[0]]
	primary.Seats = seats
	primary.Combination = domain.Combination{
		Role:        domain.CombinedPrimary,
		Members:     slices.Clone(ids[1:]),
		DisplayName: strings.Join(labels, "/"),
		Snapshot:    snapshot,
	}
	for _, idx := range pos[1:] {
		next[idx].Combination = domain.Combination{
			Role:    domain.CombinedSecondary,
			Members: []string{primaryID},
		}
	}

	r.tables = next
	return primary.Clone(), nil
}

// Uncombine splits the group that id belongs to, restoring every member from
// the primary's snapshot and falling back to the default floor plan for any
// field the snapshot lacks. It reports false for standalone tables.
func (r *TableRegistry) Uncombine(id string) (bool, error) {
	idx := r.index(id)
	if idx < 0 {
		return false, fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	target := r.tables[idx]
	if target.Combination.Role == domain.Standalone {
		return false, nil
	}

	next := domain.CloneTables(r.tables)
	primaryID := target.PrimaryID()
	pidx := slices.IndexFunc(next, func(t domain.Table) bool { return t.ID == primaryID })
	if pidx < 0 {
		// Orphaned secondary: its primary is gone, so only the table itself
		// can be reset.
		restore(&next[idx], domain.Placement{})
		r.tables = next
		return true, nil
	}

	snapshot := next[pidx].Combination.Snapshot
	group := map[string]bool{primaryID: true}
	for _, m := range next[pidx].Combination.Members {
		group[m] = true
	}
	for i := range next {
		t := &next[i]
		if group[t.ID] || (t.Combination.Role == domain.CombinedSecondary && t.PrimaryID() == primaryID) {
			restore(t, snapshot[t.ID])
		}
	}

	r.tables = next
	return true, nil
}

// restore writes p onto t field by field, falling back to the default floor
// plan, and clears the combination state.
func restore(t *domain.Table, p domain.Placement) {
	def, hasDef := domain.DefaultTable(t.ID)
	switch {
	case p.X != nil:
		t.X = *p.X
	case hasDef:
		t.X = def.X
	}
	switch {
	case p.Y != nil:
		t.Y = *p.Y
	case hasDef:
		t.Y = def.Y
	}
	switch {
	case p.Seats != nil:
		t.Seats = *p.Seats
	case hasDef:
		t.Seats = def.Seats
	}
	switch {
	case p.Shape != nil:
		t.Shape = *p.Shape
	case hasDef:
		t.Shape = def.Shape
	}
	t.Combination = domain.Combination{}
}

// UpdateSeats applies seat counts by id. Unknown ids are skipped; any count
// below one rejects the whole batch.
func (r *TableRegistry) UpdateSeats(updates []SeatUpdate) (bool, error) {
	for _, u := range updates {
		if u.Seats < 1 {
			return false, fmt.Errorf("%w: table %s got %d", ErrInvalidSeats, u.ID, u.Seats)
		}
	}
	next := domain.CloneTables(r.tables)
	changed := false
	for _, u := range updates {
		for i := range next {
			if next[i].ID == u.ID && next[i].Seats != u.Seats {
				next[i].Seats = u.Seats
				changed = true
			}
		}
	}
	if changed {
		r.tables = next
	}
	return changed, nil
}

// UpdateShape sets the shape of one table. Unknown ids are a no-op.
func (r *TableRegistry) UpdateShape(id string, shape domain.Shape) (bool, error) {
	if !shape.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidShape, shape)
	}
	idx := r.index(id)
	if idx < 0 || r.tables[idx].Shape == shape {
		return false, nil
	}
	next := domain.CloneTables(r.tables)
	next[idx].Shape = shape
	r.tables = next
	return true, nil
}

// UpdatePosition moves one table. Unknown ids are a no-op.
func (r *TableRegistry) UpdatePosition(id string, x, y float64) (bool, error) {
	if !validCoord(x) || !validCoord(y) {
		return false, fmt.Errorf("%w: (%v, %v)", ErrInvalidPosition, x, y)
	}
	idx := r.index(id)
	if idx < 0 || (r.tables[idx].X == x && r.tables[idx].Y == y) {
		return false, nil
	}
	next := domain.CloneTables(r.tables)
	next[idx].X, next[idx].Y = x, y
	r.tables = next
	return true, nil
}

// Load replaces the whole registry after validating the new layout. A load
// always counts as a change.
func (r *TableRegistry) Load(tables []domain.Table) (bool, error) {
	if err := validateLayout(tables); err != nil {
		return false, err
	}
	r.tables = domain.CloneTables(tables)
	return true, nil
}

func validateLayout(tables []domain.Table) error {
	seen := make(map[string]bool, len(tables))
	for _, t := range tables {
		if strings.TrimSpace(t.ID) == "" {
			return ErrInvalidTableID
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateTable, t.ID)
		}
		seen[t.ID] = true
		if t.Seats < 1 {
			return fmt.Errorf("%w: table %s got %d", ErrInvalidSeats, t.ID, t.Seats)
		}
		if !t.Shape.Valid() {
			return fmt.Errorf("%w: table %s got %q", ErrInvalidShape, t.ID, t.Shape)
		}
		if !validCoord(t.X) || !validCoord(t.Y) {
			return fmt.Errorf("%w: table %s", ErrInvalidPosition, t.ID)
		}
	}
	return nil
}

func validCoord(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// dedupe drops empty and repeated ids, keeping first occurrences in order.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
