// Package services – Engine
//
// This file implements the Engine, the single entry point the presentation
// layer talks to. It owns the table registry (behind the undoable layout
// editor), the reservation store, the preset store and the audit log, and
// serialises every public call behind one mutex so each call is atomic for
// concurrent HTTP requests.
//
// State is read once from a StateStore at construction and written back after
// every mutation. Storage failures are logged and counted but never returned:
// an unreadable blob falls back to its empty/default collection and a failed
// write is dropped.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/table-reservations/internal/domain"
	"github.com/tbourn/table-reservations/internal/search"
	"github.com/tbourn/table-reservations/internal/timewindow"
)

// StateStore persists opaque JSON blobs under fixed keys.
type StateStore interface {
	// Load returns the blob stored under key, or (nil, nil) when absent.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the blob stored under key.
	Save(ctx context.Context, key string, value []byte) error
}

// Options tune an Engine. The zero value is usable.
type Options struct {
	// UndoDepth bounds the layout history. Values below one use DefaultUndoDepth.
	UndoDepth int
	// StrictConflicts rejects reservation writes that overlap another
	// reservation on the same table with ErrConflictingReservation.
	StrictConflicts bool
	// SeedDemo loads sample reservations for today when no reservations blob
	// exists yet.
	SeedDemo bool
	// Location is the restaurant's time zone, used for "today" and the
	// default time slot. Defaults to time.Local.
	Location *time.Location
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
	// Logger defaults to the global zerolog logger.
	Logger *zerolog.Logger
}

// StatusView is the derived per-table status for one date/time window.
type StatusView struct {
	Date      string                   `json:"date"`
	Time      string                   `json:"time"`
	Tables    []domain.TableWithStatus `json:"tables"`
	Available int                      `json:"available"`
	Reserved  int                      `json:"reserved"`
}

// Engine is the reservation/table state engine.
type Engine struct {
	mu sync.Mutex

	store  StateStore
	log    zerolog.Logger
	now    func() time.Time
	loc    *time.Location
	strict bool

	registry     *TableRegistry
	layout       *LayoutEditor
	reservations *ReservationStore
	presets      *PresetStore
	audit        *AuditLog

	version uint64
}

var tracer = otel.Tracer("services/Engine")

// NewEngine builds an engine and loads its state from store. A nil store keeps
// state in memory only.
func NewEngine(ctx context.Context, store StateStore, opts Options) *Engine {
	e := &Engine{
		store:  store,
		log:    log.Logger,
		now:    time.Now,
		loc:    time.Local,
		strict: opts.StrictConflicts,
	}
	if opts.Logger != nil {
		e.log = *opts.Logger
	}
	if opts.Now != nil {
		e.now = opts.Now
	}
	if opts.Location != nil {
		e.loc = opts.Location
	}

	ctx, span := tracer.Start(ctx, "NewEngine")
	defer span.End()

	var tables []domain.Table
	if e.loadBlob(ctx, domain.StateKeyTables, &tables) {
		if err := validateLayout(tables); err != nil {
			e.log.Warn().Err(err).Msg("stored layout is invalid, using default floor plan")
			tables = nil
		}
	}
	e.registry = NewTableRegistry(tables)
	e.layout = NewLayoutEditor(e.registry, opts.UndoDepth)

	var reservations []domain.Reservation
	found := e.loadBlob(ctx, domain.StateKeyReservations, &reservations)
	if !found && opts.SeedDemo {
		reservations = demoReservations(e.clock())
	}
	e.reservations = NewReservationStore(reservations)
	e.reservations.Now = e.now

	var presets []domain.LayoutPreset
	e.loadBlob(ctx, domain.StateKeyPresets, &presets)
	e.presets = NewPresetStore(presets)
	e.presets.Now = e.now

	var deleted []domain.DeletedReservation
	e.loadBlob(ctx, domain.StateKeyDeletedLog, &deleted)
	e.audit = NewAuditLog(deleted)
	e.audit.Now = e.now

	e.log.Info().
		Int("tables", len(e.registry.tables)).
		Int("reservations", len(e.reservations.items)).
		Int("presets", len(e.presets.items)).
		Int("deleted", e.audit.Len()).
		Msg("engine state loaded")
	return e
}

// loadBlob decodes the blob under key into dst. It reports whether a usable
// blob was found; read and decode failures are logged and treated as absent.
func (e *Engine) loadBlob(ctx context.Context, key string, dst any) bool {
	if e.store == nil {
		return false
	}
	raw, err := e.store.Load(ctx, key)
	if err != nil {
		e.log.Error().Err(fmt.Errorf("%w: load %s: %w", ErrStorageFailure, key, err)).Msg("state read failed")
		return false
	}
	if len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("state blob unreadable, using default")
		return false
	}
	return true
}

// persist writes the collections under keys. Failures are logged and counted.
// The write is detached from ctx cancellation: the mutation already happened.
func (e *Engine) persist(ctx context.Context, keys ...string) {
	e.version++
	if e.store == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		var v any
		switch key {
		case domain.StateKeyTables:
			v = e.registry.tables
		case domain.StateKeyReservations:
			v = nonNil(e.reservations.items)
		case domain.StateKeyPresets:
			v = nonNil(e.presets.items)
		case domain.StateKeyDeletedLog:
			v = nonNil(e.audit.entries)
		}
		raw, err := json.Marshal(v)
		if err == nil {
			err = e.store.Save(ctx, key, raw)
		}
		if err != nil {
			persistFailures.WithLabelValues(key).Inc()
			e.log.Error().Err(fmt.Errorf("%w: save %s: %w", ErrStorageFailure, key, err)).Msg("state write dropped")
		}
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (e *Engine) clock() time.Time { return e.now().In(e.loc) }

// Version is a counter bumped by every applied mutation.
func (e *Engine) Version() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.version
}

// DefaultWindow returns today's date and the nearest bookable slot, the
// window shown when the caller has not picked one.
func (e *Engine) DefaultWindow() (date, clock string) {
	now := e.clock()
	return timewindow.Today(now), timewindow.Nearest(now)
}

// ---- Tables ----

// Tables returns the full registry, hidden group members included.
func (e *Engine) Tables(ctx context.Context) []domain.Table {
	_, span := tracer.Start(ctx, "Tables")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.List()
}

// VisibleTables returns the tables drawn on the floor plan.
func (e *Engine) VisibleTables(ctx context.Context) []domain.Table {
	_, span := tracer.Start(ctx, "VisibleTables")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.Visible()
}

// TableStatus derives which visible tables are taken during the window that
// starts at clock on date.
func (e *Engine) TableStatus(ctx context.Context, date, clock string) (StatusView, error) {
	_, span := tracer.Start(ctx, "TableStatus",
		trace.WithAttributes(
			attribute.String("date", date),
			attribute.String("time", clock),
		),
	)
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	tables, err := e.reservations.DeriveStatus(e.registry.tables, date, clock)
	if err != nil {
		return StatusView{}, err
	}
	v := StatusView{Date: date, Time: clock, Tables: tables}
	for _, t := range tables {
		if t.IsReserved {
			v.Reserved++
		} else {
			v.Available++
		}
	}
	return v, nil
}

// ReservationForWindow returns the reservation occupying tableID, or its
// combined group, during the window starting at clock on date.
func (e *Engine) ReservationForWindow(ctx context.Context, tableID, date, clock string) (*domain.Reservation, error) {
	_, span := tracer.Start(ctx, "ReservationForWindow",
		trace.WithAttributes(attribute.String("table.id", tableID)),
	)
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	date = strings.TrimSpace(date)
	if _, err := timewindow.ParseDate(date); err != nil {
		return nil, err
	}
	t, ok := e.registry.Get(strings.TrimSpace(tableID))
	if !ok {
		return nil, ErrTableNotFound
	}
	w, err := timewindow.For(clock)
	if err != nil {
		return nil, err
	}
	return e.reservations.overlapping(e.groupIDs(t), date, w, ""), nil
}

// groupIDs lists every table id whose reservations block t: the whole group
// for combined tables, t alone otherwise.
func (e *Engine) groupIDs(t domain.Table) []string {
	if t.Combination.Role == domain.CombinedSecondary {
		if p, ok := e.registry.Get(t.PrimaryID()); ok {
			return occupancyIDs(p)
		}
	}
	return occupancyIDs(t)
}

// ---- Reservations ----

// Reservations returns every live reservation.
func (e *Engine) Reservations(ctx context.Context) []domain.Reservation {
	_, span := tracer.Start(ctx, "Reservations")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reservations.All()
}

// ReservationsForDate returns the reservations on date.
func (e *Engine) ReservationsForDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	_, span := tracer.Start(ctx, "ReservationsForDate", trace.WithAttributes(attribute.String("date", date)))
	defer span.End()

	if _, err := timewindow.ParseDate(date); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reservations.ForDate(date), nil
}

// SearchReservations ranks live reservations by how well their guest name,
// notes or phone number match q. limit <= 0 uses search.DefaultLimit.
func (e *Engine) SearchReservations(ctx context.Context, q string, limit int) []search.Result {
	_, span := tracer.Start(ctx, "SearchReservations", trace.WithAttributes(attribute.Int("limit", limit)))
	defer span.End()

	e.mu.Lock()
	all := e.reservations.All()
	e.mu.Unlock()
	return search.NewGuestIndex(all).TopK(q, limit)
}

// Reservation returns one reservation by id.
func (e *Engine) Reservation(ctx context.Context, id string) (domain.Reservation, error) {
	_, span := tracer.Start(ctx, "Reservation", trace.WithAttributes(attribute.String("reservation.id", id)))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reservations.Get(id)
}

// CreateReservation books a table. The table must exist and be visible; with
// strict conflicts enabled an overlapping booking is rejected.
func (e *Engine) CreateReservation(ctx context.Context, in domain.ReservationInput) (domain.Reservation, error) {
	in = in.Normalize()
	ctx, span := tracer.Start(ctx, "CreateReservation",
		trace.WithAttributes(
			attribute.String("table.id", in.TableID),
			attribute.String("date", in.Date),
			attribute.String("time", in.Time),
		),
	)
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.bookable(in.TableID)
	if err != nil {
		return domain.Reservation{}, err
	}
	if err := e.checkConflict(t, in.Date, in.Time, ""); err != nil {
		return domain.Reservation{}, err
	}
	r, err := e.reservations.Create(in)
	if err != nil {
		return domain.Reservation{}, err
	}
	e.warnOversize(r, t)
	reservationsCreated.Inc()
	span.SetAttributes(attribute.String("reservation.id", r.ID))
	e.persist(ctx, domain.StateKeyReservations)
	return r, nil
}

// UpdateReservation merges p into an existing reservation. Moving it to
// another table, date or time is conflict-checked like a new booking.
func (e *Engine) UpdateReservation(ctx context.Context, id string, p domain.ReservationPatch) (domain.Reservation, error) {
	ctx, span := tracer.Start(ctx, "UpdateReservation", trace.WithAttributes(attribute.String("reservation.id", id)))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	cur, err := e.reservations.Get(id)
	if err != nil {
		return domain.Reservation{}, err
	}
	p = p.Normalize()
	next := p.Apply(cur)

	var t domain.Table
	if p.MovesWindow() || p.PartySize != nil {
		if next.TableID != cur.TableID {
			t, err = e.bookable(next.TableID)
		} else {
			var ok bool
			if t, ok = e.registry.Get(next.TableID); !ok {
				err = ErrTableNotFound
			}
		}
		if err != nil {
			return domain.Reservation{}, err
		}
	}
	if p.MovesWindow() {
		if err := e.checkConflict(t, next.Date, next.Time, id); err != nil {
			return domain.Reservation{}, err
		}
	}

	r, err := e.reservations.Update(id, p)
	if err != nil {
		return domain.Reservation{}, err
	}
	if t.ID != "" {
		e.warnOversize(r, t)
	}
	e.persist(ctx, domain.StateKeyReservations)
	return r, nil
}

// CancelReservation records the reservation in the audit log and then removes
// it. Unknown ids fail with ErrReservationNotFound and leave the log as is.
func (e *Engine) CancelReservation(ctx context.Context, id string) (domain.DeletedReservation, error) {
	ctx, span := tracer.Start(ctx, "CancelReservation", trace.WithAttributes(attribute.String("reservation.id", id)))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := e.reservations.Get(id)
	if err != nil {
		return domain.DeletedReservation{}, err
	}
	rec := e.audit.Append(r)
	if _, err := e.reservations.Cancel(id); err != nil {
		return domain.DeletedReservation{}, err
	}
	reservationsCancelled.Inc()
	e.persist(ctx, domain.StateKeyDeletedLog, domain.StateKeyReservations)
	return rec, nil
}

// DeleteAllReservations audits every live reservation and empties the store.
// It returns how many reservations were removed.
func (e *Engine) DeleteAllReservations(ctx context.Context) int {
	ctx, span := tracer.Start(ctx, "DeleteAllReservations")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	all := e.reservations.All()
	if len(all) == 0 {
		return 0
	}
	e.audit.AppendMany(all)
	e.reservations.DeleteAll()
	reservationsCancelled.Add(float64(len(all)))
	span.SetAttributes(attribute.Int("deleted", len(all)))
	e.persist(ctx, domain.StateKeyDeletedLog, domain.StateKeyReservations)
	return len(all)
}

// bookable returns the table with id if new reservations may target it.
func (e *Engine) bookable(id string) (domain.Table, error) {
	t, ok := e.registry.Get(id)
	if !ok {
		return domain.Table{}, fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	if !t.Visible() {
		return domain.Table{}, fmt.Errorf("%w: %s belongs to %s", ErrTableCombined, id, t.PrimaryID())
	}
	return t, nil
}

func (e *Engine) checkConflict(t domain.Table, date, clock, excludeID string) error {
	if !e.strict {
		return nil
	}
	w, err := timewindow.For(clock)
	if err != nil {
		return err
	}
	if other := e.reservations.overlapping(e.groupIDs(t), date, w, excludeID); other != nil {
		reservationConflicts.Inc()
		return fmt.Errorf("%w: %s at %s", ErrConflictingReservation, other.ID, other.Time)
	}
	return nil
}

func (e *Engine) warnOversize(r domain.Reservation, t domain.Table) {
	if r.PartySize > t.Seats {
		e.log.Warn().
			Str("reservation_id", r.ID).
			Str("table_id", t.ID).
			Int("party_size", r.PartySize).
			Int("seats", t.Seats).
			Msg("party larger than table")
	}
}

// ---- Layout ----

// UpdateSeats sets seat counts by id. Unknown ids are skipped.
func (e *Engine) UpdateSeats(ctx context.Context, updates []SeatUpdate) (bool, error) {
	ctx, span := tracer.Start(ctx, "UpdateSeats", trace.WithAttributes(attribute.Int("updates", len(updates))))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyLayout(ctx, "seats", func() (bool, error) { return e.layout.UpdateSeats(updates) })
}

// UpdateShape sets the shape of one table. Unknown ids are a no-op.
func (e *Engine) UpdateShape(ctx context.Context, id string, shape domain.Shape) (bool, error) {
	ctx, span := tracer.Start(ctx, "UpdateShape", trace.WithAttributes(attribute.String("table.id", id)))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyLayout(ctx, "shape", func() (bool, error) { return e.layout.UpdateShape(id, shape) })
}

// UpdatePosition moves one table. Unknown ids are a no-op.
func (e *Engine) UpdatePosition(ctx context.Context, id string, x, y float64) (bool, error) {
	ctx, span := tracer.Start(ctx, "UpdatePosition", trace.WithAttributes(attribute.String("table.id", id)))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyLayout(ctx, "position", func() (bool, error) { return e.layout.UpdatePosition(id, x, y) })
}

// CombineTables merges tables into a group led by ids[0].
func (e *Engine) CombineTables(ctx context.Context, ids []string) (domain.Table, error) {
	ctx, span := tracer.Start(ctx, "CombineTables", trace.WithAttributes(attribute.StringSlice("table.ids", ids)))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	var primary domain.Table
	_, err := e.applyLayout(ctx, "combine", func() (bool, error) {
		p, err := e.layout.Combine(ids)
		primary = p
		return err == nil, err
	})
	return primary, err
}

// UncombineTable splits the group that id belongs to. It reports false for a
// standalone table.
func (e *Engine) UncombineTable(ctx context.Context, id string) (bool, error) {
	ctx, span := tracer.Start(ctx, "UncombineTable", trace.WithAttributes(attribute.String("table.id", id)))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyLayout(ctx, "uncombine", func() (bool, error) { return e.layout.Uncombine(id) })
}

// LoadLayout replaces the whole layout. The previous layout can be restored
// with Undo.
func (e *Engine) LoadLayout(ctx context.Context, tables []domain.Table) error {
	ctx, span := tracer.Start(ctx, "LoadLayout", trace.WithAttributes(attribute.Int("tables", len(tables))))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	_, err := e.applyLayout(ctx, "load", func() (bool, error) { return e.layout.Load(tables) })
	return err
}

// Undo restores the layout as it was before the last applied layout change.
func (e *Engine) Undo(ctx context.Context) bool {
	ctx, span := tracer.Start(ctx, "Undo")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	ok, _ := e.applyLayout(ctx, "undo", func() (bool, error) { return e.layout.Undo(), nil })
	return ok
}

// CanUndo reports whether there is a layout change to undo.
func (e *Engine) CanUndo(ctx context.Context) bool {
	_, span := tracer.Start(ctx, "CanUndo")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout.CanUndo()
}

// applyLayout runs a layout mutation and persists the table list when it
// changed something. Callers hold e.mu.
func (e *Engine) applyLayout(ctx context.Context, op string, fn func() (bool, error)) (bool, error) {
	changed, err := fn()
	if err != nil || !changed {
		return false, err
	}
	layoutMutations.WithLabelValues(op).Inc()
	e.persist(ctx, domain.StateKeyTables)
	return true, nil
}

// ---- Presets ----

// Presets returns every saved layout preset.
func (e *Engine) Presets(ctx context.Context) []domain.LayoutPreset {
	_, span := tracer.Start(ctx, "Presets")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.presets.List()
}

// SavePreset stores a copy of tables under name. A nil tables argument saves
// the current layout.
func (e *Engine) SavePreset(ctx context.Context, name string, tables []domain.Table) (domain.LayoutPreset, error) {
	ctx, span := tracer.Start(ctx, "SavePreset")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tables == nil {
		tables = e.registry.tables
	}
	p, err := e.presets.Save(name, tables)
	if err != nil {
		return domain.LayoutPreset{}, err
	}
	e.persist(ctx, domain.StateKeyPresets)
	return p, nil
}

// LoadPreset replaces the current layout with a preset's tables. The load is
// undoable like any other layout change.
func (e *Engine) LoadPreset(ctx context.Context, id string) (domain.LayoutPreset, error) {
	ctx, span := tracer.Start(ctx, "LoadPreset", trace.WithAttributes(attribute.String("preset.id", id)))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.presets.Get(id)
	if err != nil {
		return domain.LayoutPreset{}, err
	}
	if _, err := e.applyLayout(ctx, "preset", func() (bool, error) { return e.layout.Load(p.Tables) }); err != nil {
		return domain.LayoutPreset{}, err
	}
	return p, nil
}

// RenamePreset changes the name of a preset.
func (e *Engine) RenamePreset(ctx context.Context, id, name string) (domain.LayoutPreset, error) {
	ctx, span := tracer.Start(ctx, "RenamePreset", trace.WithAttributes(attribute.String("preset.id", id)))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.presets.Rename(id, name)
	if err != nil {
		return domain.LayoutPreset{}, err
	}
	e.persist(ctx, domain.StateKeyPresets)
	return p, nil
}

// DeletePreset removes a preset.
func (e *Engine) DeletePreset(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "DeletePreset", trace.WithAttributes(attribute.String("preset.id", id)))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.presets.Delete(id); err != nil {
		return err
	}
	e.persist(ctx, domain.StateKeyPresets)
	return nil
}

// ---- Audit log ----

// DeletedReservations returns the audit log in append order.
func (e *Engine) DeletedReservations(ctx context.Context) []domain.DeletedReservation {
	_, span := tracer.Start(ctx, "DeletedReservations")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.audit.List()
}

// ClearDeletedLog empties the audit log and returns how many entries it held.
func (e *Engine) ClearDeletedLog(ctx context.Context) int {
	ctx, span := tracer.Start(ctx, "ClearDeletedLog")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	n := e.audit.Clear()
	if n > 0 {
		e.persist(ctx, domain.StateKeyDeletedLog)
	}
	return n
}

// ExportDeletedLog renders the audit log as text together with a download
// filename carrying today's date.
func (e *Engine) ExportDeletedLog(ctx context.Context) (filename, body string) {
	_, span := tracer.Start(ctx, "ExportDeletedLog")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()
	return ExportFilename(e.now()), e.audit.ExportText()
}

// demoReservations returns the sample bookings shown on a fresh install.
func demoReservations(now time.Time) []domain.Reservation {
	today := timewindow.Today(now)
	created := now.UTC()
	return []domain.Reservation{
		{ID: "r1", TableID: "t2", GuestName: "John Smith", GuestPhone: "(555) 123-4567", PartySize: 2,
			Date: today, Time: "19:00", Notes: "Anniversary dinner", CreatedAt: created},
		{ID: "r2", TableID: "t5", GuestName: "Sarah Johnson", GuestPhone: "(555) 987-6543", PartySize: 4,
			Date: today, Time: "20:00", CreatedAt: created},
		{ID: "r3", TableID: "t7", GuestName: "Business Group", GuestPhone: "(555) 456-7890", PartySize: 6,
			Date: today, Time: "18:30", Notes: "Corporate dinner - wine pairing requested", CreatedAt: created},
		{ID: "r4", TableID: "t12", GuestName: "Martinez Family", GuestPhone: "(555) 321-0987", PartySize: 8,
			Date: today, Time: "19:30", Notes: "Birthday celebration", CreatedAt: created},
	}
}
