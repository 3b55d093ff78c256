package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/table-reservations/internal/domain"
)

// fakeState is an in-memory StateStore that can be told to fail.
type fakeState struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	loadErr  error
	saveErr  error
	saveKeys []string
}

func newFakeState() *fakeState { return &fakeState{blobs: map[string][]byte{}} }

func (f *fakeState) Load(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.blobs[key], nil
}

func (f *fakeState) Save(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveKeys = append(f.saveKeys, key)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.blobs[key] = append([]byte(nil), value...)
	return nil
}

func quietLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func newTestEngine(t *testing.T, store StateStore, tables []domain.Table) *Engine {
	t.Helper()
	if tables != nil {
		raw, err := json.Marshal(tables)
		require.NoError(t, err)
		fs, ok := store.(*fakeState)
		require.True(t, ok, "seeding tables needs a fakeState")
		fs.blobs[domain.StateKeyTables] = raw
	}
	clock := fixedNow
	return NewEngine(context.Background(), store, Options{
		UndoDepth:       10,
		StrictConflicts: true,
		Now:             func() time.Time { clock = clock.Add(time.Second); return clock },
		Location:        time.UTC,
		Logger:          quietLogger(),
	})
}

func statusOf(v StatusView, id string) *domain.TableWithStatus {
	for i := range v.Tables {
		if v.Tables[i].Table.ID == id {
			return &v.Tables[i]
		}
	}
	return nil
}

func TestEngine_ScenarioTwoTablesStatus(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, newFakeState(), twoTables())

	_, err := e.CreateReservation(ctx, booking("t2", "2024-06-01", "19:00"))
	require.NoError(t, err)

	v, err := e.TableStatus(ctx, "2024-06-01", "19:00")
	require.NoError(t, err)
	assert.True(t, statusOf(v, "t2").IsReserved)
	assert.False(t, statusOf(v, "t1").IsReserved)
	assert.Equal(t, 1, v.Reserved)
	assert.Equal(t, 1, v.Available)

	v, err = e.TableStatus(ctx, "2024-06-01", "20:45")
	require.NoError(t, err)
	assert.False(t, statusOf(v, "t2").IsReserved, "90-minute window has elapsed")
}

func TestEngine_ScenarioCombineVisible(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, newFakeState(), twoTables())

	_, err := e.CombineTables(ctx, []string{"t1", "t2"})
	require.NoError(t, err)

	visible := e.VisibleTables(ctx)
	require.Len(t, visible, 1)
	assert.Equal(t, "t1", visible[0].ID)
	assert.Equal(t, 4, visible[0].Seats)
	assert.Equal(t, "1/2", visible[0].Label())

	all := e.Tables(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, domain.CombinedSecondary, all[1].Combination.Role)
	assert.Equal(t, []string{"t1"}, all[1].Combination.Members)
}

func TestEngine_CancelAuditsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, newFakeState(), nil)

	r, err := e.CreateReservation(ctx, booking("t3", "2024-06-01", "19:00"))
	require.NoError(t, err)

	rec, err := e.CancelReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, rec.ID)
	assert.False(t, rec.DeletedAt.Before(r.CreatedAt))

	log := e.DeletedReservations(ctx)
	require.Len(t, log, 1)
	assert.Empty(t, e.Reservations(ctx))

	_, err = e.CancelReservation(ctx, "ghost")
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.Len(t, e.DeletedReservations(ctx), 1, "failed cancel must not touch the log")
}

func TestEngine_StrictConflicts(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, newFakeState(), twoTables())

	first, err := e.CreateReservation(ctx, booking("t1", "2024-06-01", "19:00"))
	require.NoError(t, err)

	before := testutil.ToFloat64(reservationConflicts)
	_, err = e.CreateReservation(ctx, booking("t1", "2024-06-01", "20:00"))
	assert.ErrorIs(t, err, ErrConflictingReservation)
	assert.Equal(t, before+1, testutil.ToFloat64(reservationConflicts))

	_, err = e.CreateReservation(ctx, booking("t1", "2024-06-01", "20:30"))
	assert.NoError(t, err, "back-to-back bookings are allowed")

	// Moving the first booking onto the second one conflicts; keeping its
	// own window does not conflict with itself.
	clock := "20:15"
	_, err = e.UpdateReservation(ctx, first.ID, domain.ReservationPatch{Time: &clock})
	assert.ErrorIs(t, err, ErrConflictingReservation)
	same := "19:00"
	_, err = e.UpdateReservation(ctx, first.ID, domain.ReservationPatch{Time: &same})
	assert.NoError(t, err)

	other := "t2"
	moved, err := e.UpdateReservation(ctx, first.ID, domain.ReservationPatch{TableID: &other})
	require.NoError(t, err)
	assert.Equal(t, "t2", moved.TableID)
}

func TestEngine_PaddedInputsStillConflict(t *testing.T) {
	ctx := context.Background()
	pad := func(s string) *string { return &s }

	creates := []struct {
		name              string
		table, date, time string
	}{
		{"padded date", "t1", "2024-06-01 ", "19:00"},
		{"leading space date", "t1", " 2024-06-01", "19:00"},
		{"padded time", "t1", "2024-06-01", " 19:30 "},
		{"padded table", "\tt1 ", "2024-06-01", "19:00"},
	}
	for _, tc := range creates {
		t.Run("create/"+tc.name, func(t *testing.T) {
			e := newTestEngine(t, newFakeState(), twoTables())
			_, err := e.CreateReservation(ctx, booking("t1", "2024-06-01", "19:00"))
			require.NoError(t, err)

			_, err = e.CreateReservation(ctx, booking(tc.table, tc.date, tc.time))
			assert.ErrorIs(t, err, ErrConflictingReservation)
			assert.Len(t, e.Reservations(ctx), 1)
		})
	}

	patches := []struct {
		name  string
		patch domain.ReservationPatch
	}{
		{"padded date", domain.ReservationPatch{Date: pad(" 2024-06-01")}},
		{"padded time", domain.ReservationPatch{Time: pad("19:00 ")}},
		{"padded table", domain.ReservationPatch{TableID: pad(" t1")}},
	}
	for _, tc := range patches {
		t.Run("update/"+tc.name, func(t *testing.T) {
			e := newTestEngine(t, newFakeState(), twoTables())
			_, err := e.CreateReservation(ctx, booking("t1", "2024-06-01", "19:00"))
			require.NoError(t, err)
			var second domain.Reservation
			switch {
			case tc.patch.Date != nil:
				second, err = e.CreateReservation(ctx, booking("t1", "2024-06-02", "19:00"))
			case tc.patch.Time != nil:
				second, err = e.CreateReservation(ctx, booking("t1", "2024-06-01", "21:00"))
			default:
				second, err = e.CreateReservation(ctx, booking("t2", "2024-06-01", "19:00"))
			}
			require.NoError(t, err)

			_, err = e.UpdateReservation(ctx, second.ID, tc.patch)
			assert.ErrorIs(t, err, ErrConflictingReservation)
			got, err := e.Reservation(ctx, second.ID)
			require.NoError(t, err)
			assert.Equal(t, second, got, "rejected patch leaves the reservation as is")
		})
	}

	t.Run("stored values are trimmed", func(t *testing.T) {
		e := newTestEngine(t, newFakeState(), twoTables())
		r, err := e.CreateReservation(ctx, booking(" t2", "2024-06-01 ", " 18:00"))
		require.NoError(t, err)
		assert.Equal(t, "t2", r.TableID)
		assert.Equal(t, "2024-06-01", r.Date)
		assert.Equal(t, "18:00", r.Time)

		day, err := e.ReservationsForDate(ctx, "2024-06-01")
		require.NoError(t, err)
		assert.Len(t, day, 1)
	})
}

func TestEngine_PartySizePatchWarnsWhenOversized(t *testing.T) {
	ctx := context.Background()
	var buf strings.Builder
	lg := zerolog.New(&buf)
	clock := fixedNow
	raw, err := json.Marshal(twoTables())
	require.NoError(t, err)
	fs := newFakeState()
	fs.blobs[domain.StateKeyTables] = raw
	e := NewEngine(ctx, fs, Options{
		StrictConflicts: true,
		Now:             func() time.Time { clock = clock.Add(time.Second); return clock },
		Location:        time.UTC,
		Logger:          &lg,
	})

	r, err := e.CreateReservation(ctx, booking("t1", "2024-06-01", "19:00"))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "party larger than table")

	six := 6
	updated, err := e.UpdateReservation(ctx, r.ID, domain.ReservationPatch{PartySize: &six})
	require.NoError(t, err, "oversized parties are a soft constraint")
	assert.Equal(t, 6, updated.PartySize)
	assert.Contains(t, buf.String(), "party larger than table")
	assert.Contains(t, buf.String(), `"reservation_id":"`+r.ID+`"`)
}

func TestEngine_ReservationForWindowValidatesDate(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, newFakeState(), twoTables())
	_, err := e.CreateReservation(ctx, booking("t1", "2024-06-01", "19:00"))
	require.NoError(t, err)

	_, err = e.ReservationForWindow(ctx, "t1", "06/01/2024", "19:00")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = e.ReservationForWindow(ctx, "t1", "", "19:00")
	assert.ErrorIs(t, err, ErrInvalidDate)

	r, err := e.ReservationForWindow(ctx, "t1", " 2024-06-01 ", "19:30")
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestEngine_PermissiveWhenNotStrict(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(ctx, nil, Options{Logger: quietLogger()})

	_, err := e.CreateReservation(ctx, booking("t1", "2024-06-01", "19:00"))
	require.NoError(t, err)
	_, err = e.CreateReservation(ctx, booking("t1", "2024-06-01", "19:30"))
	assert.NoError(t, err)
}

func TestEngine_ReservationsAndCombinedTables(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, newFakeState(), twoTables())

	_, err := e.CreateReservation(ctx, booking("t2", "2024-06-01", "19:00"))
	require.NoError(t, err)
	_, err = e.CombineTables(ctx, []string{"t1", "t2"})
	require.NoError(t, err)

	_, err = e.CreateReservation(ctx, booking("t2", "2024-06-01", "12:00"))
	assert.ErrorIs(t, err, ErrTableCombined, "hidden members cannot be booked")

	_, err = e.CreateReservation(ctx, booking("t1", "2024-06-01", "19:30"))
	assert.ErrorIs(t, err, ErrConflictingReservation, "member booking blocks the merged table")

	r, err := e.ReservationForWindow(ctx, "t1", "2024-06-01", "19:45")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "t2", r.TableID)

	_, err = e.CreateReservation(ctx, booking("nope", "2024-06-01", "19:00"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEngine_UndoAfterSeats(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, newFakeState(), nil)
	before := seatsOf(e.Tables(ctx))

	assert.False(t, e.CanUndo(ctx))
	assert.False(t, e.Undo(ctx), "empty undo returns false")

	changed, err := e.UpdateSeats(ctx, []SeatUpdate{{ID: "t1", Seats: 3}, {ID: "t2", Seats: 5}})
	require.NoError(t, err)
	require.True(t, changed)
	assert.True(t, e.CanUndo(ctx))

	require.True(t, e.Undo(ctx))
	assert.Equal(t, before, seatsOf(e.Tables(ctx)))
}

func TestEngine_PresetsGoThroughUndo(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, newFakeState(), nil)

	p, err := e.SavePreset(ctx, "Two tops", twoTables())
	require.NoError(t, err)
	current, err := e.SavePreset(ctx, "Current", nil)
	require.NoError(t, err)
	assert.Len(t, current.Tables, 12)

	_, err = e.LoadPreset(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, e.Tables(ctx), 2)

	require.True(t, e.Undo(ctx))
	assert.Len(t, e.Tables(ctx), 12)

	_, err = e.RenamePreset(ctx, p.ID, "Patio")
	require.NoError(t, err)
	require.NoError(t, e.DeletePreset(ctx, current.ID))
	presets := e.Presets(ctx)
	require.Len(t, presets, 1)
	assert.Equal(t, "Patio", presets[0].Name)

	_, err = e.LoadPreset(ctx, "ghost")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestEngine_DeleteAllAuditsEverything(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, newFakeState(), nil)

	for _, tb := range []string{"t1", "t2", "t3"} {
		_, err := e.CreateReservation(ctx, booking(tb, "2024-06-01", "19:00"))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, e.DeleteAllReservations(ctx))
	assert.Empty(t, e.Reservations(ctx))
	assert.Len(t, e.DeletedReservations(ctx), 3)
	assert.Equal(t, 0, e.DeleteAllReservations(ctx))

	name, body := e.ExportDeletedLog(ctx)
	assert.Equal(t, "deleted_reservations_2024-06-01.txt", name)
	assert.Equal(t, 3, strings.Count(body, "Reservation ID:"))

	assert.Equal(t, 3, e.ClearDeletedLog(ctx))
	_, body = e.ExportDeletedLog(ctx)
	assert.Equal(t, "No deleted reservations", body)
}

func TestEngine_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	store := newFakeState()
	e := newTestEngine(t, store, nil)

	r, err := e.CreateReservation(ctx, booking("t4", "2024-06-01", "18:00"))
	require.NoError(t, err)
	_, err = e.CombineTables(ctx, []string{"t5", "t6"})
	require.NoError(t, err)
	_, err = e.SavePreset(ctx, "Saved", nil)
	require.NoError(t, err)
	other, err := e.CreateReservation(ctx, booking("t1", "2024-06-01", "18:00"))
	require.NoError(t, err)
	_, err = e.CancelReservation(ctx, other.ID)
	require.NoError(t, err)

	reloaded := newTestEngine(t, store, nil)
	got, err := reloaded.Reservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.TableID, got.TableID)
	assert.True(t, r.CreatedAt.Equal(got.CreatedAt))

	visible := reloaded.VisibleTables(ctx)
	assert.Len(t, visible, 11)
	t5 := visible[4]
	assert.Equal(t, "5/6", t5.Label())
	assert.Len(t, reloaded.Presets(ctx), 1)
	assert.Len(t, reloaded.DeletedReservations(ctx), 1)
	assert.False(t, reloaded.CanUndo(ctx), "undo history is not persisted")
}

func TestEngine_StorageFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	store := newFakeState()
	store.blobs[domain.StateKeyReservations] = []byte("{not json")
	store.blobs[domain.StateKeyTables] = []byte(`[{"id":"t1","number":1,"seats":0,"shape":"round"}]`)

	e := newTestEngine(t, store, nil)
	assert.Empty(t, e.Reservations(ctx), "unreadable blob falls back to empty")
	assert.Len(t, e.Tables(ctx), 12, "invalid layout falls back to defaults")

	store.saveErr = errors.New("disk full")
	before := testutil.ToFloat64(persistFailures.WithLabelValues(domain.StateKeyReservations))
	r, err := e.CreateReservation(ctx, booking("t1", "2024-06-01", "19:00"))
	require.NoError(t, err, "write failures never reach the caller")
	assert.Equal(t, before+1, testutil.ToFloat64(persistFailures.WithLabelValues(domain.StateKeyReservations)))

	_, err = e.Reservation(ctx, r.ID)
	assert.NoError(t, err, "state stays in memory after a failed write")

	failing := newFakeState()
	failing.loadErr = errors.New("connection refused")
	e = newTestEngine(t, failing, nil)
	assert.Len(t, e.VisibleTables(ctx), 12)
}

func TestEngine_NoOpLayoutCallsDoNotPersistOrBumpVersion(t *testing.T) {
	ctx := context.Background()
	store := newFakeState()
	e := newTestEngine(t, store, nil)
	v := e.Version()

	changed, err := e.UpdatePosition(ctx, "ghost", 1, 1)
	require.NoError(t, err)
	assert.False(t, changed)
	changed, err = e.UncombineTable(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, v, e.Version())
	assert.Empty(t, store.saveKeys)

	_, err = e.UpdateShape(ctx, "t1", domain.ShapeSquare)
	require.NoError(t, err)
	assert.Greater(t, e.Version(), v)
	assert.Equal(t, []string{domain.StateKeyTables}, store.saveKeys)
}

func TestEngine_SeedDemoAndDefaultWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 18, 10, 0, 0, time.UTC)
	e := NewEngine(ctx, newFakeState(), Options{
		SeedDemo: true,
		Now:      func() time.Time { return now },
		Location: time.UTC,
		Logger:   quietLogger(),
	})
	rs, err := e.ReservationsForDate(ctx, "2024-06-01")
	require.NoError(t, err)
	assert.Len(t, rs, 4)

	date, clock := e.DefaultWindow()
	assert.Equal(t, "2024-06-01", date)
	assert.Equal(t, "18:30", clock)

	_, err = e.ReservationsForDate(ctx, "June 1st")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestEngine_ConcurrentCreatesNeverDoubleBook(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, newFakeState(), twoTables())

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.CreateReservation(ctx, booking("t1", "2024-06-01", "19:00")); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
}

func TestEngine_SearchReservations(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, newFakeState(), twoTables())

	in := booking("t1", "2024-06-01", "19:00")
	in.GuestName = "Ana Lopez"
	in.GuestPhone = "+30 210 555 0101"
	_, err := e.CreateReservation(ctx, in)
	require.NoError(t, err)
	walkIn := booking("t2", "2024-06-01", "19:00")
	walkIn.WalkIn = true
	_, err = e.CreateReservation(ctx, walkIn)
	require.NoError(t, err)

	res := e.SearchReservations(ctx, "LOPEZ", 0)
	require.Len(t, res, 1)
	assert.Equal(t, "t1", res[0].Reservation.TableID)

	res = e.SearchReservations(ctx, "5550101", 5)
	require.Len(t, res, 1)
	assert.Empty(t, e.SearchReservations(ctx, "drop-in", 5))
}
