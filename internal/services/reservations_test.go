package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tbourn/table-reservations/internal/domain"
)

var fixedNow = time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC)

func newTestStore() *ReservationStore {
	s := NewReservationStore(nil)
	n := 0
	s.NewID = func() string { n++; return fmt.Sprintf("r%d", n) }
	s.Now = func() time.Time { return fixedNow }
	return s
}

func booking(table, date, clock string) domain.ReservationInput {
	return domain.ReservationInput{TableID: table, GuestName: "Ann", GuestPhone: "555", PartySize: 2, Date: date, Time: clock}
}

func TestCreate_AssignsIdentityAndNormalizes(t *testing.T) {
	s := newTestStore()
	r, err := s.Create(domain.ReservationInput{
		TableID: " t1 ", GuestName: "  Zoe\u0301   Martin ", PartySize: 2, Date: "2024-06-01", Time: "19:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID != "r1" || !r.CreatedAt.Equal(fixedNow) || r.TableID != "t1" {
		t.Fatalf("unexpected identity: %+v", r)
	}
	if r.GuestName != "Zo\u00e9 Martin" {
		t.Fatalf("guest name = %q; want NFC composed and collapsed", r.GuestName)
	}

	w, err := s.Create(domain.ReservationInput{TableID: "t2", WalkIn: true, PartySize: 1, Date: "2024-06-01", Time: "12:00"})
	if err != nil || !w.IsWalkIn() {
		t.Fatalf("walk-in = %+v, %v", w, err)
	}
}

func TestCreate_Validation(t *testing.T) {
	s := newTestStore()
	cases := []struct {
		name string
		in   domain.ReservationInput
		want error
	}{
		{"bad time", booking("t1", "2024-06-01", "7pm"), ErrInvalidTimeFormat},
		{"bad hour", booking("t1", "2024-06-01", "24:00"), ErrInvalidTimeFormat},
		{"bad date", booking("t1", "01/06/2024", "19:00"), ErrInvalidDate},
		{"no name", domain.ReservationInput{TableID: "t1", PartySize: 2, Date: "2024-06-01", Time: "19:00"}, ErrMissingGuestName},
		{"zero party", domain.ReservationInput{TableID: "t1", GuestName: "A", Date: "2024-06-01", Time: "19:00"}, ErrInvalidPartySize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Create(tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v; want %v", err, tc.want)
			}
		})
	}
	if len(s.All()) != 0 {
		t.Fatalf("rejected creates must not be stored")
	}
}

func TestForWindow_NinetyMinuteBoundary(t *testing.T) {
	s := newTestStore()
	if _, err := s.Create(booking("t2", "2024-06-01", "19:00")); err != nil {
		t.Fatalf("create: %v", err)
	}
	cases := []struct {
		clock string
		want  bool
	}{
		{"17:31", true},
		{"17:30", false}, // ends exactly at 19:00
		{"19:00", true},
		{"20:29", true},
		{"20:30", false}, // starts exactly when the booking ends
		{"20:45", false},
	}
	for _, tc := range cases {
		r, err := s.ForWindow("t2", "2024-06-01", tc.clock)
		if err != nil {
			t.Fatalf("%s: %v", tc.clock, err)
		}
		if (r != nil) != tc.want {
			t.Fatalf("%s: reserved = %v; want %v", tc.clock, r != nil, tc.want)
		}
	}
	if r, _ := s.ForWindow("t2", "2024-06-02", "19:00"); r != nil {
		t.Fatalf("other dates must not match")
	}
	if _, err := s.ForWindow("t2", "2024-06-01", "x"); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Fatalf("err = %v", err)
	}
}

func TestDeriveStatus_MarksExactlyOverlappingTables(t *testing.T) {
	s := newTestStore()
	tables := domain.DefaultTables()
	plan := []struct{ table, date, clock string }{
		{"t1", "2024-06-01", "18:00"},
		{"t3", "2024-06-01", "19:15"},
		{"t4", "2024-06-02", "19:00"},
		{"t5", "2024-06-01", "21:00"},
	}
	byTable := map[string]string{}
	for _, p := range plan {
		r, err := s.Create(booking(p.table, p.date, p.clock))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		byTable[p.table] = r.ID
	}

	status, err := s.DeriveStatus(tables, "2024-06-01", "19:00")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if len(status) != len(tables) {
		t.Fatalf("expected one entry per visible table")
	}
	want := map[string]bool{"t1": true, "t3": true}
	for _, st := range status {
		if st.IsReserved != want[st.Table.ID] {
			t.Fatalf("%s reserved = %v", st.Table.ID, st.IsReserved)
		}
		if st.IsReserved && st.CurrentReservation.ID != byTable[st.Table.ID] {
			t.Fatalf("%s carries the wrong reservation", st.Table.ID)
		}
		if !st.IsReserved && st.CurrentReservation != nil {
			t.Fatalf("%s is free but carries a reservation", st.Table.ID)
		}
	}

	if _, err := s.DeriveStatus(tables, "2024-13-01", "19:00"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("err = %v", err)
	}
}

func TestDeriveStatus_GroupOccupancy(t *testing.T) {
	s := newTestStore()
	reg := NewTableRegistry(twoTables())
	if _, err := s.Create(booking("t2", "2024-06-01", "19:00")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := reg.Combine([]string{"t1", "t2"}); err != nil {
		t.Fatalf("combine: %v", err)
	}
	status, err := s.DeriveStatus(reg.List(), "2024-06-01", "19:30")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if len(status) != 1 || !status[0].IsReserved || status[0].Table.ID != "t1" {
		t.Fatalf("merged table should be occupied by its member's booking: %+v", status)
	}
}

func TestUpdateCancelDeleteAll(t *testing.T) {
	s := newTestStore()
	r, _ := s.Create(booking("t1", "2024-06-01", "19:00"))

	size := 4
	got, err := s.Update(r.ID, domain.ReservationPatch{PartySize: &size})
	if err != nil || got.PartySize != 4 || got.CreatedAt != r.CreatedAt {
		t.Fatalf("update = %+v, %v", got, err)
	}
	bad := "25:00"
	if _, err := s.Update(r.ID, domain.ReservationPatch{Time: &bad}); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Fatalf("err = %v", err)
	}
	if cur, _ := s.Get(r.ID); cur.Time != "19:00" {
		t.Fatalf("rejected update leaked: %+v", cur)
	}
	if _, err := s.Update("ghost", domain.ReservationPatch{}); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("err = %v", err)
	}

	if _, err := s.Cancel("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	removed, err := s.Cancel(r.ID)
	if err != nil || removed.ID != r.ID || len(s.All()) != 0 {
		t.Fatalf("cancel = %+v, %v", removed, err)
	}

	s.Create(booking("t1", "2024-06-01", "12:00"))
	s.Create(booking("t2", "2024-06-02", "12:00"))
	if n := len(s.ForDate("2024-06-02")); n != 1 {
		t.Fatalf("ForDate = %d; want 1", n)
	}
	if n := len(s.DeleteAll()); n != 2 || len(s.All()) != 0 {
		t.Fatalf("DeleteAll removed %d", n)
	}
}
