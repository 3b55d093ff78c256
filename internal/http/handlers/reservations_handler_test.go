package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/tbourn/table-reservations/internal/domain"
)

func book(t *testing.T, r http.Handler, req CreateReservationRequest, hdr map[string]string) domain.Reservation {
	t.Helper()
	w := do(t, r, http.MethodPost, "/reservations", req, hdr)
	wantStatus(t, w, http.StatusCreated)
	return decode[domain.Reservation](t, w)
}

func TestCreateReservation(t *testing.T) {
	r, _, _ := newTestRouter(t)

	got := book(t, r, CreateReservationRequest{
		TableID: " t2 ", GuestName: "  John   Smith ", GuestPhone: "(555) 123-4567", PartySize: 2, Date: testDate, Time: "19:00",
	}, nil)
	if got.ID == "" || got.TableID != "t2" || got.GuestName != "John Smith" {
		t.Fatalf("created=%+v", got)
	}

	t.Run("overlap conflicts", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/reservations", CreateReservationRequest{
			TableID: "t2", GuestName: "Late", PartySize: 2, Date: testDate, Time: "20:00",
		}, nil)
		wantStatus(t, w, http.StatusConflict)
		wantErrCode(t, w, ErrCodeConflict)
	})

	t.Run("touching window is fine", func(t *testing.T) {
		book(t, r, CreateReservationRequest{TableID: "t2", GuestName: "Next", PartySize: 2, Date: testDate, Time: "20:30"}, nil)
	})

	t.Run("walk-in", func(t *testing.T) {
		wi := book(t, r, CreateReservationRequest{TableID: "t3", PartySize: 2, Date: testDate, Time: "19:00", WalkIn: true}, nil)
		if wi.GuestName != domain.WalkInGuestName {
			t.Fatalf("walk-in guest=%q", wi.GuestName)
		}
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name string
			req  any
			code int
		}{
			{"missing fields", `{"guestName":"x"}`, http.StatusBadRequest},
			{"malformed json", `{`, http.StatusBadRequest},
			{"unknown table", CreateReservationRequest{TableID: "t99", GuestName: "A", PartySize: 1, Date: testDate, Time: "12:00"}, http.StatusNotFound},
			{"no guest", CreateReservationRequest{TableID: "t1", PartySize: 1, Date: testDate, Time: "12:00"}, http.StatusUnprocessableEntity},
			{"party size", CreateReservationRequest{TableID: "t1", GuestName: "A", Date: testDate, Time: "12:00"}, http.StatusUnprocessableEntity},
			{"bad time", CreateReservationRequest{TableID: "t1", GuestName: "A", PartySize: 1, Date: testDate, Time: "12"}, http.StatusUnprocessableEntity},
			{"bad date", CreateReservationRequest{TableID: "t1", GuestName: "A", PartySize: 1, Date: "01/06/2024", Time: "12:00"}, http.StatusUnprocessableEntity},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				wantStatus(t, do(t, r, http.MethodPost, "/reservations", tc.req, nil), tc.code)
			})
		}
	})
}

func TestCreateReservation_IdempotentReplay(t *testing.T) {
	r, eng, idem := newTestRouter(t)
	hdr := map[string]string{"Idempotency-Key": "booking-0001"}
	req := CreateReservationRequest{TableID: "t4", GuestName: "Ana", PartySize: 3, Date: testDate, Time: "19:00"}

	first := book(t, r, req, hdr)
	if id, _ := idem.Lookup(context.Background(), "booking-0001"); id != first.ID {
		t.Fatalf("recorded id=%q want %q", id, first.ID)
	}

	w := do(t, r, http.MethodPost, "/reservations", req, hdr)
	wantStatus(t, w, http.StatusOK)
	if w.Header().Get(HeaderIdempotentReplay) != "true" {
		t.Fatalf("missing replay header")
	}
	if got := decode[domain.Reservation](t, w); got.ID != first.ID {
		t.Fatalf("replayed id=%q want %q", got.ID, first.ID)
	}
	if n := len(eng.Reservations(context.Background())); n != 1 {
		t.Fatalf("reservations=%d want 1", n)
	}

	t.Run("cancelled original books again", func(t *testing.T) {
		wantStatus(t, do(t, r, http.MethodDelete, "/reservations/"+first.ID, nil, nil), http.StatusOK)
		w := do(t, r, http.MethodPost, "/reservations", req, hdr)
		wantStatus(t, w, http.StatusCreated)
		if w.Header().Get(HeaderIdempotentReplay) != "" {
			t.Fatalf("unexpected replay header")
		}
	})

	t.Run("invalid key", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/reservations", req, map[string]string{"Idempotency-Key": "bad key!"})
		wantStatus(t, w, http.StatusBadRequest)
	})

	t.Run("remember failure is not fatal", func(t *testing.T) {
		idem.err = errors.New("store down")
		in := req
		in.TableID = "t9"
		book(t, r, in, map[string]string{"Idempotency-Key": "booking-0002"})
	})
}

func TestListReservations(t *testing.T) {
	r, _, _ := newTestRouter(t)
	book(t, r, CreateReservationRequest{TableID: "t1", GuestName: "Sarah Johnson", GuestPhone: "555-987-6543", PartySize: 2, Date: testDate, Time: "20:00"}, nil)
	book(t, r, CreateReservationRequest{TableID: "t2", GuestName: "John Smith", PartySize: 2, Date: testDate, Time: "18:00"}, nil)
	book(t, r, CreateReservationRequest{TableID: "t2", GuestName: "Mia", PartySize: 2, Date: "2024-06-02", Time: "12:00"}, nil)

	all := decode[[]domain.Reservation](t, do(t, r, http.MethodGet, "/reservations", nil, nil))
	if len(all) != 3 {
		t.Fatalf("all=%d want 3", len(all))
	}

	day := decode[[]domain.Reservation](t, do(t, r, http.MethodGet, "/reservations?date="+testDate, nil, nil))
	if len(day) != 2 || day[0].GuestName != "Sarah Johnson" || day[1].GuestName != "John Smith" {
		t.Fatalf("day=%+v", day)
	}

	w := do(t, r, http.MethodGet, "/reservations?date=June", nil, nil)
	wantStatus(t, w, http.StatusUnprocessableEntity)

	res := decode[SearchResponse](t, do(t, r, http.MethodGet, "/reservations?q=9876", nil, nil))
	if len(res.Results) != 1 || res.Results[0].Reservation.GuestName != "Sarah Johnson" {
		t.Fatalf("phone search=%+v", res.Results)
	}

	res = decode[SearchResponse](t, do(t, r, http.MethodGet, "/reservations?q=smith&limit=500", nil, nil))
	if res.Query != "smith" || len(res.Results) != 1 {
		t.Fatalf("name search=%+v", res)
	}
}

func TestGetUpdateCancelReservation(t *testing.T) {
	r, _, _ := newTestRouter(t)
	a := book(t, r, CreateReservationRequest{TableID: "t1", GuestName: "A", PartySize: 2, Date: testDate, Time: "19:00"}, nil)
	book(t, r, CreateReservationRequest{TableID: "t2", GuestName: "B", PartySize: 2, Date: testDate, Time: "19:00"}, nil)

	wantStatus(t, do(t, r, http.MethodGet, "/reservations/"+a.ID, nil, nil), http.StatusOK)
	w := do(t, r, http.MethodGet, "/reservations/missing", nil, nil)
	wantStatus(t, w, http.StatusNotFound)
	wantErrCode(t, w, ErrCodeNotFound)

	w = do(t, r, http.MethodPatch, "/reservations/"+a.ID, `{"partySize":4,"notes":"window seat"}`, nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[domain.Reservation](t, w); got.PartySize != 4 || got.Notes != "window seat" || got.GuestName != "A" {
		t.Fatalf("patched=%+v", got)
	}

	// moving onto B's table in the same window conflicts
	w = do(t, r, http.MethodPatch, "/reservations/"+a.ID, `{"tableId":"t2"}`, nil)
	wantStatus(t, w, http.StatusConflict)
	// padding does not slip past the conflict check
	w = do(t, r, http.MethodPatch, "/reservations/"+a.ID, `{"tableId":" t2 ","date":"`+testDate+` "}`, nil)
	wantStatus(t, w, http.StatusConflict)
	if got := decode[domain.Reservation](t, do(t, r, http.MethodGet, "/reservations/"+a.ID, nil, nil)); got.TableID != "t1" {
		t.Fatalf("rejected move changed the table: %+v", got)
	}

	wantStatus(t, do(t, r, http.MethodPatch, "/reservations/"+a.ID, `{"partySize":0}`, nil), http.StatusUnprocessableEntity)
	wantStatus(t, do(t, r, http.MethodPatch, "/reservations/"+a.ID, `[`, nil), http.StatusBadRequest)
	wantStatus(t, do(t, r, http.MethodPatch, "/reservations/nope", `{"notes":"x"}`, nil), http.StatusNotFound)

	w = do(t, r, http.MethodDelete, "/reservations/"+a.ID, nil, nil)
	wantStatus(t, w, http.StatusOK)
	if d := decode[domain.DeletedReservation](t, w); d.ID != a.ID || d.DeletedAt.IsZero() {
		t.Fatalf("deleted=%+v", d)
	}
	wantStatus(t, do(t, r, http.MethodDelete, "/reservations/"+a.ID, nil, nil), http.StatusNotFound)
}

func TestDeleteAllReservations(t *testing.T) {
	r, _, _ := newTestRouter(t)
	book(t, r, CreateReservationRequest{TableID: "t1", GuestName: "A", PartySize: 2, Date: testDate, Time: "19:00"}, nil)
	book(t, r, CreateReservationRequest{TableID: "t2", GuestName: "B", PartySize: 2, Date: testDate, Time: "19:00"}, nil)

	w := do(t, r, http.MethodDelete, "/reservations", nil, nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[DeleteAllResponse](t, w); got.Deleted != 2 {
		t.Fatalf("deleted=%d want 2", got.Deleted)
	}
	if got := decode[DeleteAllResponse](t, do(t, r, http.MethodDelete, "/reservations", nil, nil)); got.Deleted != 0 {
		t.Fatalf("second delete=%d want 0", got.Deleted)
	}

	log := decode[[]domain.DeletedReservation](t, do(t, r, http.MethodGet, "/deleted-reservations", nil, nil))
	if len(log) != 2 {
		t.Fatalf("deleted log=%d want 2", len(log))
	}
}

func TestDeletedLog(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/deleted-reservations/export", nil, nil)
	wantStatus(t, w, http.StatusOK)
	if strings.TrimSpace(w.Body.String()) != "No deleted reservations" {
		t.Fatalf("empty export=%q", w.Body.String())
	}

	for _, name := range []string{"First", "Second", "Third"} {
		res := book(t, r, CreateReservationRequest{TableID: "t1", GuestName: name, PartySize: 2, Date: testDate, Time: "12:00"}, nil)
		wantStatus(t, do(t, r, http.MethodDelete, "/reservations/"+res.ID, nil, nil), http.StatusOK)
	}

	desc := decode[[]domain.DeletedReservation](t, do(t, r, http.MethodGet, "/deleted-reservations", nil, nil))
	if len(desc) != 3 || desc[0].GuestName != "Third" {
		t.Fatalf("desc=%+v", desc)
	}
	asc := decode[[]domain.DeletedReservation](t, do(t, r, http.MethodGet, "/deleted-reservations?order=asc&limit=2", nil, nil))
	if len(asc) != 2 || asc[0].GuestName != "First" {
		t.Fatalf("asc=%+v", asc)
	}
	wantStatus(t, do(t, r, http.MethodGet, "/deleted-reservations?order=sideways", nil, nil), http.StatusBadRequest)

	w = do(t, r, http.MethodGet, "/deleted-reservations/export", nil, nil)
	wantStatus(t, w, http.StatusOK)
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "deleted_reservations_") || !strings.HasPrefix(cd, "attachment") {
		t.Fatalf("Content-Disposition=%q", cd)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("Content-Type=%q", ct)
	}
	if body := w.Body.String(); !strings.Contains(body, "Guest: Second") || !strings.Contains(body, "Notes: None") {
		t.Fatalf("export body=%q", body)
	}

	w = do(t, r, http.MethodDelete, "/deleted-reservations", nil, nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[ClearLogResponse](t, w); got.Cleared != 3 {
		t.Fatalf("cleared=%d want 3", got.Cleared)
	}
}
