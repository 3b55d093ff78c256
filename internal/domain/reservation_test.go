package domain

import "testing"

func TestReservationInput_Normalize(t *testing.T) {
	in := ReservationInput{
		TableID: " t1\t", GuestName: "  Ann Lee ", GuestPhone: " 555-0100 ",
		PartySize: 2, Date: "2024-06-01 ", Time: " 19:00", Notes: " window seat ",
	}
	got := in.Normalize()
	want := ReservationInput{
		TableID: "t1", GuestName: "Ann Lee", GuestPhone: "555-0100",
		PartySize: 2, Date: "2024-06-01", Time: "19:00", Notes: "window seat",
	}
	if got != want {
		t.Fatalf("Normalize() = %+v; want %+v", got, want)
	}
}

func TestReservationPatch_Normalize(t *testing.T) {
	date, clock := " 2024-06-02", "20:00 "
	p := ReservationPatch{Date: &date, Time: &clock}

	n := p.Normalize()
	if *n.Date != "2024-06-02" || *n.Time != "20:00" {
		t.Fatalf("normalized date/time = %q/%q", *n.Date, *n.Time)
	}
	if n.TableID != nil || n.GuestName != nil || n.PartySize != nil {
		t.Fatalf("nil fields must stay nil: %+v", n)
	}
	if date != " 2024-06-02" || clock != "20:00 " {
		t.Fatalf("caller values were modified: %q/%q", date, clock)
	}
	if !n.MovesWindow() {
		t.Fatalf("date/time patch should move the window")
	}
}
