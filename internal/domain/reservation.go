package domain

import (
	"strings"
	"time"
)

// WalkInGuestName is stored as the guest name of drop-in reservations.
const WalkInGuestName = "Drop-in"

// Reservation books one table for one date and a fixed-length window that
// starts at Time.
type Reservation struct {
	ID         string    `json:"id"`
	TableID    string    `json:"tableId"`
	GuestName  string    `json:"guestName"`
	GuestPhone string    `json:"guestPhone"`
	PartySize  int       `json:"partySize"`
	Date       string    `json:"date"` // YYYY-MM-DD
	Time       string    `json:"time"` // HH:MM
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// IsWalkIn reports whether the reservation was recorded for a drop-in guest.
func (r Reservation) IsWalkIn() bool { return r.GuestName == WalkInGuestName }

// ReservationInput carries the caller-supplied fields of a new reservation.
// ID and CreatedAt are always assigned by the store.
type ReservationInput struct {
	TableID    string `json:"tableId"`
	GuestName  string `json:"guestName"`
	GuestPhone string `json:"guestPhone"`
	PartySize  int    `json:"partySize"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Notes      string `json:"notes,omitempty"`
	// WalkIn replaces GuestName with WalkInGuestName.
	WalkIn bool `json:"walkIn,omitempty"`
}

// Normalize returns in with surrounding whitespace removed from every text
// field. Conflict checks and storage must see the same values.
func (in ReservationInput) Normalize() ReservationInput {
	in.TableID = strings.TrimSpace(in.TableID)
	in.GuestName = strings.TrimSpace(in.GuestName)
	in.GuestPhone = strings.TrimSpace(in.GuestPhone)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}

// ReservationPatch is a partial update; nil fields are left untouched.
type ReservationPatch struct {
	TableID    *string `json:"tableId,omitempty"`
	GuestName  *string `json:"guestName,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`
	PartySize  *int    `json:"partySize,omitempty"`
	Date       *string `json:"date,omitempty"`
	Time       *string `json:"time,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// Normalize returns a copy of p whose non-nil text fields are trimmed. The
// caller's pointers are never written through.
func (p ReservationPatch) Normalize() ReservationPatch {
	p.TableID = trimPtr(p.TableID)
	p.GuestName = trimPtr(p.GuestName)
	p.GuestPhone = trimPtr(p.GuestPhone)
	p.Date = trimPtr(p.Date)
	p.Time = trimPtr(p.Time)
	p.Notes = trimPtr(p.Notes)
	return p
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// MovesWindow reports whether applying p may change which table/window the
// reservation occupies.
func (p ReservationPatch) MovesWindow() bool {
	return p.TableID != nil || p.Date != nil || p.Time != nil
}

// Apply returns r with the non-nil fields of p merged in. Identity fields
// (ID, CreatedAt) are never touched.
func (p ReservationPatch) Apply(r Reservation) Reservation {
	if p.TableID != nil {
		r.TableID = *p.TableID
	}
	if p.GuestName != nil {
		r.GuestName = *p.GuestName
	}
	if p.GuestPhone != nil {
		r.GuestPhone = *p.GuestPhone
	}
	if p.PartySize != nil {
		r.PartySize = *p.PartySize
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Time != nil {
		r.Time = *p.Time
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	return r
}

// DeletedReservation is an audit copy of a cancelled or deleted reservation.
type DeletedReservation struct {
	Reservation
	DeletedAt time.Time `json:"deletedAt"`
}
