package services

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/table-reservations/internal/domain"
	"github.com/tbourn/table-reservations/internal/timewindow"
)

// ReservationStore holds the live reservations.
//
// The store validates field formats but knows nothing about tables: table
// existence and double-booking are checked by the Engine, which sees both the
// registry and the store. Like the registry, every write replaces the backing
// slice as one unit.
type ReservationStore struct {
	items []domain.Reservation

	// Now stamps CreatedAt. Defaults to time.Now.
	Now func() time.Time
	// NewID assigns reservation ids. Defaults to uuid.NewString.
	NewID func() string
}

// NewReservationStore returns a store seeded with a copy of items.
func NewReservationStore(items []domain.Reservation) *ReservationStore {
	return &ReservationStore{
		items: slices.Clone(items),
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// All returns every reservation in creation order.
func (s *ReservationStore) All() []domain.Reservation {
	return slices.Clone(s.items)
}

// Get returns the reservation with the given id.
func (s *ReservationStore) Get(id string) (domain.Reservation, error) {
	if i := s.index(id); i >= 0 {
		return s.items[i], nil
	}
	return domain.Reservation{}, ErrReservationNotFound
}

// ForDate returns the reservations whose date matches exactly.
func (s *ReservationStore) ForDate(date string) []domain.Reservation {
	out := make([]domain.Reservation, 0)
	for _, r := range s.items {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// ForWindow returns the reservation on tableID and date whose window overlaps
// the one starting at clock.
func (s *ReservationStore) ForWindow(tableID, date, clock string) (*domain.Reservation, error) {
	w, err := timewindow.For(clock)
	if err != nil {
		return nil, err
	}
	return s.overlapping([]string{tableID}, date, w, ""), nil
}

// overlapping finds the first reservation on any of tableIDs that overlaps w
// on date, skipping excludeID. Stored reservations with an unparsable time
// never match.
func (s *ReservationStore) overlapping(tableIDs []string, date string, w timewindow.Window, excludeID string) *domain.Reservation {
	for _, r := range s.items {
		if r.ID == excludeID || r.Date != date || !slices.Contains(tableIDs, r.TableID) {
			continue
		}
		rw, err := timewindow.For(r.Time)
		if err != nil {
			continue
		}
		if w.Overlaps(rw) {
			found := r
			return &found
		}
	}
	return nil
}

// Create validates in, assigns an id and creation time, and appends the
// reservation.
func (s *ReservationStore) Create(in domain.ReservationInput) (domain.Reservation, error) {
	name := in.GuestName
	if in.WalkIn {
		name = domain.WalkInGuestName
	}
	r := domain.Reservation{
		ID:         s.NewID(),
		TableID:    strings.TrimSpace(in.TableID),
		GuestName:  normalizeText(name),
		GuestPhone: strings.TrimSpace(in.GuestPhone),
		PartySize:  in.PartySize,
		Date:       strings.TrimSpace(in.Date),
		Time:       strings.TrimSpace(in.Time),
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  s.Now().UTC(),
	}
	if err := validateReservation(r); err != nil {
		return domain.Reservation{}, err
	}
	s.items = append(slices.Clone(s.items), r)
	return r, nil
}

// Update merges the non-nil fields of p into the reservation with id.
func (s *ReservationStore) Update(id string, p domain.ReservationPatch) (domain.Reservation, error) {
	i := s.index(id)
	if i < 0 {
		return domain.Reservation{}, ErrReservationNotFound
	}
	r := p.Apply(s.items[i])
	r.TableID = strings.TrimSpace(r.TableID)
	r.GuestName = normalizeText(r.GuestName)
	r.GuestPhone = strings.TrimSpace(r.GuestPhone)
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	r.Notes = strings.TrimSpace(r.Notes)
	if err := validateReservation(r); err != nil {
		return domain.Reservation{}, err
	}
	next := slices.Clone(s.items)
	next[i] = r
	s.items = next
	return r, nil
}

// Cancel removes the reservation with id and returns it.
func (s *ReservationStore) Cancel(id string) (domain.Reservation, error) {
	i := s.index(id)
	if i < 0 {
		return domain.Reservation{}, ErrReservationNotFound
	}
	removed := s.items[i]
	s.items = slices.Delete(slices.Clone(s.items), i, i+1)
	return removed, nil
}

// DeleteAll empties the store and returns what it held.
func (s *ReservationStore) DeleteAll() []domain.Reservation {
	removed := s.items
	s.items = nil
	return removed
}

// DeriveStatus attaches the overlapping reservation, if any, to every visible
// table for the window starting at clock on date. A group primary is occupied
// when any member of the group holds an overlapping reservation.
func (s *ReservationStore) DeriveStatus(tables []domain.Table, date, clock string) ([]domain.TableWithStatus, error) {
	if _, err := timewindow.ParseDate(date); err != nil {
		return nil, err
	}
	w, err := timewindow.For(clock)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TableWithStatus, 0, len(tables))
	for _, t := range tables {
		if !t.Visible() {
			continue
		}
		r := s.overlapping(occupancyIDs(t), date, w, "")
		out = append(out, domain.TableWithStatus{
			Table:              t.Clone(),
			IsReserved:         r != nil,
			CurrentReservation: r,
		})
	}
	return out, nil
}

func (s *ReservationStore) index(id string) int {
	return slices.IndexFunc(s.items, func(r domain.Reservation) bool { return r.ID == id })
}

// occupancyIDs lists the table ids whose reservations occupy t.
func occupancyIDs(t domain.Table) []string {
	if t.Combination.Role == domain.CombinedPrimary {
		return append([]string{t.ID}, t.Combination.Members...)
	}
	return []string{t.ID}
}

func validateReservation(r domain.Reservation) error {
	if r.TableID == "" {
		return ErrTableNotFound
	}
	if r.GuestName == "" {
		return ErrMissingGuestName
	}
	if r.PartySize < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPartySize, r.PartySize)
	}
	if _, err := timewindow.ParseDate(r.Date); err != nil {
		return err
	}
	if _, err := timewindow.ToMinutes(r.Time); err != nil {
		return err
	}
	return nil
}

var spaceRE = regexp.MustCompile(`\s+`)

// normalizeText trims, collapses inner whitespace and applies Unicode NFC so
// names typed on different keyboards compare equal.
func normalizeText(s string) string {
	return norm.NFC.String(spaceRE.ReplaceAllString(strings.TrimSpace(s), " "))
}
