package services

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tbourn/table-reservations/internal/domain"
)

const (
	// exportTimeLayout renders timestamps as ISO-8601 UTC with milliseconds.
	exportTimeLayout = "2006-01-02T15:04:05.000Z07:00"
	exportSeparator  = "----------------------------------------"
	exportEmpty      = "No deleted reservations"
)

// AuditLog is the append-only record of cancelled and deleted reservations.
// Entries are only ever removed all at once by Clear.
type AuditLog struct {
	entries []domain.DeletedReservation

	// Now stamps DeletedAt. Defaults to time.Now.
	Now func() time.Time
}

// NewAuditLog returns a log seeded with a copy of entries.
func NewAuditLog(entries []domain.DeletedReservation) *AuditLog {
	return &AuditLog{entries: slices.Clone(entries), Now: time.Now}
}

// Append records a copy of r stamped with the current time.
func (l *AuditLog) Append(r domain.Reservation) domain.DeletedReservation {
	e := domain.DeletedReservation{Reservation: r, DeletedAt: l.Now().UTC()}
	l.entries = append(slices.Clone(l.entries), e)
	return e
}

// AppendMany records copies of rs, all stamped with the same time.
func (l *AuditLog) AppendMany(rs []domain.Reservation) []domain.DeletedReservation {
	if len(rs) == 0 {
		return nil
	}
	at := l.Now().UTC()
	added := make([]domain.DeletedReservation, len(rs))
	for i, r := range rs {
		added[i] = domain.DeletedReservation{Reservation: r, DeletedAt: at}
	}
	l.entries = append(slices.Clone(l.entries), added...)
	return added
}

// List returns the entries in append order.
func (l *AuditLog) List() []domain.DeletedReservation {
	return slices.Clone(l.entries)
}

// Len returns the number of entries.
func (l *AuditLog) Len() int { return len(l.entries) }

// Clear empties the log and returns how many entries were dropped.
func (l *AuditLog) Clear() int {
	n := len(l.entries)
	l.entries = nil
	return n
}

// ExportText renders the log as plain text, one block per entry in append
// order, blocks separated by a blank line.
func (l *AuditLog) ExportText() string {
	if len(l.entries) == 0 {
		return exportEmpty
	}
	blocks := make([]string, len(l.entries))
	for i, e := range l.entries {
		notes := e.Notes
		if notes == "" {
			notes = "None"
		}
		blocks[i] = fmt.Sprintf(
			"[%s] Reservation ID: %s\n"+
				"  Guest: %s\n"+
				"  Phone: %s\n"+
				"  Date: %s\n"+
				"  Time: %s\n"+
				"  Party Size: %d\n"+
				"  Table ID: %s\n"+
				"  Notes: %s\n"+
				"  Created At: %s\n"+
				"%s",
			isoMillis(e.DeletedAt), e.ID,
			e.GuestName, e.GuestPhone, e.Date, e.Time, e.PartySize,
			e.TableID, notes, isoMillis(e.CreatedAt), exportSeparator,
		)
	}
	return strings.Join(blocks, "\n\n")
}

// ExportFilename is the download name for an export made at now.
func ExportFilename(now time.Time) string {
	return "deleted_reservations_" + now.UTC().Format("2006-01-02") + ".txt"
}

func isoMillis(t time.Time) string {
	return t.UTC().Format(exportTimeLayout)
}
