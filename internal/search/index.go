// Package search provides a small in-memory index for finding reservations by
// guest details. The index is immutable after construction and safe for
// concurrent use.
//
// Documents are tokenized with Unicode case folding, so "ZOË" matches "zoë".
// Scoring uses Jaccard similarity between the query token set and each
// document's token set: score = |Q ∩ D| / |Q ∪ D|. Digits in a query are also
// matched against the phone number, ignoring separators.
package search

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/table-reservations/internal/domain"
)

// DefaultLimit caps results when the caller asks for k <= 0.
const DefaultLimit = 10

// minPhoneDigits is the shortest digit run treated as a phone fragment.
const minPhoneDigits = 4

// Result is a matching reservation with its similarity score.
type Result struct {
	Reservation domain.Reservation `json:"reservation"`
	Score       float64            `json:"score"`
}

// Index is the minimal interface implemented by all search indices.
type Index interface {
	TopK(query string, k int) []Result
}

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	includeNotes bool
	maxDocs      int
}

func defaultConfig() config {
	return config{includeNotes: true}
}

// WithNotes controls whether reservation notes are indexed.
func WithNotes(on bool) Option {
	return func(c *config) { c.includeNotes = on }
}

func WithMaxDocs(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDocs = n
		}
	}
}

// ----------------------------------------------------------------------------
// Implementation

type doc struct {
	res    domain.Reservation
	tokens map[string]struct{}
	phone  string
}

type index struct {
	docs []doc
}

// NewGuestIndex builds an Index over rs. Walk-in reservations carry no guest
// details and are skipped.
func NewGuestIndex(rs []domain.Reservation, opts ...Option) Index {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	docs := make([]doc, 0, len(rs))
	for _, r := range rs {
		if r.IsWalkIn() {
			continue
		}
		text := r.GuestName
		if cfg.includeNotes {
			text += " " + r.Notes
		}
		toks := tokenize(text)
		phone := digits(r.GuestPhone)
		if len(toks) == 0 && phone == "" {
			continue
		}
		docs = append(docs, doc{res: r, tokens: toks, phone: phone})
		if cfg.maxDocs > 0 && len(docs) >= cfg.maxDocs {
			break
		}
	}
	return &index{docs: docs}
}

// TopK returns up to k best-matching reservations. Ties are broken by date,
// then time, then id so results are stable.
func (i *index) TopK(q string, k int) []Result {
	if len(i.docs) == 0 || strings.TrimSpace(q) == "" {
		return nil
	}
	if k <= 0 {
		k = DefaultLimit
	}
	qTokens := tokenize(q)
	qPhone := digits(q)
	if len(qPhone) < minPhoneDigits {
		qPhone = ""
	}
	if len(qTokens) == 0 && qPhone == "" {
		return nil
	}

	buf := make([]Result, 0, min(k*4, len(i.docs)))
	for _, d := range i.docs {
		score := 0.0
		if over := overlap(qTokens, d.tokens); over > 0 {
			score = float64(over) / float64(len(qTokens)+len(d.tokens)-over)
		}
		if qPhone != "" && d.phone != "" && strings.Contains(d.phone, qPhone) {
			score = max(score, 1)
		}
		if score <= 0 {
			continue
		}
		buf = append(buf, Result{Reservation: d.res, Score: score})
	}
	if len(buf) == 0 {
		return nil
	}

	sort.SliceStable(buf, func(a, b int) bool {
		ra, rb := buf[a].Reservation, buf[b].Reservation
		if buf[a].Score != buf[b].Score {
			return buf[a].Score > buf[b].Score
		}
		if ra.Date != rb.Date {
			return ra.Date < rb.Date
		}
		if ra.Time != rb.Time {
			return ra.Time < rb.Time
		}
		return ra.ID < rb.ID
	})
	if k > len(buf) {
		k = len(buf)
	}
	return buf[:k]
}

// ----------------------------------------------------------------------------
// Helpers

var (
	wordRE = regexp.MustCompile(`\p{L}[\p{L}\p{M}]*\p{N}*`)
	folder = cases.Fold()
)

func tokenize(s string) map[string]struct{} {
	s = folder.String(norm.NFC.String(s))
	words := wordRE.FindAllString(s, -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func overlap(a, b map[string]struct{}) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := 0
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
