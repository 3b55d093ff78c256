package services

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/tbourn/table-reservations/internal/domain"
)

// PresetStore keeps the saved layout presets. Presets own deep copies of
// their tables; only their name can change after saving.
type PresetStore struct {
	items []domain.LayoutPreset

	Now   func() time.Time
	NewID func() string
}

// NewPresetStore returns a store seeded with copies of items.
func NewPresetStore(items []domain.LayoutPreset) *PresetStore {
	s := &PresetStore{Now: time.Now, NewID: uuid.NewString}
	for _, p := range items {
		s.items = append(s.items, p.Clone())
	}
	return s
}

// List returns copies of all presets in save order.
func (s *PresetStore) List() []domain.LayoutPreset {
	out := make([]domain.LayoutPreset, len(s.items))
	for i, p := range s.items {
		out[i] = p.Clone()
	}
	return out
}

// Get returns a copy of the preset with id.
func (s *PresetStore) Get(id string) (domain.LayoutPreset, error) {
	if i := s.index(id); i >= 0 {
		return s.items[i].Clone(), nil
	}
	return domain.LayoutPreset{}, ErrPresetNotFound
}

// Save stores a new preset holding a copy of tables.
func (s *PresetStore) Save(name string, tables []domain.Table) (domain.LayoutPreset, error) {
	name = normalizeText(name)
	if name == "" {
		return domain.LayoutPreset{}, ErrEmptyName
	}
	if err := validateLayout(tables); err != nil {
		return domain.LayoutPreset{}, err
	}
	p := domain.LayoutPreset{
		ID:        "preset_" + s.NewID(),
		Name:      name,
		Tables:    domain.CloneTables(tables),
		CreatedAt: s.Now().UTC(),
	}
	s.items = append(s.List(), p)
	return p.Clone(), nil
}

// Rename changes the name of the preset with id.
func (s *PresetStore) Rename(id, name string) (domain.LayoutPreset, error) {
	name = normalizeText(name)
	if name == "" {
		return domain.LayoutPreset{}, ErrEmptyName
	}
	i := s.index(id)
	if i < 0 {
		return domain.LayoutPreset{}, ErrPresetNotFound
	}
	next := s.List()
	next[i].Name = name
	s.items = next
	return next[i].Clone(), nil
}

// Delete removes the preset with id.
func (s *PresetStore) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return ErrPresetNotFound
	}
	s.items = slices.Delete(s.List(), i, i+1)
	return nil
}

func (s *PresetStore) index(id string) int {
	return slices.IndexFunc(s.items, func(p domain.LayoutPreset) bool { return p.ID == id })
}
