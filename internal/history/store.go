// Package history keeps the operator's local CRM list of fetched profiles.
package history

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"unicode"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/honei/prospect-cli/internal/model"
)

// SlotKey names the single persisted slot holding the serialized list.
const SlotKey = "hap_audit_history"

// MaxEntries caps the history; the oldest entries beyond it are evicted.
const MaxEntries = 20

// Persistence is the injected port for durable storage of the slot.
// Load returns (nil, nil) when the slot does not exist yet.
type Persistence interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	CRMStatus model.CRMStatus // exact match
	City      string          // case- and accent-insensitive substring
}

// Patch carries the operator-editable fields for Update. Nil means leave
// the field untouched.
type Patch struct {
	CRMStatus      *model.CRMStatus
	NextAction     *string
	Notes          *string
	OutreachStatus *string
}

// Store is the ordered, deduplicated, capped history of fetched profiles.
// Mutations write the full list back through the persistence port.
type Store struct {
	mu      sync.Mutex
	entries []model.BusinessProfile
	port    Persistence
}

// NewStore loads the persisted slot and returns the store. An unparsable
// slot is logged and treated as empty, never fatal.
func NewStore(ctx context.Context, port Persistence) (*Store, error) {
	s := &Store{port: port}

	data, err := port.Load(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "history: load slot")
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.entries); err != nil {
			zap.L().Warn("history: discarding unparsable slot", zap.Error(err))
			s.entries = nil
		}
	}
	for i := range s.entries {
		s.entries[i].Normalize()
	}
	return s, nil
}

// Upsert removes any entry with the same (businessName, city), prepends the
// profile, truncates to MaxEntries, and persists. Re-searching a known
// business refreshes it and moves it to the top.
func (s *Store) Upsert(ctx context.Context, profile model.BusinessProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile.Normalize()

	key := profile.Key()
	kept := make([]model.BusinessProfile, 0, len(s.entries)+1)
	kept = append(kept, profile)
	for _, e := range s.entries {
		if e.Key() == key {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) > MaxEntries {
		kept = kept[:MaxEntries]
	}
	s.entries = kept

	return s.persist(ctx)
}

// Update merges the patch into the entry at index.
func (s *Store) Update(ctx context.Context, index int, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return eris.Errorf("history: index %d out of range", index)
	}

	e := &s.entries[index]
	if patch.CRMStatus != nil {
		e.CRMStatus = *patch.CRMStatus
	}
	if patch.NextAction != nil {
		e.NextAction = *patch.NextAction
	}
	if patch.Notes != nil {
		e.Notes = *patch.Notes
	}
	if patch.OutreachStatus != nil {
		e.OutreachStatus = *patch.OutreachStatus
	}

	return s.persist(ctx)
}

// Delete removes the entry at index; later indices shift down.
func (s *Store) Delete(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return eris.Errorf("history: index %d out of range", index)
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)

	return s.persist(ctx)
}

// List returns entries matching the filter, newest first. A pure
// projection: stored order is never mutated.
func (s *Store) List(filter Filter) []model.BusinessProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	cityNeedle := foldCity(filter.City)

	out := make([]model.BusinessProfile, 0, len(s.entries))
	for _, e := range s.entries {
		if filter.CRMStatus != "" && e.CRMStatus != filter.CRMStatus {
			continue
		}
		if cityNeedle != "" && !strings.Contains(foldCity(e.City), cityNeedle) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Entries returns a copy of the full list, newest first.
func (s *Store) Entries() []model.BusinessProfile {
	return s.List(Filter{})
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// persist re-serializes the complete list and writes it back. Caller holds
// the lock.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return eris.Wrap(err, "history: marshal entries")
	}
	if err := s.port.Save(ctx, data); err != nil {
		return eris.Wrap(err, "history: save slot")
	}
	return nil
}

var cityFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldCity lowercases and strips diacritics so "Málaga" matches "malaga".
func foldCity(s string) string {
	folded, _, err := transform.String(cityFolder, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
