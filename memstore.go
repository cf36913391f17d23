package indexa

import (
	"slices"
	"sync"
)

// MemoryStore is an in-memory implementation of all four persistence
// collaborators. It backs the unit tests and the CLI's zero-setup mode.
type MemoryStore struct {
	mu          sync.RWMutex
	quotes      map[string]*History[Quote]
	cpi         []CPIRecord
	entries     []DatedAmount
	obligations []Obligation
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{quotes: make(map[string]*History[Quote])}
}

var _ QuoteSource = (*MemoryStore)(nil)
var _ CPISource = (*MemoryStore)(nil)
var _ AmountSource = (*MemoryStore)(nil)
var _ ObligationSource = (*MemoryStore)(nil)

func (s *MemoryStore) QuoteAsOf(on Date, currency string) (Quote, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.quotes[currency]
	if !ok {
		return Quote{}, false, nil
	}
	_, q, ok := h.EntryAsOf(on)
	return q, ok, nil
}

func (s *MemoryStore) Latest(currency string) (Quote, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.quotes[currency]
	if !ok || h.Len() == 0 {
		return Quote{}, false, nil
	}
	_, q := h.Latest()
	return q, true, nil
}

func (s *MemoryStore) Upsert(q Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.quotes[q.Currency]
	if !ok {
		h = &History[Quote]{}
		s.quotes[q.Currency] = h
	}
	h.Append(q.Date, q)
	return nil
}

func (s *MemoryStore) Records() ([]CPIRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cpi), nil
}

func (s *MemoryStore) Append(rec CPIRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.Period = rec.Period.MonthStart()
	for _, r := range s.cpi {
		if r.Period == rec.Period {
			return ErrDuplicateRecord
		}
	}
	s.cpi = append(s.cpi, rec)
	slices.SortFunc(s.cpi, func(a, b CPIRecord) int {
		if a.Period.Before(b.Period) {
			return -1
		}
		if a.Period.After(b.Period) {
			return 1
		}
		return 0
	})
	return nil
}

func (s *MemoryStore) Amounts(r Range) ([]DatedAmount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DatedAmount, 0, len(s.entries))
	for _, e := range s.entries {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// AddAmount records one expense point.
func (s *MemoryStore) AddAmount(on Date, amount Money) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, DatedAmount{Date: on, Amount: amount})
}

func (s *MemoryStore) Snapshots() ([]Obligation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.obligations), nil
}

// AddObligation registers an active obligation snapshot.
func (s *MemoryStore) AddObligation(ob Obligation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obligations = append(s.obligations, ob)
}
