package store

import (
	"context"

	"github.com/gartstein/corpsec/internal/compliance/events"
	"github.com/gartstein/corpsec/internal/compliance/models"
)

// AddFiling appends a filing under a fresh identity.
func (s *Store) AddFiling(ctx context.Context, filing models.Filing) (models.CompanyState, error) {
	if err := s.check(filing); err != nil {
		return s.rejected(err)
	}
	return s.mutate(ctx, events.FilingAdded, func(next *models.CompanyState) (string, any, error) {
		var added models.Filing
		next.Filings, added = appendRecord(next.Filings, filing, s.newID)
		return added.ID, added, nil
	})
}

func (s *Store) UpdateFiling(ctx context.Context, id string, data models.Filing) (models.CompanyState, error) {
	if err := s.check(data); err != nil {
		return s.rejected(err)
	}
	return s.mutate(ctx, events.FilingUpdated, func(next *models.CompanyState) (string, any, error) {
		var (
			updated models.Filing
			err     error
		)
		next.Filings, updated, err = replaceRecord(next.Filings, id, data)
		return id, updated, err
	})
}

func (s *Store) RemoveFiling(ctx context.Context, id string) (models.CompanyState, error) {
	return s.mutate(ctx, events.FilingRemoved, func(next *models.CompanyState) (string, any, error) {
		var (
			removed models.Filing
			err     error
		)
		next.Filings, removed, err = deleteRecord(next.Filings, id)
		return id, removed, err
	})
}

func (s *Store) Filings() []models.Filing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Filing{}, s.state.Filings...)
}

func (s *Store) Filing(id string) (models.Filing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lookup(s.state.Filings, id)
}
