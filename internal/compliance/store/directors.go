package store

import (
	"context"

	"github.com/gartstein/corpsec/internal/compliance/events"
	"github.com/gartstein/corpsec/internal/compliance/models"
)

// AddDirector appends director under a freshly generated identity. Any
// identity on the input is ignored.
func (s *Store) AddDirector(ctx context.Context, director models.Director) (models.CompanyState, error) {
	if err := s.check(director); err != nil {
		return s.rejected(err)
	}
	return s.mutate(ctx, events.DirectorAdded, func(next *models.CompanyState) (string, any, error) {
		var added models.Director
		next.Directors, added = appendRecord(next.Directors, director, s.newID)
		return added.ID, added, nil
	})
}

// UpdateDirector replaces the director with the given identity. The
// identity is kept regardless of data.ID. Unknown identities leave the
// collection untouched and return ErrNotFound.
func (s *Store) UpdateDirector(ctx context.Context, id string, data models.Director) (models.CompanyState, error) {
	if err := s.check(data); err != nil {
		return s.rejected(err)
	}
	return s.mutate(ctx, events.DirectorUpdated, func(next *models.CompanyState) (string, any, error) {
		var (
			updated models.Director
			err     error
		)
		next.Directors, updated, err = replaceRecord(next.Directors, id, data)
		return id, updated, err
	})
}

// RemoveDirector deletes the director with the given identity.
func (s *Store) RemoveDirector(ctx context.Context, id string) (models.CompanyState, error) {
	return s.mutate(ctx, events.DirectorRemoved, func(next *models.CompanyState) (string, any, error) {
		var (
			removed models.Director
			err     error
		)
		next.Directors, removed, err = deleteRecord(next.Directors, id)
		return id, removed, err
	})
}

// Directors returns the directors in insertion order.
func (s *Store) Directors() []models.Director {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Director{}, s.state.Directors...)
}

func (s *Store) Director(id string) (models.Director, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lookup(s.state.Directors, id)
}
