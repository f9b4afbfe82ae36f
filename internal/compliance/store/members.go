package store

import (
	"context"

	"github.com/gartstein/corpsec/internal/compliance/events"
	"github.com/gartstein/corpsec/internal/compliance/models"
)

// AddMember appends a shareholder under a fresh identity.
func (s *Store) AddMember(ctx context.Context, member models.Member) (models.CompanyState, error) {
	if err := s.check(member); err != nil {
		return s.rejected(err)
	}
	return s.mutate(ctx, events.MemberAdded, func(next *models.CompanyState) (string, any, error) {
		var added models.Member
		next.Members, added = appendRecord(next.Members, member, s.newID)
		return added.ID, added, nil
	})
}

func (s *Store) UpdateMember(ctx context.Context, id string, data models.Member) (models.CompanyState, error) {
	if err := s.check(data); err != nil {
		return s.rejected(err)
	}
	return s.mutate(ctx, events.MemberUpdated, func(next *models.CompanyState) (string, any, error) {
		var (
			updated models.Member
			err     error
		)
		next.Members, updated, err = replaceRecord(next.Members, id, data)
		return id, updated, err
	})
}

func (s *Store) RemoveMember(ctx context.Context, id string) (models.CompanyState, error) {
	return s.mutate(ctx, events.MemberRemoved, func(next *models.CompanyState) (string, any, error) {
		var (
			removed models.Member
			err     error
		)
		next.Members, removed, err = deleteRecord(next.Members, id)
		return id, removed, err
	})
}

func (s *Store) Members() []models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Member{}, s.state.Members...)
}

func (s *Store) Member(id string) (models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lookup(s.state.Members, id)
}
