package store

import (
	"context"

	"github.com/gartstein/corpsec/internal/compliance/events"
	"github.com/gartstein/corpsec/internal/compliance/models"
)

// AddMeeting appends meeting under a fresh identity and stamps GeneratedOn
// with the current time, overwriting whatever the caller supplied.
func (s *Store) AddMeeting(ctx context.Context, meeting models.Meeting) (models.CompanyState, error) {
	if err := s.check(meeting); err != nil {
		return s.rejected(err)
	}
	meeting = meeting.Clone()
	return s.mutate(ctx, events.MeetingAdded, func(next *models.CompanyState) (string, any, error) {
		meeting.GeneratedOn = s.clock().UTC()
		var added models.Meeting
		next.Meetings, added = appendRecord(next.Meetings, meeting, s.newID)
		return added.ID, added.Clone(), nil
	})
}

// UpdateMeeting replaces the meeting with the given identity. Both the
// identity and the first GeneratedOn stamp are kept; editing a meeting
// does not refresh the stamp.
func (s *Store) UpdateMeeting(ctx context.Context, id string, data models.Meeting) (models.CompanyState, error) {
	if err := s.check(data); err != nil {
		return s.rejected(err)
	}
	data = data.Clone()
	return s.mutate(ctx, events.MeetingUpdated, func(next *models.CompanyState) (string, any, error) {
		if current, err := lookup(next.Meetings, id); err == nil {
			data.GeneratedOn = current.GeneratedOn
		}
		var (
			updated models.Meeting
			err     error
		)
		next.Meetings, updated, err = replaceRecord(next.Meetings, id, data)
		return id, updated.Clone(), err
	})
}

func (s *Store) RemoveMeeting(ctx context.Context, id string) (models.CompanyState, error) {
	return s.mutate(ctx, events.MeetingRemoved, func(next *models.CompanyState) (string, any, error) {
		var (
			removed models.Meeting
			err     error
		)
		next.Meetings, removed, err = deleteRecord(next.Meetings, id)
		return id, removed, err
	})
}

func (s *Store) Meetings() []models.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Meeting, 0, len(s.state.Meetings))
	for _, m := range s.state.Meetings {
		out = append(out, m.Clone())
	}
	return out
}

func (s *Store) Meeting(id string) (models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := lookup(s.state.Meetings, id)
	return m.Clone(), err
}
