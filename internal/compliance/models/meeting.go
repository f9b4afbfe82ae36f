package models

import (
	"strings"
	"time"
)

// MeetingType is the class of a meeting.
type MeetingType string

const (
	BoardMeeting   MeetingType = "Board"
	GeneralMeeting MeetingType = "General"
)

// MeetingSubType narrows a MeetingType.
type MeetingSubType string

const (
	RegularMeeting   MeetingSubType = "Regular"
	CommitteeMeeting MeetingSubType = "Committee"
	AnnualMeeting    MeetingSubType = "AGM"
	ExtraMeeting     MeetingSubType = "EGM"
)

// ValidFor reports whether s may be used with the given meeting type:
// Regular and Committee belong to Board, AGM and EGM to General.
func (s MeetingSubType) ValidFor(t MeetingType) bool {
	switch t {
	case BoardMeeting:
		return s == RegularMeeting || s == CommitteeMeeting
	case GeneralMeeting:
		return s == AnnualMeeting || s == ExtraMeeting
	default:
		return false
	}
}

// Meeting is a board or general meeting together with its agenda.
type Meeting struct {
	ID      string         `json:"id,omitempty"`
	Type    MeetingType    `json:"type" validate:"required,oneof=Board General"`
	SubType MeetingSubType `json:"subType" validate:"required,oneof=Regular Committee AGM EGM"`
	Title   string         `json:"title" validate:"required,min=2"`
	Date    string         `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string         `json:"time" validate:"required"`
	Venue   string         `json:"venue" validate:"required,min=5"`
	// Agenda items in the order they were entered.
	Agenda []string `json:"agenda" validate:"required,min=1,dive,required"`
	// GeneratedOn is stamped by the store when the meeting is added and is
	// not refreshed by later updates.
	GeneratedOn  time.Time `json:"generatedOn"`
	DocumentPath string    `json:"documentPath,omitempty"`
}

// Identity implements Record.
func (m Meeting) Identity() string { return m.ID }

// WithIdentity implements Record.
func (m Meeting) WithIdentity(id string) Meeting {
	m.ID = id
	return m
}

// Clone returns a copy that does not share the agenda slice.
func (m Meeting) Clone() Meeting {
	if m.Agenda != nil {
		m.Agenda = append([]string(nil), m.Agenda...)
	}
	return m
}

// ParseAgenda splits user-entered agenda text into items, one per line.
// Blank lines are dropped; the remaining lines are kept as typed.
func ParseAgenda(text string) []string {
	items := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}
