package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAgenda(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "blank line and trailing newline", input: "Item1\n\nItem2\n", want: []string{"Item1", "Item2"}},
		{name: "whitespace only lines dropped", input: "  \nApprove accounts\n\t\n", want: []string{"Approve accounts"}},
		{name: "items kept verbatim", input: " Appoint auditor \nDeclare dividend", want: []string{" Appoint auditor ", "Declare dividend"}},
		{name: "windows line endings", input: "One\r\nTwo\r\n", want: []string{"One", "Two"}},
		{name: "empty", input: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAgenda(tt.input))
		})
	}
}

func TestMeetingSubTypeValidFor(t *testing.T) {
	assert.True(t, RegularMeeting.ValidFor(BoardMeeting))
	assert.True(t, CommitteeMeeting.ValidFor(BoardMeeting))
	assert.True(t, AnnualMeeting.ValidFor(GeneralMeeting))
	assert.True(t, ExtraMeeting.ValidFor(GeneralMeeting))
	assert.False(t, AnnualMeeting.ValidFor(BoardMeeting))
	assert.False(t, RegularMeeting.ValidFor(GeneralMeeting))
	assert.False(t, RegularMeeting.ValidFor(MeetingType("Annual")))
}

func TestCompanyStateClone(t *testing.T) {
	state := NewCompanyState()
	state.CompanyDetails = &CompanyProfile{ID: "p1", Name: "Acme Pvt Ltd"}
	state.Meetings = append(state.Meetings, Meeting{ID: "m1", Agenda: []string{"Item1"}})
	state.Directors = append(state.Directors, Director{ID: "d1", Name: "A"})

	clone := state.Clone()
	clone.CompanyDetails.Name = "Changed"
	clone.Meetings[0].Agenda[0] = "Changed"
	clone.Directors[0].Name = "Changed"

	assert.Equal(t, "Acme Pvt Ltd", state.CompanyDetails.Name)
	assert.Equal(t, "Item1", state.Meetings[0].Agenda[0])
	assert.Equal(t, "A", state.Directors[0].Name)
}

func TestCompanyStateNormalize(t *testing.T) {
	var state CompanyState
	state.Normalize()
	assert.Equal(t, NewCompanyState(), state)
}

func TestFinancialYear(t *testing.T) {
	assert.Equal(t, "2025", (&CompanyProfile{FinancialYearEnd: "2025-03-31"}).FinancialYear())
	assert.Equal(t, "", (&CompanyProfile{}).FinancialYear())
}
