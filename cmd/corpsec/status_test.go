package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/gartstein/corpsec/internal/compliance/models"
	"github.com/gartstein/corpsec/internal/compliance/reports"
	"github.com/gartstein/corpsec/internal/compliance/validation"
	"github.com/stretchr/testify/assert"
)

func TestPrintStatus(t *testing.T) {
	state := models.CompanyState{
		CompanyDetails: &models.CompanyProfile{Name: "Acme Private Limited", CIN: "U12345MH2020PTC123456"},
		Filings: []models.Filing{
			{ID: "f1", Name: "Annual Return", FormNumber: "MGT-7", DueDate: "2026-10-25", Status: models.FilingPending},
			{ID: "f2", Name: "Financial Statements", FormNumber: "AOC-4", DueDate: "2026-09-30", Status: models.FilingDelayed},
		},
	}
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	violations := []validation.Violation{{Rule: validation.RuleHoldingTotal, Message: "member holdings add up to 120%"}}

	var out bytes.Buffer
	printStatus(&out, state, reports.Build(state, now), violations)

	got := out.String()
	assert.Contains(t, got, "Acme Private Limited (U12345MH2020PTC123456)\n")
	assert.Contains(t, got, "Filings: 2  Compliance: 0%\n")
	assert.Contains(t, got, "  MGT-7  Annual Return  due 2026-10-25 (10 days)\n")
	assert.Contains(t, got, "Delayed filings:\n  AOC-4  Financial Statements  due 2026-09-30\n")
	assert.Contains(t, got, "WARNING: member holdings add up to 120%\n")
}

func TestPrintStatusWithoutProfile(t *testing.T) {
	var out bytes.Buffer
	printStatus(&out, models.CompanyState{}, reports.Build(models.CompanyState{}, time.Now()), nil)

	assert.Contains(t, out.String(), "No company profile set\n")
	assert.NotContains(t, out.String(), "Upcoming deadlines")
}
