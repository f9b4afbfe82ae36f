// Package models defines the records kept by the compliance register: the
// company profile, its directors and members, board/general meetings, and
// statutory filings, plus the CompanyState aggregate that owns them.
package models

import (
	"github.com/shopspring/decimal"
)

// CompanyProfile describes the registered company. At most one exists.
type CompanyProfile struct {
	// ID is assigned by the store on first submission and never changes.
	ID string `json:"id,omitempty"`
	// Name is the registered legal name.
	Name string `json:"name" validate:"required"`
	// CIN is the 21 character corporate identity number, e.g. U12345MH2020PTC123456.
	CIN string `json:"cin" validate:"required,cin"`
	// RegistrationDate is the incorporation date (YYYY-MM-DD).
	RegistrationDate string `json:"registrationDate" validate:"required,datetime=2006-01-02"`
	// RegisteredAddress is the registered office address.
	RegisteredAddress string `json:"registeredAddress" validate:"required"`
	// AuthorizedCapital is the authorized share capital in rupees.
	AuthorizedCapital decimal.Decimal `json:"authorizedCapital" validate:"gt=0"`
	// PaidUpCapital is the paid-up share capital in rupees.
	PaidUpCapital decimal.Decimal `json:"paidUpCapital" validate:"gt=0"`
	Email         string          `json:"email" validate:"required,email"`
	Phone         string          `json:"phone" validate:"required,phone"`
	// Website is optional; templates print N/A when it is empty.
	Website string `json:"website,omitempty" validate:"omitempty,url"`
	// FinancialYearEnd is the closing date of the financial year (YYYY-MM-DD).
	FinancialYearEnd string `json:"financialYearEnd" validate:"required,datetime=2006-01-02"`
}

// Clone returns a copy of the profile, or nil for a nil profile.
func (c *CompanyProfile) Clone() *CompanyProfile {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// FinancialYear returns the year component of FinancialYearEnd.
func (c *CompanyProfile) FinancialYear() string {
	if len(c.FinancialYearEnd) < 4 {
		return c.FinancialYearEnd
	}
	return c.FinancialYearEnd[:4]
}
