package models

// Member is a shareholder recorded in the register of members.
type Member struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name" validate:"required,min=2"`
	FolioNumber string `json:"folioNumber" validate:"required"`
	PAN         string `json:"pan" validate:"required,len=10"`
	Address     string `json:"address" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,phone"`
	// NumberOfShares must be positive.
	NumberOfShares int64 `json:"numberOfShares" validate:"gt=0"`
	// PercentageHolding is between 0 and 100. The sum across members is
	// checked by the policy pass, not here.
	PercentageHolding float64 `json:"percentageHolding" validate:"gte=0,lte=100"`
}

// Identity implements Record.
func (m Member) Identity() string { return m.ID }

// WithIdentity implements Record.
func (m Member) WithIdentity(id string) Member {
	m.ID = id
	return m
}
