package models

// FilingStatus tracks where a statutory filing stands.
type FilingStatus string

const (
	FilingPending FilingStatus = "Pending"
	FilingFiled   FilingStatus = "Filed"
	FilingDelayed FilingStatus = "Delayed"
)

// Filing is a regulatory (ROC) submission with a due date.
type Filing struct {
	ID string `json:"id,omitempty"`
	// Name is the display name, e.g. "Annual Return".
	Name string `json:"name" validate:"required"`
	// FormNumber is the statutory form, e.g. "MGT-7".
	FormNumber string `json:"formNumber" validate:"required"`
	DueDate    string `json:"dueDate" validate:"required,datetime=2006-01-02"`
	// FilingDate is only set once Status is Filed.
	FilingDate   string       `json:"filingDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status       FilingStatus `json:"status" validate:"required,oneof=Pending Filed Delayed"`
	DocumentPath string       `json:"documentPath,omitempty"`
}

// Identity implements Record.
func (f Filing) Identity() string { return f.ID }

// WithIdentity implements Record.
func (f Filing) WithIdentity(id string) Filing {
	f.ID = id
	return f
}
