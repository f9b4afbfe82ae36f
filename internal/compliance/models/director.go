package models

// Director is a member of the board.
type Director struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name" validate:"required,min=2"`
	// DIN is the 8 character director identification number.
	DIN string `json:"din" validate:"required,len=8"`
	// PAN is the 10 character tax identifier.
	PAN                string `json:"pan" validate:"required,len=10"`
	DateOfBirth        string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	DateOfAppointment  string `json:"dateOfAppointment" validate:"required,datetime=2006-01-02"`
	ResidentialAddress string `json:"residentialAddress" validate:"required,min=5"`
	Email              string `json:"email" validate:"required,email"`
	Phone              string `json:"phone" validate:"required,phone"`
	// Designation is free text such as "Managing Director".
	Designation string `json:"designation" validate:"required,min=2"`
}

// Identity implements Record.
func (d Director) Identity() string { return d.ID }

// WithIdentity implements Record.
func (d Director) WithIdentity(id string) Director {
	d.ID = id
	return d
}
