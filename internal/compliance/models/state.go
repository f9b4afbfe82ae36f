package models

// Record is implemented by the collection entries of CompanyState.
type Record[T any] interface {
	Identity() string
	WithIdentity(id string) T
}

// CompanyState is the aggregate persisted as a single snapshot.
type CompanyState struct {
	// CompanyDetails is nil until a profile has been set.
	CompanyDetails *CompanyProfile `json:"companyDetails"`
	Directors      []Director      `json:"directors"`
	Members        []Member        `json:"members"`
	Meetings       []Meeting       `json:"meetings"`
	Filings        []Filing        `json:"filings"`
}

// NewCompanyState returns the empty default state with non-nil collections.
func NewCompanyState() CompanyState {
	return CompanyState{
		Directors: []Director{},
		Members:   []Member{},
		Meetings:  []Meeting{},
		Filings:   []Filing{},
	}
}

// Clone deep copies the aggregate.
func (s CompanyState) Clone() CompanyState {
	out := CompanyState{
		CompanyDetails: s.CompanyDetails.Clone(),
		Directors:      append([]Director{}, s.Directors...),
		Members:        append([]Member{}, s.Members...),
		Meetings:       make([]Meeting, 0, len(s.Meetings)),
		Filings:        append([]Filing{}, s.Filings...),
	}
	for _, m := range s.Meetings {
		out.Meetings = append(out.Meetings, m.Clone())
	}
	return out
}

// Normalize replaces nil collections with empty ones so that a decoded
// snapshot and a fresh state compare equal.
func (s *CompanyState) Normalize() {
	if s.Directors == nil {
		s.Directors = []Director{}
	}
	if s.Members == nil {
		s.Members = []Member{}
	}
	if s.Meetings == nil {
		s.Meetings = []Meeting{}
	}
	if s.Filings == nil {
		s.Filings = []Filing{}
	}
}
