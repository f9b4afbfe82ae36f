// Package reports computes the compliance dashboard figures over a
// CompanyState: filing status, upcoming deadlines, meeting distribution and
// shareholding.
package reports

import (
	"math"
	"sort"
	"time"

	"github.com/gartstein/corpsec/internal/compliance/models"
)

// UpcomingWindow is how far ahead a pending filing counts as upcoming.
const UpcomingWindow = 30 * 24 * time.Hour

const day = 24 * time.Hour

// Upcoming is a pending filing due inside the upcoming window.
type Upcoming struct {
	Filing   models.Filing `json:"filing"`
	DaysLeft int           `json:"daysLeft"`
}

// Holding is one member's slice of the share register.
type Holding struct {
	Name       string  `json:"name"`
	Shares     int64   `json:"shares"`
	Percentage float64 `json:"percentage"`
}

// Summary bundles every dashboard figure for one instant.
type Summary struct {
	GeneratedAt          time.Time                   `json:"generatedAt"`
	HasProfile           bool                        `json:"hasProfile"`
	TotalFilings         int                         `json:"totalFilings"`
	FilingStatus         map[models.FilingStatus]int `json:"filingStatus"`
	CompliancePercentage int                         `json:"compliancePercentage"`
	Upcoming             []Upcoming                  `json:"upcoming"`
	Delayed              []models.Filing             `json:"delayed"`
	Meetings             map[models.MeetingType]int  `json:"meetings"`
	RecentMeetings       []models.Meeting            `json:"recentMeetings"`
	Directors            int                         `json:"directors"`
	Members              int                         `json:"members"`
	TotalShares          int64                       `json:"totalShares"`
	Shareholding         []Holding                   `json:"shareholding"`
}

// RecentMeetingCount is the number of meetings Build puts in RecentMeetings.
const RecentMeetingCount = 3

// Build computes the Summary of state as seen at now.
func Build(state models.CompanyState, now time.Time) Summary {
	return Summary{
		GeneratedAt:          now.UTC(),
		HasProfile:           state.CompanyDetails != nil,
		TotalFilings:         len(state.Filings),
		FilingStatus:         StatusCounts(state.Filings),
		CompliancePercentage: CompliancePercentage(state.Filings),
		Upcoming:             UpcomingFilings(state.Filings, now),
		Delayed:              DelayedFilings(state.Filings),
		Meetings:             MeetingCounts(state.Meetings),
		RecentMeetings:       RecentMeetings(state.Meetings, RecentMeetingCount),
		Directors:            len(state.Directors),
		Members:              len(state.Members),
		TotalShares:          TotalShares(state.Members),
		Shareholding:         Shareholding(state.Members),
	}
}

// CompliancePercentage is the share of filings marked Filed, rounded to the
// nearest whole percent. No filings means 0.
func CompliancePercentage(filings []models.Filing) int {
	if len(filings) == 0 {
		return 0
	}
	filed := StatusCounts(filings)[models.FilingFiled]
	return int(math.Round(float64(filed) / float64(len(filings)) * 100))
}

// StatusCounts counts filings per status. All three statuses are present in
// the result even when zero.
func StatusCounts(filings []models.Filing) map[models.FilingStatus]int {
	counts := map[models.FilingStatus]int{
		models.FilingFiled:   0,
		models.FilingPending: 0,
		models.FilingDelayed: 0,
	}
	for _, f := range filings {
		counts[f.Status]++
	}
	return counts
}

// UpcomingFilings returns the Pending filings with now < due <= now+30 days,
// earliest due date first. Filings with an unparseable due date are skipped.
func UpcomingFilings(filings []models.Filing, now time.Time) []Upcoming {
	limit := now.Add(UpcomingWindow)
	out := []Upcoming{}
	for _, f := range filings {
		if f.Status != models.FilingPending {
			continue
		}
		due, err := dueDate(f)
		if err != nil {
			continue
		}
		if due.After(now) && !due.After(limit) {
			out = append(out, Upcoming{Filing: f, DaysLeft: daysBetween(now, due)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Filing.DueDate < out[j].Filing.DueDate
	})
	return out
}

// DaysUntilDue is the number of days from now to the filing's due date,
// rounded up. It is negative once the date has passed.
func DaysUntilDue(f models.Filing, now time.Time) (int, error) {
	due, err := dueDate(f)
	if err != nil {
		return 0, err
	}
	return daysBetween(now, due), nil
}

// DelayedFilings returns the filings whose status is Delayed, in collection
// order.
func DelayedFilings(filings []models.Filing) []models.Filing {
	out := []models.Filing{}
	for _, f := range filings {
		if f.Status == models.FilingDelayed {
			out = append(out, f)
		}
	}
	return out
}

// MeetingCounts counts meetings per type.
func MeetingCounts(meetings []models.Meeting) map[models.MeetingType]int {
	counts := map[models.MeetingType]int{
		models.BoardMeeting:   0,
		models.GeneralMeeting: 0,
	}
	for _, m := range meetings {
		counts[m.Type]++
	}
	return counts
}

// RecentMeetings returns up to n meetings, latest meeting date first.
// Meetings on the same date keep their collection order.
func RecentMeetings(meetings []models.Meeting, n int) []models.Meeting {
	sorted := make([]models.Meeting, 0, len(meetings))
	for _, m := range meetings {
		sorted = append(sorted, m.Clone())
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TotalShares sums the share counts of all members.
func TotalShares(members []models.Member) int64 {
	var total int64
	for _, m := range members {
		total += m.NumberOfShares
	}
	return total
}

// Shareholding lists each member's holding in register order.
func Shareholding(members []models.Member) []Holding {
	out := make([]Holding, 0, len(members))
	for _, m := range members {
		out = append(out, Holding{Name: m.Name, Shares: m.NumberOfShares, Percentage: m.PercentageHolding})
	}
	return out
}

// dueDate reads the due date as midnight UTC.
func dueDate(f models.Filing) (time.Time, error) {
	return time.Parse(time.DateOnly, f.DueDate)
}

func daysBetween(from, to time.Time) int {
	return int(math.Ceil(float64(to.Sub(from)) / float64(day)))
}
