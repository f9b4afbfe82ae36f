// Package documents renders the statutory texts produced from the register:
// board meeting notices and minutes, AGM notices and the MGT-7 annual return.
//
// Rendering is pure. The only input besides the records is the Renderer's
// clock, used for the "Date:" line of notices, so a fixed clock gives
// byte-identical output.
package documents

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"time"
	"unicode"

	"github.com/gartstein/corpsec/internal/compliance/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	longDate  = "2 January 2006"
	shortDate = "02/01/2006"
)

// ChairpersonPlaceholder names the chair in minutes when there are no directors.
const ChairpersonPlaceholder = "The Director"

// PresentLimit is how many directors the minutes list as present.
const PresentLimit = 3

// Renderer renders documents. It is safe for concurrent use.
type Renderer struct {
	clock    func() time.Time
	printer  *message.Printer
	grouping grouping

	boardNotice  *template.Template
	minutes      *template.Template
	agmNotice    *template.Template
	annualReturn *template.Template
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	clock func() time.Time
	lang  language.Tag
}

// WithClock sets the source of the "today" date printed on notices.
func WithClock(clock func() time.Time) RendererOption {
	return func(c *rendererConfig) { c.clock = clock }
}

// WithLanguage selects the locale used for digit grouping.
func WithLanguage(tag language.Tag) RendererOption {
	return func(c *rendererConfig) { c.lang = tag }
}

// NewRenderer builds a Renderer. Defaults: time.Now and English grouping.
func NewRenderer(opts ...RendererOption) *Renderer {
	cfg := rendererConfig{clock: time.Now, lang: language.English}
	for _, opt := range opts {
		opt(&cfg)
	}

	printer := message.NewPrinter(cfg.lang)
	r := &Renderer{
		clock:    cfg.clock,
		printer:  printer,
		grouping: learnGrouping(printer),
	}
	funcs := template.FuncMap{
		"inc":     func(i int) int { return i + 1 },
		"upper":   strings.ToUpper,
		"amount":  r.amount,
		"count":   r.count,
		"percent": percent,
	}
	parse := func(name, text string) *template.Template {
		return template.Must(template.New(name).Funcs(funcs).Option("missingkey=error").Parse(text))
	}
	r.boardNotice = parse("board_notice", boardNoticeText)
	r.minutes = parse("board_minutes", minutesText)
	r.agmNotice = parse("agm_notice", agmNoticeText)
	r.annualReturn = parse("annual_return", annualReturnText)
	return r
}

type meetingView struct {
	Company     *models.CompanyProfile
	Meeting     models.Meeting
	MeetingDate string
	Today       string
	Place       string
	Present     []models.Director
	Chairperson string
}

type returnView struct {
	Company     *models.CompanyProfile
	Directors   []models.Director
	Members     []models.Member
	TotalShares int64
}

func (r *Renderer) meetingView(company models.CompanyProfile, meeting models.Meeting) meetingView {
	return meetingView{
		Company:     &company,
		Meeting:     meeting,
		MeetingDate: LongDate(meeting.Date),
		Today:       r.clock().Format(shortDate),
	}
}

// BoardMeetingNotice renders the notice convening a board meeting. Agenda
// items are numbered from 1 in the order given.
func (r *Renderer) BoardMeetingNotice(company models.CompanyProfile, meeting models.Meeting) (string, error) {
	return execute(r.boardNotice, r.meetingView(company, meeting))
}

// BoardMeetingMinutes renders the minutes of a board meeting. The first
// PresentLimit directors are listed as present and the first of them chairs.
func (r *Renderer) BoardMeetingMinutes(company models.CompanyProfile, meeting models.Meeting, directors []models.Director) (string, error) {
	view := r.meetingView(company, meeting)
	view.Present = directors[:min(len(directors), PresentLimit)]
	view.Chairperson = ChairpersonPlaceholder
	if len(view.Present) > 0 {
		view.Chairperson = view.Present[0].Name
	}
	return execute(r.minutes, view)
}

// AGMNotice renders the notice convening an annual general meeting.
func (r *Renderer) AGMNotice(company models.CompanyProfile, meeting models.Meeting) (string, error) {
	view := r.meetingView(company, meeting)
	view.Place = Place(meeting.Venue)
	return execute(r.agmNotice, view)
}

// AnnualReturn renders form MGT-7 for the financial year of company.
// Directors and members are listed in register order.
func (r *Renderer) AnnualReturn(company models.CompanyProfile, directors []models.Director, members []models.Member) (string, error) {
	var total int64
	for _, m := range members {
		total += m.NumberOfShares
	}
	return execute(r.annualReturn, returnView{
		Company:     &company,
		Directors:   directors,
		Members:     members,
		TotalShares: total,
	})
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// LongDate formats a YYYY-MM-DD date as "2 January 2006". Values that do not
// parse are returned unchanged.
func LongDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format(longDate)
}

// Place is the part of a venue after its last comma, trimmed. A venue
// without a comma has no place.
func Place(venue string) string {
	i := strings.LastIndex(venue, ",")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(venue[i+1:])
}

func (r *Renderer) count(n int64) string {
	return r.printer.Sprintf("%d", n)
}

// amount groups the whole rupees and keeps any fractional part as entered.
func (r *Renderer) amount(d decimal.Decimal) string {
	whole := d.Truncate(0)
	var out string
	if n := whole.BigInt(); n.IsInt64() {
		out = r.printer.Sprintf("%d", n.Int64())
	} else {
		// The printer only formats machine integers.
		out = r.grouping.apply(n.Abs(n).String())
		if whole.IsNegative() {
			out = "-" + out
		}
	}
	if d.IsNegative() && whole.IsZero() {
		out = "-" + out
	}
	if frac := d.Sub(whole).Abs(); !frac.IsZero() {
		out += strings.TrimPrefix(frac.String(), "0")
	}
	return out
}

// grouping is the whole-number digit layout of a locale: the size of the
// rightmost group, the size of every group left of it, and the separator.
type grouping struct {
	sep       string
	primary   int
	secondary int
}

// learnGrouping reads the layout off the printer's rendering of a 19 digit
// number.
func learnGrouping(p *message.Printer) grouping {
	sample := p.Sprintf("%d", int64(1111111111111111111))

	var (
		groups []int
		sep    strings.Builder
		run    int
	)
	for _, c := range sample {
		if unicode.IsDigit(c) {
			run++
			continue
		}
		if run > 0 {
			groups = append(groups, run)
			run = 0
			sep.Reset()
		}
		sep.WriteRune(c)
	}
	groups = append(groups, run)

	g := grouping{sep: sep.String()}
	if len(groups) < 2 {
		return g
	}
	g.primary = groups[len(groups)-1]
	g.secondary = g.primary
	if len(groups) > 2 {
		g.secondary = groups[len(groups)-2]
	}
	return g
}

func (g grouping) apply(digits string) string {
	if g.primary == 0 || len(digits) <= g.primary {
		return digits
	}
	var parts []string
	end, size := len(digits), g.primary
	for end > size {
		parts = append(parts, digits[end-size:end])
		end -= size
		size = g.secondary
	}
	parts = append(parts, digits[:end])
	slices.Reverse(parts)
	return strings.Join(parts, g.sep)
}

func percent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
