package documents

import (
	"encoding/base64"
	"fmt"
	"strings"

	e "github.com/gartstein/corpsec/internal/compliance/errors"
	"github.com/gartstein/corpsec/internal/compliance/models"
)

// Document is what a caller asks for.
type Document string

const (
	Notice       Document = "notice"
	AGM          Document = "agm"
	Minutes      Document = "minutes"
	AnnualReturn Document = "annual-return"
)

// ParseDocument accepts the names used on the command line and in URLs.
func ParseDocument(s string) (Document, error) {
	switch d := Document(strings.ToLower(s)); d {
	case Notice, AGM, Minutes, AnnualReturn:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown document %q", e.ErrInvalidInput, s)
}

// Kind identifies the rendered template and prefixes the file name.
type Kind string

const (
	KindBoardMeetingNotice  Kind = "Board_Meeting_Notice"
	KindAGMNotice           Kind = "AGM_Notice"
	KindBoardMeetingMinutes Kind = "Board_Meeting_Minutes"
	KindAnnualReturn        Kind = "Annual_Return_MGT7"
)

// Format is the nominal file format offered for download. The payload is the
// rendered text whatever the format.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatDOCX

// ParseFormat reads a format name; the empty string selects DefaultFormat.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return DefaultFormat, nil
	case FormatDOCX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown format %q, want docx or pdf", e.ErrInvalidInput, s)
}

// ContentType is the media type advertised for f.
func ContentType(f Format) string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// FileName builds "<kind>_<date>.<format>".
func FileName(kind Kind, date string, f Format) string {
	return fmt.Sprintf("%s_%s.%s", kind, date, f)
}

// Attachment is a rendered document ready to be handed out as a file.
type Attachment struct {
	Kind        Kind
	FileName    string
	ContentType string
	Body        []byte
}

// Download wraps rendered text as an attachment.
func Download(kind Kind, date string, f Format, text string) Attachment {
	return Attachment{
		Kind:        kind,
		FileName:    FileName(kind, date, f),
		ContentType: ContentType(f),
		Body:        []byte(text),
	}
}

// DataURL encodes the attachment as a base64 data URL.
func (a Attachment) DataURL() string {
	return "data:" + a.ContentType + ";base64," + base64.StdEncoding.EncodeToString(a.Body)
}

// Request selects a document to generate from a CompanyState.
type Request struct {
	Document  Document
	MeetingID string
	Format    Format
}

// Generate renders the requested document from state.
//
// Every document needs a company profile. Meeting documents need MeetingID to
// match a meeting: a notice is a board notice for Board meetings and an AGM
// notice for AGMs, agm asks for the AGM notice and fails for any other
// meeting, and minutes exist only for Board meetings. The annual
// return needs at least one director and one member.
func (r *Renderer) Generate(state models.CompanyState, req Request) (Attachment, error) {
	if state.CompanyDetails == nil {
		return Attachment{}, fmt.Errorf("%w: company profile is required to generate documents", e.ErrInvalidInput)
	}
	company := *state.CompanyDetails
	format := req.Format
	if format == "" {
		format = DefaultFormat
	}

	if req.Document == AnnualReturn {
		if len(state.Directors) == 0 {
			return Attachment{}, fmt.Errorf("%w: at least one director is required to generate Annual Return", e.ErrInvalidInput)
		}
		if len(state.Members) == 0 {
			return Attachment{}, fmt.Errorf("%w: at least one member is required to generate Annual Return", e.ErrInvalidInput)
		}
		text, err := r.AnnualReturn(company, state.Directors, state.Members)
		if err != nil {
			return Attachment{}, err
		}
		return Download(KindAnnualReturn, r.clock().Format("2006"), format, text), nil
	}

	if req.MeetingID == "" {
		return Attachment{}, fmt.Errorf("%w: a meeting must be selected", e.ErrInvalidInput)
	}
	meeting, ok := findMeeting(state.Meetings, req.MeetingID)
	if !ok {
		return Attachment{}, fmt.Errorf("%w: meeting %q", e.ErrNotFound, req.MeetingID)
	}

	var (
		kind Kind
		text string
		err  error
	)
	switch {
	case req.Document == Notice && meeting.Type == models.BoardMeeting:
		kind = KindBoardMeetingNotice
		text, err = r.BoardMeetingNotice(company, meeting)
	case (req.Document == Notice || req.Document == AGM) && meeting.SubType == models.AnnualMeeting:
		kind = KindAGMNotice
		text, err = r.AGMNotice(company, meeting)
	case req.Document == Minutes && meeting.Type == models.BoardMeeting:
		kind = KindBoardMeetingMinutes
		text, err = r.BoardMeetingMinutes(company, meeting, state.Directors)
	default:
		return Attachment{}, fmt.Errorf("%w: no %s template for %s/%s meetings",
			e.ErrInvalidInput, req.Document, meeting.Type, meeting.SubType)
	}
	if err != nil {
		return Attachment{}, err
	}
	return Download(kind, meeting.Date, format, text), nil
}

func findMeeting(meetings []models.Meeting, id string) (models.Meeting, bool) {
	for _, m := range meetings {
		if m.ID == id {
			return m, true
		}
	}
	return models.Meeting{}, false
}

var formDescriptions = map[string]string{
	"MGT-7":  "Annual Return",
	"AOC-4":  "Financial Statements",
	"DIR-12": "Changes in Directors",
	"MGT-14": "Filing of Resolutions",
	"ADT-1":  "Appointment of Auditor",
}

// FormDescription names a statutory form; unknown form numbers are echoed.
func FormDescription(formNumber string) string {
	if d, ok := formDescriptions[formNumber]; ok {
		return d
	}
	return formNumber
}
