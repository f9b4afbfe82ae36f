package documents

// Template text. Lines inside {{range}} blocks end with a newline so that
// every list item sits on its own line.

const boardNoticeText = `NOTICE OF BOARD MEETING

{{.Company.Name}}
CIN: {{.Company.CIN}}
Registered Office: {{.Company.RegisteredAddress}}

Date: {{.Today}}

NOTICE is hereby given that a Meeting of the Board of Directors of {{.Company.Name}} will be held on {{.MeetingDate}} at {{.Meeting.Time}} at {{.Meeting.Venue}} to transact the following business:

AGENDA:
{{range $i, $item := .Meeting.Agenda}}{{inc $i}}. {{$item}}
{{end}}
By Order of the Board
For {{.Company.Name}}

Company Secretary
`

const minutesText = `MINUTES OF THE MEETING OF BOARD OF DIRECTORS OF {{upper .Company.Name}}
HELD ON {{upper .MeetingDate}} AT {{.Meeting.Time}} AT {{upper .Meeting.Venue}}

PRESENT:
{{range .Present}}{{.Name}} - {{.Designation}}
{{end}}
IN ATTENDANCE:
Company Secretary

CHAIRPERSON:
{{.Chairperson}}

The Chairperson welcomed the Directors to the Meeting. The requisite quorum being present, the Chairperson called the Meeting to order.

MINUTES OF THE PREVIOUS MEETING:
The Minutes of the previous Board Meeting were read and confirmed.

AGENDA ITEMS:
{{range $i, $item := .Meeting.Agenda}}
ITEM {{inc $i}}: {{$item}}
The Board discussed and approved {{$item}}.
{{end}}
CONCLUSION:
There being no other business, the Meeting concluded with a vote of thanks to the Chair.

Date: {{.MeetingDate}}

_______________________
CHAIRPERSON
`

const agmNoticeText = `NOTICE OF ANNUAL GENERAL MEETING

{{.Company.Name}}
CIN: {{.Company.CIN}}
Registered Office: {{.Company.RegisteredAddress}}

NOTICE is hereby given that the Annual General Meeting of {{.Company.Name}} will be held on {{.MeetingDate}} at {{.Meeting.Time}} at {{.Meeting.Venue}} to transact the following business:

ORDINARY BUSINESS:
{{range $i, $item := .Meeting.Agenda}}{{inc $i}}. {{$item}}
{{end}}
By Order of the Board
For {{.Company.Name}}

Place: {{.Place}}
Date: {{.Today}}

Company Secretary

Notes:
1. A MEMBER ENTITLED TO ATTEND AND VOTE IS ENTITLED TO APPOINT A PROXY TO ATTEND AND VOTE INSTEAD OF HIMSELF.
2. THE REGISTER OF MEMBERS AND SHARE TRANSFER BOOKS WILL REMAIN CLOSED FROM [DATE] TO [DATE] (BOTH DAYS INCLUSIVE).
`

const annualReturnText = `ANNUAL RETURN
[FORM MGT-7]

For the financial year ended: {{.Company.FinancialYearEnd}}

1. COMPANY DETAILS:
   Name: {{.Company.Name}}
   CIN: {{.Company.CIN}}
   Registration Date: {{.Company.RegistrationDate}}
   Registered Office: {{.Company.RegisteredAddress}}
   Email: {{.Company.Email}}
   Phone: {{.Company.Phone}}
   Website: {{or .Company.Website "N/A"}}

2. CAPITAL STRUCTURE:
   Authorized Capital: Rs. {{amount .Company.AuthorizedCapital}}
   Paid-up Capital: Rs. {{amount .Company.PaidUpCapital}}

3. DIRECTORS:
{{range $i, $d := .Directors}}
   {{inc $i}}. Name: {{$d.Name}}
      DIN: {{$d.DIN}}
      Designation: {{$d.Designation}}
      Date of Appointment: {{$d.DateOfAppointment}}
{{end}}
4. SHAREHOLDERS:
{{range $i, $m := .Members}}
   {{inc $i}}. Name: {{$m.Name}}
      Folio Number: {{$m.FolioNumber}}
      Shares: {{count $m.NumberOfShares}} ({{percent $m.PercentageHolding}}%)
{{end}}
5. SUMMARY:
   Total Number of Directors: {{len .Directors}}
   Total Number of Members: {{len .Members}}
   Total Number of Shares: {{count .TotalShares}}
`
