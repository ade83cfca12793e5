// Package sheet_2026 implements the VSF/2026 sheet format: the published CSV
// layout, the sealed-cell envelope and the decrypt-and-match guest resolution
// protocol. It must interoperate cell-for-cell with the browser-side
// JavaScript that renders the invitation page.
package sheet_2026

// FormatName identifies the sheet format revision
const FormatName = "VSF/2026"

// Guest sheet column headers. Every cell under these headers is sealed;
// columns with any other header are carried as plaintext and ignored by the
// matcher.
const (
	HeaderCode   = "code"
	HeaderName   = "name"
	HeaderParty  = "party"
	HeaderEvents = "events"
)

// Event sheet column headers. Every cell is sealed with the per-wedding event
// key.
const (
	HeaderTitle   = "title"
	HeaderDate    = "date"
	HeaderTime    = "time"
	HeaderVenue   = "venue"
	HeaderAddress = "address"
	HeaderNote    = "note"
)

// GuestHeaders is the guest sheet header row, in column order
var GuestHeaders = []string{HeaderCode, HeaderName, HeaderParty, HeaderEvents}

// EventHeaders is the event sheet header row, in column order
var EventHeaders = []string{HeaderTitle, HeaderDate, HeaderTime, HeaderVenue, HeaderAddress, HeaderNote}

// PartySeparator joins the names of a guest's party inside a single sealed
// cell. A newline can never appear in a person's name and survives the
// envelope unharmed.
const PartySeparator = "\n"

// Default file names written by the builder
const (
	GuestSheetName = "guests.csv"
	EventSheetName = "events.csv"
)
