package sheet_2026

import (
	"errors"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// ErrNoMatch is returned when no guest row accepts the supplied code. A wrong
// code, an unknown code and an empty code all produce this same error; nothing
// leaks about whether any code came close.
var ErrNoMatch = errors.New("❌ no matching guest code")

// Event is a fully decrypted event sheet row
type Event struct {
	Title   string
	Date    string
	Time    string
	Venue   string
	Address string
	Note    string
}

// Invitation is the resolved view a matched guest is allowed to see
type Invitation struct {
	Code   string
	Name   string
	Party  []string
	Events []Event
}

// Matcher resolves guest codes against parsed sheets
type Matcher struct {
	logger hclog.Logger
}

// NewMatcher creates a matcher. A nil logger is replaced with a no-op logger.
func NewMatcher(logger hclog.Logger) *Matcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Matcher{logger: logger}
}

// Resolve scans the guest table for a row whose sealed code cell, decrypted
// with the supplied code as key, yields exactly that code. The first match
// wins; codes are assumed unique but not enforced here. On a match the
// dependent cells are unsealed with the same code, and the recovered event key
// unlocks the event table (the two-level chain: decrypted plaintext reused
// verbatim as the next layer's key).
//
// events may be nil when the caller has no event sheet; the invitation then
// carries no events.
func (m *Matcher) Resolve(guests *GuestTable, events *EventTable, code string) (*Invitation, error) {
	for i := range guests.Records {
		rec := &guests.Records[i]

		// A failed unseal just means "not this row" - it is the expected
		// outcome for every row but one.
		plain, err := UnsealCell(rec.Code, code)
		if err != nil || plain != code {
			continue
		}

		m.logger.Debug("🔑 Guest code matched", "row", i+2)
		return m.buildInvitation(rec, events, code)
	}

	return nil, ErrNoMatch
}

func (m *Matcher) buildInvitation(rec *GuestRecord, events *EventTable, code string) (*Invitation, error) {
	inv := &Invitation{Code: code}

	// Dependent cells are sealed under the guest's own code. A cell that
	// fails here (sealed empty, or a sheet editing accident) degrades to an
	// empty field rather than failing the whole resolution.
	if name, err := UnsealCell(rec.Name, code); err == nil {
		inv.Name = name
	} else {
		m.logger.Warn("⚠️ Guest name cell did not unseal", "code", code)
	}

	if party, err := UnsealCell(rec.Party, code); err == nil && party != "" {
		inv.Party = strings.Split(party, PartySeparator)
	}

	eventKey, err := UnsealCell(rec.Events, code)
	if err != nil {
		m.logger.Warn("⚠️ Event key cell did not unseal", "code", code)
		return inv, nil
	}

	if events != nil {
		inv.Events = m.unsealEvents(events, eventKey)
	}

	return inv, nil
}

// unsealEvents decrypts the event table with the chained event key. Individual
// malformed cells are logged as soft warnings and surface as empty fields;
// they never abort the render.
func (m *Matcher) unsealEvents(events *EventTable, eventKey string) []Event {
	out := make([]Event, 0, len(events.Rows))

	for i, row := range events.Rows {
		var ev Event
		cells := []struct {
			dst        *string
			ciphertext string
			column     string
		}{
			{&ev.Title, row.Title, HeaderTitle},
			{&ev.Date, row.Date, HeaderDate},
			{&ev.Time, row.Time, HeaderTime},
			{&ev.Venue, row.Venue, HeaderVenue},
			{&ev.Address, row.Address, HeaderAddress},
			{&ev.Note, row.Note, HeaderNote},
		}

		for _, c := range cells {
			if c.ciphertext == "" {
				continue
			}
			plain, err := UnsealCell(c.ciphertext, eventKey)
			if err != nil {
				m.logger.Warn("⚠️ Event cell did not unseal", "row", i+2, "column", c.column)
				continue
			}
			*c.dst = plain
		}

		out = append(out, ev)
	}

	return out
}
