package sheet_2026

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// ErrMalformedSheet is returned when a CSV sheet cannot be parsed at all.
// Individual bad cells never produce it; only a broken sheet body does.
var ErrMalformedSheet = errors.New("❌ malformed sheet")

// GuestRecord is one row of the guest sheet. The four known cells hold sealed
// ciphertext; Extra carries any plaintext columns the sheet owner added.
// Records are immutable once read - the matcher never writes back.
type GuestRecord struct {
	Code   string
	Name   string
	Party  string
	Events string
	Extra  map[string]string
}

// GuestTable is a parsed guest sheet
type GuestTable struct {
	Records []GuestRecord
}

// EventRow is one row of the event sheet, cells still sealed
type EventRow struct {
	Title   string
	Date    string
	Time    string
	Venue   string
	Address string
	Note    string
}

// EventTable is a parsed event sheet
type EventTable struct {
	Rows []EventRow
}

// SheetReader parses published CSV sheets
type SheetReader struct {
	logger hclog.Logger
}

// NewSheetReader creates a sheet reader. A nil logger is replaced with a
// no-op logger.
func NewSheetReader(logger hclog.Logger) *SheetReader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SheetReader{logger: logger}
}

// readRows parses a CSV body into a header-keyed row list. Rows shorter than
// the header are padded with empty cells; published sheets routinely drop
// trailing empties.
func (r *SheetReader) readRows(src io.Reader) ([]string, []map[string]string, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading header: %v", ErrMalformedSheet, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}

	var rows []map[string]string
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: reading row %d: %v", ErrMalformedSheet, len(rows)+2, err)
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}

// ReadGuests parses a guest sheet
func (r *SheetReader) ReadGuests(src io.Reader) (*GuestTable, error) {
	header, rows, err := r.readRows(src)
	if err != nil {
		return nil, err
	}

	known := map[string]bool{HeaderCode: true, HeaderName: true, HeaderParty: true, HeaderEvents: true}

	table := &GuestTable{Records: make([]GuestRecord, 0, len(rows))}
	for _, row := range rows {
		rec := GuestRecord{
			Code:   row[HeaderCode],
			Name:   row[HeaderName],
			Party:  row[HeaderParty],
			Events: row[HeaderEvents],
		}
		for _, name := range header {
			if !known[name] {
				if rec.Extra == nil {
					rec.Extra = make(map[string]string)
				}
				rec.Extra[name] = row[name]
			}
		}
		table.Records = append(table.Records, rec)
	}

	r.logger.Debug("📋 Parsed guest sheet", "records", len(table.Records), "columns", len(header))
	return table, nil
}

// ReadEvents parses an event sheet
func (r *SheetReader) ReadEvents(src io.Reader) (*EventTable, error) {
	_, rows, err := r.readRows(src)
	if err != nil {
		return nil, err
	}

	table := &EventTable{Rows: make([]EventRow, 0, len(rows))}
	for _, row := range rows {
		table.Rows = append(table.Rows, EventRow{
			Title:   row[HeaderTitle],
			Date:    row[HeaderDate],
			Time:    row[HeaderTime],
			Venue:   row[HeaderVenue],
			Address: row[HeaderAddress],
			Note:    row[HeaderNote],
		})
	}

	r.logger.Debug("📋 Parsed event sheet", "rows", len(table.Rows))
	return table, nil
}
