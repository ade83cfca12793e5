package sheet_2026

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fixture sheets below were sealed with the browser-side implementation:
// guest ABC123 is "Amara Okafor" with a party of two, guest ZKP42Q is
// "Idris Vane" alone, and both carry the event key GARNET7.
const guestFixture = `code,name,party,events
U+r7fflmw8DnhNnv,n1CQqkaAtYsWieS5BczWOQ==,m+kbJdNHYGXWpKN7S903RNFGU/MLcCq24Tw5qw==,vdjYA5PyVC+8ET5v
J0iGqQ/0qt2R5U7w,AU7TtMMuge86Lh2eP7P+YQ==,AU7TtMMuge86Lh2eP7P+YQ==,Qx5pt0SgGG3gAyxl
`

const eventFixture = `title,date,time,venue,address,note
DLx1jRWPBmydDAZd,lRZ78M3C48Swt5EnfXRdPQ==,HjWjfjkbUn5fEuAf,HwQGD0HHSJ9lWSLzGIE0cjotVsDIqHTh,65xfDbPouPRPoB4oKN7NfAnIbZo=,
jZ/cSykY/nXuZu5eE+0f3w==,lRZ78M3C48Swt5EnfXRdPQ==,f3ODZpBEyom8jQKZ,CzC6xFY2n16iczUxPdr/E/SqBgQ=,3OVXNkcla/R8WDzUn3VI9w==,
`

func parseFixtures(t *testing.T) (*GuestTable, *EventTable) {
	t.Helper()
	reader := NewSheetReader(nil)

	guests, err := reader.ReadGuests(strings.NewReader(guestFixture))
	require.NoError(t, err)
	require.Len(t, guests.Records, 2)

	events, err := reader.ReadEvents(strings.NewReader(eventFixture))
	require.NoError(t, err)
	require.Len(t, events.Rows, 2)

	return guests, events
}

func TestResolveKnownGuest(t *testing.T) {
	guests, events := parseFixtures(t)

	inv, err := NewMatcher(nil).Resolve(guests, events, "ABC123")
	require.NoError(t, err)

	assert.Equal(t, "ABC123", inv.Code)
	assert.Equal(t, "Amara Okafor", inv.Name)
	assert.Equal(t, []string{"Amara Okafor", "Theo Okafor"}, inv.Party)

	require.Len(t, inv.Events, 2)
	assert.Equal(t, Event{
		Title:   "Ceremony",
		Date:    "2026-06-20",
		Time:    "16:00",
		Venue:   "Santa Clara Chapel",
		Address: "12 Hillcrest Rd",
	}, inv.Events[0])
	assert.Equal(t, "Reception", inv.Events[1].Title)
	assert.Equal(t, "Harbour House", inv.Events[1].Venue)
}

func TestResolveSecondGuest(t *testing.T) {
	guests, events := parseFixtures(t)

	inv, err := NewMatcher(nil).Resolve(guests, events, "ZKP42Q")
	require.NoError(t, err)

	assert.Equal(t, "Idris Vane", inv.Name)
	assert.Equal(t, []string{"Idris Vane"}, inv.Party)
	require.Len(t, inv.Events, 2)
}

func TestResolveWrongCode(t *testing.T) {
	guests, events := parseFixtures(t)

	_, err := NewMatcher(nil).Resolve(guests, events, "WRONG1")
	assert.Equal(t, ErrNoMatch, err)
}

func TestResolveEmptyCode(t *testing.T) {
	guests, events := parseFixtures(t)

	// No code supplied must be indistinguishable from a wrong code.
	_, err := NewMatcher(nil).Resolve(guests, events, "")
	assert.Equal(t, ErrNoMatch, err)
}

func TestResolveCorruptedCodeCell(t *testing.T) {
	// Flip one Base64 character of the first guest's code cell: the right
	// code now misses that row without crashing, and finds no other.
	corrupted := strings.Replace(guestFixture, "U+r7fflmw8DnhNnv", "V+r7fflmw8DnhNnv", 1)

	reader := NewSheetReader(nil)
	guests, err := reader.ReadGuests(strings.NewReader(corrupted))
	require.NoError(t, err)

	_, err = NewMatcher(nil).Resolve(guests, nil, "ABC123")
	assert.Equal(t, ErrNoMatch, err)
}

func TestResolveCorruptedEventCell(t *testing.T) {
	// A garbled event cell degrades to an empty field; the rest of the row
	// and the resolution as a whole survive.
	corrupted := strings.Replace(eventFixture, "DLx1jRWPBmydDAZd", "!!!!", 1)

	reader := NewSheetReader(nil)
	guests, _ := parseFixtures(t)
	events, err := reader.ReadEvents(strings.NewReader(corrupted))
	require.NoError(t, err)

	inv, err := NewMatcher(nil).Resolve(guests, events, "ABC123")
	require.NoError(t, err)
	require.Len(t, inv.Events, 2)
	assert.Empty(t, inv.Events[0].Title)
	assert.Equal(t, "2026-06-20", inv.Events[0].Date)
}

func TestResolveWithoutEventSheet(t *testing.T) {
	guests, _ := parseFixtures(t)

	inv, err := NewMatcher(nil).Resolve(guests, nil, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "Amara Okafor", inv.Name)
	assert.Empty(t, inv.Events)
}

func TestExtraPlaintextColumnsCarried(t *testing.T) {
	withExtra := `code,name,party,events,table
U+r7fflmw8DnhNnv,n1CQqkaAtYsWieS5BczWOQ==,m+kbJdNHYGXWpKN7S903RNFGU/MLcCq24Tw5qw==,vdjYA5PyVC+8ET5v,7
`
	reader := NewSheetReader(nil)
	guests, err := reader.ReadGuests(strings.NewReader(withExtra))
	require.NoError(t, err)
	require.Len(t, guests.Records, 1)
	assert.Equal(t, "7", guests.Records[0].Extra["table"])
}

func TestReadGuestsMalformedSheet(t *testing.T) {
	reader := NewSheetReader(nil)
	_, err := reader.ReadGuests(strings.NewReader(`code,name
"unterminated`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSheet)
}
