package sheet_2026

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealCellVectors(t *testing.T) {
	// Pinned against the browser-side implementation.
	assert.Equal(t, "vB1qF4q8w5ePyWR1", SealCell("hello!", "SECRETKEY"))
	assert.Equal(t, "U+r7fflmw8DnhNnv", SealCell("ABC123", "ABC123"))
}

func TestUnsealCellRoundTrip(t *testing.T) {
	sealed := SealCell("Amara Okafor", "ABC123")
	plain, err := UnsealCell(sealed, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "Amara Okafor", plain)
}

func TestUnsealCellFailuresAreIndistinguishable(t *testing.T) {
	// Malformed Base64 and a wrong key must surface as the same bare
	// sentinel; a caller probing codes learns nothing from the error.
	_, errMalformed := UnsealCell("not base64 !!!", "ABC123")
	_, errWrongKey := UnsealCell(SealCell("ABC123", "ABC123"), "WRONG1")

	require.Error(t, errMalformed)
	require.Error(t, errWrongKey)
	assert.Equal(t, ErrCellDecrypt, errMalformed)
	assert.Equal(t, ErrCellDecrypt, errWrongKey)
}

func TestUnsealCellEmptyCiphertext(t *testing.T) {
	_, err := UnsealCell("", "ABC123")
	assert.Equal(t, ErrCellDecrypt, err)
}
