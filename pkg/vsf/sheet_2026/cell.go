package sheet_2026

import (
	"errors"

	"github.com/veilsheet/veilsheet/pkg/vsf/operations"
	"github.com/veilsheet/veilsheet/pkg/vsf/operations/cipher"
	"github.com/veilsheet/veilsheet/pkg/vsf/operations/encode"
)

// ErrCellDecrypt is the single failure surface of UnsealCell. Malformed
// Base64, a failed length-tag check and a wrong key all collapse into this
// one error; the cause must not be observable to a caller probing codes.
var ErrCellDecrypt = errors.New("❌ cell decrypt failed")

// cellPipeline is the sealed-cell envelope: BTEA under key, then Base64.
func cellPipeline(key string) []operations.Operation {
	return []operations.Operation{
		cipher.NewBTEAOperation([]byte(key)),
		encode.NewBase64Operation(),
	}
}

// SealCell encrypts plaintext under key and returns the Base64 cell text.
// Sealing is deterministic and never fails.
func SealCell(plaintext, key string) string {
	sealed, err := operations.ApplyPipeline([]byte(plaintext), cellPipeline(key))
	if err != nil {
		// Neither pipeline step has a failing forward direction.
		panic("sheet_2026: cell pipeline apply failed: " + err.Error())
	}
	return string(sealed)
}

// UnsealCell decrypts a Base64 cell under key. All failures are reported as
// the bare ErrCellDecrypt sentinel; the cause is not wrapped.
func UnsealCell(ciphertext, key string) (string, error) {
	out, err := operations.ReversePipeline([]byte(ciphertext), cellPipeline(key))
	if err != nil {
		return "", ErrCellDecrypt
	}
	return string(out), nil
}
