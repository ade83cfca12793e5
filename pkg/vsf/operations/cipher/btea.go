// Package cipher adapts the XXTEA transform to the operations interface.
package cipher

import (
	"fmt"
	"io"

	"github.com/veilsheet/veilsheet/pkg/vsf/btea"
	"github.com/veilsheet/veilsheet/pkg/vsf/operations"
)

// BTEAOperation implements the keyed XXTEA cell cipher. Instances carry their
// key, so they are created per seal/unseal call and never registered globally.
type BTEAOperation struct {
	operations.BaseOperation
	key []byte
}

// NewBTEAOperation creates a BTEA operation bound to key. The key may be any
// length; the cipher zero-pads short keys to 128 bits and ignores key material
// past the fourth word.
func NewBTEAOperation(key []byte) *BTEAOperation {
	return &BTEAOperation{
		BaseOperation: operations.BaseOperation{
			OpID:   operations.OP_BTEA,
			OpName: "BTEA",
		},
		key: key,
	}
}

// Apply encrypts input under the bound key
func (o *BTEAOperation) Apply(input []byte) ([]byte, error) {
	return btea.EncryptBytes(input, o.key), nil
}

// ApplyStream encrypts a stream. The block transform needs the whole message
// in memory, so this buffers; cells are tiny and this path is rarely used.
func (o *BTEAOperation) ApplyStream(input io.Reader, output io.Writer) error {
	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("reading cipher input: %w", err)
	}

	out, err := o.Apply(data)
	if err != nil {
		return err
	}

	_, err = output.Write(out)
	return err
}

// Reverse decrypts input under the bound key. The error is btea.ErrIntegrity
// for every wrong key; callers treat it as a miss, not a fault.
func (o *BTEAOperation) Reverse(input []byte) ([]byte, error) {
	return btea.DecryptBytes(input, o.key)
}

// ReverseStream decrypts a stream
func (o *BTEAOperation) ReverseStream(input io.Reader, output io.Writer) error {
	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("reading cipher input: %w", err)
	}

	out, err := o.Reverse(data)
	if err != nil {
		return err
	}

	_, err = output.Write(out)
	return err
}

// EstimateSize estimates ciphertext size: word alignment plus the length tag
func (o *BTEAOperation) EstimateSize(inputSize int64) int64 {
	return (inputSize+3)/4*4 + 4
}
