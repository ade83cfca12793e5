// Package encode implements encoding operations for sealed cells.
package encode

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/veilsheet/veilsheet/pkg/vsf/operations"
)

func init() {
	// Register BASE64 operation on package init
	operations.Register(NewBase64Operation())
}

// Base64Operation implements standard Base64 with padding. The browser side
// uses the plain alphabet, never the URL-safe variant, and published cells
// must match it byte for byte.
type Base64Operation struct {
	operations.BaseOperation
}

// NewBase64Operation creates a new BASE64 operation
func NewBase64Operation() *Base64Operation {
	return &Base64Operation{
		BaseOperation: operations.BaseOperation{
			OpID:   operations.OP_BASE64,
			OpName: "BASE64",
		},
	}
}

// Apply encodes data as Base64
func (o *Base64Operation) Apply(input []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(input)))
	base64.StdEncoding.Encode(out, input)
	return out, nil
}

// ApplyStream encodes a stream as Base64
func (o *Base64Operation) ApplyStream(input io.Reader, output io.Writer) error {
	enc := base64.NewEncoder(base64.StdEncoding, output)

	if _, err := io.Copy(enc, input); err != nil {
		enc.Close()
		return fmt.Errorf("encoding base64 stream: %w", err)
	}

	return enc.Close()
}

// Reverse decodes Base64 data
func (o *Base64Operation) Reverse(input []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(input)))
	n, err := base64.StdEncoding.Decode(out, input)
	if err != nil {
		return nil, fmt.Errorf("decoding base64: %w", err)
	}
	return out[:n], nil
}

// ReverseStream decodes a Base64 stream
func (o *Base64Operation) ReverseStream(input io.Reader, output io.Writer) error {
	dec := base64.NewDecoder(base64.StdEncoding, input)

	if _, err := io.Copy(output, dec); err != nil {
		return fmt.Errorf("decoding base64 stream: %w", err)
	}

	return nil
}

// EstimateSize estimates encoded size: 4 output bytes per 3 input bytes
func (o *Base64Operation) EstimateSize(inputSize int64) int64 {
	return (inputSize + 2) / 3 * 4
}
