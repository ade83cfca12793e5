// Package operations implements the reversible transformation chains used by
// the VSF/2026 sheet format. A sealed cell travels through the cell chain
// (cipher then Base64) on its way into a published sheet; cached sheet
// snapshots travel through a compression chain on their way to disk.
package operations

import (
	"fmt"
	"io"
)

// Operation constants matching the browser-side JavaScript definitions
const (
	// No operation - raw data
	OP_NONE uint8 = 0x00

	// 0x10-0x2F: Compression operations
	OP_GZIP  uint8 = 0x10 // GZIP compression
	OP_BZIP2 uint8 = 0x13 // BZIP2 compression
	OP_XZ    uint8 = 0x16 // XZ/LZMA2 compression
	OP_ZSTD  uint8 = 0x1B // Zstandard compression

	// 0x30-0x4F: Cipher operations
	OP_BTEA uint8 = 0x44 // Corrected Block TEA, keyed per instance

	// 0x50-0x6F: Encoding operations
	OP_BASE64 uint8 = 0x50 // Standard Base64, padded, no URL-safe variant
)

// Operation represents a single reversible transformation
type Operation interface {
	// ID returns the operation identifier (e.g., OP_BASE64)
	ID() uint8

	// Name returns the human-readable name
	Name() string

	// Apply applies the operation to input data
	Apply(input []byte) ([]byte, error)

	// ApplyStream applies the operation to a stream
	ApplyStream(input io.Reader, output io.Writer) error

	// Reverse reverses the operation (e.g., decrypt for a cipher)
	Reverse(input []byte) ([]byte, error)

	// ReverseStream reverses the operation on a stream
	ReverseStream(input io.Reader, output io.Writer) error

	// CanReverse returns true if the operation is reversible
	CanReverse() bool

	// EstimateSize estimates the output size given input size
	EstimateSize(inputSize int64) int64
}

// BaseOperation provides common functionality for operations
type BaseOperation struct {
	OpID   uint8
	OpName string
}

func (o *BaseOperation) ID() uint8 {
	return o.OpID
}

func (o *BaseOperation) Name() string {
	return o.OpName
}

func (o *BaseOperation) CanReverse() bool {
	return true // Every VSF operation is reversible
}

func (o *BaseOperation) EstimateSize(inputSize int64) int64 {
	return inputSize // Default: same size
}

// Registry maps operation IDs to stateless implementations. Keyed operations
// (the cipher) are instantiated per key and never live in the registry.
var Registry = make(map[uint8]Operation)

// Register registers an operation implementation
func Register(op Operation) {
	Registry[op.ID()] = op
}

// Get retrieves an operation by ID
func Get(id uint8) (Operation, error) {
	if id == OP_BTEA {
		return nil, fmt.Errorf("operation BTEA is keyed and must be instantiated, not looked up")
	}
	op, ok := Registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown operation: 0x%02x", id)
	}
	return op, nil
}

// GetName returns the name of an operation by ID
func GetName(id uint8) string {
	switch id {
	case OP_NONE:
		return "NONE"
	case OP_GZIP:
		return "GZIP"
	case OP_BZIP2:
		return "BZIP2"
	case OP_XZ:
		return "XZ"
	case OP_ZSTD:
		return "ZSTD"
	case OP_BTEA:
		return "BTEA"
	case OP_BASE64:
		return "BASE64"
	default:
		return fmt.Sprintf("UNKNOWN_%02x", id)
	}
}
