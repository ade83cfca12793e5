package operations

import (
	"fmt"
	"strings"
)

// PackOperations packs a list of operations into a 64-bit integer.
// Each operation takes 8 bits, allowing up to 8 operations in the chain.
// Operations are packed in execution order (first operation in LSB).
func PackOperations(operations []uint8) (uint64, error) {
	if len(operations) > 8 {
		return 0, fmt.Errorf("maximum 8 operations allowed, got %d", len(operations))
	}

	var packed uint64
	for i, op := range operations {
		packed |= uint64(op) << (i * 8)
	}

	return packed, nil
}

// UnpackOperations unpacks a 64-bit integer into a list of operations.
func UnpackOperations(packed uint64) []uint8 {
	var operations []uint8

	for i := 0; i < 8; i++ {
		op := uint8((packed >> (i * 8)) & 0xFF)
		if op == 0 { // OP_NONE terminates the chain
			break
		}
		operations = append(operations, op)
	}

	return operations
}

// OperationsToString converts packed operations to human-readable string.
func OperationsToString(packed uint64) string {
	if packed == 0 {
		return "raw"
	}

	operations := UnpackOperations(packed)

	chain := operationsToChain(operations)
	if name, ok := commonChains[chain]; ok {
		return name
	}

	// Fall back to pipe format
	var names []string
	for _, op := range operations {
		names = append(names, strings.ToLower(GetName(op)))
	}

	return strings.Join(names, "|")
}

// StringToOperations parses an operation string to packed operations.
func StringToOperations(opString string) (uint64, error) {
	if opString == "" || strings.ToLower(opString) == "raw" {
		return 0, nil
	}

	opString = strings.ToLower(opString)

	if ops, ok := namedChains[opString]; ok {
		return PackOperations(ops)
	}

	// Handle pipe-separated operations
	if strings.Contains(opString, "|") {
		var operations []uint8
		for _, part := range strings.Split(opString, "|") {
			part = strings.TrimSpace(strings.ToUpper(part))
			if part == "" {
				continue
			}

			op, ok := namedOperations[part]
			if !ok {
				return 0, fmt.Errorf("unsupported operation: %s", part)
			}
			operations = append(operations, op)
		}
		return PackOperations(operations)
	}

	return 0, fmt.Errorf("unknown operation string: %s", opString)
}

// operationsToChain converts operations slice to string for map lookup
func operationsToChain(ops []uint8) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = fmt.Sprintf("%02x", op)
	}
	return strings.Join(parts, "-")
}

// Common operation chains
var commonChains = map[string]string{
	"44-50": "cell", // BTEA + BASE64, the sealed-cell envelope
	"10":    "gzip",
	"13":    "bzip2",
	"16":    "xz",
	"1b":    "zstd",
}

// Named chains for parsing
var namedChains = map[string][]uint8{
	// Raw data
	"raw": {},

	// Single operations
	"gzip":   {OP_GZIP},
	"bzip2":  {OP_BZIP2},
	"xz":     {OP_XZ},
	"zstd":   {OP_ZSTD},
	"base64": {OP_BASE64},

	// The sealed-cell envelope
	"cell": {OP_BTEA, OP_BASE64},
}

// Named operations for parsing
var namedOperations = map[string]uint8{
	"GZIP":   OP_GZIP,
	"BZIP2":  OP_BZIP2,
	"XZ":     OP_XZ,
	"ZSTD":   OP_ZSTD,
	"BTEA":   OP_BTEA,
	"BASE64": OP_BASE64,
}

// ApplyChain applies a chain of registry operations to data
func ApplyChain(data []byte, operations []uint8) ([]byte, error) {
	current := data

	for _, opID := range operations {
		op, err := Get(opID)
		if err != nil {
			return nil, fmt.Errorf("operation 0x%02x: %w", opID, err)
		}

		result, err := op.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("applying %s: %w", op.Name(), err)
		}

		current = result
	}

	return current, nil
}

// ReverseChain reverses a chain of registry operations on data
func ReverseChain(data []byte, operations []uint8) ([]byte, error) {
	current := data

	// Apply operations in reverse order
	for i := len(operations) - 1; i >= 0; i-- {
		opID := operations[i]
		op, err := Get(opID)
		if err != nil {
			return nil, fmt.Errorf("operation 0x%02x: %w", opID, err)
		}

		result, err := op.Reverse(current)
		if err != nil {
			return nil, fmt.Errorf("reversing %s: %w", op.Name(), err)
		}

		current = result
	}

	return current, nil
}

// ApplyPipeline applies operation instances in forward order. Unlike
// ApplyChain it takes instances rather than registry IDs, which is how keyed
// operations (the cell cipher) are run.
func ApplyPipeline(data []byte, pipeline []Operation) ([]byte, error) {
	current := data

	for i, op := range pipeline {
		result, err := op.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("pipeline step %d (%s): %w", i, op.Name(), err)
		}
		current = result
	}

	return current, nil
}

// ReversePipeline reverses operation instances in backward order.
func ReversePipeline(data []byte, pipeline []Operation) ([]byte, error) {
	current := data

	for i := len(pipeline) - 1; i >= 0; i-- {
		op := pipeline[i]
		if !op.CanReverse() {
			return nil, fmt.Errorf("pipeline step %d (%s) is not reversible", i, op.Name())
		}

		result, err := op.Reverse(current)
		if err != nil {
			return nil, fmt.Errorf("pipeline step %d (%s): %w", i, op.Name(), err)
		}
		current = result
	}

	return current, nil
}
