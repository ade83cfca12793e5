package pkg

import (
	"github.com/veilsheet/veilsheet/pkg/vsf/btea"
	"github.com/veilsheet/veilsheet/pkg/vsf/sheet_2026"
)

// Sentinel errors re-exported at the package root. These are aliases, not
// copies, so errors.Is works across package boundaries.
var (
	// Security errors 🔒
	ErrIntegrityCheckFailed = btea.ErrIntegrity
	ErrCellDecrypt          = sheet_2026.ErrCellDecrypt
	ErrNoMatch              = sheet_2026.ErrNoMatch

	// Sheet errors 📄
	ErrMalformedSheet = sheet_2026.ErrMalformedSheet
)
