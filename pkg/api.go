package pkg

import (
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/veilsheet/veilsheet/pkg/vsf/sheet_2026"
)

// BuildSheets seals a manifest into guests.csv and events.csv under outDir
func BuildSheets(manifestPath, outDir string) (*sheet_2026.BuildResult, error) {
	return BuildSheetsWithOptions(manifestPath, outDir, 0, nil)
}

// BuildSheetsWithOptions is BuildSheets with a code length and logger.
// codeLength <= 0 selects the default; a nil logger is silent.
func BuildSheetsWithOptions(manifestPath, outDir string, codeLength int, logger hclog.Logger) (*sheet_2026.BuildResult, error) {
	manifest, err := sheet_2026.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	return sheet_2026.NewBuilder(manifest, codeLength, logger).Build(outDir)
}

// ResolveCode opens published sheets from disk and resolves a guest code to
// its invitation. The event sheet path may be empty.
func ResolveCode(guestSheetPath, eventSheetPath, code string, logger hclog.Logger) (*sheet_2026.Invitation, error) {
	reader := sheet_2026.NewSheetReader(logger)

	guestFile, err := os.Open(guestSheetPath)
	if err != nil {
		return nil, err
	}
	defer guestFile.Close()

	guests, err := reader.ReadGuests(guestFile)
	if err != nil {
		return nil, err
	}

	var events *sheet_2026.EventTable
	if eventSheetPath != "" {
		eventFile, err := os.Open(eventSheetPath)
		if err != nil {
			return nil, err
		}
		defer eventFile.Close()

		events, err = reader.ReadEvents(eventFile)
		if err != nil {
			return nil, err
		}
	}

	return sheet_2026.NewMatcher(logger).Resolve(guests, events, code)
}
