package pkg

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/veilsheet/veilsheet/pkg/logging"
	"github.com/veilsheet/veilsheet/pkg/vsf/sheet_2026"
)

// VerifySealedSheetsWithLogger re-opens freshly built sheets and proves every
// manifest code resolves back to the guest it was sealed for. It reports all
// failures, not just the first.
func VerifySealedSheetsWithLogger(manifest *sheet_2026.Manifest, result *sheet_2026.BuildResult, logger hclog.Logger) error {
	reader := sheet_2026.NewSheetReader(logger)

	guestFile, err := os.Open(result.GuestSheetPath)
	if err != nil {
		return fmt.Errorf("opening guest sheet: %w", err)
	}
	defer guestFile.Close()

	guests, err := reader.ReadGuests(guestFile)
	if err != nil {
		return fmt.Errorf("reading guest sheet: %w", err)
	}

	eventFile, err := os.Open(result.EventSheetPath)
	if err != nil {
		return fmt.Errorf("opening event sheet: %w", err)
	}
	defer eventFile.Close()

	events, err := reader.ReadEvents(eventFile)
	if err != nil {
		return fmt.Errorf("reading event sheet: %w", err)
	}

	logger.Info("🔍 Verifying sealed sheets", "guests", len(manifest.Guests), "events", len(manifest.Events))

	matcher := sheet_2026.NewMatcher(logger)
	failures := []string{}

	for _, g := range manifest.Guests {
		code := result.Codes[g.Name]

		inv, err := matcher.Resolve(guests, events, code)
		if err != nil {
			failures = append(failures, fmt.Sprintf("guest %q: code did not resolve: %v", g.Name, err))
			logger.Error("Code resolution failed", "guest", g.Name, "error", err)
			continue
		}

		if inv.Name != g.Name {
			failures = append(failures, fmt.Sprintf("guest %q: resolved to %q", g.Name, inv.Name))
			logger.Error("Name mismatch", "expected", g.Name, "got", inv.Name)
			continue
		}

		wantParty := len(g.Party)
		if wantParty == 0 {
			wantParty = 1 // the builder defaults a missing party to the guest alone
		}
		if len(inv.Party) != wantParty {
			failures = append(failures, fmt.Sprintf("guest %q: party has %d members, want %d", g.Name, len(inv.Party), wantParty))
			logger.Error("Party mismatch", "guest", g.Name, "got", len(inv.Party), "want", wantParty)
			continue
		}

		if len(inv.Events) != len(manifest.Events) {
			failures = append(failures, fmt.Sprintf("guest %q: sees %d events, want %d", g.Name, len(inv.Events), len(manifest.Events)))
			logger.Error("Event count mismatch", "guest", g.Name, "got", len(inv.Events), "want", len(manifest.Events))
			continue
		}

		logger.Info("✓ Code resolves", "guest", g.Name)
	}

	if len(failures) > 0 {
		logger.Error("✗ Sheet verification failed", "error_count", len(failures))
		for _, f := range failures {
			logger.Error("  Verification error", "details", f)
		}
		return fmt.Errorf("sheet verification failed with %d error(s)", len(failures))
	}

	logger.Info("✓ Sheet verification passed")
	return nil
}

// VerifySealedSheets verifies sheets using default logger settings
func VerifySealedSheets(manifest *sheet_2026.Manifest, result *sheet_2026.BuildResult) error {
	logger := logging.NewLogger("veilsheet-verify", logging.GetLogLevel(), nil)
	return VerifySealedSheetsWithLogger(manifest, result, logger)
}
