package sheet_2026

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/veilsheet/veilsheet/pkg/utils"
)

// Builder seals a manifest into publishable CSV sheets.
//
// The build workflow:
// 1. Assign invite codes to guests that have none, rejecting collisions
// 2. Ensure the per-wedding event key exists
// 3. Seal every guest cell under that guest's code
// 4. Seal every event cell under the event key
// 5. Write guests.csv and events.csv
type Builder struct {
	manifest   *Manifest
	codeLength int
	logger     hclog.Logger
}

// BuildResult reports what the builder produced, including any codes and keys
// it generated. The caller owns telling the couple about them.
type BuildResult struct {
	GuestSheetPath string
	EventSheetPath string
	// Codes maps guest name to invite code for every guest in the manifest
	Codes map[string]string
	// GeneratedCodes lists the guests whose codes were invented by this build
	GeneratedCodes []string
	EventKey       string
	EventKeyNew    bool
}

// NewBuilder creates a builder for a validated manifest. codeLength <= 0
// selects the default.
func NewBuilder(manifest *Manifest, codeLength int, logger hclog.Logger) *Builder {
	if codeLength <= 0 {
		codeLength = utils.DefaultCodeLength
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Builder{
		manifest:   manifest,
		codeLength: codeLength,
		logger:     logger,
	}
}

// Build seals the manifest and writes both sheets into outDir
func (b *Builder) Build(outDir string) (*BuildResult, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &BuildResult{
		GuestSheetPath: filepath.Join(outDir, GuestSheetName),
		EventSheetPath: filepath.Join(outDir, EventSheetName),
		Codes:          make(map[string]string, len(b.manifest.Guests)),
	}

	if err := b.assignCodes(result); err != nil {
		return nil, err
	}
	if err := b.ensureEventKey(result); err != nil {
		return nil, err
	}

	b.logger.Info("📦 Sealing guest records", "count", len(b.manifest.Guests))
	if err := b.writeGuestSheet(result); err != nil {
		return nil, err
	}

	b.logger.Info("📦 Sealing event program", "count", len(b.manifest.Events))
	if err := b.writeEventSheet(result); err != nil {
		return nil, err
	}

	b.logger.Info("✅ Sheets written",
		"guests", result.GuestSheetPath,
		"events", result.EventSheetPath,
		"generated_codes", len(result.GeneratedCodes),
	)
	return result, nil
}

// assignCodes fills in missing invite codes, keeping the whole code space
// collision-free across manual and generated codes.
func (b *Builder) assignCodes(result *BuildResult) error {
	taken := make(map[string]bool)
	for _, g := range b.manifest.Guests {
		if g.Code != "" {
			taken[g.Code] = true
		}
	}

	for i := range b.manifest.Guests {
		g := &b.manifest.Guests[i]
		if g.Code == "" {
			for attempt := 0; ; attempt++ {
				if attempt == 100 {
					return fmt.Errorf("could not find a free code for guest %q", g.Name)
				}
				code, err := utils.GenerateCode(b.codeLength)
				if err != nil {
					return fmt.Errorf("generating code for guest %q: %w", g.Name, err)
				}
				if !taken[code] {
					g.Code = code
					taken[code] = true
					result.GeneratedCodes = append(result.GeneratedCodes, g.Name)
					b.logger.Debug("🎲 Generated invite code", "guest", g.Name)
					break
				}
			}
		}
		result.Codes[g.Name] = g.Code
	}

	return nil
}

func (b *Builder) ensureEventKey(result *BuildResult) error {
	if b.manifest.Wedding.EventKey == "" {
		key, err := utils.GenerateEventKey()
		if err != nil {
			return fmt.Errorf("generating event key: %w", err)
		}
		b.manifest.Wedding.EventKey = key
		result.EventKeyNew = true
		b.logger.Debug("🎲 Generated event key")
	}
	result.EventKey = b.manifest.Wedding.EventKey
	return nil
}

func (b *Builder) writeGuestSheet(result *BuildResult) error {
	rows := make([][]string, 0, len(b.manifest.Guests)+1)
	rows = append(rows, GuestHeaders)

	for _, g := range b.manifest.Guests {
		party := g.Party
		if len(party) == 0 {
			party = []string{g.Name}
		}

		rows = append(rows, []string{
			SealCell(g.Code, g.Code),
			SealCell(g.Name, g.Code),
			SealCell(strings.Join(party, PartySeparator), g.Code),
			SealCell(result.EventKey, g.Code),
		})
	}

	return writeCSV(result.GuestSheetPath, rows)
}

func (b *Builder) writeEventSheet(result *BuildResult) error {
	key := result.EventKey

	rows := make([][]string, 0, len(b.manifest.Events)+1)
	rows = append(rows, EventHeaders)

	for _, ev := range b.manifest.Events {
		rows = append(rows, []string{
			sealOrEmpty(ev.Title, key),
			sealOrEmpty(ev.Date, key),
			sealOrEmpty(ev.Time, key),
			sealOrEmpty(ev.Venue, key),
			sealOrEmpty(ev.Address, key),
			sealOrEmpty(ev.Note, key),
		})
	}

	return writeCSV(result.EventSheetPath, rows)
}

// sealOrEmpty leaves empty optional cells empty. Sealing "" would produce an
// unrecoverable cell (the single-word transform does not invert), and an
// empty cell already reads back as an empty field.
func sealOrEmpty(plaintext, key string) string {
	if plaintext == "" {
		return ""
	}
	return SealCell(plaintext, key)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
