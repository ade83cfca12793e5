package sheet_2026

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Manifest is the sealer's input: the cleartext guest list and event program.
// It is the only place the whole wedding exists unencrypted, so it should
// never leave the couple's machine.
type Manifest struct {
	Wedding struct {
		Title    string `yaml:"title"`
		EventKey string `yaml:"event_key"`
	} `yaml:"wedding"`
	Guests []ManifestGuest `yaml:"guests"`
	Events []ManifestEvent `yaml:"events"`
}

// ManifestGuest describes one invitation. Code is optional; the builder
// generates missing codes and reports them.
type ManifestGuest struct {
	Code  string   `yaml:"code"`
	Name  string   `yaml:"name"`
	Party []string `yaml:"party"`
}

// ManifestEvent describes one event program row
type ManifestEvent struct {
	Title   string `yaml:"title"`
	Date    string `yaml:"date"`
	Time    string `yaml:"time"`
	Venue   string `yaml:"venue"`
	Address string `yaml:"address"`
	Note    string `yaml:"note"`
}

// LoadManifest reads and validates a YAML manifest
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks the manifest for the mistakes worth failing a build over
func (m *Manifest) Validate() error {
	if len(m.Guests) == 0 {
		return fmt.Errorf("manifest has no guests")
	}

	seen := make(map[string]int)
	for i, g := range m.Guests {
		if g.Name == "" {
			return fmt.Errorf("guest %d has no name", i+1)
		}
		if g.Code == "" {
			continue
		}
		if prev, ok := seen[g.Code]; ok {
			// The matcher stops at the first hit, so a duplicate code
			// silently shadows the later guest. Refuse to build.
			return fmt.Errorf("guests %d and %d share code %q", prev+1, i+1, g.Code)
		}
		seen[g.Code] = i
	}

	return nil
}
