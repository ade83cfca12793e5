package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/veilsheet/veilsheet/pkg/logging"
	"github.com/veilsheet/veilsheet/pkg/utils"
	"github.com/veilsheet/veilsheet/pkg/vsf/sheet_2026"
)

const version = "0.1.0"

var (
	code        string
	eventSource string
	jsonOutput  bool
	noCache     bool
	logLevel    string
	rootCmd     *cobra.Command
	versionFlag bool
)

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "veilsheet-resolver <guest-sheet>",
		Short: "Resolve an invite code against sealed sheets",
		Long:  `Resolve an invite code against sealed sheets. The sheet argument is a local path or an HTTP(S) URL; fetched sheets are cached for offline fallback.`,
		Args:  cobra.ExactArgs(1),
		Run:   resolveCode,
	}

	rootCmd.Flags().StringVarP(&code, "code", "c", "", "Invite code to resolve (required)")
	rootCmd.Flags().StringVarP(&eventSource, "events", "e", "", "Event sheet path or URL")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the invitation as JSON")
	rootCmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the snapshot cache entirely")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	if err := rootCmd.MarkFlagRequired("code"); err != nil {
		panic(err)
	}
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("veilsheet-resolver %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// loadSheet reads a sheet from a local path or fetches it over HTTP. Fetched
// sheets refresh the snapshot cache; when the fetch fails, an unexpired
// snapshot is used instead.
func loadSheet(ctx context.Context, source string, logger hclog.Logger) ([]byte, error) {
	if !isURL(source) {
		return os.ReadFile(source)
	}

	data, err := sheet_2026.FetchSheet(ctx, source, logger)
	if err == nil {
		if !noCache {
			if cacheErr := sheet_2026.SaveSnapshot(source, data, logger); cacheErr != nil {
				logger.Warn("Could not cache snapshot", "source", source, "error", cacheErr)
			}
		}
		return data, nil
	}

	if noCache {
		return nil, err
	}

	logger.Warn("Fetch failed, trying cached snapshot", "source", source, "error", err)
	data, cacheErr := sheet_2026.LoadSnapshot(source, logger)
	if cacheErr != nil {
		return nil, fmt.Errorf("fetch failed (%v) and no usable snapshot (%v)", err, cacheErr)
	}
	return data, nil
}

func resolveCode(cmd *cobra.Command, args []string) {
	if versionFlag {
		fmt.Printf("veilsheet-resolver %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		return
	}

	level := logLevel
	if level == "" {
		level = logging.GetLogLevel()
	}
	logger := logging.NewLogger("veilsheet-resolver", level, nil)

	ctx := context.Background()

	guestData, err := loadSheet(ctx, args[0], logger)
	if err != nil {
		logger.Error("Failed to load guest sheet", "error", err)
		os.Exit(1)
	}

	reader := sheet_2026.NewSheetReader(logger)

	guests, err := reader.ReadGuests(bytes.NewReader(guestData))
	if err != nil {
		logger.Error("Failed to parse guest sheet", "error", err)
		os.Exit(1)
	}

	var events *sheet_2026.EventTable
	if eventSource != "" {
		eventData, err := loadSheet(ctx, eventSource, logger)
		if err != nil {
			logger.Error("Failed to load event sheet", "error", err)
			os.Exit(1)
		}
		events, err = reader.ReadEvents(bytes.NewReader(eventData))
		if err != nil {
			logger.Error("Failed to parse event sheet", "error", err)
			os.Exit(1)
		}
	}

	inv, err := sheet_2026.NewMatcher(logger).Resolve(guests, events, utils.NormalizeCode(code))
	if errors.Is(err, sheet_2026.ErrNoMatch) {
		fmt.Println("no match")
		os.Exit(1)
	}
	if err != nil {
		logger.Error("Failed to resolve code", "error", err)
		os.Exit(1)
	}

	if jsonOutput {
		out, err := json.MarshalIndent(inv, "", "  ")
		if err != nil {
			logger.Error("Failed to encode invitation", "error", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	printInvitation(inv)
}

func printInvitation(inv *sheet_2026.Invitation) {
	fmt.Printf("Invitation for %s\n", inv.Name)
	fmt.Printf("  Party: %s\n", strings.Join(inv.Party, ", "))
	for _, ev := range inv.Events {
		fmt.Printf("  Event: %s\n", ev.Title)
		if ev.Date != "" || ev.Time != "" {
			fmt.Printf("    When:  %s %s\n", ev.Date, ev.Time)
		}
		if ev.Venue != "" {
			fmt.Printf("    Where: %s\n", ev.Venue)
		}
		if ev.Address != "" {
			fmt.Printf("           %s\n", ev.Address)
		}
		if ev.Note != "" {
			fmt.Printf("    Note:  %s\n", ev.Note)
		}
	}
}
