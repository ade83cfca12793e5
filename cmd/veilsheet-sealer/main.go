package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/veilsheet/veilsheet/pkg"
	"github.com/veilsheet/veilsheet/pkg/logging"
	"github.com/veilsheet/veilsheet/pkg/vsf/sheet_2026"
)

const version = "0.1.0"

var (
	manifestPath string
	outDir       string
	codeLength   int
	noVerify     bool
	logLevel     string
	rootCmd      *cobra.Command
	versionFlag  bool
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
		Use:   "veilsheet-sealer",
		Short: "Seal a wedding manifest into publishable sheets",
		Long:  `Seal a wedding manifest into publishable guests.csv and events.csv sheets`,
		Run:   sealSheets,
	}

	rootCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Path to wedding manifest YAML (required)")
	rootCmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "Directory to write the sealed sheets into")
	rootCmd.Flags().IntVar(&codeLength, "code-length", 0, "Length of generated invite codes (default 6)")
	rootCmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip resolving every code back after sealing")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	if err := rootCmd.MarkFlagRequired("manifest"); err != nil {
		panic(err)
	}
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("veilsheet-sealer %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func sealSheets(cmd *cobra.Command, args []string) {
	if versionFlag {
		fmt.Printf("veilsheet-sealer %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		return
	}

	level := logLevel
	if level == "" {
		level = logging.GetLogLevel()
	}
	logger := logging.NewLogger("veilsheet-sealer", level, nil)

	manifest, err := sheet_2026.LoadManifest(manifestPath)
	if err != nil {
		logger.Error("Failed to load manifest", "error", err)
		os.Exit(1)
	}

	result, err := sheet_2026.NewBuilder(manifest, codeLength, logger).Build(outDir)
	if err != nil {
		logger.Error("Failed to seal sheets", "error", err)
		os.Exit(1)
	}

	if !noVerify {
		if err := pkg.VerifySealedSheetsWithLogger(manifest, result, logger); err != nil {
			logger.Error("Verification failed", "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Sealed %d guests and %d events\n", len(manifest.Guests), len(manifest.Events))
	fmt.Printf("  %s\n", result.GuestSheetPath)
	fmt.Printf("  %s\n", result.EventSheetPath)

	if result.EventKeyNew {
		fmt.Printf("Generated event key: %s (record it; rebuilding needs it)\n", result.EventKey)
	}
	if len(result.GeneratedCodes) > 0 {
		fmt.Println("Generated invite codes:")
		for _, name := range result.GeneratedCodes {
			fmt.Printf("  %-30s %s\n", name, result.Codes[name])
		}
	}
}
