// Command skyseeker computes and displays the positions of stars, planets,
// the Moon and the Sun for an observer on Earth.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/litescript/skyseeker/internal/version"
)

// Flags shared by every command
var (
	configPath string
	logLevel   string
	lonFlag    string
	latFlag    string
	catalogArg string
)

var rootCmd = &cobra.Command{
	Use:     "skyseeker",
	Short:   "Observer-centric sky positions for stars, planets, the Moon and the Sun",
	Version: version.Version,
	// Errors are printed by main.
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "TOML config file")
	pf.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
	pf.StringVar(&lonFlag, "lon", "", "Observer longitude, decimal degrees or ±DD:MM:SS, east positive")
	pf.StringVar(&latFlag, "lat", "", "Observer latitude, decimal degrees or ±DD:MM:SS, north positive")
	pf.StringVar(&catalogArg, "catalog", "", "Encoded catalog file; overrides config")

	rootCmd.AddCommand(skyCmd, positionCmd, ingestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
