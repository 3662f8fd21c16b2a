package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = ""
)

var rootCmd = &cobra.Command{
	Use:   "ascomp",
	Short: "ASCOMP projector service backend",
	Long: `ascomp serves the projector maintenance API: ASCOMP checklist reports
with PDF and Word output, RMAs, DTRs, sites and projectors.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("Version:   %s\nBuildTime: %s\n", Version, BuildTime))
	rootCmd.AddCommand(serveCmd, migrateCmd, importCmd, renderCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
