// Command flightdesk runs the FlightManager booking site and inspects its
// navigation table.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

var getenv = os.Getenv

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "flightdesk",
		Short: "FlightManager booking site",
		Long: `flightdesk serves the FlightManager booking site: flight search, seat
selection, passengers, payment and account pages in front of the flight
booking API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to flightdesk.yaml")

	cmd.AddCommand(
		serveCmd(&configPath),
		routesCmd(),
		matchCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flightdesk %s (%s)\n", version, commit)
		},
	}
}
