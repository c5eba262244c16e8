// Package main implements the rgen CLI for manual operations against the
// readmegend HTTP server.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// serverURL is the base URL for the readmegend HTTP server
	serverURL string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rgen",
	Short: "CLI for readmegen HTTP server operations",
	Long: `rgen is a command-line interface for interacting with the readmegend HTTP server.
It provides commands for summarizing repositories, generating READMEs, and
checking server health. Local directories can also be scanned without a server.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "readmegend server URL")
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(readmeCmd)
}

// healthCmd checks server health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check readmegend server health",
	Long: `Check the health status of the readmegend HTTP server.

Examples:
  # Check health
  rgen health

  # Check health on a different server
  rgen health --server http://localhost:9090`,
	RunE: runHealth,
}

// runHealth handles the health command
func runHealth(cmd *cobra.Command, args []string) error {
	client := newAPIClient(serverURL)

	var resp HealthResponse
	if err := client.getJSON("/health", &resp); err != nil {
		return err
	}

	cmd.Printf("Server Status: %s\n", resp.Status)
	cmd.Printf("Server URL: %s\n", serverURL)
	return nil
}
