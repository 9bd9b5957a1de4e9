package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "madad",
	Short: "Madad — vendor discovery marketplace API",
	Long:  "Madad is a geolocation-based vendor discovery marketplace. Use this CLI to run and manage the service.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(indexEnsureCmd)
	rootCmd.AddCommand(seedCmd)
}
