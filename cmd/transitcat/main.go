// Command transitcat builds or queries a transport catalogue. Two
// subcommands, both reading a structured JSON envelope from standard
// input.
package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "transitcat",
		Short: "Transport catalogue builder and query engine",
	}
	root.AddCommand(buildCmd())
	root.AddCommand(queryCmd())
	return root
}
