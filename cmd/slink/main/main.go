package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/slink/cmd/slink"
)

func main() {
	rootCmd := slink.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, pterm.NewStyle(pterm.FgRed).Sprintf("Error: %v", err))
		os.Exit(1)
	}
}
