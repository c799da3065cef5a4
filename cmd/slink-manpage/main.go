package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/slink/cmd/slink"
	"github.com/arthur-debert/slink/internal/version"
)

func main() {
	rootCmd := slink.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SLINK",
		Section: "1",
		Source:  "slink " + version.Version,
		Manual:  "slink manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
