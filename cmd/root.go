package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pos",
	Short: "POS backend CLI: scheduler, migrations and data tooling",
}

// Execute runs the CLI. Applies custom-registered commands first.
func Execute() {
	Apply()
	fig := figure.NewFigure("POS ->", "slant", true)
	fig.Print()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
