package main

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/myrjola/veritruth/cmd/cli/check"
	"github.com/myrjola/veritruth/internal/errors"
	"github.com/spf13/cobra"
	"os"
)

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(check.Group)
	rootCmd.AddCommand(check.Check)
	rootCmd.AddCommand(check.Prompts)
}

var rootCmd = &cobra.Command{
	Use:  "veritruth-cli",
	Long: `Command line utilities for VeriTruth https://github.com/myrjola/veritruth`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
