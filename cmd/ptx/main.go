package main

import (
	"fmt"
	"os"

	"ptx/internal/cli"
	"ptx/internal/cli/commands"
	"ptx/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "ptx",
		Short:   "Parameterized PHPUnit test expander and runner",
		Long:    `A parallel test processor for PHPUnit tests that understands data providers. Parameterized test declarations are expanded into individual test cases ahead of execution, so each data row can be scheduled, reported, and rerun on its own.`,
		Version: version,
	}

	cfg := config.New()

	var flags cli.Flags

	cmds := commands.NewCommands(cfg)
	cmds.Register(rootCmd, &flags, cfg)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
