package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/flashpack/internal/cli"
	"codeberg.org/snonux/flashpack/internal/models"
	"codeberg.org/snonux/flashpack/internal/processor"
)

func main() {
	flags := cli.NewFlags()

	rootCmd := cli.CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Handle --list-locales flag
	if flags.ListLocales {
		return models.NewLister("").ListLocales()
	}

	// Handle --list-models flag
	if flags.ListModels {
		return models.NewLister(cli.GetOpenAIKey()).ListModels()
	}

	if err := flags.Validate(); err != nil {
		return err
	}

	proc := processor.NewProcessor(flags)

	// Handle --export flag: package back to CSV
	if flags.ExportFile != "" {
		return proc.Export(flags.ExportFile)
	}

	if len(args) == 0 {
		return fmt.Errorf("no input files given (see --help)")
	}

	outputPath, err := proc.Build(cmd.Context(), args)
	if err != nil {
		return err
	}

	fmt.Printf("Package created: %s\n", outputPath)
	return nil
}
