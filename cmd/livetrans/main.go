package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/livetrans/internal/catalog"
	"codeberg.org/snonux/livetrans/internal/cli"
	"codeberg.org/snonux/livetrans/internal/logging"
	"codeberg.org/snonux/livetrans/internal/models"
	"codeberg.org/snonux/livetrans/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	config := cli.LoadConfig()

	logger, err := logging.New(config.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(config.OpenAI.APIKey, config.OpenAI.BaseURL)
		return lister.ListAvailableModels(cmd.Context(), os.Stdout)
	}

	// The language table is embedded, listing it needs no backend
	if flags.ListLanguages {
		processor.ListLanguages(os.Stdout, catalog.Default())
		return nil
	}

	if err := config.Validate(); err != nil {
		if errors.Is(err, cli.ErrMissingCredentials) {
			fmt.Fprintln(os.Stderr, "Set the credentials in the environment, a .env file or $HOME/.livetrans.yaml")
		}
		return err
	}
	logger.Debugw("Configuration loaded", "backend", config.Backend, "detector", config.Detector,
		"home", config.HomeLanguage, "secondary", config.SecondaryLanguage, "debounce", config.Debounce)

	// Create processor
	proc, err := processor.NewProcessor(flags, config, logger)
	if err != nil {
		return err
	}

	switch {
	case flags.BatchFile != "":
		return proc.ProcessBatch()
	case flags.Interactive:
		return proc.RunInteractive(os.Stdin)
	case len(args) > 0:
		return proc.ProcessSingleText(args[0])
	default:
		// No input provided - launch GUI mode by default
		return proc.RunGUIMode()
	}
}
