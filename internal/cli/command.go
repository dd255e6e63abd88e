package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/livetrans/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "livetrans [text]",
		Short: "Translate as you type",
		Long: `livetrans translates text while you type. The source language is
detected automatically unless you pick one.

Examples:
  livetrans                          # Launch interactive GUI (default)
  livetrans "Guten Morgen"           # Translate once and print the result
  livetrans --batch phrases.txt      # Translate every line of a file
  livetrans --interactive            # Translate lines read from the terminal`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.livetrans.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Local flags
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate lines from file (one per line, optional 'src>tgt:' prefix)")
	cmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "Read lines from the terminal and translate each one")
	cmd.Flags().BoolVar(&flags.ListLanguages, "list-languages", false, "List supported source languages and their targets")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")

	// Translation flags
	cmd.Flags().StringVarP(&flags.Backend, "backend", "b", flags.Backend, "Translation backend: papago, openai, gemini")
	cmd.Flags().StringVar(&flags.Detector, "detector", flags.Detector, "Language detector: remote (backend) or local (offline)")
	cmd.Flags().StringVar(&flags.HomeLanguage, "home", flags.HomeLanguage, "Home language, the target for foreign text")
	cmd.Flags().StringVar(&flags.SecondaryLanguage, "secondary", flags.SecondaryLanguage, "Target for text written in the home language")
	cmd.Flags().StringVarP(&flags.Source, "source", "s", "", "Source language (default: detect)")
	cmd.Flags().StringVarP(&flags.Target, "target", "t", "", "Target language for an explicit source")
	cmd.Flags().StringVar(&flags.Locale, "locale", flags.Locale, "Language of messages: ko or en")
	cmd.Flags().DurationVar(&flags.Debounce, "debounce", flags.Debounce, "Quiet period before typed text is translated")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout of a single remote call")
	cmd.Flags().BoolVar(&flags.Breaker, "breaker", false, "Stop calling the backend for a while after repeated failures")

	// Backend flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("translation.backend", cmd.Flags().Lookup("backend"))
	viper.BindPFlag("translation.detector", cmd.Flags().Lookup("detector"))
	viper.BindPFlag("translation.home_language", cmd.Flags().Lookup("home"))
	viper.BindPFlag("translation.secondary_language", cmd.Flags().Lookup("secondary"))
	viper.BindPFlag("translation.locale", cmd.Flags().Lookup("locale"))
	viper.BindPFlag("translation.debounce", cmd.Flags().Lookup("debounce"))
	viper.BindPFlag("translation.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("breaker.enabled", cmd.Flags().Lookup("breaker"))
	viper.BindPFlag("openai.model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("gemini.model", cmd.Flags().Lookup("gemini-model"))
}

// InitConfig initializes viper configuration. Variables from a .env file
// in the working directory are loaded first.
func InitConfig(cfgFile string) {
	// .env is optional, the variables may come from the environment
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".livetrans" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".livetrans")
	}

	// Environment variables, LIVETRANS_PAPAGO_CLIENT_ID for papago.client_id
	viper.SetEnvPrefix("LIVETRANS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.api_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini.api_key")
}

// GetPapagoCredentials retrieves the Naver client id and secret from
// environment or config
func GetPapagoCredentials() (id, secret string) {
	id = os.Getenv("NAVER_CLIENT_ID")
	if id == "" {
		id = viper.GetString("papago.client_id")
	}
	secret = os.Getenv("NAVER_CLIENT_SECRET")
	if secret == "" {
		secret = viper.GetString("papago.client_secret")
	}
	return id, secret
}
