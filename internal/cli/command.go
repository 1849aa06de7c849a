package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/flashpack/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flashpack [csv-file...]",
		Short: "Study-card package builder",
		Long: `flashpack converts semicolon-delimited word-pair files into Anki
study-card packages, optionally synthesizing pronunciation audio for the
learning-language side via OpenAI TTS.

Multiple input files are merged before the deck is built. The inverse path
reads an existing package back into the tabular format.

Examples:
  flashpack words.csv -o polish.apkg            # Build a one-way deck
  flashpack words.csv -b --audio -l it-IT       # Bidirectional with Italian TTS
  flashpack a.csv b.csv -o merged.apkg          # Merge two inputs
  flashpack --export polish.apkg -o words.csv   # Package back to CSV`,
		Args:    cobra.ArbitraryArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.flashpack.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Output, "output", "o", flags.Output, "Output path (.apkg, or .csv with --export)")
	cmd.Flags().StringVarP(&flags.DeckName, "name", "n", flags.DeckName, "Deck name")
	cmd.Flags().Int64Var(&flags.DeckID, "deck-id", 0, "Deck identifier (default: derived from current time)")
	cmd.Flags().BoolVarP(&flags.Bidirectional, "bidirectional", "b", false, "Create cards in both directions")
	cmd.Flags().BoolVar(&flags.WithAudio, "audio", false, "Synthesize audio for the learning-language side")
	cmd.Flags().StringVarP(&flags.Locale, "locale", "l", flags.Locale, "Locale of the learning language (e.g. it-IT)")
	cmd.Flags().StringVarP(&flags.AudioFormat, "format", "f", flags.AudioFormat, "Audio format (mp3 or wav)")
	cmd.Flags().StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "TTS provider (openai or espeak)")
	cmd.Flags().StringVar(&flags.ExportFile, "export", "", "Read an existing package back to CSV instead of building one")
	cmd.Flags().BoolVar(&flags.ListLocales, "list-locales", false, "List locales with a configured TTS voice")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI TTS models for the current API key")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", "", "OpenAI voice override (default: per-locale voice)")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("audio.provider", cmd.Flags().Lookup("audio-provider"))
	viper.BindPFlag("audio.format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("audio.locale", cmd.Flags().Lookup("locale"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("audio.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("audio.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("deck.name", cmd.Flags().Lookup("name"))
	viper.BindPFlag("deck.bidirectional", cmd.Flags().Lookup("bidirectional"))
	viper.BindPFlag("output.path", cmd.Flags().Lookup("output"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".flashpack")
	}

	viper.SetEnvPrefix("FLASHPACK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("audio.openai_key")
}
