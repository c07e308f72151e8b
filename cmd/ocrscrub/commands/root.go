// Package commands implements the CLI commands for ocrscrub.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "ocrscrub",
	Short: "Sanitize and score OCR-extracted markdown",
	Long: `Ocrscrub removes extraction artifacts from OCR-produced markdown -
stray layout tags, glyph-substitution placeholders, characters leaked in
from unrelated scripts - and scores how much of each document was noise.

Lines that lose significant content are annotated with a
<!-- text-missing --> comment so the damage stays greppable downstream.

Examples:
  # Clean every markdown file under a directory tree
  ocrscrub clean -i ./markdown -o ./cleaned --scripts greek,latin

  # Score extraction quality and write a CSV report
  ocrscrub analyze -i ./markdown --report quality.csv --detailed --summary

  # Find structurally broken markdown tables
  ocrscrub tables -i ./markdown --report tables.csv`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.ocrscrub.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".ocrscrub")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("OCRSCRUB")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
