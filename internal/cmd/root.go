// Package cmd wires the CLI: a root command holding global configuration
// and the decompose subcommand that runs the engine.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/moltbook/decomposer/internal/config"
	"github.com/moltbook/decomposer/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "decomposer",
	Short: "Break complex tasks into structured subtask plans",
	Long: `Decomposer turns free-text task descriptions into structured plans:
subtasks with domains, effort estimates, dependencies, and an execution
recommendation. Assisted decomposition uses external LLM providers when
configured, with a deterministic rule-based fallback that always works.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/decomposer/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "",
		"log level: "+strings.ToLower(strings.Join(logging.ValidLevels(), ", ")))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DECOMPOSER")
	// Replace dots with underscores for nested keys in env vars
	// e.g., DECOMPOSER_ENGINE_MODE for engine.mode
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
