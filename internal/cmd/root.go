package cmd

import (
	"strings"

	"github.com/Iron-Ham/hestia/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "hestia",
	Short: "Priority-ceiling building controller simulation",
	Long: `Hestia runs a set of concurrent building-control tasks (temperature,
light, motion, display, log drain, emergency, heartbeat) that coordinate
over a shared output panel through priority-ceiling guards, with a
terminal dashboard showing the live state.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/hestia/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
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
		viper.AddConfigPath("$HOME/.config/hestia")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HESTIA")
	// Replace dots with underscores for nested keys in env vars
	// e.g., HESTIA_CONTROLLER_OVERHEAT_CELSIUS for controller.overheat_celsius
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
