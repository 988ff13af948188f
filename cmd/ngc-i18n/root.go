package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ngc-i18n/packages/core/src/config"
	"ngc-i18n/packages/core/src/render3/i18n"
	"ngc-i18n/packages/core/src/util"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ngc-i18n",
	Short: "Compile translated messages into i18n instruction streams.",
	Long: `ngc-i18n compiles translated messages (text, bindings, element placeholders
and ICU plural/select expressions) into the create, update and remove
instructions executed by the i18n runtime, and can render them.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return util.SetLogLevel(viper.GetString("loglevel"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ngc-i18n.yaml)")

	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("locale", "en-US", "Locale used to select plural cases")
	rootCmd.PersistentFlags().Int("decls", 16, "Number of template slots placeholders may reference")
	rootCmd.PersistentFlags().Int("parent", -1, "Slot of the element hosting the i18n block")
	rootCmd.PersistentFlags().String("marker", "", "ASCII stand-in for the \\uFFFD marker in messages typed on the command line")

	for _, name := range []string{"loglevel", "locale", "decls", "parent", "marker"} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults(viper.GetViper())
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".ngc-i18n")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("NGC_I18N")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			util.Log.WithError(err).Warn("could not read config file")
		}
	}
}

// normalizeMessage replaces the command line stand-in for the marker.
func normalizeMessage(message string) string {
	if marker := viper.GetString("marker"); marker != "" {
		return strings.ReplaceAll(message, marker, i18n.Marker)
	}
	return message
}
