// Package app implements the main application commands.
package app

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yacook/yacook/internal/config"
	"github.com/yacook/yacook/internal/logger"
)

const (
	// envPrefix prefixes the environment variables read by viper, e.g. YACOOK_CONFIG.
	envPrefix = "YACOOK"

	keyConfig = "config"
)

var (
	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "yacook",
		Short: "yacook is a recipe sharing website",
		Long: `yacook is a recipe sharing website: authors publish recipes with images,
readers comment on them and follow their favourite authors.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String(keyConfig, "./etc/", "Directory holding main.toml")

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlag(keyConfig, rootCmd.PersistentFlags().Lookup(keyConfig)); err != nil {
		panic(err)
	}
}

// configDir returns the config directory from --config or YACOOK_CONFIG, always with a trailing slash.
func configDir() string {
	dir := viper.GetString(keyConfig)
	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	return dir
}

// loadConfig reads the configuration and sets up logging. Every command runs it first.
func loadConfig() error {
	var err error

	if cfg, err = config.ReadConfig(configDir()); err != nil {
		return err //nolint:wrapcheck
	}

	return logger.Init(cfg.Log) //nolint:wrapcheck
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
