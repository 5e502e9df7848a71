package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/compose-network/lottery-entrance/configs"
	"github.com/compose-network/lottery-entrance/internal/logger"
	"github.com/compose-network/lottery-entrance/internal/raffle"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName   = "lottery"
	envPrefix = "RAFFLE"
)

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "CLI for viewing and entering an on-chain raffle",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Initialize(slog.LevelInfo, string(configs.LogFormatJSON))

		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			const errMsg = "error reading .env file"
			slog.With("err", err.Error()).Error(errMsg)
			return errors.Join(err, errors.New(errMsg))
		}

		if err := configs.ApplyDefaults(viper.GetViper()); err != nil {
			return err
		}

		viper.SetEnvPrefix(envPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		viper.AutomaticEnv()

		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			viper.AddConfigPath(execDir)
		}
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")

		// A missing config file is fine, the embedded defaults cover every key.
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				slog.Debug("no config file found, will rely on flags and defaults")
			} else {
				const errMsg = "error reading config file"
				slog.With("err", err.Error()).Error(errMsg)
				return errors.Join(err, errors.New(errMsg))
			}
		}

		if err := viper.Unmarshal(&configs.Values); err != nil {
			const errMsg = "unable to decode application config"
			slog.With("err", err.Error()).Error(errMsg)
			return errors.Join(err, errors.New(errMsg))
		}

		logger.Initialize(logger.ParseLevel(configs.Values.Logging.Level), string(configs.Values.Logging.Format))

		if used := viper.ConfigFileUsed(); used != "" {
			slog.With("config_file", used).Debug("config file loaded")
		}
		slog.With("config", configs.Values).Debug("configuration loaded")

		return nil
	},
}

func main() {
	if err := raffle.BindFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(raffle.StatusCMD)
	rootCmd.AddCommand(raffle.EnterCMD)
	rootCmd.AddCommand(raffle.WatchCMD)

	if err := rootCmd.Execute(); err != nil {
		slog.With("err", err.Error()).Error("failed to execute root command")
		os.Exit(1)
	}
}
