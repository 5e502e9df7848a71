package raffle

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/compose-network/lottery-entrance/configs"
	"github.com/compose-network/lottery-entrance/internal/infra/filesystem"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	StatusCMD = &cobra.Command{
		Use:   "status",
		Short: "Show the raffle state for the connected chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}

			if err := newService(cmd).Status(cmd.Context(), cfg, out); err != nil {
				return fmt.Errorf("error occurred reading raffle status: %w", err)
			}
			return nil
		},
	}

	EnterCMD = &cobra.Command{
		Use:   "enter",
		Short: "Enter the raffle paying the current entrance fee",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := newService(cmd).Enter(cmd.Context(), cfg); err != nil {
				return fmt.Errorf("error occurred entering raffle: %w", err)
			}
			return nil
		},
	}

	WatchCMD = &cobra.Command{
		Use:   "watch",
		Short: "Follow the raffle and refresh whenever a winner is picked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := newService(cmd).Watch(ctx, cfg); err != nil {
				return fmt.Errorf("error occurred watching raffle: %w", err)
			}
			return nil
		},
	}
)

func init() {
	StatusCMD.Flags().String("out", "", "Also write the raffle snapshot to this JSON file")

	if err := declareFlags(EnterCMD.Flags(), enterFlags); err != nil {
		panic(err)
	}
	if err := declareFlags(WatchCMD.Flags(), watchFlags); err != nil {
		panic(err)
	}
}

func newService(cmd *cobra.Command) *Service {
	return NewService(filesystem.NewReader(), filesystem.NewWriter(), cmd.OutOrStdout())
}

func loadConfig() (configs.Config, error) {
	// Re-unmarshal to include flag overrides.
	if err := viper.Unmarshal(&configs.Values); err != nil {
		return configs.Config{}, fmt.Errorf("failed to unmarshal config with flag overrides: %w", err)
	}
	if err := configs.Values.Validate(); err != nil {
		return configs.Config{}, err
	}
	return configs.Values, nil
}
