package configs

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var Values Config

type (
	LogFormat string

	Config struct {
		Logging Logging `mapstructure:"logging"`
		Network Network `mapstructure:"network"`
		Wallet  Wallet  `mapstructure:"wallet"`
		Raffle  Raffle  `mapstructure:"raffle"`
		Metrics Metrics `mapstructure:"metrics"`
	}

	Logging struct {
		Level  string    `mapstructure:"level"`
		Format LogFormat `mapstructure:"format"`
	}

	Network struct {
		RPCURL string `mapstructure:"rpc-url"`
	}

	Wallet struct {
		PrivateKey string `mapstructure:"private-key"`
	}

	Raffle struct {
		AddressesFile       string        `mapstructure:"addresses-file"`
		Confirmations       int           `mapstructure:"confirmations"`
		RearmWinnerListener bool          `mapstructure:"rearm-winner-listener"`
		PollInterval        time.Duration `mapstructure:"poll-interval"`
		QueryTimeout        time.Duration `mapstructure:"query-timeout"`
	}

	Metrics struct {
		Addr string `mapstructure:"addr"`
	}
)

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// String hides the wallet key when the config is logged.
func (w Wallet) String() string {
	if w.PrivateKey == "" {
		return "{private-key: <unset>}"
	}
	return "{private-key: <redacted>}"
}

// LogValue keeps the wallet key out of structured logs.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("logging", c.Logging),
		slog.Any("network", c.Network),
		slog.String("wallet", c.Wallet.String()),
		slog.Any("raffle", c.Raffle),
		slog.Any("metrics", c.Metrics),
	)
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Logging.Format {
	case "", LogFormatJSON, LogFormatText:
	default:
		errs = append(errs, fmt.Errorf("logging.format must be either '%s' or '%s'", LogFormatJSON, LogFormatText))
	}

	if c.Network.RPCURL == "" {
		errs = append(errs, errors.New("network.rpc-url is required"))
	}

	if err := c.Raffle.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

func (r *Raffle) Validate() error {
	var errs []error

	if r.AddressesFile == "" {
		errs = append(errs, errors.New("raffle.addresses-file is required"))
	}
	if r.Confirmations < 1 {
		errs = append(errs, errors.New("raffle.confirmations must be at least 1"))
	}
	if r.PollInterval <= 0 {
		errs = append(errs, errors.New("raffle.poll-interval must be greater than 0"))
	}
	if r.QueryTimeout < 0 {
		errs = append(errs, errors.New("raffle.query-timeout must not be negative"))
	}

	return errors.Join(errs...)
}
