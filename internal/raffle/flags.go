package raffle

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagDef defines a command-line flag with its configuration.
type (
	flagType interface {
		string | int | bool | time.Duration
	}

	flagDef[T flagType] struct {
		name         string
		viperKey     string
		defaultValue T
		description  string
	}
)

// Shared flags live on the root command; defaults come from the embedded config, so
// the zero values here only show up in --help.
var (
	stringFlags = []flagDef[string]{
		{"log-level", "logging.level", "", "Log level (debug, info, warn, error)"},
		{"log-format", "logging.format", "", "Log format (json or text)"},
		{"rpc-url", "network.rpc-url", "", "RPC endpoint of the chain the raffle is deployed on"},
		{"wallet-private-key", "wallet.private-key", "", "Player wallet private key (prefer RAFFLE_WALLET_PRIVATE_KEY)"},
		{"addresses-file", "raffle.addresses-file", "", "Per-chain raffle address table (JSON or YAML)"},
	}

	durationFlags = []flagDef[time.Duration]{
		{"poll-interval", "raffle.poll-interval", 0, "Confirmation and log polling interval"},
		{"query-timeout", "raffle.query-timeout", 0, "Upper bound for one state refresh, 0 for none"},
	}

	boolFlags = []flagDef[bool]{
		{"rearm-winner-listener", "raffle.rearm-winner-listener", true, "Keep listening for WinnerPicked after the first event"},
	}

	enterFlags = []flagDef[int]{
		{"confirmations", "raffle.confirmations", 1, "Confirmations to wait for before the entry counts as complete"},
	}

	watchFlags = []flagDef[string]{
		{"metrics-addr", "metrics.addr", "", "Serve prometheus metrics on this address, e.g. :9102"},
	}
)

// BindFlags declares the shared flags on fs, usually the root command's persistent
// flag set, and binds them to their config keys.
func BindFlags(fs *pflag.FlagSet) error {
	if err := declareFlags(fs, stringFlags); err != nil {
		return err
	}
	if err := declareFlags(fs, durationFlags); err != nil {
		return err
	}
	return declareFlags(fs, boolFlags)
}

// declareFlags declares multiple flags and binds them to viper configuration keys.
func declareFlags[T flagType](fs *pflag.FlagSet, flags []flagDef[T]) error {
	for _, flag := range flags {
		if err := declareFlag(fs, flag.name, flag.viperKey, flag.defaultValue, flag.description); err != nil {
			return err
		}
	}
	return nil
}

// declareFlag declares a single flag and binds it to a viper configuration key.
// The type parameter T determines the flag type.
func declareFlag[T flagType](fs *pflag.FlagSet, flagName, viperKey string, defaultValue T, description string) error {
	switch value := any(defaultValue).(type) {
	case string:
		fs.String(flagName, value, description)
	case int:
		fs.Int(flagName, value, description)
	case bool:
		fs.Bool(flagName, value, description)
	case time.Duration:
		fs.Duration(flagName, value, description)
	default:
		return fmt.Errorf("unsupported flag type %T for --%s", defaultValue, flagName)
	}
	return viper.BindPFlag(viperKey, fs.Lookup(flagName))
}
