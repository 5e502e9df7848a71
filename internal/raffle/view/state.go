package view

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
)

// State is what the view displays. Every field is fetched by its own query, so the
// four values may come from slightly different block heights.
type State struct {
	EntranceFeeWei           string `json:"entranceFeeWei"`
	PlayerCount              string `json:"playerCount"`
	RemainingIntervalSeconds string `json:"remainingIntervalSeconds"`
	MostRecentWinner         string `json:"mostRecentWinner"`
}

// InitialState is the state before the first successful refresh.
func InitialState() State {
	return State{
		EntranceFeeWei:           "0",
		PlayerCount:              "0",
		RemainingIntervalSeconds: "0",
		MostRecentWinner:         "0",
	}
}

func newState(fee, players, interval *big.Int, winner common.Address) State {
	return State{
		EntranceFeeWei:           fee.String(),
		PlayerCount:              players.String(),
		RemainingIntervalSeconds: interval.String(),
		MostRecentWinner:         winner.Hex(),
	}
}

// EntranceFee parses EntranceFeeWei.
func (s State) EntranceFee() (*big.Int, error) {
	fee, ok := new(big.Int).SetString(s.EntranceFeeWei, 10)
	if !ok {
		return nil, fmt.Errorf("invalid entrance fee %q", s.EntranceFeeWei)
	}
	return fee, nil
}

// Snapshot is the serialisable view, as written by `status --out`.
type Snapshot struct {
	ChainID   int64  `json:"chainId"`
	Supported bool   `json:"supported"`
	Address   string `json:"address,omitempty"`
	Busy      bool   `json:"busy"`
	State     State  `json:"state"`
}

const etherDecimals = 18

// FormatEther renders a decimal wei amount in ether, keeping at least one fractional
// digit ("1.0", "0.01").
func FormatEther(wei string) (string, error) {
	amount, ok := new(big.Int).SetString(wei, 10)
	if !ok {
		return "", fmt.Errorf("invalid wei amount %q", wei)
	}

	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
		amount.Neg(amount)
	}

	whole, frac := new(big.Int).QuoRem(amount, big.NewInt(params.Ether), new(big.Int))

	digits := frac.String()
	fraction := strings.TrimRight(strings.Repeat("0", etherDecimals-len(digits))+digits, "0")
	if fraction == "" {
		fraction = "0"
	}

	return sign + whole.String() + "." + fraction, nil
}
