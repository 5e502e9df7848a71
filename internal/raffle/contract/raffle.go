// Package contract adapts the generated Raffle binding to the calls the view needs:
// four reads, the payable entry and the WinnerPicked wait.
package contract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/compose-network/lottery-entrance/internal/logger"
	"github.com/compose-network/lottery-entrance/internal/raffle/bindings"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

var (
	ErrReverted       = errors.New("entry transaction reverted")
	ErrInvalidAddress = errors.New("raffle address is the zero address")
)

type (
	// Backend is the node connection; *ethclient.Client satisfies it.
	Backend interface {
		bind.ContractBackend
		bind.DeployBackend
		BlockNumber(ctx context.Context) (uint64, error)
	}

	// Signer produces transaction options for the active wallet.
	Signer interface {
		TransactOpts(ctx context.Context) (*bind.TransactOpts, error)
	}

	Options struct {
		// PollInterval paces confirmation waits and the WinnerPicked log poller used
		// when the endpoint has no subscription support.
		PollInterval time.Duration
	}

	// EntryResult is the outcome of one enterRaffle submission: a receipt once the
	// configured confirmations are reached, or the reason it failed.
	EntryResult struct {
		TxHash  common.Hash
		Receipt *types.Receipt
		Err     error
	}

	// Raffle talks to one deployed Raffle contract.
	Raffle struct {
		address common.Address
		backend Backend
		signer  Signer
		binding *bindings.Raffle
		opts    Options
		winners winnerCursor
		logger  *slog.Logger
	}
)

const defaultPollInterval = 4 * time.Second

func New(address common.Address, backend Backend, signer Signer, opts Options) (*Raffle, error) {
	if address == (common.Address{}) {
		return nil, ErrInvalidAddress
	}

	binding, err := bindings.NewRaffle(address, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to bind raffle contract: %w", err)
	}

	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}

	return &Raffle{
		address: address,
		backend: backend,
		signer:  signer,
		binding: binding,
		opts:    opts,
		logger:  logger.Named("raffle_contract").With("address", address.Hex()),
	}, nil
}

func (r *Raffle) EntranceFee(ctx context.Context) (*big.Int, error) {
	return r.binding.GetEntranceFee(&bind.CallOpts{Context: ctx})
}

func (r *Raffle) NumberOfPlayers(ctx context.Context) (*big.Int, error) {
	return r.binding.GetNumberOfPlayers(&bind.CallOpts{Context: ctx})
}

func (r *Raffle) Interval(ctx context.Context) (*big.Int, error) {
	return r.binding.GetInterval(&bind.CallOpts{Context: ctx})
}

func (r *Raffle) RecentWinner(ctx context.Context) (common.Address, error) {
	return r.binding.GetRecentWinner(&bind.CallOpts{Context: ctx})
}

// EnterRaffle sends enterRaffle() carrying value and blocks until the transaction has
// the requested number of confirmations.
func (r *Raffle) EnterRaffle(ctx context.Context, value *big.Int, confirmations uint64) EntryResult {
	if r.signer == nil {
		return EntryResult{Err: errors.New("no signer configured")}
	}

	opts, err := r.signer.TransactOpts(ctx)
	if err != nil {
		return EntryResult{Err: fmt.Errorf("failed to prepare transaction: %w", err)}
	}
	opts.Value = new(big.Int).Set(value)

	tx, err := r.binding.EnterRaffle(opts)
	if err != nil {
		return EntryResult{Err: fmt.Errorf("failed to send enterRaffle: %w", err)}
	}

	r.logger.With("tx_hash", tx.Hash().Hex()).With("value_wei", value.String()).Info("entry submitted, waiting for receipt")

	receipt, err := bind.WaitMined(ctx, r.backend, tx)
	if err != nil {
		return EntryResult{TxHash: tx.Hash(), Err: fmt.Errorf("failed waiting for receipt: %w", err)}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return EntryResult{TxHash: tx.Hash(), Receipt: receipt, Err: ErrReverted}
	}

	if err := r.waitConfirmations(ctx, receipt.BlockNumber.Uint64(), confirmations); err != nil {
		return EntryResult{TxHash: tx.Hash(), Receipt: receipt, Err: err}
	}

	return EntryResult{TxHash: tx.Hash(), Receipt: receipt}
}

// waitConfirmations returns once the head is confirmations-1 blocks past minedAt; one
// confirmation means "included".
func (r *Raffle) waitConfirmations(ctx context.Context, minedAt, confirmations uint64) error {
	if confirmations <= 1 {
		return nil
	}
	target := minedAt + confirmations - 1

	ticker := time.NewTicker(r.opts.PollInterval)
	defer ticker.Stop()

	for {
		head, err := r.backend.BlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to get latest block: %w", err)
		}
		if head >= target {
			return nil
		}

		r.logger.With("head", head).With("target", target).Debug("waiting for confirmations")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// WaitWinnerPicked blocks until the next WinnerPicked event and returns the winner.
// Successive calls pick up where the previous one stopped, so events emitted between
// two calls are still delivered, in order. The underlying subscription is released
// before returning. Endpoints without subscription support (plain HTTP) are polled
// with eth_getLogs instead.
func (r *Raffle) WaitWinnerPicked(ctx context.Context) (common.Address, error) {
	if winner, ok := r.winners.next(); ok {
		return winner, nil
	}

	sink := make(chan *bindings.RaffleWinnerPicked, 16)

	sub, err := r.binding.WatchWinnerPicked(&bind.WatchOpts{Context: ctx}, sink, nil)
	if errors.Is(err, rpc.ErrNotificationsUnsupported) {
		r.logger.Debug("endpoint has no subscriptions, polling for WinnerPicked logs")
		return r.pollWinnerPicked(ctx)
	}
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to subscribe to WinnerPicked: %w", err)
	}
	defer sub.Unsubscribe()

	// Logs emitted since the last delivered winner, before the subscription existed.
	if from, ok := r.winners.resumeFrom(); ok {
		head, err := r.backend.BlockNumber(ctx)
		if err != nil {
			return common.Address{}, fmt.Errorf("failed to get latest block: %w", err)
		}
		if head >= from {
			if err := r.scanWinnerPicked(ctx, from, head); err != nil {
				return common.Address{}, err
			}
		}
		if winner, ok := r.winners.next(); ok {
			return winner, nil
		}
	}

	for {
		select {
		case event := <-sink:
			if !r.winners.accept(event.Raw, event.Player) {
				continue
			}
			// Logs already forwarded for the same or later blocks.
			for drained := false; !drained; {
				select {
				case more := <-sink:
					r.winners.accept(more.Raw, more.Player)
				default:
					drained = true
				}
			}
			r.winners.seen(event.Raw.BlockNumber)

			winner, _ := r.winners.next()
			return winner, nil
		case err := <-sub.Err():
			if err == nil {
				err = errors.New("subscription closed")
			}
			return common.Address{}, fmt.Errorf("WinnerPicked subscription failed: %w", err)
		case <-ctx.Done():
			return common.Address{}, ctx.Err()
		}
	}
}

func (r *Raffle) pollWinnerPicked(ctx context.Context) (common.Address, error) {
	from, ok := r.winners.resumeFrom()
	if !ok {
		head, err := r.backend.BlockNumber(ctx)
		if err != nil {
			return common.Address{}, fmt.Errorf("failed to get latest block: %w", err)
		}
		from = head + 1
		r.winners.scanned(head)
	}

	ticker := time.NewTicker(r.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return common.Address{}, ctx.Err()
		case <-ticker.C:
		}

		head, err := r.backend.BlockNumber(ctx)
		if err != nil {
			return common.Address{}, fmt.Errorf("failed to get latest block: %w", err)
		}
		if head < from {
			continue
		}

		if err := r.scanWinnerPicked(ctx, from, head); err != nil {
			return common.Address{}, err
		}
		if winner, ok := r.winners.next(); ok {
			return winner, nil
		}
		from = head + 1
	}
}

// scanWinnerPicked queues every WinnerPicked log in [from, to] not delivered yet.
func (r *Raffle) scanWinnerPicked(ctx context.Context, from, to uint64) error {
	it, err := r.binding.FilterWinnerPicked(&bind.FilterOpts{Start: from, End: &to, Context: ctx}, nil)
	if err != nil {
		return fmt.Errorf("failed to filter WinnerPicked logs: %w", err)
	}
	defer it.Close()

	for it.Next() {
		r.winners.accept(it.Event.Raw, it.Event.Player)
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("failed to decode WinnerPicked log: %w", err)
	}

	r.winners.scanned(to)
	return nil
}
