// Package view keeps a local picture of a Raffle contract up to date and mediates
// the single write a player can make, entering the raffle.
//
// A View is mounted against a wallet session. Mounting resolves the contract for the
// session's chain, refreshes the state and arms a WinnerPicked listener; Unmount
// releases the listener. State is refreshed wholesale on mount, after a confirmed
// entry and whenever a winner is picked.
package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/compose-network/lottery-entrance/internal/logger"
	"github.com/compose-network/lottery-entrance/internal/notify"
	"github.com/compose-network/lottery-entrance/internal/raffle/addresses"
	"github.com/compose-network/lottery-entrance/internal/raffle/contract"
	"github.com/compose-network/lottery-entrance/internal/raffle/metrics"
	"github.com/ethereum/go-ethereum/common"
)

type (
	// Contract is the contract-call collaborator.
	Contract interface {
		EntranceFee(ctx context.Context) (*big.Int, error)
		NumberOfPlayers(ctx context.Context) (*big.Int, error)
		Interval(ctx context.Context) (*big.Int, error)
		RecentWinner(ctx context.Context) (common.Address, error)
		EnterRaffle(ctx context.Context, value *big.Int, confirmations uint64) contract.EntryResult
		// WaitWinnerPicked blocks until the next WinnerPicked event.
		WaitWinnerPicked(ctx context.Context) (common.Address, error)
	}

	// Session is the wallet collaborator as seen by the view.
	Session interface {
		ChainID() int64
		Connected() bool
	}

	// ContractFactory binds a Contract at address.
	ContractFactory func(address common.Address) (Contract, error)

	Config struct {
		Addresses addresses.Table
		// Confirmations to wait for before an entry counts as complete.
		Confirmations uint64
		// RearmWinnerListener keeps listening after the first WinnerPicked event.
		RearmWinnerListener bool
		// QueryTimeout bounds one refresh; zero leaves it to the caller's context.
		QueryTimeout time.Duration
	}

	Option func(*View)

	View struct {
		cfg      Config
		factory  ContractFactory
		notifier notify.Sink
		logger   *slog.Logger
		onUpdate func(State)

		busy atomic.Bool

		mu         sync.RWMutex
		state      State
		mounted    bool
		generation uint64
		chainID    int64
		address    common.Address
		contract   Contract
		cancel     context.CancelFunc
		waiter     <-chan error

		listeners sync.WaitGroup
	}
)

// WithRefreshHook registers fn to run after every successful refresh.
func WithRefreshHook(fn func(State)) Option {
	return func(v *View) {
		v.onUpdate = fn
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(v *View) {
		v.logger = l
	}
}

func New(cfg Config, factory ContractFactory, notifier notify.Sink, opts ...Option) *View {
	if cfg.Confirmations == 0 {
		cfg.Confirmations = 1
	}
	if notifier == nil {
		notifier = notify.Fanout{}
	}

	v := &View{
		cfg:      cfg,
		factory:  factory,
		notifier: notifier,
		logger:   logger.Named("raffle_view"),
		state:    InitialState(),
	}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// ResolveAddress returns the first configured Raffle address for chainID.
func (v *View) ResolveAddress(chainID int64) (common.Address, bool) {
	return v.cfg.Addresses.Resolve(chainID)
}

// Mount binds the view to session. On a supported chain it refreshes the state and
// arms the WinnerPicked listener; on an unsupported chain it only records the chain.
//
// A failed initial refresh is returned, but the view stays mounted with the listener
// armed and must still be unmounted.
func (v *View) Mount(ctx context.Context, session Session) error {
	if session == nil || !session.Connected() {
		return ErrNotConnected
	}

	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return ErrMounted
	}

	chainID := session.ChainID()
	v.mounted = true
	v.generation++
	v.chainID = chainID
	v.state = InitialState()

	address, ok := v.cfg.Addresses.Resolve(chainID)
	if !ok {
		v.mu.Unlock()
		v.logger.With("chain_id", chainID).Warn("no raffle deployed on this chain, connect to a supported chain")
		return nil
	}

	c, err := v.factory(address)
	if err != nil {
		v.mounted = false
		v.mu.Unlock()
		return fmt.Errorf("failed to bind raffle at %s: %w", address.Hex(), err)
	}
	v.address = address
	v.contract = c
	v.mu.Unlock()

	v.logger.With("chain_id", chainID).With("address", address.Hex()).Info("raffle view mounted")

	refreshErr := v.Refresh(ctx)
	v.SubscribeWinnerPicked(ctx)

	if refreshErr != nil {
		return fmt.Errorf("%w: %w", ErrInitialRefresh, refreshErr)
	}
	return nil
}

// Unmount releases the WinnerPicked listener and discards the state. It waits for the
// listener to exit.
func (v *View) Unmount() {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}

	// Cancel while holding the lock so a listener that observes the new generation
	// also observes its cancelled context.
	if v.cancel != nil {
		v.cancel()
	}
	v.mounted = false
	v.generation++
	v.contract = nil
	v.address = common.Address{}
	v.cancel = nil
	v.waiter = nil
	v.state = InitialState()
	v.mu.Unlock()

	v.listeners.Wait()

	v.logger.Debug("raffle view unmounted")
}

// Supported reports whether the mounted chain has a Raffle deployment.
func (v *View) Supported() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.contract != nil
}

// Busy is true while an entry submission is outstanding.
func (v *View) Busy() bool {
	return v.busy.Load()
}

func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	snapshot := Snapshot{
		ChainID:   v.chainID,
		Supported: v.contract != nil,
		Busy:      v.busy.Load(),
		State:     v.state,
	}
	if v.contract != nil {
		snapshot.Address = v.address.Hex()
	}

	return snapshot
}

func (v *View) active() (Contract, uint64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if !v.mounted {
		return nil, 0, ErrNotMounted
	}
	if v.contract == nil {
		return nil, 0, ErrUnsupportedNetwork
	}

	return v.contract, v.generation, nil
}

// Refresh runs the four read queries concurrently and, if all succeed, replaces the
// state in one assignment. On any failure the previous state is kept and the query
// errors are returned joined. There is no retry.
func (v *View) Refresh(ctx context.Context) error {
	c, generation, err := v.active()
	if err != nil {
		return err
	}

	if v.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.cfg.QueryTimeout)
		defer cancel()
	}

	var (
		fee, players, interval *big.Int
		winner                 common.Address
	)

	queries := []struct {
		name string
		run  func(ctx context.Context) error
	}{
		{"getEntranceFee", func(ctx context.Context) (err error) { fee, err = c.EntranceFee(ctx); return }},
		{"getNumberOfPlayers", func(ctx context.Context) (err error) { players, err = c.NumberOfPlayers(ctx); return }},
		{"getInterval", func(ctx context.Context) (err error) { interval, err = c.Interval(ctx); return }},
		{"getRecentWinner", func(ctx context.Context) (err error) { winner, err = c.RecentWinner(ctx); return }},
	}

	errs := make([]error, len(queries))
	var wg sync.WaitGroup
	for i, query := range queries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := query.run(ctx); err != nil {
				errs[i] = &QueryError{Query: query.name, Err: err}
				metrics.QueryFailures.WithLabelValues(query.name).Inc()
			}
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		metrics.Refreshes.WithLabelValues("error").Inc()
		v.logger.With("err", err).Warn("failed to refresh raffle state, keeping previous values")
		return err
	}

	next := newState(fee, players, interval, winner)

	v.mu.Lock()
	if v.generation != generation {
		v.mu.Unlock()
		return ErrNotMounted
	}
	v.state = next
	v.mu.Unlock()

	metrics.Refreshes.WithLabelValues("ok").Inc()
	metrics.PlayerCount.Set(float64(players.Int64()))
	v.logger.With("state", next).Debug("raffle state refreshed")

	if v.onUpdate != nil {
		v.onUpdate(next)
	}

	return nil
}

// SubmitEntry enters the raffle paying the current entrance fee. Only one submission
// may be outstanding; a concurrent call fails with ErrBusy. A confirmed entry emits a
// notification and refreshes the state; a failed one is only logged.
func (v *View) SubmitEntry(ctx context.Context) contract.EntryResult {
	if !v.busy.CompareAndSwap(false, true) {
		return contract.EntryResult{Err: ErrBusy}
	}
	defer v.busy.Store(false)

	c, _, err := v.active()
	if err != nil {
		return contract.EntryResult{Err: err}
	}

	fee, err := v.State().EntranceFee()
	if err != nil {
		return v.entryFailed(contract.EntryResult{Err: err})
	}

	result := c.EnterRaffle(ctx, fee, v.cfg.Confirmations)
	if result.Err != nil {
		return v.entryFailed(result)
	}

	metrics.Entries.WithLabelValues("ok").Inc()
	v.logger.With("tx_hash", result.TxHash.Hex()).With("fee_wei", fee.String()).Info("raffle entry confirmed")

	v.notifier.Notify(notify.TransactionComplete())

	// Refresh failures are logged by Refresh and do not undo a confirmed entry.
	_ = v.Refresh(ctx)

	return result
}

func (v *View) entryFailed(result contract.EntryResult) contract.EntryResult {
	metrics.Entries.WithLabelValues("error").Inc()
	v.logger.With("err", result.Err).With("tx_hash", result.TxHash.Hex()).Error("raffle entry failed")
	return result
}

// SubscribeWinnerPicked arms the WinnerPicked listener for the current mount and
// returns its waiter. Only one listener exists per mount; later calls return the same
// waiter.
//
// The waiter yields exactly one value, for the first event: nil when the refresh that
// followed succeeded, otherwise an *EventHandlerError. It is closed without a value if
// the view is unmounted first, and yields the subscription error if listening fails.
// When RearmWinnerListener is set the listener keeps refreshing on later events.
func (v *View) SubscribeWinnerPicked(ctx context.Context) <-chan error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.waiter != nil {
		return v.waiter
	}

	waiter := make(chan error, 1)
	if !v.mounted || v.contract == nil {
		close(waiter)
		return waiter
	}

	listenCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.waiter = waiter

	v.listeners.Add(1)
	go v.listen(listenCtx, v.contract, waiter)

	return waiter
}

func (v *View) listen(ctx context.Context, c Contract, waiter chan<- error) {
	defer v.listeners.Done()
	defer close(waiter)

	resolved := false
	resolve := func(err error) {
		if !resolved {
			waiter <- err
			resolved = true
		}
	}

	for {
		v.logger.Info("waiting for a winner")

		winner, err := c.WaitWinnerPicked(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			v.logger.With("err", err).Error("winner listener stopped")
			resolve(err)
			return
		}

		metrics.WinnersObserved.Inc()
		v.logger.With("winner", winner.Hex()).Info("we got a winner")

		if err := v.Refresh(ctx); err != nil {
			if ctx.Err() != nil || errors.Is(err, ErrNotMounted) {
				return
			}
			v.logger.With("err", err).Error("failed to refresh after winner was picked")
			resolve(&EventHandlerError{Winner: winner, Err: err})
		} else {
			resolve(nil)
		}

		if !v.cfg.RearmWinnerListener {
			return
		}
	}
}
