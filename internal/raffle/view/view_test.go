package view

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/compose-network/lottery-entrance/internal/notify"
	"github.com/compose-network/lottery-entrance/internal/raffle/addresses"
	"github.com/compose-network/lottery-entrance/internal/raffle/contract"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const supportedChain int64 = 31337

var (
	raffleAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	winnerAAA     = common.HexToAddress("0xAAA")
	winnerBBB     = common.HexToAddress("0xBBB")
)

type fakeSession struct {
	chainID   int64
	connected bool
}

func (s fakeSession) ChainID() int64  { return s.chainID }
func (s fakeSession) Connected() bool { return s.connected }

type fakeRaffle struct {
	mu        sync.Mutex
	fee       *big.Int
	players   *big.Int
	interval  *big.Int
	winner    common.Address
	failQuery string
	delays    map[string]time.Duration
	calls     map[string]int
	// gate, when set, holds every query until closed regardless of ctx.
	gate chan struct{}

	enter  func(ctx context.Context, value *big.Int, confirmations uint64) contract.EntryResult
	events chan common.Address
	waits  atomic.Int32
}

func newFakeRaffle() *fakeRaffle {
	return &fakeRaffle{
		fee:      big.NewInt(100),
		players:  big.NewInt(3),
		interval: big.NewInt(60),
		winner:   winnerAAA,
		calls:    make(map[string]int),
		events:   make(chan common.Address),
	}
}

func (f *fakeRaffle) query(ctx context.Context, name string) error {
	f.mu.Lock()
	f.calls[name]++
	delay := f.delays[name]
	fail := f.failQuery == name
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if fail {
		return errors.New("provider unavailable")
	}
	return nil
}

func (f *fakeRaffle) EntranceFee(ctx context.Context) (*big.Int, error) {
	if err := f.query(ctx, "getEntranceFee"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return new(big.Int).Set(f.fee), nil
}

func (f *fakeRaffle) NumberOfPlayers(ctx context.Context) (*big.Int, error) {
	if err := f.query(ctx, "getNumberOfPlayers"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return new(big.Int).Set(f.players), nil
}

func (f *fakeRaffle) Interval(ctx context.Context) (*big.Int, error) {
	if err := f.query(ctx, "getInterval"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return new(big.Int).Set(f.interval), nil
}

func (f *fakeRaffle) RecentWinner(ctx context.Context) (common.Address, error) {
	if err := f.query(ctx, "getRecentWinner"); err != nil {
		return common.Address{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.winner, nil
}

func (f *fakeRaffle) EnterRaffle(ctx context.Context, value *big.Int, confirmations uint64) contract.EntryResult {
	return f.enter(ctx, value, confirmations)
}

func (f *fakeRaffle) WaitWinnerPicked(ctx context.Context) (common.Address, error) {
	f.waits.Add(1)
	select {
	case winner := <-f.events:
		return winner, nil
	case <-ctx.Done():
		return common.Address{}, ctx.Err()
	}
}

func (f *fakeRaffle) set(fn func(f *fakeRaffle)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeRaffle) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

type harness struct {
	view      *View
	raffle    *fakeRaffle
	notes     *notify.Recorder
	refreshes atomic.Int32
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()

	if cfg.Addresses.Chains() == 0 {
		cfg.Addresses = addresses.NewTable(map[int64][]common.Address{supportedChain: {raffleAddress}})
	}

	h := &harness{raffle: newFakeRaffle(), notes: &notify.Recorder{}}
	h.view = New(cfg,
		func(address common.Address) (Contract, error) {
			require.Equal(t, raffleAddress, address)
			return h.raffle, nil
		},
		h.notes,
		WithRefreshHook(func(State) { h.refreshes.Add(1) }),
	)
	t.Cleanup(h.view.Unmount)

	return h
}

func (h *harness) mount(t *testing.T) {
	t.Helper()
	require.NoError(t, h.view.Mount(context.Background(), fakeSession{chainID: supportedChain, connected: true}))
}

func expectedState() State {
	return State{
		EntranceFeeWei:           "100",
		PlayerCount:              "3",
		RemainingIntervalSeconds: "60",
		MostRecentWinner:         winnerAAA.Hex(),
	}
}

func receive(t *testing.T, waiter <-chan error) (error, bool) {
	t.Helper()
	select {
	case err, ok := <-waiter:
		return err, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the winner waiter")
		return nil, false
	}
}

func TestResolveAddress(t *testing.T) {
	h := newHarness(t, Config{})

	addr, ok := h.view.ResolveAddress(supportedChain)
	require.True(t, ok)
	assert.Equal(t, raffleAddress, addr)

	for _, chainID := range []int64{1, 5, 137, 0} {
		_, ok := h.view.ResolveAddress(chainID)
		assert.False(t, ok, chainID)
	}
}

func TestMount_UnsupportedChainRendersConnectMessage(t *testing.T) {
	h := newHarness(t, Config{})

	require.NoError(t, h.view.Mount(context.Background(), fakeSession{chainID: 1, connected: true}))
	assert.False(t, h.view.Supported())

	var out bytes.Buffer
	require.NoError(t, h.view.Render(&out))
	assert.Equal(t, "Please connect to a supported chain\n", out.String())

	assert.ErrorIs(t, h.view.Refresh(context.Background()), ErrUnsupportedNetwork)
	assert.ErrorIs(t, h.view.SubmitEntry(context.Background()).Err, ErrUnsupportedNetwork)
	assert.Zero(t, h.raffle.callCount("getEntranceFee"))
}

func TestMount_Guards(t *testing.T) {
	h := newHarness(t, Config{})

	assert.ErrorIs(t, h.view.Mount(context.Background(), fakeSession{chainID: supportedChain}), ErrNotConnected)
	assert.ErrorIs(t, h.view.Refresh(context.Background()), ErrNotMounted)

	h.mount(t)
	assert.ErrorIs(t, h.view.Mount(context.Background(), fakeSession{chainID: supportedChain, connected: true}), ErrMounted)
}

func TestMount_RefreshesState(t *testing.T) {
	h := newHarness(t, Config{})
	assert.Equal(t, InitialState(), h.view.State())

	h.mount(t)

	assert.True(t, h.view.Supported())
	assert.Equal(t, expectedState(), h.view.State())
	assert.EqualValues(t, 1, h.refreshes.Load())

	var out bytes.Buffer
	require.NoError(t, h.view.Render(&out))
	assert.Contains(t, out.String(), "Entrance Fee: 0.0000000000000001 ETH")
	assert.Contains(t, out.String(), "The current number of players is: 3")
	assert.Contains(t, out.String(), "The remaining time is: 60")
	assert.Contains(t, out.String(), "The most previous winner was: "+winnerAAA.Hex())
}

func TestRefresh_CompletionOrderDoesNotMatter(t *testing.T) {
	orders := []map[string]time.Duration{
		{"getEntranceFee": 30 * time.Millisecond, "getNumberOfPlayers": 20 * time.Millisecond, "getInterval": 10 * time.Millisecond},
		{"getRecentWinner": 30 * time.Millisecond, "getInterval": 20 * time.Millisecond, "getNumberOfPlayers": 10 * time.Millisecond},
	}

	for _, delays := range orders {
		h := newHarness(t, Config{})
		h.raffle.set(func(f *fakeRaffle) { f.delays = delays })
		h.mount(t)

		assert.Equal(t, expectedState(), h.view.State())
	}
}

func TestRefresh_FailureKeepsPreviousState(t *testing.T) {
	h := newHarness(t, Config{})
	h.mount(t)

	h.raffle.set(func(f *fakeRaffle) {
		f.players = big.NewInt(4)
		f.failQuery = "getRecentWinner"
	})

	err := h.view.Refresh(context.Background())
	require.Error(t, err)

	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "getRecentWinner", queryErr.Query)

	assert.Equal(t, expectedState(), h.view.State())
	assert.EqualValues(t, 1, h.refreshes.Load())
}

func TestMount_InitialRefreshFailureIsReported(t *testing.T) {
	h := newHarness(t, Config{})
	h.raffle.set(func(f *fakeRaffle) { f.failQuery = "getInterval" })

	err := h.view.Mount(context.Background(), fakeSession{chainID: supportedChain, connected: true})
	require.ErrorIs(t, err, ErrInitialRefresh)
	assert.ErrorContains(t, err, "getInterval")

	assert.True(t, h.view.Supported())
	assert.Equal(t, InitialState(), h.view.State())
}

func TestRefresh_Idempotent(t *testing.T) {
	h := newHarness(t, Config{})
	h.mount(t)

	first := h.view.State()
	require.NoError(t, h.view.Refresh(context.Background()))
	assert.Equal(t, first, h.view.State())
}

func TestRefresh_QueryTimeout(t *testing.T) {
	h := newHarness(t, Config{QueryTimeout: 20 * time.Millisecond})
	h.mount(t)

	h.raffle.set(func(f *fakeRaffle) {
		f.delays = map[string]time.Duration{"getInterval": time.Second}
	})

	err := h.view.Refresh(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, expectedState(), h.view.State())
}

func TestSubmitEntry_Success(t *testing.T) {
	h := newHarness(t, Config{Confirmations: 1})
	h.mount(t)

	var (
		busyDuring    bool
		paid          *big.Int
		confirmations uint64
	)
	txHash := common.HexToHash("0x01")
	h.raffle.enter = func(_ context.Context, value *big.Int, n uint64) contract.EntryResult {
		busyDuring = h.view.Busy()
		paid = value
		confirmations = n
		h.raffle.set(func(f *fakeRaffle) { f.players = big.NewInt(4) })
		return contract.EntryResult{TxHash: txHash}
	}

	before := h.refreshes.Load()
	result := h.view.SubmitEntry(context.Background())

	require.NoError(t, result.Err)
	assert.Equal(t, txHash, result.TxHash)
	assert.True(t, busyDuring)
	assert.False(t, h.view.Busy())
	assert.Equal(t, "100", paid.String())
	assert.Equal(t, uint64(1), confirmations)

	assert.Equal(t, before+1, h.refreshes.Load())
	assert.Equal(t, []notify.Notification{notify.TransactionComplete()}, h.notes.Sent())
	assert.Equal(t, "4", h.view.State().PlayerCount)
}

func TestSubmitEntry_Failure(t *testing.T) {
	h := newHarness(t, Config{})
	h.mount(t)

	h.raffle.enter = func(context.Context, *big.Int, uint64) contract.EntryResult {
		return contract.EntryResult{Err: errors.New("user rejected transaction")}
	}

	before := h.refreshes.Load()
	calls := h.raffle.callCount("getEntranceFee")

	result := h.view.SubmitEntry(context.Background())

	assert.ErrorContains(t, result.Err, "user rejected")
	assert.False(t, h.view.Busy())
	assert.Equal(t, before, h.refreshes.Load())
	assert.Equal(t, calls, h.raffle.callCount("getEntranceFee"))
	assert.Empty(t, h.notes.Sent())
	assert.Equal(t, expectedState(), h.view.State())
}

func TestSubmitEntry_RejectsWhileBusy(t *testing.T) {
	h := newHarness(t, Config{})
	h.mount(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	h.raffle.enter = func(context.Context, *big.Int, uint64) contract.EntryResult {
		close(entered)
		<-release
		return contract.EntryResult{}
	}

	done := make(chan contract.EntryResult)
	go func() { done <- h.view.SubmitEntry(context.Background()) }()

	<-entered
	assert.True(t, h.view.Busy())
	assert.ErrorIs(t, h.view.SubmitEntry(context.Background()).Err, ErrBusy)

	close(release)
	require.NoError(t, (<-done).Err)
	assert.False(t, h.view.Busy())
	assert.Len(t, h.notes.Sent(), 1)
}

func TestWinnerPicked_OneShot(t *testing.T) {
	h := newHarness(t, Config{RearmWinnerListener: false})
	h.mount(t)
	waiter := h.view.SubscribeWinnerPicked(context.Background())

	h.raffle.set(func(f *fakeRaffle) { f.winner = winnerBBB })
	h.raffle.events <- winnerBBB

	err, ok := receive(t, waiter)
	require.True(t, ok)
	require.NoError(t, err)

	assert.EqualValues(t, 2, h.refreshes.Load())
	assert.Equal(t, winnerBBB.Hex(), h.view.State().MostRecentWinner)

	_, ok = receive(t, waiter)
	assert.False(t, ok, "waiter is closed once the one-shot listener exits")
	assert.EqualValues(t, 1, h.raffle.waits.Load())
}

func TestWinnerPicked_SingleListenerPerMount(t *testing.T) {
	h := newHarness(t, Config{})
	h.mount(t)

	first := h.view.SubscribeWinnerPicked(context.Background())
	second := h.view.SubscribeWinnerPicked(context.Background())
	assert.Equal(t, first, second)
}

func TestWinnerPicked_Rearms(t *testing.T) {
	h := newHarness(t, Config{RearmWinnerListener: true})
	h.mount(t)
	waiter := h.view.SubscribeWinnerPicked(context.Background())

	h.raffle.events <- winnerAAA
	err, ok := receive(t, waiter)
	require.True(t, ok)
	require.NoError(t, err)

	h.raffle.set(func(f *fakeRaffle) { f.winner = winnerBBB })
	h.raffle.events <- winnerBBB

	require.Eventually(t, func() bool {
		return h.refreshes.Load() == 3
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, winnerBBB.Hex(), h.view.State().MostRecentWinner)
}

func TestWinnerPicked_RefreshFailureReachesWaiter(t *testing.T) {
	h := newHarness(t, Config{})
	h.mount(t)
	waiter := h.view.SubscribeWinnerPicked(context.Background())

	h.raffle.set(func(f *fakeRaffle) { f.failQuery = "getNumberOfPlayers" })
	h.raffle.events <- winnerBBB

	err, ok := receive(t, waiter)
	require.True(t, ok)

	var handlerErr *EventHandlerError
	require.ErrorAs(t, err, &handlerErr)
	assert.Equal(t, winnerBBB, handlerErr.Winner)

	var queryErr *QueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "getNumberOfPlayers", queryErr.Query)
}

func TestUnmount_ReleasesListener(t *testing.T) {
	h := newHarness(t, Config{RearmWinnerListener: true})
	h.mount(t)
	waiter := h.view.SubscribeWinnerPicked(context.Background())

	require.Eventually(t, func() bool {
		return h.raffle.waits.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)

	h.view.Unmount()

	_, ok := receive(t, waiter)
	assert.False(t, ok)
	assert.False(t, h.view.Supported())
	assert.Equal(t, InitialState(), h.view.State())

	// a fresh mount arms a fresh listener
	h.mount(t)
	assert.NotEqual(t, waiter, h.view.SubscribeWinnerPicked(context.Background()))
}

func TestUnmount_DuringWinnerRefreshClosesWaiterSilently(t *testing.T) {
	h := newHarness(t, Config{})
	h.mount(t)
	waiter := h.view.SubscribeWinnerPicked(context.Background())

	gate := make(chan struct{})
	h.raffle.set(func(f *fakeRaffle) { f.gate = gate })
	h.raffle.events <- winnerBBB

	require.Eventually(t, func() bool {
		return h.raffle.callCount("getEntranceFee") == 2
	}, 2*time.Second, 5*time.Millisecond)

	unmounted := make(chan struct{})
	go func() {
		h.view.Unmount()
		close(unmounted)
	}()

	require.Eventually(t, func() bool {
		h.view.mu.RLock()
		defer h.view.mu.RUnlock()
		return !h.view.mounted
	}, 2*time.Second, 5*time.Millisecond)
	close(gate)

	err, ok := receive(t, waiter)
	assert.False(t, ok, "waiter yielded %v after unmount", err)

	select {
	case <-unmounted:
	case <-time.After(2 * time.Second):
		t.Fatal("unmount did not return")
	}
	assert.Equal(t, int32(1), h.refreshes.Load())
}

func TestFormatEther(t *testing.T) {
	cases := map[string]string{
		"0":                     "0.0",
		"1000000000000000000":   "1.0",
		"100000000000000000":    "0.1",
		"10000000000000000":     "0.01",
		"1500000000000000000":   "1.5",
		"100":                   "0.0000000000000001",
		"123000000000000000000": "123.0",
		"-250000000000000000":   "-0.25",
	}
	for wei, want := range cases {
		got, err := FormatEther(wei)
		require.NoError(t, err, wei)
		assert.Equal(t, want, got, wei)
	}

	_, err := FormatEther("0x10")
	assert.Error(t, err)
}

func TestSnapshot(t *testing.T) {
	h := newHarness(t, Config{})
	h.mount(t)

	snapshot := h.view.Snapshot()
	assert.Equal(t, supportedChain, snapshot.ChainID)
	assert.True(t, snapshot.Supported)
	assert.True(t, strings.EqualFold(raffleAddress.Hex(), snapshot.Address))
	assert.Equal(t, expectedState(), snapshot.State)
}
