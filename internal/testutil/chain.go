// Package testutil runs a scripted chain behind go-ethereum's RPC server, so tests drive
// the real ethclient over HTTP or in-process (with subscriptions).
package testutil

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

var errExecutionReverted = errors.New("execution reverted")

type (
	// Chain is an in-memory node answering the eth_ methods the raffle client uses.
	Chain struct {
		server *rpc.Server
		http   *httptest.Server

		mu       sync.Mutex
		chainID  uint64
		head     uint64
		autoMine bool
		results  map[string]hexutil.Bytes
		status   uint64
		sent     []*types.Transaction
		mined    map[common.Hash]uint64
		logs     []types.Log
		calls    map[string]int
		subs     map[chan types.Log]logFilter
	}

	// CallArgs is the subset of an eth_call message the chain looks at.
	CallArgs struct {
		To    *common.Address `json:"to"`
		Input hexutil.Bytes   `json:"input"`
		Data  hexutil.Bytes   `json:"data"`
	}

	// FilterArgs is the subset of a log filter the chain looks at.
	FilterArgs struct {
		FromBlock *rpc.BlockNumber `json:"fromBlock"`
		ToBlock   *rpc.BlockNumber `json:"toBlock"`
		Addresses []common.Address `json:"address"`
	}

	logFilter struct {
		addresses []common.Address
	}

	ethAPI struct {
		chain *Chain
	}
)

// NewChain starts a chain with the given id at head 0. A zero chainID makes
// eth_chainId fail. Everything is torn down when the test ends.
func NewChain(t testing.TB, chainID uint64) *Chain {
	t.Helper()

	c := &Chain{
		server:  rpc.NewServer(),
		chainID: chainID,
		results: make(map[string]hexutil.Bytes),
		status:  types.ReceiptStatusSuccessful,
		mined:   make(map[common.Hash]uint64),
		calls:   make(map[string]int),
		subs:    make(map[chan types.Log]logFilter),
	}
	if err := c.server.RegisterName("eth", &ethAPI{chain: c}); err != nil {
		t.Fatalf("failed to register eth namespace: %v", err)
	}

	c.http = httptest.NewServer(c.server)
	t.Cleanup(func() {
		c.http.Close()
		c.server.Stop()
	})

	return c
}

// URL is the HTTP endpoint. HTTP clients cannot subscribe.
func (c *Chain) URL() string {
	return c.http.URL
}

// DialInProc connects an ethclient in-process; it supports eth_subscribe.
func (c *Chain) DialInProc(t testing.TB) *ethclient.Client {
	t.Helper()
	client := ethclient.NewClient(rpc.DialInProc(c.server))
	t.Cleanup(client.Close)
	return client
}

// SetHead moves the head to n.
func (c *Chain) SetHead(n uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.head = n
}

func (c *Chain) Head() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.head
}

// AutoMine makes every eth_blockNumber call report the head and then advance it.
func (c *Chain) AutoMine(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoMine = on
}

// Mine advances the head by one block and returns the new head.
func (c *Chain) Mine() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.head++
	return c.head
}

// SetCallResult scripts the return data of eth_call for a 4-byte selector.
func (c *Chain) SetCallResult(selector []byte, out []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[hexutil.Encode(selector)] = out
}

// SetReceiptStatus sets the status of receipts for transactions sent from now on.
func (c *Chain) SetReceiptStatus(status uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

// Sent returns the transactions received through eth_sendRawTransaction.
func (c *Chain) Sent() []*types.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*types.Transaction(nil), c.sent...)
}

// Calls returns how many times method was invoked.
func (c *Chain) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

// Subscriptions is the number of live log subscriptions.
func (c *Chain) Subscriptions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Emit records log in its block, numbering it after the logs already in that block, and
// pushes it to every matching subscription.
func (c *Chain) Emit(log types.Log) types.Log {
	c.mu.Lock()
	log.Index = 0
	for _, existing := range c.logs {
		if existing.BlockNumber == log.BlockNumber {
			log.Index++
		}
	}
	if log.Data == nil {
		log.Data = []byte{}
	}
	c.logs = append(c.logs, log)

	var targets []chan types.Log
	for ch, filter := range c.subs {
		if filter.matches(log) {
			targets = append(targets, ch)
		}
	}
	c.mu.Unlock()

	for _, ch := range targets {
		select {
		case ch <- log:
		default:
		}
	}

	return log
}

func (c *Chain) record(method string) {
	c.calls[method]++
}

func (f logFilter) matches(log types.Log) bool {
	if len(f.addresses) == 0 {
		return true
	}
	for _, addr := range f.addresses {
		if addr == log.Address {
			return true
		}
	}
	return false
}

func (api *ethAPI) ChainId() (hexutil.Uint64, error) {
	c := api.chain
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("eth_chainId")

	if c.chainID == 0 {
		return 0, errors.New("chain id unavailable")
	}
	return hexutil.Uint64(c.chainID), nil
}

func (api *ethAPI) BlockNumber() hexutil.Uint64 {
	c := api.chain
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("eth_blockNumber")

	head := c.head
	if c.autoMine {
		c.head++
	}
	return hexutil.Uint64(head)
}

func (api *ethAPI) Call(args CallArgs, _ rpc.BlockNumberOrHash) (hexutil.Bytes, error) {
	c := api.chain
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("eth_call")

	input := args.Input
	if len(input) == 0 {
		input = args.Data
	}
	if len(input) < 4 {
		return nil, errors.New("missing calldata")
	}

	out, ok := c.results[hexutil.Encode(input[:4])]
	if !ok {
		return nil, errExecutionReverted
	}
	return out, nil
}

func (api *ethAPI) GetTransactionCount(_ common.Address, _ rpc.BlockNumberOrHash) hexutil.Uint64 {
	c := api.chain
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("eth_getTransactionCount")

	return hexutil.Uint64(len(c.sent))
}

// SendRawTransaction mines the transaction into a new block.
func (api *ethAPI) SendRawTransaction(raw hexutil.Bytes) (common.Hash, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, fmt.Errorf("invalid transaction: %w", err)
	}

	c := api.chain
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("eth_sendRawTransaction")

	c.head++
	c.sent = append(c.sent, tx)
	c.mined[tx.Hash()] = c.head

	return tx.Hash(), nil
}

func (api *ethAPI) GetTransactionReceipt(hash common.Hash) *types.Receipt {
	c := api.chain
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("eth_getTransactionReceipt")

	block, ok := c.mined[hash]
	if !ok {
		return nil
	}

	return &types.Receipt{
		Type:              types.LegacyTxType,
		Status:            c.status,
		CumulativeGasUsed: 21_000,
		Logs:              []*types.Log{},
		TxHash:            hash,
		GasUsed:           21_000,
		BlockNumber:       new(big.Int).SetUint64(block),
	}
}

func (api *ethAPI) GetLogs(args FilterArgs) []types.Log {
	c := api.chain
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("eth_getLogs")

	from, to := c.resolve(args.FromBlock), c.resolve(args.ToBlock)
	filter := logFilter{addresses: args.Addresses}

	logs := []types.Log{}
	for _, log := range c.logs {
		if log.BlockNumber >= from && log.BlockNumber <= to && filter.matches(log) {
			logs = append(logs, log)
		}
	}
	return logs
}

// Logs serves eth_subscribe("logs") for new logs only.
func (api *ethAPI) Logs(ctx context.Context, args FilterArgs) (*rpc.Subscription, error) {
	notifier, supported := rpc.NotifierFromContext(ctx)
	if !supported {
		return &rpc.Subscription{}, rpc.ErrNotificationsUnsupported
	}

	c := api.chain
	ch := make(chan types.Log, 64)
	sub := notifier.CreateSubscription()

	c.mu.Lock()
	c.record("eth_subscribe")
	c.subs[ch] = logFilter{addresses: args.Addresses}
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			delete(c.subs, ch)
			c.mu.Unlock()
		}()
		for {
			select {
			case log := <-ch:
				if err := notifier.Notify(sub.ID, log); err != nil {
					return
				}
			case <-sub.Err():
				return
			}
		}
	}()

	return sub, nil
}

// resolve maps a filter bound to a block number; tags mean the head.
func (c *Chain) resolve(bn *rpc.BlockNumber) uint64 {
	if bn == nil || *bn < 0 {
		return c.head
	}
	return uint64(*bn)
}
