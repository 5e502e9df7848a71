package wallet

import (
	"context"
	"testing"

	"github.com/compose-network/lottery-entrance/internal/testutil"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// First anvil/hardhat development account.
const (
	devKey     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func devChain(t *testing.T) *testutil.Chain {
	return testutil.NewChain(t, 31337)
}

func TestDial_WithSigner(t *testing.T) {
	node := devChain(t)

	session, err := Dial(context.Background(), node.URL(), devKey)
	require.NoError(t, err)
	defer session.Close()

	assert.True(t, session.Connected())
	assert.True(t, session.CanSign())
	assert.Equal(t, int64(31337), session.ChainID())
	assert.Equal(t, common.HexToAddress(devAddress), session.Address())

	opts, err := session.TransactOpts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.Address(), opts.From)
	assert.NotNil(t, opts.Context)
}

func TestDial_ReadOnly(t *testing.T) {
	node := devChain(t)

	session, err := Dial(context.Background(), node.URL(), "")
	require.NoError(t, err)
	defer session.Close()

	assert.True(t, session.Connected())
	assert.False(t, session.CanSign())

	_, err = session.TransactOpts(context.Background())
	assert.ErrorIs(t, err, ErrNoSigner)
}

func TestDial_InvalidKey(t *testing.T) {
	node := devChain(t)

	_, err := Dial(context.Background(), node.URL(), "not-a-key")
	require.ErrorContains(t, err, "failed to parse private key")
	assert.Zero(t, node.Calls("eth_chainId"))
}

func TestDial_ChainIDFailure(t *testing.T) {
	// chain id 0 makes eth_chainId fail
	node := testutil.NewChain(t, 0)

	_, err := Dial(context.Background(), node.URL(), "")
	assert.ErrorContains(t, err, "failed to get chain id")
}
