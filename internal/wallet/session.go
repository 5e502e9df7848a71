package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/compose-network/lottery-entrance/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ErrNoSigner is returned when a transaction is requested from a read-only session.
var ErrNoSigner = errors.New("wallet session has no signing key")

// Session is a connected RPC endpoint plus an optional signing key.
type Session struct {
	client  *ethclient.Client
	chainID *big.Int
	key     *ecdsa.PrivateKey
	address common.Address
	logger  *slog.Logger
}

// Dial connects to rpcURL and reads the chain id. privateKeyHex may be empty for a
// read-only session.
func Dial(ctx context.Context, rpcURL, privateKeyHex string) (*Session, error) {
	log := logger.Named("wallet")

	var key *ecdsa.PrivateKey
	var address common.Address
	if trimmed := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"); trimmed != "" {
		var err error
		key, err = crypto.HexToECDSA(trimmed)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}

		publicKeyECDSA, ok := key.Public().(*ecdsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("failed to cast public key to ECDSA")
		}
		address = crypto.PubkeyToAddress(*publicKeyECDSA)
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RPC: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}

	log.With("chain_id", chainID).With("account", address.Hex()).With("signer", key != nil).Info("wallet session established")

	return &Session{
		client:  client,
		chainID: chainID,
		key:     key,
		address: address,
		logger:  log,
	}, nil
}

// ChainID is the id of the connected network.
func (s *Session) ChainID() int64 {
	return s.chainID.Int64()
}

// Connected reports whether the session has a live client.
func (s *Session) Connected() bool {
	return s != nil && s.client != nil
}

// CanSign reports whether the session can send transactions.
func (s *Session) CanSign() bool {
	return s.key != nil
}

func (s *Session) Address() common.Address {
	return s.address
}

func (s *Session) Client() *ethclient.Client {
	return s.client
}

// TransactOpts returns fresh signing options bound to ctx.
func (s *Session) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if s.key == nil {
		return nil, ErrNoSigner
	}

	opts, err := bind.NewKeyedTransactorWithChainID(s.key, s.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx

	return opts, nil
}

func (s *Session) Close() {
	if s.client != nil {
		s.client.Close()
		s.client = nil
		s.logger.Debug("wallet session closed")
	}
}
