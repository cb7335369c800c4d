package eth

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"

	"github.com/devlongs/spookybrew/internal/secret"
)

// BalanceReader is the slice of Client a Wallet needs
type BalanceReader interface {
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
}

// Wallet is the signing account of a run
type Wallet struct {
	auth    *bind.TransactOpts
	balance BalanceReader
}

// NewWallet builds a signer for chainID. This is the only place the key
// material leaves its carrier.
func NewWallet(key *secret.PrivateKey, chainID *big.Int, balance BalanceReader) (*Wallet, error) {
	prv, err := key.ECDSA()
	if err != nil {
		return nil, err
	}

	auth, err := bind.NewKeyedTransactorWithChainID(prv, chainID)
	if err != nil {
		return nil, fmt.Errorf("build signer: %w", err)
	}

	return &Wallet{auth: auth, balance: balance}, nil
}

// Address returns the signer address
func (w *Wallet) Address() common.Address {
	return w.auth.From
}

// Balance returns the signer's native balance
func (w *Wallet) Balance(ctx context.Context) (*big.Int, error) {
	return w.balance.BalanceAt(ctx, w.auth.From)
}

// TransactOpts returns a fresh copy of the signer options
func (w *Wallet) TransactOpts() *bind.TransactOpts {
	opts := *w.auth
	return &opts
}
