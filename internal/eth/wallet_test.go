package eth

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/devlongs/spookybrew/internal/brewerr"
	"github.com/devlongs/spookybrew/internal/secret"
)

const testKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

type stubBalance struct {
	seen common.Address
	bal  *big.Int
	err  error
}

func (s *stubBalance) BalanceAt(_ context.Context, account common.Address) (*big.Int, error) {
	s.seen = account
	return s.bal, s.err
}

func TestNewWallet(t *testing.T) {
	key, err := secret.Parse(testKey)
	require.NoError(t, err)

	stub := &stubBalance{bal: big.NewInt(5)}
	w, err := NewWallet(key, big.NewInt(146), stub)
	require.NoError(t, err)

	prv, err := crypto.HexToECDSA(testKey)
	require.NoError(t, err)
	want := crypto.PubkeyToAddress(prv.PublicKey)
	require.Equal(t, want, w.Address())

	bal, err := w.Balance(context.Background())
	require.NoError(t, err)
	require.Equal(t, big.NewInt(5), bal)
	require.Equal(t, want, stub.seen)

	a, b := w.TransactOpts(), w.TransactOpts()
	a.GasLimit = 1
	require.Zero(t, b.GasLimit)
	require.Equal(t, want, b.From)
}

func TestNewWallet_DestroyedKey(t *testing.T) {
	key, err := secret.Parse(testKey)
	require.NoError(t, err)
	key.Destroy()

	_, err = NewWallet(key, big.NewInt(146), &stubBalance{})
	require.ErrorIs(t, err, brewerr.ErrKeyFormatInvalid)
}

func TestWallet_BalanceError(t *testing.T) {
	key, err := secret.Parse(testKey)
	require.NoError(t, err)

	cause := errors.New("boom")
	w, err := NewWallet(key, big.NewInt(146), &stubBalance{err: cause})
	require.NoError(t, err)

	_, err = w.Balance(context.Background())
	require.ErrorIs(t, err, cause)
}
