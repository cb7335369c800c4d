package brew

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/devlongs/spookybrew/internal/brewerr"
	"github.com/devlongs/spookybrew/internal/config"
	"github.com/devlongs/spookybrew/internal/output"
	"github.com/devlongs/spookybrew/internal/strategy"
	"github.com/devlongs/spookybrew/pkg/types"
)

type recordingPort struct {
	calls   []types.ConvertArgs
	receipt *ethtypes.Receipt
	err     error
}

func (p *recordingPort) SendConvertMultiple(_ context.Context, args types.ConvertArgs) (*ethtypes.Receipt, error) {
	p.calls = append(p.calls, args)
	if p.err != nil {
		return nil, p.err
	}
	return p.receipt, nil
}

type fakeAccount struct {
	balanceCalls int
	err          error
}

func (a *fakeAccount) Address() common.Address {
	return common.HexToAddress("0x9999999999999999999999999999999999999999")
}

func (a *fakeAccount) Balance(context.Context) (*big.Int, error) {
	a.balanceCalls++
	if a.err != nil {
		return nil, a.err
	}
	return big.NewInt(3e18), nil
}

type staticStrategy struct {
	pairs []types.PairSpec
}

func (s staticStrategy) Pairs() []types.PairSpec { return s.pairs }
func (s staticStrategy) Name() string            { return "static" }
func (s staticStrategy) Description() string     { return "fixed pairs for tests" }

func testLogger(t *testing.T) (*output.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return output.NewLoggerTo(config.LoggingConfig{Level: "debug", Format: "json"}, &buf), &buf
}

func okReceipt() *ethtypes.Receipt {
	return &ethtypes.Receipt{
		TxHash:      common.HexToHash("0xfeed"),
		BlockNumber: big.NewInt(1),
		Status:      ethtypes.ReceiptStatusSuccessful,
	}
}

func TestRun_SimpleStrategy(t *testing.T) {
	logger, logs := testLogger(t)
	port := &recordingPort{receipt: okReceipt()}
	account := &fakeAccount{}

	receipt, err := NewRunner(strategy.NewSimple(), port, account, logger).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, port.receipt, receipt)

	require.Len(t, port.calls, 1)
	args := port.calls[0]
	require.Equal(t, []common.Address{common.HexToAddress("0x039e2fB66102314Ce7b64Ce5Ce3E5183bc94aD38")}, args.TokenA)
	require.Equal(t, []common.Address{common.HexToAddress("0x29219dd400f2Bf60E5a23d13Be72B486D4038894")}, args.TokenB)
	require.Len(t, args.Amounts, 1)
	require.Zero(t, args.Amounts[0].Sign())

	require.Equal(t, 1, account.balanceCalls)
	require.Contains(t, logs.String(), "Simple wS/USDC.e Strategy")
	require.Contains(t, logs.String(), "0x9999999999999999999999999999999999999999")
}

func TestRun_ExternalStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"token_a": "0x1111111111111111111111111111111111111111", "token_b": "0x2222222222222222222222222222222222222222"},
		{"token_a": "0x3333333333333333333333333333333333333333", "token_b": "0x4444444444444444444444444444444444444444", "amount": "500"}
	]`), 0o600))
	s, err := strategy.NewExternal(path)
	require.NoError(t, err)

	logger, _ := testLogger(t)
	port := &recordingPort{receipt: okReceipt()}
	_, err = NewRunner(s, port, &fakeAccount{}, logger).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, port.calls, 1)
	args := port.calls[0]
	require.Equal(t, 2, args.Len())
	require.Len(t, args.TokenB, 2)
	require.Len(t, args.Amounts, 2)
	require.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111"), args.TokenA[0])
	require.Equal(t, common.HexToAddress("0x4444444444444444444444444444444444444444"), args.TokenB[1])
	require.Zero(t, args.Amounts[0].Sign())
	require.Equal(t, int64(500), args.Amounts[1].Int64())
}

func TestRun_VectorsMatchPairs(t *testing.T) {
	pairs := make([]types.PairSpec, 0, 5)
	for i := 1; i <= 5; i++ {
		p := types.PairSpec{
			TokenA: common.BigToAddress(big.NewInt(int64(i))),
			TokenB: common.BigToAddress(big.NewInt(int64(100 + i))),
		}
		if i%2 == 0 {
			p.Amount = big.NewInt(int64(i * 1000))
		}
		pairs = append(pairs, p)
	}

	logger, _ := testLogger(t)
	port := &recordingPort{receipt: okReceipt()}
	_, err := NewRunner(staticStrategy{pairs: pairs}, port, &fakeAccount{}, logger).Run(context.Background())
	require.NoError(t, err)

	args := port.calls[0]
	require.Equal(t, len(pairs), args.Len())
	for i, p := range pairs {
		require.Equal(t, p.TokenA, args.TokenA[i])
		require.Equal(t, p.TokenB, args.TokenB[i])
		require.Zero(t, p.AmountOrZero().Cmp(args.Amounts[i]))
	}
}

func TestRun_NoPairs(t *testing.T) {
	logger, _ := testLogger(t)
	port := &recordingPort{}
	account := &fakeAccount{}

	_, err := NewRunner(staticStrategy{}, port, account, logger).Run(context.Background())
	require.ErrorIs(t, err, brewerr.ErrStrategyProducedNoPairs)
	require.Empty(t, port.calls)
	require.Zero(t, account.balanceCalls)
}

func TestRun_BalanceFailureIsFatal(t *testing.T) {
	logger, _ := testLogger(t)
	port := &recordingPort{}
	account := &fakeAccount{err: errors.Join(brewerr.ErrBalanceQueryFailed, errors.New("timeout"))}

	_, err := NewRunner(strategy.NewSimple(), port, account, logger).Run(context.Background())
	require.ErrorIs(t, err, brewerr.ErrBalanceQueryFailed)
	require.Empty(t, port.calls)
}

func TestRun_ContractErrorSurfacesUnchanged(t *testing.T) {
	logger, _ := testLogger(t)
	reverted := &brewerr.TxRevertedError{Receipt: &ethtypes.Receipt{Status: ethtypes.ReceiptStatusFailed}}
	port := &recordingPort{err: reverted}

	_, err := NewRunner(strategy.NewSimple(), port, &fakeAccount{}, logger).Run(context.Background())
	require.Same(t, reverted, err)
	require.Len(t, port.calls, 1)
}
