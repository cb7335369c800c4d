// Package brew runs one convertMultiple transaction for a strategy.
package brew

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/devlongs/spookybrew/internal/brewerr"
	"github.com/devlongs/spookybrew/internal/dispatch"
	"github.com/devlongs/spookybrew/internal/output"
	"github.com/devlongs/spookybrew/internal/strategy"
	"github.com/devlongs/spookybrew/pkg/types"
)

// Account is the signing account whose balance is reported before submitting
type Account interface {
	Address() common.Address
	Balance(ctx context.Context) (*big.Int, error)
}

// Runner coordinates a single brew run
type Runner struct {
	strategy strategy.Strategy
	contract dispatch.ContractPort
	account  Account
	logger   *output.Logger
}

// NewRunner creates a runner
func NewRunner(s strategy.Strategy, contract dispatch.ContractPort, account Account, logger *output.Logger) *Runner {
	return &Runner{
		strategy: s,
		contract: contract,
		account:  account,
		logger:   logger,
	}
}

// Run sends exactly one convertMultiple transaction covering every pair
// the strategy produced, and returns its receipt.
func (r *Runner) Run(ctx context.Context) (*ethtypes.Receipt, error) {
	pairs := r.strategy.Pairs()
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: %s", brewerr.ErrStrategyProducedNoPairs, r.strategy.Name())
	}

	r.logger.LogStrategy(r.strategy.Name(), r.strategy.Description(), len(pairs))

	args := types.SplitPairs(pairs)
	for i := 0; i < args.Len(); i++ {
		r.logger.LogPair(i, args.TokenA[i], args.TokenB[i], args.Amounts[i])
	}

	account := r.account.Address()
	balance, err := r.account.Balance(ctx)
	if err != nil {
		return nil, err
	}
	r.logger.LogAccount(account, balance)

	receipt, err := r.contract.SendConvertMultiple(ctx, args)
	if err != nil {
		return nil, err
	}

	r.logger.LogReceipt(receipt)
	return receipt, nil
}
