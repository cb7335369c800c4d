package strategy

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/devlongs/spookybrew/pkg/types"
)

// Default pair on Sonic
var (
	WrappedS = common.HexToAddress("0x039e2fB66102314Ce7b64Ce5Ce3E5183bc94aD38")
	USDCe    = common.HexToAddress("0x29219dd400f2Bf60E5a23d13Be72B486D4038894")
)

// Simple converts the wS/USDC.e LP position with the contract's default amount
type Simple struct{}

// NewSimple creates the built-in strategy
func NewSimple() *Simple {
	return &Simple{}
}

func (s *Simple) Pairs() []types.PairSpec {
	return []types.PairSpec{{TokenA: WrappedS, TokenB: USDCe}}
}

func (s *Simple) Name() string {
	return "Simple wS/USDC.e Strategy"
}

func (s *Simple) Description() string {
	return "A simple strategy that converts wS/USDC.e LP tokens to BOO"
}
