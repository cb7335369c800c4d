// Package brewboov2 binds the BrewBoo V2 fee converter.
package brewboov2

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// BrewBooV2ABI is the subset of the deployed ABI this tool calls
const BrewBooV2ABI = `[
  {
    "inputs": [
      { "internalType": "address[]", "name": "token0", "type": "address[]" },
      { "internalType": "address[]", "name": "token1", "type": "address[]" },
      { "internalType": "uint256[]", "name": "LPamounts", "type": "uint256[]" }
    ],
    "name": "convertMultiple",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`

// BrewBooV2MetaData holds the parsed ABI
var BrewBooV2MetaData = &bind.MetaData{
	ABI: BrewBooV2ABI,
}

// BrewBooV2 is a write binding to a deployed BrewBoo V2 contract
type BrewBooV2 struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewBrewBooV2 binds the embedded ABI to address
func NewBrewBooV2(address common.Address, backend bind.ContractBackend) (*BrewBooV2, error) {
	parsed, err := BrewBooV2MetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	return NewBrewBooV2WithABI(address, *parsed, backend), nil
}

// NewBrewBooV2WithABI binds a caller-supplied ABI, e.g. one read from disk
func NewBrewBooV2WithABI(address common.Address, parsed abi.ABI, backend bind.ContractBackend) *BrewBooV2 {
	return &BrewBooV2{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}
}

// Address returns the bound contract address
func (b *BrewBooV2) Address() common.Address {
	return b.address
}

// ConvertMultiple is a paid mutator transaction binding the contract method.
//
// Solidity: function convertMultiple(address[] token0, address[] token1, uint256[] LPamounts) returns()
func (b *BrewBooV2) ConvertMultiple(opts *bind.TransactOpts, token0 []common.Address, token1 []common.Address, lpAmounts []*big.Int) (*types.Transaction, error) {
	return b.contract.Transact(opts, "convertMultiple", token0, token1, lpAmounts)
}
