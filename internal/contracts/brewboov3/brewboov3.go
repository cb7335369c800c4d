// Package brewboov3 binds the BrewBoo V3 fee converter.
package brewboov3

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// BrewBooV3ABI is the subset of the deployed ABI this tool calls
const BrewBooV3ABI = `[
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

// BrewBooV3MetaData holds the parsed ABI
var BrewBooV3MetaData = &bind.MetaData{
	ABI: BrewBooV3ABI,
}

// BrewBooV3 is a write binding to a deployed BrewBoo V3 contract
type BrewBooV3 struct {
	address  common.Address
	contract *bind.BoundContract
}

// NewBrewBooV3 binds the embedded ABI to address
func NewBrewBooV3(address common.Address, backend bind.ContractBackend) (*BrewBooV3, error) {
	parsed, err := BrewBooV3MetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	return NewBrewBooV3WithABI(address, *parsed, backend), nil
}

// NewBrewBooV3WithABI binds a caller-supplied ABI, e.g. one read from disk
func NewBrewBooV3WithABI(address common.Address, parsed abi.ABI, backend bind.ContractBackend) *BrewBooV3 {
	return &BrewBooV3{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}
}

// Address returns the bound contract address
func (b *BrewBooV3) Address() common.Address {
	return b.address
}

// ConvertMultiple is a paid mutator transaction binding the contract method.
//
// Solidity: function convertMultiple(address[] token0, address[] token1, uint256[] LPamounts) returns()
func (b *BrewBooV3) ConvertMultiple(opts *bind.TransactOpts, token0 []common.Address, token1 []common.Address, lpAmounts []*big.Int) (*types.Transaction, error) {
	return b.contract.Transact(opts, "convertMultiple", token0, token1, lpAmounts)
}
