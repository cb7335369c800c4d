// Package brewerr defines the error kinds a brew run can surface.
package brewerr

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// Error is a sentinel error kind, comparable with errors.Is
type Error string

func (e Error) Error() string {
	return string(e)
}

// Input
const (
	ErrPermissionsTooOpen     = Error("private key file permissions too open, set to 600 or more restrictive")
	ErrKeyFormatInvalid       = Error("invalid private key format in file")
	ErrProviderURLInvalid     = Error("invalid provider gateway URL")
	ErrVersionFormatInvalid   = Error("invalid contract version, must be in format v2, v3, v4, etc.")
	ErrStrategyUnknown        = Error("unknown strategy type")
	ErrExternalConfigRequired = Error("external pair config is required for the dynamic strategy")
)

// Configuration
const (
	ErrConfigMissing      = Error("configuration file not found")
	ErrConfigMalformed    = Error("configuration file is malformed")
	ErrAddressInvalid     = Error("invalid address")
	ErrAmountInvalid      = Error("invalid amount")
	ErrVersionUnsupported = Error("contract version not supported")
)

// Strategy
const (
	ErrStrategyProducedNoPairs = Error("strategy produced no pairs")
)

// Network / RPC
const (
	ErrRPCUnavailable      = Error("rpc provider unavailable")
	ErrChainIDQueryFailed  = Error("failed to query chain id")
	ErrGasEstimationFailed = Error("failed to estimate gas price")
	ErrBalanceQueryFailed  = Error("failed to query balance")
)

// Transaction
const (
	ErrTransactionRejected  = Error("transaction rejected")
	ErrTransactionReverted  = Error("transaction reverted")
	ErrCancelledAfterSubmit = Error("cancelled after transaction was submitted")
)

// AddressError reports an invalid token address in a pair record or config entry.
// Index is -1 when the address does not belong to an indexed record.
type AddressError struct {
	Field string
	Index int
	Value string
}

func (e *AddressError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s %q", ErrAddressInvalid, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s of pair %d %q", ErrAddressInvalid, e.Field, e.Index, e.Value)
}

func (e *AddressError) Unwrap() error { return ErrAddressInvalid }

// AmountError reports an amount that is not a non-negative 256-bit decimal
type AmountError struct {
	Index int
	Value string
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("%s: amount of pair %d %q", ErrAmountInvalid, e.Index, e.Value)
}

func (e *AmountError) Unwrap() error { return ErrAmountInvalid }

// TxRejectedError is returned when the node refuses the signed transaction
type TxRejectedError struct {
	Reason string
	Cause  error
}

func (e *TxRejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTransactionRejected, e.Reason)
}

func (e *TxRejectedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrTransactionRejected}
	}
	return []error{ErrTransactionRejected, e.Cause}
}

// TxRevertedError carries the receipt of a mined transaction with failed status
type TxRevertedError struct {
	Receipt *ethtypes.Receipt
}

func (e *TxRevertedError) Error() string {
	if e.Receipt == nil {
		return ErrTransactionReverted.Error()
	}
	return fmt.Sprintf("%s: tx %s in block %s", ErrTransactionReverted, e.Receipt.TxHash.Hex(), e.Receipt.BlockNumber)
}

func (e *TxRevertedError) Unwrap() error { return ErrTransactionReverted }

// CancelledAfterSubmitError carries the hash of a transaction that may still be mined
type CancelledAfterSubmitError struct {
	Hash  common.Hash
	Cause error
}

func (e *CancelledAfterSubmitError) Error() string {
	return fmt.Sprintf("%s: tx %s may still be mined: %v", ErrCancelledAfterSubmit, e.Hash.Hex(), e.Cause)
}

func (e *CancelledAfterSubmitError) Unwrap() []error { return []error{ErrCancelledAfterSubmit, e.Cause} }
