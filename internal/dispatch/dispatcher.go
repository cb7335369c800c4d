// Package dispatch routes convertMultiple to the BrewBoo binding for the
// configured contract version. It is the only place that knows v2 from v3.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"

	"github.com/devlongs/spookybrew/internal/brewerr"
	"github.com/devlongs/spookybrew/internal/config"
	"github.com/devlongs/spookybrew/internal/contracts/brewboov2"
	"github.com/devlongs/spookybrew/internal/contracts/brewboov3"
	"github.com/devlongs/spookybrew/internal/eth"
	"github.com/devlongs/spookybrew/pkg/types"
)

const convertMultipleMethod = "convertMultiple"

// ContractPort sends one convertMultiple transaction and waits for it to be mined
type ContractPort interface {
	SendConvertMultiple(ctx context.Context, args types.ConvertArgs) (*ethtypes.Receipt, error)
}

// Signer hands out transaction options for the run's account
type Signer interface {
	TransactOpts() *bind.TransactOpts
}

// Target is a resolved deployment
type Target struct {
	Version types.Version
	Address common.Address
	ABI     *abi.ABI // nil selects the ABI compiled into the binding
}

// Resolve picks the deployment for version from the contracts document
func Resolve(cfg *config.Config, version types.Version) (Target, error) {
	switch version {
	case types.VersionV2, types.VersionV3:
	default:
		return Target{}, fmt.Errorf("%w: %s has no binding", brewerr.ErrVersionUnsupported, version)
	}

	cc, ok := cfg.Contract(version)
	if !ok {
		return Target{}, fmt.Errorf("%w: no brewboo_%s entry in contracts config", brewerr.ErrVersionUnsupported, version)
	}

	addr, err := types.ParseAddress(cc.Address)
	if err != nil {
		return Target{}, &brewerr.AddressError{
			Field: fmt.Sprintf("contracts.brewboo_%s.address", version),
			Index: -1,
			Value: cc.Address,
		}
	}

	target := Target{Version: version, Address: addr}
	if path := cfg.ResolveABIPath(cc.ABIPath); path != "" {
		parsed, err := loadABI(path)
		if err != nil {
			return Target{}, err
		}
		target.ABI = parsed
	}
	return target, nil
}

// loadABI reads an ABI file and checks it declares convertMultiple(address[],address[],uint256[])
func loadABI(path string) (*abi.ABI, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: abi %s: %w", brewerr.ErrConfigMissing, path, err)
	}
	defer f.Close()

	parsed, err := abi.JSON(f)
	if err != nil {
		return nil, fmt.Errorf("%w: abi %s: %w", brewerr.ErrConfigMalformed, path, err)
	}

	method, ok := parsed.Methods[convertMultipleMethod]
	if !ok {
		return nil, fmt.Errorf("%w: abi %s does not declare %s", brewerr.ErrConfigMalformed, path, convertMultipleMethod)
	}
	if method.Sig != "convertMultiple(address[],address[],uint256[])" {
		return nil, fmt.Errorf("%w: abi %s declares %s", brewerr.ErrConfigMalformed, path, method.Sig)
	}
	return &parsed, nil
}

// Binding is the ContractPort for one resolved deployment
type Binding struct {
	target  Target
	v2      *brewboov2.BrewBooV2
	v3      *brewboov3.BrewBooV3
	backend eth.Backend
	signer  Signer
	gas     config.GasConfig
}

// New resolves version against cfg and binds it to backend
func New(cfg *config.Config, version types.Version, backend eth.Backend, signer Signer) (*Binding, error) {
	target, err := Resolve(cfg, version)
	if err != nil {
		return nil, err
	}
	return Bind(target, backend, signer, cfg.Gas)
}

// Bind creates the version-specific contract binding for target
func Bind(target Target, backend eth.Backend, signer Signer, gas config.GasConfig) (*Binding, error) {
	b := &Binding{
		target:  target,
		backend: backend,
		signer:  signer,
		gas:     gas,
	}

	var err error
	switch target.Version {
	case types.VersionV2:
		if target.ABI != nil {
			b.v2 = brewboov2.NewBrewBooV2WithABI(target.Address, *target.ABI, backend)
		} else {
			b.v2, err = brewboov2.NewBrewBooV2(target.Address, backend)
		}
	case types.VersionV3:
		if target.ABI != nil {
			b.v3 = brewboov3.NewBrewBooV3WithABI(target.Address, *target.ABI, backend)
		} else {
			b.v3, err = brewboov3.NewBrewBooV3(target.Address, backend)
		}
	default:
		return nil, fmt.Errorf("%w: %s has no binding", brewerr.ErrVersionUnsupported, target.Version)
	}
	if err != nil {
		return nil, fmt.Errorf("bind brewboo %s: %w", target.Version, err)
	}

	log.Info().
		Str("version", target.Version.Label()).
		Str("contract", target.Address.Hex()).
		Msg("Using BrewBoo " + target.Version.Label() + " contract")

	return b, nil
}

// Version returns the bound contract version
func (b *Binding) Version() types.Version {
	return b.target.Version
}

// Address returns the bound contract address
func (b *Binding) Address() common.Address {
	return b.target.Address
}

// SendConvertMultiple submits convertMultiple with legacy gas pricing and a
// fixed gas limit, then waits for the receipt.
func (b *Binding) SendConvertMultiple(ctx context.Context, args types.ConvertArgs) (*ethtypes.Receipt, error) {
	n := args.Len()
	if n == 0 || len(args.TokenB) != n || len(args.Amounts) != n {
		return nil, fmt.Errorf("convertMultiple needs equal non-empty vectors, got %d/%d/%d",
			len(args.TokenA), len(args.TokenB), len(args.Amounts))
	}

	suggested, err := b.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", brewerr.ErrGasEstimationFailed, err)
	}
	gasPrice, err := applyPriceMode(suggested, b.gas.PriceMode)
	if err != nil {
		return nil, err
	}

	opts := b.signer.TransactOpts()
	opts.Context = ctx
	opts.GasPrice = gasPrice
	opts.GasLimit = b.gas.Limit

	label := b.target.Version.Label()
	log.Info().
		Str("version", label).
		Str("contract", b.target.Address.Hex()).
		Str("gasPrice", gasPrice.String()).
		Uint64("gasLimit", opts.GasLimit).
		Int("pairs", n).
		Msg("Submitting convertMultiple to BrewBoo " + label)

	tx, err := b.transact(opts, args)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("cancelled before submit: %w", ctxErr)
		}
		return nil, &brewerr.TxRejectedError{Reason: err.Error(), Cause: err}
	}

	log.Info().
		Str("txHash", tx.Hash().Hex()).
		Msg("Transaction submitted, waiting to be mined")

	receipt, err := bind.WaitMined(ctx, b.backend, tx)
	if err != nil {
		return nil, &brewerr.CancelledAfterSubmitError{Hash: tx.Hash(), Cause: err}
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return nil, &brewerr.TxRevertedError{Receipt: receipt}
	}
	return receipt, nil
}

func (b *Binding) transact(opts *bind.TransactOpts, args types.ConvertArgs) (*ethtypes.Transaction, error) {
	switch {
	case b.v2 != nil:
		return b.v2.ConvertMultiple(opts, args.TokenA, args.TokenB, args.Amounts)
	case b.v3 != nil:
		return b.v3.ConvertMultiple(opts, args.TokenA, args.TokenB, args.Amounts)
	}
	return nil, errors.New("binding has no contract")
}

// applyPriceMode enforces the configured gas price width. In u32 mode a price
// that does not fit in 32 bits is refused rather than wrapped.
func applyPriceMode(suggested *big.Int, mode string) (*big.Int, error) {
	if suggested == nil || suggested.Sign() < 0 {
		return nil, fmt.Errorf("%w: provider returned no usable gas price", brewerr.ErrGasEstimationFailed)
	}
	if mode == config.PriceModeFull {
		return new(big.Int).Set(suggested), nil
	}
	if !suggested.IsUint64() || suggested.Uint64() > math.MaxUint32 {
		return nil, fmt.Errorf("%w: gas price %s wei exceeds the 32-bit legacy bound, set gas.price_mode=%s",
			brewerr.ErrGasEstimationFailed, suggested, config.PriceModeFull)
	}
	return new(big.Int).SetUint64(uint64(uint32(suggested.Uint64()))), nil
}
