package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/multierr"

	"github.com/devlongs/spookybrew/internal/brewerr"
	"github.com/devlongs/spookybrew/internal/config"
	"github.com/devlongs/spookybrew/internal/strategy"
	"github.com/devlongs/spookybrew/pkg/types"
)

const (
	strategySimple  = "simple"
	strategyDynamic = "dynamic"
)

// brewArgs are the flags of the brew subcommand
type brewArgs struct {
	PrivateKeyPath     string
	ProviderGateway    string
	ContractVersion    string
	StrategyType       string
	ExternalPairConfig string
	ConfigPath         string

	version types.Version
}

func newBrewFlagSet(args *brewArgs) *pflag.FlagSet {
	fs := pflag.NewFlagSet("brew", pflag.ContinueOnError)
	fs.StringVarP(&args.PrivateKeyPath, "private-key-path", "k", "", "path to file containing your private key")
	fs.StringVarP(&args.ProviderGateway, "provider-gateway", "p", "", "RPC provider gateway URL")
	fs.StringVarP(&args.ContractVersion, "contract-version", "v", "v2", "contract version to use (v2 or v3)")
	fs.StringVarP(&args.StrategyType, "strategy-type", "s", strategySimple, "pair strategy (simple or dynamic)")
	fs.StringVarP(&args.ExternalPairConfig, "external-pair-config", "e", "", "path to the pair document, required with -s dynamic")
	fs.StringVarP(&args.ConfigPath, "config", "c", config.DefaultPath, "path to the contracts config document")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("log-format", "", "log format (console or json)")
	fs.String("gas-price-mode", "", "gas price width (u32 or full)")
	return fs
}

// parseBrewArgs parses and validates the brew flags. All independent
// problems are reported together.
func parseBrewArgs(argv []string) (*brewArgs, *pflag.FlagSet, error) {
	args := &brewArgs{}
	fs := newBrewFlagSet(args)
	if err := fs.Parse(argv); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if err := args.validate(); err != nil {
		return nil, nil, err
	}
	return args, fs, nil
}

func (a *brewArgs) validate() error {
	var err error

	if a.PrivateKeyPath == "" {
		err = multierr.Append(err, errors.New("--private-key-path is required"))
	}

	if a.ProviderGateway == "" {
		err = multierr.Append(err, errors.New("--provider-gateway is required"))
	} else if !validProviderURL(a.ProviderGateway) {
		err = multierr.Append(err, fmt.Errorf("%w: must start with http://, https://, ws:// or wss://", brewerr.ErrProviderURLInvalid))
	}

	version, verr := types.ParseVersion(a.ContractVersion)
	if verr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: %w", brewerr.ErrVersionFormatInvalid, verr))
	}
	a.version = version

	switch a.StrategyType {
	case strategySimple:
	case strategyDynamic:
		if a.ExternalPairConfig == "" {
			err = multierr.Append(err, brewerr.ErrExternalConfigRequired)
		}
	default:
		err = multierr.Append(err, fmt.Errorf("%w: %q, expected simple or dynamic", brewerr.ErrStrategyUnknown, a.StrategyType))
	}

	return err
}

func validProviderURL(url string) bool {
	for _, scheme := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(url, scheme) {
			return true
		}
	}
	return false
}

// newStrategy selects the strategy constructor for the --strategy-type flag
func newStrategy(args *brewArgs) (strategy.Strategy, error) {
	switch args.StrategyType {
	case strategySimple:
		return strategy.NewSimple(), nil
	case strategyDynamic:
		return strategy.NewExternal(args.ExternalPairConfig)
	}
	return nil, fmt.Errorf("%w: %q", brewerr.ErrStrategyUnknown, args.StrategyType)
}
