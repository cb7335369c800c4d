package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/devlongs/spookybrew/internal/brewerr"
	"github.com/devlongs/spookybrew/pkg/types"
)

// DefaultPath is where the contracts document is looked up when no path is given
const DefaultPath = "config.json"

// Gas price modes
const (
	PriceModeU32  = "u32"
	PriceModeFull = "full"
)

// Config holds the contracts document plus run settings
type Config struct {
	Contracts map[string]ContractConfig
	RPC       RPCConfig
	Gas       GasConfig
	Logging   LoggingConfig

	// Dir is the directory of the loaded file; relative abi paths resolve against it
	Dir string
}

// ContractConfig is one BrewBoo deployment
type ContractConfig struct {
	Address string `mapstructure:"address"`
	ABIPath string `mapstructure:"abi_path"`
}

// RPCConfig holds provider settings
type RPCConfig struct {
	URL            string
	RequestTimeout time.Duration
}

// GasConfig holds the transaction gas policy
type GasConfig struct {
	Limit     uint64
	PriceMode string // "u32" or "full"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// flagKeys maps CLI flags onto config keys; flags win over env and file
var flagKeys = map[string]string{
	"provider-gateway": "rpc.url",
	"log-level":        "logging.level",
	"log-format":       "logging.format",
	"gas-price-mode":   "gas.price_mode",
}

// Load reads the contracts document at path and applies env and flag overrides.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	v := viper.New()

	v.SetDefault("rpc.request_timeout", "30s")
	v.SetDefault("gas.limit", 1_700_000)
	v.SetDefault("gas.price_mode", PriceModeU32)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetEnvPrefix("SPOOKYBREW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", brewerr.ErrConfigMissing, path, err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s: %w", brewerr.ErrConfigMissing, path, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", brewerr.ErrConfigMalformed, path, err)
	}

	contracts := make(map[string]ContractConfig)
	if err := v.UnmarshalKey("contracts", &contracts); err != nil {
		return nil, fmt.Errorf("%w: contracts: %w", brewerr.ErrConfigMalformed, err)
	}

	requestTimeout, err := time.ParseDuration(v.GetString("rpc.request_timeout"))
	if err != nil {
		return nil, fmt.Errorf("%w: rpc.request_timeout: %w", brewerr.ErrConfigMalformed, err)
	}

	cfg := &Config{
		Contracts: contracts,
		RPC: RPCConfig{
			URL:            v.GetString("rpc.url"),
			RequestTimeout: requestTimeout,
		},
		Gas: GasConfig{
			Limit:     v.GetUint64("gas.limit"),
			PriceMode: strings.ToLower(v.GetString("gas.price_mode")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Dir: filepath.Dir(path),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", brewerr.ErrConfigMalformed, err)
	}
	return cfg, nil
}

// Validate checks the run settings. Contract addresses are checked by the
// dispatcher for the version actually used.
func (c *Config) Validate() error {
	var err error
	if len(c.Contracts) == 0 {
		err = multierr.Append(err, errors.New("contracts must declare at least one deployment"))
	}
	if c.RPC.RequestTimeout <= 0 {
		err = multierr.Append(err, errors.New("rpc.request_timeout must be positive"))
	}
	if c.Gas.Limit == 0 {
		err = multierr.Append(err, errors.New("gas.limit must be positive"))
	}
	switch c.Gas.PriceMode {
	case PriceModeU32, PriceModeFull:
	default:
		err = multierr.Append(err, fmt.Errorf("gas.price_mode %q must be %q or %q", c.Gas.PriceMode, PriceModeU32, PriceModeFull))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		err = multierr.Append(err, fmt.Errorf("logging.format %q must be json or console", c.Logging.Format))
	}
	return err
}

// Contract returns the deployment entry for version, keyed brewboo_<version>
func (c *Config) Contract(version types.Version) (ContractConfig, bool) {
	cc, ok := c.Contracts["brewboo_"+version.String()]
	return cc, ok
}

// ResolveABIPath returns p relative to the config directory, or p if absolute or empty
func (c *Config) ResolveABIPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}
