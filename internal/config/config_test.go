package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/devlongs/spookybrew/internal/brewerr"
	"github.com/devlongs/spookybrew/pkg/types"
)

const contractsDoc = `{
  "contracts": {
    "brewboo_v2": { "address": "0x1111111111111111111111111111111111111111", "abi_path": "abi/brewboo_v2.json" },
    "brewboo_v3": { "address": "0x2222222222222222222222222222222222222222", "abi_path": "" }
  }
}`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, contractsDoc)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	require.Len(t, cfg.Contracts, 2)
	v2, ok := cfg.Contract(types.VersionV2)
	require.True(t, ok)
	require.Equal(t, "0x1111111111111111111111111111111111111111", v2.Address)
	require.Equal(t, filepath.Join(filepath.Dir(path), "abi/brewboo_v2.json"), cfg.ResolveABIPath(v2.ABIPath))

	v3, ok := cfg.Contract(types.VersionV3)
	require.True(t, ok)
	require.Empty(t, cfg.ResolveABIPath(v3.ABIPath))

	_, ok = cfg.Contract(types.Version(9))
	require.False(t, ok)

	require.Equal(t, uint64(1_700_000), cfg.Gas.Limit)
	require.Equal(t, PriceModeU32, cfg.Gas.PriceMode)
	require.Equal(t, 30*time.Second, cfg.RPC.RequestTimeout)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_FileSettingsAndEnv(t *testing.T) {
	path := writeConfig(t, `{
  "contracts": { "brewboo_v2": { "address": "0x1111111111111111111111111111111111111111" } },
  "gas": { "limit": 2000000, "price_mode": "full" },
  "rpc": { "request_timeout": "5s" }
}`)
	t.Setenv("SPOOKYBREW_LOGGING_FORMAT", "json")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(2_000_000), cfg.Gas.Limit)
	require.Equal(t, PriceModeFull, cfg.Gas.PriceMode)
	require.Equal(t, 5*time.Second, cfg.RPC.RequestTimeout)
	require.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_FlagsOverride(t *testing.T) {
	path := writeConfig(t, contractsDoc)

	fs := pflag.NewFlagSet("brew", pflag.ContinueOnError)
	fs.String("provider-gateway", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse([]string{"--provider-gateway", "https://rpc.example", "--log-level", "debug"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	require.Equal(t, "https://rpc.example", cfg.RPC.URL)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "config.json"), nil)
	require.ErrorIs(t, err, brewerr.ErrConfigMissing)
}

func TestLoad_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":        `{"contracts": `,
		"no contracts":    `{"gas": {"limit": 1}}`,
		"bad price mode":  `{"contracts": {"brewboo_v2": {"address": "0x1111111111111111111111111111111111111111"}}, "gas": {"price_mode": "eip1559"}}`,
		"bad timeout":     `{"contracts": {"brewboo_v2": {"address": "0x1111111111111111111111111111111111111111"}}, "rpc": {"request_timeout": "soon"}}`,
		"contracts array": `{"contracts": [1, 2]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body), nil)
			require.ErrorIs(t, err, brewerr.ErrConfigMalformed)
		})
	}
}
