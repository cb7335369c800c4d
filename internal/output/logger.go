package output

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devlongs/spookybrew/internal/config"
)

// Logger writes the operator-facing lines of a brew run
type Logger struct {
	startTime time.Time
}

// NewLogger configures zerolog and returns a run logger
func NewLogger(cfg config.LoggingConfig) *Logger {
	return NewLoggerTo(cfg, os.Stdout)
}

// NewLoggerTo is NewLogger with an explicit destination
func NewLoggerTo(cfg config.LoggingConfig, out io.Writer) *Logger {
	switch cfg.Format {
	case "json":
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	default:
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		})
	}

	// Set log level
	switch cfg.Level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}

	return &Logger{startTime: time.Now()}
}

// LogStrategy logs the strategy chosen for the run
func (l *Logger) LogStrategy(name, description string, pairs int) {
	log.Info().
		Str("strategy", name).
		Str("description", description).
		Int("pairs", pairs).
		Msg("Using strategy " + name)
}

// LogPair logs one pair at debug level
func (l *Logger) LogPair(index int, tokenA, tokenB common.Address, amount *big.Int) {
	log.Debug().
		Int("index", index).
		Str("tokenA", tokenA.Hex()).
		Str("tokenB", tokenB.Hex()).
		Str("amount", amount.String()).
		Msg("Pair")
}

// LogAccount logs the signer and its native balance
func (l *Logger) LogAccount(account common.Address, balance *big.Int) {
	log.Info().
		Str("account", account.Hex()).
		Str("balance", weiToEther(balance)+" S").
		Str("balanceWei", balance.String()).
		Msg("Signer account")
}

// LogReceipt logs the mined receipt
func (l *Logger) LogReceipt(r *ethtypes.Receipt) {
	log.Info().
		Str("txHash", r.TxHash.Hex()).
		Str("block", bigString(r.BlockNumber)).
		Uint64("gasUsed", r.GasUsed).
		Uint64("status", r.Status).
		Dur("elapsed", time.Since(l.startTime)).
		Msg("Transaction mined")
}

// LogError logs an error
func (l *Logger) LogError(err error, context string) {
	log.Error().
		Err(err).
		Str("context", context).
		Msg("Error occurred")
}

// ReceiptDigest renders the one-line summary printed after a successful run
func ReceiptDigest(r *ethtypes.Receipt) string {
	if r == nil {
		return "no receipt"
	}
	status := "success"
	if r.Status != ethtypes.ReceiptStatusSuccessful {
		status = "reverted"
	}
	return fmt.Sprintf("tx=%s block=%s gasUsed=%d status=%s", r.TxHash.Hex(), bigString(r.BlockNumber), r.GasUsed, status)
}

func bigString(n *big.Int) string {
	if n == nil {
		return "pending"
	}
	return n.String()
}

// weiToEther converts wei to a native-token string with 6 decimal places
func weiToEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}

	// 1 S = 10^18 wei
	ether := new(big.Float).SetInt(wei)
	divisor := new(big.Float).SetInt(big.NewInt(1e18))
	ether.Quo(ether, divisor)

	return fmt.Sprintf("%.6f", ether)
}
