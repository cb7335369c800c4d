package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/devlongs/spookybrew/internal/brew"
	"github.com/devlongs/spookybrew/internal/config"
	"github.com/devlongs/spookybrew/internal/dispatch"
	"github.com/devlongs/spookybrew/internal/eth"
	"github.com/devlongs/spookybrew/internal/output"
	"github.com/devlongs/spookybrew/internal/secret"
)

const usage = "usage: spookybrew brew -k <private key file> -p <provider url> [-v v2|v3] [-s simple|dynamic] [-e pairs.json] [-c config.json]"

func main() {
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Warn().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

// run executes the CLI. Everything that can be checked offline is checked
// before the provider is dialled.
func run(ctx context.Context, argv []string, stdout io.Writer) error {
	if len(argv) == 0 || argv[0] != "brew" {
		return errors.New(usage)
	}

	args, fs, err := parseBrewArgs(argv[1:])
	if err != nil {
		return err
	}

	key, err := secret.ReadKeyFile(args.PrivateKeyPath)
	if err != nil {
		return err
	}
	defer key.Destroy()

	cfg, err := config.Load(args.ConfigPath, fs)
	if err != nil {
		return err
	}

	logger := output.NewLogger(cfg.Logging)
	log.Info().Msg("Starting SpookyBrew...")

	s, err := newStrategy(args)
	if err != nil {
		return err
	}

	target, err := dispatch.Resolve(cfg, args.version)
	if err != nil {
		return err
	}

	log.Info().Msg("Connecting to network...")
	client, err := eth.NewClient(ctx, cfg.RPC)
	if err != nil {
		return err
	}
	defer client.Close()

	wallet, err := eth.NewWallet(key, client.ChainID(), client)
	key.Destroy()
	if err != nil {
		return err
	}

	contract, err := dispatch.Bind(target, client.Backend(), wallet, cfg.Gas)
	if err != nil {
		return err
	}

	receipt, err := brew.NewRunner(s, contract, wallet, logger).Run(ctx)
	if err != nil {
		logger.LogError(err, "brew")
		return err
	}

	fmt.Fprintln(stdout, "Brew operation completed successfully!")
	fmt.Fprintln(stdout, output.ReceiptDigest(receipt))
	return nil
}
