package eth

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog/log"

	"github.com/devlongs/spookybrew/internal/brewerr"
	"github.com/devlongs/spookybrew/internal/config"
)

// Backend is what contract bindings and receipt waiting need from a node
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Client wraps the Ethereum client for a single brew run.
// Nothing is retried; a failed query ends the run.
type Client struct {
	client  *ethclient.Client
	cfg     config.RPCConfig
	chainID *big.Int
}

// NewClient connects to the provider and reads its chain ID
func NewClient(ctx context.Context, cfg config.RPCConfig) (*Client, error) {
	client, err := ethclient.DialContext(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", brewerr.ErrRPCUnavailable, err)
	}

	qctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	chainID, err := client.ChainID(qctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %w", brewerr.ErrChainIDQueryFailed, err)
	}

	log.Info().
		Str("chainID", chainID.String()).
		Msg("Connected to network")

	return &Client{
		client:  client,
		cfg:     cfg,
		chainID: chainID,
	}, nil
}

// Close closes the client connection
func (c *Client) Close() {
	c.client.Close()
}

// ChainID returns the chain ID read at connect time
func (c *Client) ChainID() *big.Int {
	return c.chainID
}

// Backend exposes the raw client to contract bindings
func (c *Client) Backend() Backend {
	return c.client
}

// BalanceAt returns the latest native balance of account
func (c *Client) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	qctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	balance, err := c.client.BalanceAt(qctx, account, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", brewerr.ErrBalanceQueryFailed, err)
	}
	return balance, nil
}
