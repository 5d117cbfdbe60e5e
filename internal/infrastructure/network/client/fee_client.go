package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"chain_router/internal/app/port"
	"chain_router/internal/domain/entity"

	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/time/rate"
)

// evmFeeClient implements port.FeeDataClient for EVM-compatible chains.
type evmFeeClient struct {
	ethClient   *ethclient.Client
	desc        entity.ChainDescriptor
	callTimeout time.Duration
	limiter     *rate.Limiter
}

// NewEVMFeeClient dials the chain's RPC endpoints in order, first preferred,
// and returns a client bound to the first endpoint that accepts the
// connection.
func NewEVMFeeClient(
	desc entity.ChainDescriptor,
	connectionTimeout time.Duration,
	callTimeout time.Duration,
	limiter *rate.Limiter,
) (port.FeeDataClient, error) {
	var lastErr error

	for _, rpcURL := range desc.RPCURLs {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		ethClient, err := ethclient.DialContext(ctx, rpcURL)
		cancel()

		if err == nil {
			return &evmFeeClient{
				ethClient:   ethClient,
				desc:        desc,
				callTimeout: callTimeout,
				limiter:     limiter,
			}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no RPC endpoints configured")
	}
	return nil, fmt.Errorf("all RPC connection attempts failed for chain %s: %w", desc.Identifier, lastErr)
}

// SuggestGasPrice returns the node's legacy gas price suggestion in wei.
func (c *evmFeeClient) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait for %s: %w", c.desc.Identifier, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	price, err := c.ethClient.SuggestGasPrice(callCtx)
	if err != nil {
		return nil, fmt.Errorf("eth_gasPrice failed for %s: %w", c.desc.Identifier, err)
	}
	return price, nil
}

// SuggestFeeCaps returns (maxFeePerGas, maxPriorityFeePerGas) in wei for
// fee-market chains. The max fee follows the usual 2*baseFee + tip shape so a
// quote stays valid across consecutive full blocks.
func (c *evmFeeClient) SuggestFeeCaps(ctx context.Context) (*big.Int, *big.Int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limiter wait for %s: %w", c.desc.Identifier, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	tip, err := c.ethClient.SuggestGasTipCap(callCtx)
	if err != nil {
		return nil, nil, fmt.Errorf("eth_maxPriorityFeePerGas failed for %s: %w", c.desc.Identifier, err)
	}

	head, err := c.ethClient.HeaderByNumber(callCtx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch latest header for %s: %w", c.desc.Identifier, err)
	}
	if head.BaseFee == nil {
		// Node does not report a base fee despite the fee-market flag; fall
		// back to the legacy suggestion as the max fee.
		price, err := c.ethClient.SuggestGasPrice(callCtx)
		if err != nil {
			return nil, nil, fmt.Errorf("eth_gasPrice fallback failed for %s: %w", c.desc.Identifier, err)
		}
		return price, tip, nil
	}

	maxFee := new(big.Int).Add(
		new(big.Int).Mul(head.BaseFee, big.NewInt(2)),
		tip,
	)
	return maxFee, tip, nil
}

// Descriptor returns the chain this client is connected to.
func (c *evmFeeClient) Descriptor() entity.ChainDescriptor {
	return c.desc
}
