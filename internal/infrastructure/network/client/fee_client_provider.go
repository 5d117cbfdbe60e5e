package client

import (
	"fmt"
	"sync"
	"time"

	"chain_router/internal/app/port"
	"chain_router/internal/config"
	"chain_router/internal/domain/entity"

	"golang.org/x/time/rate"
)

// feeClientProvider implements port.FeeClientProvider. Dialed clients are
// cached per chain identifier so repeated oracle calls reuse connections.
type feeClientProvider struct {
	clients           map[string]port.FeeDataClient
	mu                sync.Mutex
	logger            port.Logger
	connectionTimeout time.Duration
	callTimeout       time.Duration
	limiterPeriod     time.Duration
	limiterBurst      int
}

// NewFeeClientProvider creates a provider configured from the RPC client
// section of the application config.
func NewFeeClientProvider(cfg *config.Config, log port.Logger) port.FeeClientProvider {
	return &feeClientProvider{
		clients:           make(map[string]port.FeeDataClient),
		logger:            log,
		connectionTimeout: time.Duration(cfg.RPCClient.ConnectionTimeoutSeconds) * time.Second,
		callTimeout:       time.Duration(cfg.RPCClient.CallTimeoutSeconds) * time.Second,
		limiterPeriod:     cfg.LimiterPeriodDuration(),
		limiterBurst:      cfg.RPCClient.LimiterBurst,
	}
}

// GetClient returns a fee data client for the given chain, dialing on first
// use. Each chain gets its own rate limiter so a chatty chain cannot starve
// the others.
func (p *feeClientProvider) GetClient(desc entity.ChainDescriptor) (port.FeeDataClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.clients[desc.Identifier]; ok {
		return existing, nil
	}

	p.logger.Debug("Creating new fee data client", "chain", desc.Identifier, "rpcPrimary", desc.PrimaryRPCURL())

	limiter := rate.NewLimiter(rate.Every(p.limiterPeriod), p.limiterBurst)
	feeClient, err := NewEVMFeeClient(desc, p.connectionTimeout, p.callTimeout, limiter)
	if err != nil {
		p.logger.Error("Failed to create fee data client", "chain", desc.Identifier, "error", err)
		return nil, fmt.Errorf("failed to create fee client for %s: %w", desc.Identifier, err)
	}

	p.clients[desc.Identifier] = feeClient
	return feeClient, nil
}
