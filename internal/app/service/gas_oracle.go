package service

import (
	"context"
	"math/big"
	"time"

	"chain_router/internal/app/port"
	"chain_router/internal/config"
	"chain_router/internal/domain/entity"
	"chain_router/internal/pkg/utils"
	"chain_router/pkg/metrics"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// gasOracleImpl implements port.GasOracle. The TTL cache is an explicit
// side-table owned by the oracle, keyed by chain identifier, so the TTL and
// invalidation policy stay inspectable independent of the fetch logic.
// Concurrent misses for the same chain are not coalesced; fee reads are
// idempotent and a duplicate round-trip is harmless.
type gasOracleImpl struct {
	logger   *zap.Logger
	registry port.ChainRegistry
	clients  port.FeeClientProvider

	readings *cache.Cache // fresh readings, expire after the TTL
	lastGood *cache.Cache // last successful reading per chain, never expires

	ttl              time.Duration
	feeBufferPercent int64
	minMaxFee        *big.Int
	minPriorityFee   *big.Int
	maxConcurrent    int
}

// NewGasOracle creates a gas price oracle over the given registry and client
// provider.
func NewGasOracle(
	logger *zap.Logger,
	cfg *config.Config,
	registry port.ChainRegistry,
	clients port.FeeClientProvider,
) port.GasOracle {
	ttl := time.Duration(cfg.GasOracle.CacheTTLSeconds) * time.Second

	return &gasOracleImpl{
		logger:           logger.Named("GasOracle"),
		registry:         registry,
		clients:          clients,
		readings:         cache.New(ttl, 2*ttl),
		lastGood:         cache.New(cache.NoExpiration, 0),
		ttl:              ttl,
		feeBufferPercent: cfg.GasOracle.FeeBufferPercent,
		minMaxFee:        parseFloor(logger, cfg.GasOracle.MinMaxFeeGwei),
		minPriorityFee:   parseFloor(logger, cfg.GasOracle.MinPriorityFeeGwei),
		maxConcurrent:    cfg.GasOracle.MaxConcurrentFetches,
	}
}

func parseFloor(logger *zap.Logger, gwei string) *big.Int {
	if gwei == "" {
		return big.NewInt(0)
	}
	floor, err := utils.ParseGweiDecimal(gwei)
	if err != nil {
		logger.Warn("Invalid fee floor in config, using zero", zap.String("value", gwei), zap.Error(err))
		return big.NewInt(0)
	}
	return floor
}

// GetGasPrice returns the current reading for one chain. With useCache set, a
// reading younger than the TTL is returned without a network round-trip. RPC
// failures are returned as errors here; the aggregate call converts them into
// failure entries instead.
func (o *gasOracleImpl) GetGasPrice(ctx context.Context, chainName string, useCache bool) (entity.GasPriceReading, error) {
	desc, err := o.registry.Get(chainName)
	if err != nil {
		return entity.GasPriceReading{}, err
	}

	if useCache {
		if cached, ok := o.readings.Get(chainName); ok {
			metrics.GasCacheHits.Inc()
			return cached.(entity.GasPriceReading), nil
		}
		metrics.GasCacheMisses.Inc()
	}

	reading, err := o.fetch(ctx, desc)
	if err != nil {
		metrics.RPCFetchTotal.WithLabelValues(chainName, string(entity.FetchFailure)).Inc()
		return entity.GasPriceReading{}, err
	}

	metrics.RPCFetchTotal.WithLabelValues(chainName, string(entity.FetchSuccess)).Inc()
	o.readings.Set(chainName, reading, o.ttl)
	o.lastGood.Set(chainName, reading, cache.NoExpiration)
	return reading, nil
}

// GetAllGasPrices fans out to every registered chain concurrently and returns
// one entry per chain, preserving registry order. A failed chain yields a
// failure-status entry carrying the last-good prices for display; it never
// aborts the others and the call itself never returns an error.
func (o *gasOracleImpl) GetAllGasPrices(ctx context.Context) []entity.GasPriceReading {
	chains := o.registry.All()
	results := make([]entity.GasPriceReading, len(chains))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.maxConcurrent)

	for i := range chains {
		idx, desc := i, chains[i]
		eg.Go(func() error {
			reading, err := o.GetGasPrice(gctx, desc.Identifier, true)
			if err != nil {
				// Handled here; one bad chain must not poison the rest.
				results[idx] = o.failureEntry(desc.Identifier, err)
				return nil
			}
			results[idx] = reading
			return nil
		})
	}
	_ = eg.Wait() // goroutines always return nil

	return results
}

// failureEntry builds the per-chain entry for a failed fetch. The last-good
// prices are carried over for display, but the failure status means the entry
// never satisfies selection criteria that require freshness.
func (o *gasOracleImpl) failureEntry(chainName string, err error) entity.GasPriceReading {
	entry := entity.GasPriceReading{
		ChainName: chainName,
		Status:    entity.FetchFailure,
		FetchedAt: time.Now(),
		Err:       err.Error(),
	}
	if prev, ok := o.lastGood.Get(chainName); ok {
		prevReading := prev.(entity.GasPriceReading)
		entry.GasPrice = prevReading.GasPrice
		entry.MaxFeePerGas = prevReading.MaxFeePerGas
		entry.MaxPriorityFeePerGas = prevReading.MaxPriorityFeePerGas
	}
	o.logger.Warn("Gas price fetch failed", zap.String("chain", chainName), zap.Error(err))
	return entry
}

// fetch performs the live RPC round-trip and normalizes the response.
func (o *gasOracleImpl) fetch(ctx context.Context, desc entity.ChainDescriptor) (entity.GasPriceReading, error) {
	feeClient, err := o.clients.GetClient(desc)
	if err != nil {
		return entity.GasPriceReading{}, err
	}

	start := time.Now()
	defer func() {
		metrics.RPCFetchDuration.WithLabelValues(desc.Identifier).Observe(time.Since(start).Seconds())
	}()

	if !desc.SupportsFeeMarket {
		price, err := feeClient.SuggestGasPrice(ctx)
		if err != nil {
			return entity.GasPriceReading{}, err
		}
		// Legacy chains quote a single price; no buffer applied.
		return entity.GasPriceReading{
			ChainName: desc.Identifier,
			Status:    entity.FetchSuccess,
			GasPrice:  price,
			FetchedAt: time.Now(),
		}, nil
	}

	maxFee, tip, err := feeClient.SuggestFeeCaps(ctx)
	if err != nil {
		return entity.GasPriceReading{}, err
	}

	return entity.GasPriceReading{
		ChainName:            desc.Identifier,
		Status:               entity.FetchSuccess,
		MaxFeePerGas:         clampMin(o.buffered(maxFee), o.minMaxFee),
		MaxPriorityFeePerGas: clampMin(o.buffered(tip), o.minPriorityFee),
		FetchedAt:            time.Now(),
	}, nil
}

// buffered applies the safety multiplier to a node-suggested fee so a quote
// survives short-term congestion swings.
func (o *gasOracleImpl) buffered(value *big.Int) *big.Int {
	out := new(big.Int).Mul(value, big.NewInt(100+o.feeBufferPercent))
	return out.Div(out, big.NewInt(100))
}

// clampMin raises value to the floor. Congested-but-cheap test networks would
// otherwise quote a priority fee no relayer accepts.
func clampMin(value, floor *big.Int) *big.Int {
	if floor != nil && value.Cmp(floor) < 0 {
		return new(big.Int).Set(floor)
	}
	return value
}
