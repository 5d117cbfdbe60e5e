package service

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"time"

	"chain_router/internal/app/port"
	"chain_router/internal/domain/entity"
)

// fakeFeeClient implements port.FeeDataClient with canned values and call
// counting, so cache behavior is observable without a network.
type fakeFeeClient struct {
	desc     entity.ChainDescriptor
	gasPrice *big.Int
	maxFee   *big.Int
	tip      *big.Int
	err      error
	calls    atomic.Int64
}

func (f *fakeFeeClient) SuggestGasPrice(_ context.Context) (*big.Int, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return new(big.Int).Set(f.gasPrice), nil
}

func (f *fakeFeeClient) SuggestFeeCaps(_ context.Context) (*big.Int, *big.Int, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, nil, f.err
	}
	return new(big.Int).Set(f.maxFee), new(big.Int).Set(f.tip), nil
}

func (f *fakeFeeClient) Descriptor() entity.ChainDescriptor { return f.desc }

// fakeFeeClientProvider hands out pre-built fake clients by chain identifier.
type fakeFeeClientProvider struct {
	clients map[string]*fakeFeeClient
}

func (p *fakeFeeClientProvider) GetClient(desc entity.ChainDescriptor) (port.FeeDataClient, error) {
	feeClient, ok := p.clients[desc.Identifier]
	if !ok {
		return nil, errors.New("no fake client for " + desc.Identifier)
	}
	return feeClient, nil
}

// fakeGasOracle implements port.GasOracle over a static price table, for
// selector tests that should not depend on oracle internals.
type fakeGasOracle struct {
	prices   map[string]*big.Int // effective price in wei; missing means fetch failure
	fetchErr error
}

func (o *fakeGasOracle) GetGasPrice(_ context.Context, chainName string, _ bool) (entity.GasPriceReading, error) {
	price, ok := o.prices[chainName]
	if !ok {
		if o.fetchErr != nil {
			return entity.GasPriceReading{}, o.fetchErr
		}
		return entity.GasPriceReading{}, errors.New("rpc unreachable for " + chainName)
	}
	return entity.GasPriceReading{
		ChainName: chainName,
		Status:    entity.FetchSuccess,
		GasPrice:  new(big.Int).Set(price),
		FetchedAt: time.Now(),
	}, nil
}

func (o *fakeGasOracle) GetAllGasPrices(ctx context.Context) []entity.GasPriceReading {
	out := make([]entity.GasPriceReading, 0, len(o.prices))
	for name := range o.prices {
		reading, err := o.GetGasPrice(ctx, name, true)
		if err != nil {
			continue
		}
		out = append(out, reading)
	}
	return out
}
