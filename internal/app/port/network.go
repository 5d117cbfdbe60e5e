package port

import (
	"context"
	"math/big"

	"chain_router/internal/domain/entity"
)

// ChainRegistry provides the authoritative, read-only catalog of supported
// chain descriptors. Implementations are constructed once at startup and are
// safe for concurrent use.
type ChainRegistry interface {
	// All returns every registered descriptor in registration order.
	All() []entity.ChainDescriptor

	// Get returns the descriptor for a symbolic name, or ErrUnknownChain.
	Get(name string) (entity.ChainDescriptor, error)

	// GetByChainID returns the first descriptor with a matching numeric
	// chain id. Callers probe speculatively, so a miss is not an error.
	GetByChainID(chainID uint64) (entity.ChainDescriptor, bool)

	// Layer2Chains returns the descriptors flagged as layer 2.
	Layer2Chains() []entity.ChainDescriptor

	// IsSupported reports whether a symbolic name is registered.
	IsSupported(name string) bool
}

// FeeDataClient fetches raw fee data from a single chain's RPC endpoint.
type FeeDataClient interface {
	// SuggestGasPrice returns the node's legacy gas price suggestion in wei.
	SuggestGasPrice(ctx context.Context) (*big.Int, error)

	// SuggestFeeCaps returns (maxFeePerGas, maxPriorityFeePerGas) in wei for
	// fee-market chains.
	SuggestFeeCaps(ctx context.Context) (*big.Int, *big.Int, error)

	// Descriptor returns the chain this client is connected to.
	Descriptor() entity.ChainDescriptor
}

// FeeClientProvider hands out fee data clients per chain, reusing dialed
// connections.
type FeeClientProvider interface {
	GetClient(desc entity.ChainDescriptor) (FeeDataClient, error)
}

// GasOracle fetches and caches normalized fee data per chain.
type GasOracle interface {
	// GetGasPrice returns the current reading for one chain. With useCache
	// set, a cached reading younger than the TTL is returned without a
	// network round-trip. RPC failures are returned as errors here; only the
	// aggregate call converts them into failure entries.
	GetGasPrice(ctx context.Context, chainName string, useCache bool) (entity.GasPriceReading, error)

	// GetAllGasPrices fans out to every registered chain concurrently and
	// returns one entry per chain. It never returns an error for individual
	// RPC failures; those surface as failure-status entries.
	GetAllGasPrices(ctx context.Context) []entity.GasPriceReading
}

// OverrideSource provides deployed contract addresses independent of the
// registry's own contracts map, keyed by numeric chain id.
type OverrideSource interface {
	GetAddressForRole(chainID uint64, role entity.ContractRole) (string, bool)
}

// DeploymentIndex resolves whether a contract role is deployed on a chain,
// merging the registry's contracts map with the override source.
type DeploymentIndex interface {
	ResolveContractAddress(desc entity.ChainDescriptor, role entity.ContractRole) (string, bool)
	ChainsWithContract(role entity.ContractRole) []entity.ChainDescriptor
}

// ChainSelector picks exactly one chain under a criteria set, or fails with
// NoEligibleChainError when a hard filter empties the candidate set.
type ChainSelector interface {
	SelectOptimalChain(ctx context.Context, criteria entity.SelectionCriteria) (entity.ChainDescriptor, error)
}

// ChainRouter combines descriptor lookup with request-shape heuristics.
type ChainRouter interface {
	DetectChainByEventID(identifier string) (entity.ChainDescriptor, error)
	DetectChainByContractAddress(address string, role entity.ContractRole) (entity.ChainDescriptor, error)
	IsFeatureSupported(chainName string, flag entity.FeatureFlag) (bool, error)
}
