package service

import (
	"fmt"
	"strconv"
	"strings"

	"chain_router/internal/app/port"
	"chain_router/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// chainRouterImpl implements port.ChainRouter: descriptor lookup combined
// with request-shape heuristics for callers that only hold an identifier
// string or a contract address.
type chainRouterImpl struct {
	logger   *zap.Logger
	registry port.ChainRegistry
	index    port.DeploymentIndex
}

// NewChainRouter wires a router over the registry and deployment index.
func NewChainRouter(logger *zap.Logger, registry port.ChainRegistry, index port.DeploymentIndex) port.ChainRouter {
	return &chainRouterImpl{
		logger:   logger.Named("ChainRouter"),
		registry: registry,
		index:    index,
	}
}

// DetectChainByEventID parses a structured identifier of the form
// "<chainName>-<sequenceNumber>" and resolves the chain-name portion via the
// registry. Chain names may themselves contain hyphens, so the sequence
// number is the part after the last one.
func (r *chainRouterImpl) DetectChainByEventID(identifier string) (entity.ChainDescriptor, error) {
	sep := strings.LastIndex(identifier, "-")
	if sep <= 0 || sep == len(identifier)-1 {
		return entity.ChainDescriptor{}, fmt.Errorf("%w: %q (want \"<chainName>-<sequenceNumber>\")",
			entity.ErrInvalidIdentifierFormat, identifier)
	}

	chainName, seq := identifier[:sep], identifier[sep+1:]
	if _, err := strconv.ParseUint(seq, 10, 64); err != nil {
		return entity.ChainDescriptor{}, fmt.Errorf("%w: %q (sequence %q is not numeric)",
			entity.ErrInvalidIdentifierFormat, identifier, seq)
	}

	desc, err := r.registry.Get(chainName)
	if err != nil {
		return entity.ChainDescriptor{}, err
	}
	return desc, nil
}

// DetectChainByContractAddress scans the chains that carry the given role for
// a case-insensitive address match.
func (r *chainRouterImpl) DetectChainByContractAddress(address string, role entity.ContractRole) (entity.ChainDescriptor, error) {
	if !common.IsHexAddress(address) {
		return entity.ChainDescriptor{}, fmt.Errorf("%w: %q is not a valid address", entity.ErrContractNotFound, address)
	}
	wanted := common.HexToAddress(address)

	for _, desc := range r.index.ChainsWithContract(role) {
		deployed, _ := r.index.ResolveContractAddress(desc, role)
		if common.IsHexAddress(deployed) && common.HexToAddress(deployed) == wanted {
			return desc, nil
		}
	}

	r.logger.Debug("No chain carries the contract at the given address",
		zap.String("address", address), zap.String("role", string(role)))
	return entity.ChainDescriptor{}, fmt.Errorf("%w: no chain has %s deployed at %s",
		entity.ErrContractNotFound, role, address)
}

// IsFeatureSupported reports a capability flag for a chain. The flag set is a
// closed enum; unknown chains are an error, the flags themselves cannot be
// unknown.
func (r *chainRouterImpl) IsFeatureSupported(chainName string, flag entity.FeatureFlag) (bool, error) {
	desc, err := r.registry.Get(chainName)
	if err != nil {
		return false, err
	}
	return desc.Feature(flag), nil
}
