package service

import (
	"chain_router/internal/app/port"
	"chain_router/internal/domain/entity"

	"go.uber.org/zap"
)

// deploymentIndexImpl implements port.DeploymentIndex by merging two address
// sources. The registry's own contracts map takes precedence over the
// override table when both carry an address for the same (chain, role) pair.
type deploymentIndexImpl struct {
	logger    *zap.Logger
	registry  port.ChainRegistry
	overrides port.OverrideSource
}

// NewDeploymentIndex creates a deployment index over the registry and an
// override source. A nil override source is allowed; lookups then consult the
// registry only.
func NewDeploymentIndex(logger *zap.Logger, registry port.ChainRegistry, overrides port.OverrideSource) port.DeploymentIndex {
	return &deploymentIndexImpl{
		logger:    logger.Named("DeploymentIndex"),
		registry:  registry,
		overrides: overrides,
	}
}

// ResolveContractAddress returns the deployed address for a role on a chain.
// Registry first, override table second; empty addresses are treated as
// absent in both sources.
func (d *deploymentIndexImpl) ResolveContractAddress(desc entity.ChainDescriptor, role entity.ContractRole) (string, bool) {
	if addr, ok := desc.Contracts[role]; ok && addr != "" {
		return addr, true
	}
	if d.overrides != nil {
		if addr, ok := d.overrides.GetAddressForRole(desc.ChainID, role); ok {
			return addr, true
		}
	}
	return "", false
}

// ChainsWithContract returns every registered chain on which the role
// resolves to a non-empty address. An unrecognized role yields an empty
// slice, never an error.
func (d *deploymentIndexImpl) ChainsWithContract(role entity.ContractRole) []entity.ChainDescriptor {
	chains := d.registry.All()
	matched := make([]entity.ChainDescriptor, 0, len(chains))
	for _, desc := range chains {
		if _, ok := d.ResolveContractAddress(desc, role); ok {
			matched = append(matched, desc)
		}
	}
	return matched
}
