package service

import (
	"context"
	"math/big"

	"chain_router/internal/app/port"
	"chain_router/internal/domain/entity"
	"chain_router/pkg/metrics"

	"go.uber.org/zap"
)

// chainSelectorImpl implements port.ChainSelector. Selection runs two layers
// in a fixed order: hard filters first (exclusion list, then the contract
// deployment requirement), soft preferences second (layer-2 partition, gas
// ceiling, preferred names, lowest gas). A chain removed by a hard filter can
// never be selected, no matter how well it scores on everything else; a
// preference that would empty the set falls back instead of failing.
type chainSelectorImpl struct {
	logger   *zap.Logger
	registry port.ChainRegistry
	oracle   port.GasOracle
	index    port.DeploymentIndex
}

// NewChainSelector wires a selector over the registry, gas oracle and
// deployment index.
func NewChainSelector(
	logger *zap.Logger,
	registry port.ChainRegistry,
	oracle port.GasOracle,
	index port.DeploymentIndex,
) port.ChainSelector {
	return &chainSelectorImpl{
		logger:   logger.Named("ChainSelector"),
		registry: registry,
		oracle:   oracle,
		index:    index,
	}
}

// SelectOptimalChain picks exactly one chain for the given criteria, or fails
// with NoEligibleChainError naming the hard filter that emptied the set.
func (s *chainSelectorImpl) SelectOptimalChain(ctx context.Context, criteria entity.SelectionCriteria) (entity.ChainDescriptor, error) {
	// Candidate set construction: exclusion is a hard filter.
	candidates := make([]entity.ChainDescriptor, 0)
	for _, desc := range s.registry.All() {
		if criteria.IsExcluded(desc.Identifier) {
			continue
		}
		candidates = append(candidates, desc)
	}
	if len(candidates) == 0 {
		metrics.SelectionsTotal.WithLabelValues("no_eligible_chain").Inc()
		return entity.ChainDescriptor{}, &entity.NoEligibleChainError{Filter: entity.FilterExclusion}
	}

	// Hard contract-deployment filter. Runs before any scoring; a chain
	// without the required contract is never selected and an emptied set is
	// an error, not a fallback.
	if criteria.RequireContractRole != "" {
		deployed := candidates[:0]
		for _, desc := range candidates {
			if _, ok := s.index.ResolveContractAddress(desc, criteria.RequireContractRole); ok {
				deployed = append(deployed, desc)
			}
		}
		candidates = deployed
		if len(candidates) == 0 {
			metrics.SelectionsTotal.WithLabelValues("no_eligible_chain").Inc()
			return entity.ChainDescriptor{}, &entity.NoEligibleChainError{
				Filter: entity.FilterContractRequirement,
				Role:   criteria.RequireContractRole,
			}
		}
	}

	// Soft scoring from here on: preferences narrow the set but never empty
	// it.
	if criteria.PreferLayer2 {
		layer2 := make([]entity.ChainDescriptor, 0, len(candidates))
		for _, desc := range candidates {
			if desc.IsLayer2 {
				layer2 = append(layer2, desc)
			}
		}
		if len(layer2) > 0 {
			candidates = layer2
		}
	}

	if criteria.MaxGasPrice != nil {
		candidates = s.applyGasCeiling(ctx, candidates, criteria.MaxGasPrice)
	}

	if len(criteria.PreferredChainNames) > 0 {
		if chosen, ok := firstPreferred(criteria.PreferredChainNames, candidates); ok {
			metrics.SelectionsTotal.WithLabelValues(chosen.Identifier).Inc()
			s.logger.Debug("Selected preferred chain", zap.String("chain", chosen.Identifier))
			return chosen, nil
		}
		// None of the preferred names survived the filters; fall through to
		// the gas tie-break.
	}

	chosen := s.cheapestCandidate(ctx, candidates)
	metrics.SelectionsTotal.WithLabelValues(chosen.Identifier).Inc()
	s.logger.Debug("Selected chain", zap.String("chain", chosen.Identifier))
	return chosen, nil
}

// applyGasCeiling drops candidates whose current price exceeds the ceiling.
// The ceiling is advisory: emptying the set restores the pre-ceiling
// candidates instead of failing. Chains whose price cannot be read are
// dropped here and restored by the same fallback when nothing survives.
func (s *chainSelectorImpl) applyGasCeiling(ctx context.Context, candidates []entity.ChainDescriptor, ceiling *big.Int) []entity.ChainDescriptor {
	withinCeiling := make([]entity.ChainDescriptor, 0, len(candidates))
	for _, desc := range candidates {
		price := s.currentPrice(ctx, desc.Identifier)
		if price == nil {
			continue
		}
		if price.Cmp(ceiling) <= 0 {
			withinCeiling = append(withinCeiling, desc)
		}
	}
	if len(withinCeiling) == 0 {
		s.logger.Debug("Gas ceiling emptied the candidate set, ignoring ceiling",
			zap.String("ceilingWei", ceiling.String()))
		return candidates
	}
	return withinCeiling
}

// cheapestCandidate returns the candidate with the lowest cached (or freshly
// fetched) gas price, falling back to registry order when prices are
// unavailable or equal.
func (s *chainSelectorImpl) cheapestCandidate(ctx context.Context, candidates []entity.ChainDescriptor) entity.ChainDescriptor {
	chosen := candidates[0]
	var chosenPrice *big.Int

	for _, desc := range candidates {
		price := s.currentPrice(ctx, desc.Identifier)
		if price == nil {
			continue
		}
		if chosenPrice == nil || price.Cmp(chosenPrice) < 0 {
			chosen = desc
			chosenPrice = price
		}
	}
	return chosen
}

// currentPrice returns the effective gas price for a chain, using the cache
// when fresh. Nil when the price cannot be determined.
func (s *chainSelectorImpl) currentPrice(ctx context.Context, chainName string) *big.Int {
	reading, err := s.oracle.GetGasPrice(ctx, chainName, true)
	if err != nil {
		s.logger.Debug("Gas price unavailable during selection",
			zap.String("chain", chainName), zap.Error(err))
		return nil
	}
	return reading.EffectivePrice()
}

func firstPreferred(preferred []string, candidates []entity.ChainDescriptor) (entity.ChainDescriptor, bool) {
	for _, name := range preferred {
		for _, desc := range candidates {
			if desc.Identifier == name {
				return desc, true
			}
		}
	}
	return entity.ChainDescriptor{}, false
}
