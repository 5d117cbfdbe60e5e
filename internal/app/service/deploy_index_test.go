package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chain_router/internal/app/provider"
	"chain_router/internal/domain/entity"
	"chain_router/internal/infrastructure/overrides"
	"chain_router/internal/pkg/logger"
)

func TestDeploymentIndex_ResolveContractAddress(t *testing.T) {
	t.Parallel()

	desc := entity.ChainDescriptor{
		ChainID:    7,
		Identifier: "alpha",
		Contracts: map[entity.ContractRole]string{
			entity.RoleEventManager: "0xAAA0000000000000000000000000000000000001",
		},
	}

	overrideTable := overrides.NewStaticSource(map[uint64]map[entity.ContractRole]string{
		7: {
			entity.RoleEventManager: "0xBBB0000000000000000000000000000000000002",
			entity.RoleTokenVault:   "0xCCC0000000000000000000000000000000000003",
		},
	})

	registry := provider.NewChainRegistry(logger.NewSlogAdapter(), []entity.ChainDescriptor{desc}, nil)
	index := NewDeploymentIndex(zap.NewNop(), registry, overrideTable)

	tests := []struct {
		name     string
		role     entity.ContractRole
		want     string
		wantPick bool
	}{
		{
			name:     "registry wins when both sources carry an address",
			role:     entity.RoleEventManager,
			want:     "0xAAA0000000000000000000000000000000000001",
			wantPick: true,
		},
		{
			name:     "override fills a registry gap",
			role:     entity.RoleTokenVault,
			want:     "0xCCC0000000000000000000000000000000000003",
			wantPick: true,
		},
		{
			name:     "absent in both sources",
			role:     entity.RoleMulticall,
			wantPick: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			addr, ok := index.ResolveContractAddress(desc, tt.role)
			require.Equal(t, tt.wantPick, ok)
			assert.Equal(t, tt.want, addr)
		})
	}
}

func TestDeploymentIndex_EmptyRegistryAddressFallsBack(t *testing.T) {
	t.Parallel()

	desc := entity.ChainDescriptor{
		ChainID:    8,
		Identifier: "beta",
		Contracts: map[entity.ContractRole]string{
			entity.RoleEventManager: "", // present but empty counts as absent
		},
	}
	overrideTable := overrides.NewStaticSource(map[uint64]map[entity.ContractRole]string{
		8: {entity.RoleEventManager: "0xDDD0000000000000000000000000000000000004"},
	})

	registry := provider.NewChainRegistry(logger.NewSlogAdapter(), []entity.ChainDescriptor{desc}, nil)
	index := NewDeploymentIndex(zap.NewNop(), registry, overrideTable)

	addr, ok := index.ResolveContractAddress(desc, entity.RoleEventManager)
	require.True(t, ok)
	assert.Equal(t, "0xDDD0000000000000000000000000000000000004", addr)
}

func TestDeploymentIndex_ChainsWithContract(t *testing.T) {
	t.Parallel()

	withContract := entity.ChainDescriptor{
		ChainID:    1,
		Identifier: "hasit",
		Contracts:  map[entity.ContractRole]string{entity.RoleEventManager: "0xEEE0000000000000000000000000000000000005"},
	}
	without := entity.ChainDescriptor{ChainID: 2, Identifier: "lacksit"}

	registry := provider.NewChainRegistry(logger.NewSlogAdapter(),
		[]entity.ChainDescriptor{withContract, without}, nil)
	index := NewDeploymentIndex(zap.NewNop(), registry, nil)

	matched := index.ChainsWithContract(entity.RoleEventManager)
	require.Len(t, matched, 1)
	assert.Equal(t, "hasit", matched[0].Identifier)

	assert.Empty(t, index.ChainsWithContract(entity.ContractRole("nosuchrole")),
		"unrecognized role yields an empty slice, not an error")
}
