package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chain_router/internal/app/port"
	"chain_router/internal/app/provider"
	"chain_router/internal/domain/entity"
	"chain_router/internal/infrastructure/network/definition"
	"chain_router/internal/pkg/logger"
)

func newTestRouter(defs []entity.ChainDescriptor) port.ChainRouter {
	registry := provider.NewChainRegistry(logger.NewSlogAdapter(), defs, nil)
	index := NewDeploymentIndex(zap.NewNop(), registry, nil)
	return NewChainRouter(zap.NewNop(), registry, index)
}

func TestRouter_DetectChainByEventID(t *testing.T) {
	t.Parallel()

	router := newTestRouter([]entity.ChainDescriptor{definition.Ethereum, definition.OptimismSepolia})

	tests := []struct {
		name       string
		identifier string
		wantChain  string
		wantErr    error
	}{
		{
			name:       "valid identifier",
			identifier: "ethereum-42",
			wantChain:  "ethereum",
		},
		{
			name:       "chain name containing a hyphen-free camel identifier",
			identifier: "optimismSepolia-7",
			wantChain:  "optimismSepolia",
		},
		{
			name:       "missing separator",
			identifier: "ethereum42",
			wantErr:    entity.ErrInvalidIdentifierFormat,
		},
		{
			name:       "non-numeric sequence",
			identifier: "ethereum-abc",
			wantErr:    entity.ErrInvalidIdentifierFormat,
		},
		{
			name:       "empty sequence",
			identifier: "ethereum-",
			wantErr:    entity.ErrInvalidIdentifierFormat,
		},
		{
			name:       "unknown chain",
			identifier: "dogechain-1",
			wantErr:    entity.ErrUnknownChain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			desc, err := router.DetectChainByEventID(tt.identifier)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantChain, desc.Identifier)
		})
	}
}

func TestRouter_DetectChainByContractAddress(t *testing.T) {
	t.Parallel()

	router := newTestRouter([]entity.ChainDescriptor{definition.Ethereum, definition.OptimismSepolia})

	deployed := definition.OptimismSepolia.Contracts[entity.RoleEventManager]

	desc, err := router.DetectChainByContractAddress(deployed, entity.RoleEventManager)
	require.NoError(t, err)
	assert.Equal(t, "optimismSepolia", desc.Identifier)

	// Address matching ignores case.
	desc, err = router.DetectChainByContractAddress(strings.ToLower(deployed), entity.RoleEventManager)
	require.NoError(t, err)
	assert.Equal(t, "optimismSepolia", desc.Identifier)

	_, err = router.DetectChainByContractAddress("0x0000000000000000000000000000000000000001", entity.RoleEventManager)
	require.ErrorIs(t, err, entity.ErrContractNotFound)

	_, err = router.DetectChainByContractAddress("not-an-address", entity.RoleEventManager)
	require.ErrorIs(t, err, entity.ErrContractNotFound)
}

func TestRouter_IsFeatureSupported(t *testing.T) {
	t.Parallel()

	router := newTestRouter([]entity.ChainDescriptor{definition.Ethereum, definition.OptimismSepolia, definition.BSC})

	tests := []struct {
		name  string
		chain string
		flag  entity.FeatureFlag
		want  bool
	}{
		{name: "ethereum fee market", chain: "ethereum", flag: entity.FeatureFeeMarket, want: true},
		{name: "ethereum not layer 2", chain: "ethereum", flag: entity.FeatureLayer2, want: false},
		{name: "bsc legacy fees", chain: "bsc", flag: entity.FeatureFeeMarket, want: false},
		{name: "sepolia testnet", chain: "optimismSepolia", flag: entity.FeatureTestnet, want: true},
		{name: "sepolia layer 2", chain: "optimismSepolia", flag: entity.FeatureLayer2, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := router.IsFeatureSupported(tt.chain, tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := router.IsFeatureSupported("dogechain", entity.FeatureLayer2)
	require.ErrorIs(t, err, entity.ErrUnknownChain)
}
