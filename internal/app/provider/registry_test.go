package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chain_router/internal/domain/entity"
	"chain_router/internal/infrastructure/network/definition"
	"chain_router/internal/pkg/logger"
)

func TestChainRegistry_OrderAndLookup(t *testing.T) {
	t.Parallel()

	defs := []entity.ChainDescriptor{definition.Ethereum, definition.Optimism, definition.Base}
	registry := NewChainRegistry(logger.NewSlogAdapter(), defs, nil)

	all := registry.All()
	require.Len(t, all, 3)
	assert.Equal(t, "ethereum", all[0].Identifier)
	assert.Equal(t, "optimism", all[1].Identifier)
	assert.Equal(t, "base", all[2].Identifier)

	desc, err := registry.Get("optimism")
	require.NoError(t, err)
	assert.EqualValues(t, 10, desc.ChainID)

	_, err = registry.Get("dogechain")
	require.ErrorIs(t, err, entity.ErrUnknownChain)

	assert.True(t, registry.IsSupported("base"))
	assert.False(t, registry.IsSupported("dogechain"))
}

func TestChainRegistry_GetByChainID(t *testing.T) {
	t.Parallel()

	registry := NewChainRegistry(logger.NewSlogAdapter(),
		[]entity.ChainDescriptor{definition.Ethereum, definition.Polygon}, nil)

	desc, ok := registry.GetByChainID(137)
	require.True(t, ok)
	assert.Equal(t, "polygon", desc.Identifier)

	_, ok = registry.GetByChainID(424242)
	assert.False(t, ok)
}

func TestChainRegistry_Layer2Chains(t *testing.T) {
	t.Parallel()

	registry := NewChainRegistry(logger.NewSlogAdapter(),
		[]entity.ChainDescriptor{definition.Ethereum, definition.Optimism, definition.BSC, definition.Base}, nil)

	l2s := registry.Layer2Chains()
	require.Len(t, l2s, 2)
	assert.Equal(t, "optimism", l2s[0].Identifier)
	assert.Equal(t, "base", l2s[1].Identifier)
}

func TestChainRegistry_TrackedFilter(t *testing.T) {
	t.Parallel()

	registry := NewChainRegistry(logger.NewSlogAdapter(),
		definition.AllKnownChains(), []string{"base", "ethereum"})

	all := registry.All()
	require.Len(t, all, 2)
	// Catalog order wins over tracked-list order.
	assert.Equal(t, "ethereum", all[0].Identifier)
	assert.Equal(t, "base", all[1].Identifier)

	assert.False(t, registry.IsSupported("polygon"), "untracked chains are not registered")
}

func TestChainRegistry_DuplicateKeepsFirst(t *testing.T) {
	t.Parallel()

	first := entity.ChainDescriptor{ChainID: 1, Identifier: "dup"}
	second := entity.ChainDescriptor{ChainID: 2, Identifier: "dup"}

	registry := NewChainRegistry(logger.NewSlogAdapter(),
		[]entity.ChainDescriptor{first, second}, nil)

	require.Len(t, registry.All(), 1)
	desc, err := registry.Get("dup")
	require.NoError(t, err)
	assert.EqualValues(t, 1, desc.ChainID)
}

func TestChainRegistry_AllReturnsCopy(t *testing.T) {
	t.Parallel()

	registry := NewChainRegistry(logger.NewSlogAdapter(),
		[]entity.ChainDescriptor{definition.Ethereum}, nil)

	all := registry.All()
	all[0].Identifier = "mutated"

	fresh := registry.All()
	assert.Equal(t, "ethereum", fresh[0].Identifier)
}
