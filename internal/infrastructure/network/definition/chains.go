package definition

import "chain_router/internal/domain/entity"

// Multicall3 is deployed at the same address on most EVM chains.
const multicall3Address = "0xcA11bde05977b3631167028862bE2a173976CA11"

// Predefined chain descriptors
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.ChainDescriptor{
		ChainID:           1,
		Name:              "Ethereum Mainnet",
		Identifier:        "ethereum",
		NativeSymbol:      "ETH",
		NativeDecimals:    18,
		RPCURLs:           []string{"https://ethereum-rpc.publicnode.com", "https://rpc.ankr.com/eth"},
		IsTestnet:         false,
		IsLayer2:          false,
		SupportsFeeMarket: true,
		AvgGasPriceGwei:   "12",
		Contracts: map[entity.ContractRole]string{
			entity.RoleMulticall: multicall3Address,
		},
	}
	Optimism = entity.ChainDescriptor{
		ChainID:           10,
		Name:              "OP Mainnet",
		Identifier:        "optimism",
		NativeSymbol:      "ETH",
		NativeDecimals:    18,
		RPCURLs:           []string{"https://optimism.publicnode.com", "https://rpc.ankr.com/optimism"},
		IsTestnet:         false,
		IsLayer2:          true,
		SupportsFeeMarket: true,
		AvgGasPriceGwei:   "0.002",
		Contracts: map[entity.ContractRole]string{
			entity.RoleMulticall: multicall3Address,
		},
	}
	Base = entity.ChainDescriptor{
		ChainID:           8453,
		Name:              "Base Mainnet",
		Identifier:        "base",
		NativeSymbol:      "ETH",
		NativeDecimals:    18,
		RPCURLs:           []string{"https://base.publicnode.com", "https://base.llamarpc.com"},
		IsTestnet:         false,
		IsLayer2:          true,
		SupportsFeeMarket: true,
		AvgGasPriceGwei:   "0.01",
		Contracts: map[entity.ContractRole]string{
			entity.RoleMulticall: multicall3Address,
		},
	}
	Arbitrum = entity.ChainDescriptor{
		ChainID:           42161,
		Name:              "Arbitrum One",
		Identifier:        "arbitrum",
		NativeSymbol:      "ETH",
		NativeDecimals:    18,
		RPCURLs:           []string{"https://arb1.arbitrum.io/rpc", "https://arbitrum.publicnode.com"},
		IsTestnet:         false,
		IsLayer2:          true,
		SupportsFeeMarket: true,
		AvgGasPriceGwei:   "0.1",
		Contracts: map[entity.ContractRole]string{
			entity.RoleMulticall: multicall3Address,
		},
	}
	Polygon = entity.ChainDescriptor{
		ChainID:           137,
		Name:              "Polygon PoS",
		Identifier:        "polygon",
		NativeSymbol:      "POL",
		NativeDecimals:    18,
		RPCURLs:           []string{"https://polygon-rpc.com", "https://polygon.publicnode.com"},
		IsTestnet:         false,
		IsLayer2:          false,
		SupportsFeeMarket: true,
		AvgGasPriceGwei:   "35",
		Contracts: map[entity.ContractRole]string{
			entity.RoleMulticall: multicall3Address,
		},
	}
	BSC = entity.ChainDescriptor{
		ChainID:           56,
		Name:              "BNB Smart Chain",
		Identifier:        "bsc",
		NativeSymbol:      "BNB",
		NativeDecimals:    18,
		RPCURLs:           []string{"https://bsc-dataseed1.binance.org", "https://bsc.publicnode.com"},
		IsTestnet:         false,
		IsLayer2:          false,
		SupportsFeeMarket: false, // nodes quote a fixed legacy gas price
		AvgGasPriceGwei:   "1",
		Contracts: map[entity.ContractRole]string{
			entity.RoleMulticall: multicall3Address,
		},
	}
	Rootstock = entity.ChainDescriptor{
		ChainID:           30,
		Name:              "Rootstock Mainnet",
		Identifier:        "rootstock",
		NativeSymbol:      "RBTC",
		NativeDecimals:    18,
		RPCURLs:           []string{"https://public-node.rsk.co"},
		IsTestnet:         false,
		IsLayer2:          false,
		SupportsFeeMarket: false,
		AvgGasPriceGwei:   "0.06",
	}
	OptimismSepolia = entity.ChainDescriptor{
		ChainID:           11155420,
		Name:              "OP Sepolia",
		Identifier:        "optimismSepolia",
		NativeSymbol:      "ETH",
		NativeDecimals:    18,
		RPCURLs:           []string{"https://sepolia.optimism.io", "https://optimism-sepolia.publicnode.com"},
		IsTestnet:         true,
		IsLayer2:          true,
		SupportsFeeMarket: true,
		AvgGasPriceGwei:   "0.001",
		Contracts: map[entity.ContractRole]string{
			entity.RoleEventManager: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
			entity.RoleMulticall:    multicall3Address,
		},
	}
	PolygonAmoy = entity.ChainDescriptor{
		ChainID:           80002,
		Name:              "Polygon Amoy",
		Identifier:        "polygonAmoy",
		NativeSymbol:      "POL",
		NativeDecimals:    18,
		RPCURLs:           []string{"https://rpc-amoy.polygon.technology"},
		IsTestnet:         true,
		IsLayer2:          false,
		SupportsFeeMarket: true,
		AvgGasPriceGwei:   "30",
		Contracts: map[entity.ContractRole]string{
			entity.RoleEventManager: "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512",
		},
	}
)

// AllKnownChains returns the full catalog in registration order. Callers get
// a fresh slice; the descriptors themselves are shared and must not be
// mutated.
func AllKnownChains() []entity.ChainDescriptor {
	return []entity.ChainDescriptor{
		Ethereum,
		Optimism,
		Base,
		Arbitrum,
		Polygon,
		BSC,
		Rootstock,
		OptimismSepolia,
		PolygonAmoy,
	}
}

// DefaultOverrides is the built-in deployed-address override table, keyed by
// numeric chain id. Deployments can move independently of the main catalog;
// the registry's own contracts map still wins when both carry an address.
func DefaultOverrides() map[uint64]map[entity.ContractRole]string {
	return map[uint64]map[entity.ContractRole]string{
		OptimismSepolia.ChainID: {
			entity.RoleTokenVault: "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0",
		},
		PolygonAmoy.ChainID: {
			entity.RoleTokenVault: "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9",
		},
	}
}
