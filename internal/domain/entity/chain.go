package entity

// ContractRole is a logical name for a well-known contract whose deployed
// address varies per chain (e.g. "eventManager", "multicall").
type ContractRole string

const (
	RoleEventManager ContractRole = "eventManager"
	RoleMulticall    ContractRole = "multicall"
	RoleTokenVault   ContractRole = "tokenVault"
)

// FeatureFlag is the closed set of boolean capabilities a chain descriptor
// can be asked about. Unknown flags are a compile-time error, not a silent
// false.
type FeatureFlag int

const (
	FeatureFeeMarket FeatureFlag = iota // EIP-1559 style fee market
	FeatureLayer2
	FeatureTestnet
)

// String returns the wire name used by the HTTP surface.
func (f FeatureFlag) String() string {
	switch f {
	case FeatureFeeMarket:
		return "supportsFeeMarket"
	case FeatureLayer2:
		return "isLayer2"
	case FeatureTestnet:
		return "isTestnet"
	default:
		return "unknown"
	}
}

// ParseFeatureFlag maps a wire name onto the closed enum. The boolean is
// false for names outside the enum; callers decide whether that is an error.
func ParseFeatureFlag(name string) (FeatureFlag, bool) {
	switch name {
	case "supportsFeeMarket", "supportsEIP1559":
		return FeatureFeeMarket, true
	case "isLayer2", "isL2":
		return FeatureLayer2, true
	case "isTestnet":
		return FeatureTestnet, true
	default:
		return 0, false
	}
}

// ChainDescriptor holds the static configuration for a supported EVM chain.
// Descriptors are loaded once at startup and never mutated at runtime; tests
// that need a different contracts map build their own registry instance.
type ChainDescriptor struct {
	ChainID           uint64                  `json:"chainId" yaml:"chainId"`
	Name              string                  `json:"name" yaml:"name"`
	Identifier        string                  `json:"identifier" yaml:"identifier"` // symbolic registry key, e.g. "ethereum"
	NativeSymbol      string                  `json:"nativeSymbol" yaml:"nativeSymbol"`
	NativeDecimals    int32                   `json:"nativeDecimals" yaml:"nativeDecimals"`
	RPCURLs           []string                `json:"rpcUrls" yaml:"rpcUrls"` // ordered, first preferred
	IsTestnet         bool                    `json:"isTestnet" yaml:"isTestnet"`
	IsLayer2          bool                    `json:"isLayer2" yaml:"isLayer2"`
	SupportsFeeMarket bool                    `json:"supportsFeeMarket" yaml:"supportsFeeMarket"`
	AvgGasPriceGwei   string                  `json:"avgGasPriceGwei,omitempty" yaml:"avgGasPriceGwei,omitempty"` // display hint only
	Contracts         map[ContractRole]string `json:"contracts,omitempty" yaml:"contracts,omitempty"`
}

// Feature reports the value of one of the closed set of capability flags.
func (d ChainDescriptor) Feature(flag FeatureFlag) bool {
	switch flag {
	case FeatureFeeMarket:
		return d.SupportsFeeMarket
	case FeatureLayer2:
		return d.IsLayer2
	case FeatureTestnet:
		return d.IsTestnet
	default:
		return false
	}
}

// PrimaryRPCURL returns the preferred endpoint, or "" when the descriptor
// carries no endpoints at all.
func (d ChainDescriptor) PrimaryRPCURL() string {
	if len(d.RPCURLs) == 0 {
		return ""
	}
	return d.RPCURLs[0]
}
