package entity

import "math/big"

// SelectionCriteria is the caller-supplied input to chain selection. All
// fields are optional and independent. The contract-role requirement is the
// only hard filter besides the exclusion list; the gas ceiling is advisory.
type SelectionCriteria struct {
	PreferLayer2        bool         `json:"preferLayer2"`
	MaxGasPrice         *big.Int     `json:"-"`                             // wei; nil means no ceiling
	MaxGasPriceGwei     string       `json:"maxGasPriceGwei,omitempty"`     // decimal gwei, parsed by the HTTP layer
	PreferredChainNames []string     `json:"preferredChains,omitempty"`     // ordered tie-break priority
	ExcludedChainNames  []string     `json:"excludeChains,omitempty"`       // hard exclusion
	RequireContractRole ContractRole `json:"requireContractRole,omitempty"` // hard Layer-1 filter
}

// IsExcluded reports whether the named chain appears in the exclusion list.
func (c SelectionCriteria) IsExcluded(name string) bool {
	for _, excluded := range c.ExcludedChainNames {
		if excluded == name {
			return true
		}
	}
	return false
}
