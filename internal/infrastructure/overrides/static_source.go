package overrides

import (
	"fmt"
	"os"

	"chain_router/internal/app/port"
	"chain_router/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// overrideDocument is the wire/file format for deployed-address overrides.
type overrideDocument struct {
	Deployments []deploymentEntry `json:"deployments"`
}

type deploymentEntry struct {
	ChainID   uint64                         `json:"chainId"`
	Contracts map[entity.ContractRole]string `json:"contracts"`
}

// staticSource implements port.OverrideSource over an in-memory table.
type staticSource struct {
	table map[uint64]map[entity.ContractRole]string
}

// NewStaticSource wraps an in-memory override table.
func NewStaticSource(table map[uint64]map[entity.ContractRole]string) port.OverrideSource {
	if table == nil {
		table = map[uint64]map[entity.ContractRole]string{}
	}
	return &staticSource{table: table}
}

// NewFileSource loads an override document from a local JSON file.
func NewFileSource(path string) (port.OverrideSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file %s: %w", path, err)
	}

	var doc overrideDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse overrides file %s: %w", path, err)
	}

	return NewStaticSource(documentToTable(doc)), nil
}

// GetAddressForRole returns the override address for (chain id, role), if any.
func (s *staticSource) GetAddressForRole(chainID uint64, role entity.ContractRole) (string, bool) {
	contracts, ok := s.table[chainID]
	if !ok {
		return "", false
	}
	addr, ok := contracts[role]
	if !ok || addr == "" {
		return "", false
	}
	return addr, true
}

func documentToTable(doc overrideDocument) map[uint64]map[entity.ContractRole]string {
	table := make(map[uint64]map[entity.ContractRole]string, len(doc.Deployments))
	for _, dep := range doc.Deployments {
		if len(dep.Contracts) == 0 {
			continue
		}
		existing, ok := table[dep.ChainID]
		if !ok {
			existing = make(map[entity.ContractRole]string, len(dep.Contracts))
			table[dep.ChainID] = existing
		}
		for role, addr := range dep.Contracts {
			if addr == "" {
				continue
			}
			existing[role] = addr
		}
	}
	return table
}
