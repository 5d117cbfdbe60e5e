package provider

import (
	"fmt"

	"chain_router/internal/app/port"
	"chain_router/internal/domain/entity"
)

// chainRegistry implements port.ChainRegistry over an explicit descriptor
// list. It is built once at startup and never mutated afterwards; there is no
// process-wide registry.
type chainRegistry struct {
	logger  port.Logger
	ordered []entity.ChainDescriptor
	byName  map[string]entity.ChainDescriptor
}

// NewChainRegistry creates a registry over the given descriptors. When
// trackedIdentifiers is non-empty, only the named chains are registered;
// otherwise the whole catalog is. Duplicate identifiers keep the first
// occurrence, matching registration order.
func NewChainRegistry(log port.Logger, defs []entity.ChainDescriptor, trackedIdentifiers []string) port.ChainRegistry {
	r := &chainRegistry{
		logger:  log,
		ordered: make([]entity.ChainDescriptor, 0, len(defs)),
		byName:  make(map[string]entity.ChainDescriptor, len(defs)),
	}

	tracked := make(map[string]struct{}, len(trackedIdentifiers))
	for _, id := range trackedIdentifiers {
		tracked[id] = struct{}{}
	}

	for _, def := range defs {
		if len(tracked) > 0 {
			if _, ok := tracked[def.Identifier]; !ok {
				continue
			}
		}
		if _, dup := r.byName[def.Identifier]; dup {
			r.logger.Warn(fmt.Sprintf("Duplicate chain identifier %q in catalog. Keeping first occurrence.", def.Identifier))
			continue
		}
		r.byName[def.Identifier] = def
		r.ordered = append(r.ordered, def)
		r.logger.Debug(fmt.Sprintf("Chain %q registered.", def.Identifier), "chainId", def.ChainID, "layer2", def.IsLayer2)
	}

	if len(r.ordered) == 0 {
		r.logger.Warn("Chain registry initialized with no chains. Check catalog and tracked identifiers.")
	} else {
		r.logger.Info(fmt.Sprintf("Chain registry initialized. Registered chains: %d", len(r.ordered)))
	}

	return r
}

// All returns every registered descriptor in registration order.
func (r *chainRegistry) All() []entity.ChainDescriptor {
	defsCopy := make([]entity.ChainDescriptor, len(r.ordered))
	copy(defsCopy, r.ordered)
	return defsCopy
}

// Get returns the descriptor for a symbolic name.
func (r *chainRegistry) Get(name string) (entity.ChainDescriptor, error) {
	def, ok := r.byName[name]
	if !ok {
		return entity.ChainDescriptor{}, fmt.Errorf("%w: %q", entity.ErrUnknownChain, name)
	}
	return def, nil
}

// GetByChainID returns the first descriptor matching the numeric chain id.
func (r *chainRegistry) GetByChainID(chainID uint64) (entity.ChainDescriptor, bool) {
	for _, def := range r.ordered {
		if def.ChainID == chainID {
			return def, true
		}
	}
	return entity.ChainDescriptor{}, false
}

// Layer2Chains returns the registered descriptors flagged as layer 2.
func (r *chainRegistry) Layer2Chains() []entity.ChainDescriptor {
	l2s := make([]entity.ChainDescriptor, 0, len(r.ordered))
	for _, def := range r.ordered {
		if def.IsLayer2 {
			l2s = append(l2s, def)
		}
	}
	return l2s
}

// IsSupported reports whether a symbolic name is registered. Never errors.
func (r *chainRegistry) IsSupported(name string) bool {
	_, ok := r.byName[name]
	return ok
}
