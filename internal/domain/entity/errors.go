package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the registry and router. ErrUnknownChain covers
// both the "unknown chain" and "chain not found" cases; call sites historically
// used the two interchangeably so they are one kind here.
var (
	ErrUnknownChain            = errors.New("unknown chain")
	ErrInvalidIdentifierFormat = errors.New("invalid identifier format")
	ErrContractNotFound        = errors.New("contract not found")
)

// EmptyingFilter names the hard filter that removed the last candidate during
// selection, so failures state which constraint could not be met.
type EmptyingFilter string

const (
	FilterExclusion           EmptyingFilter = "exclusion list"
	FilterContractRequirement EmptyingFilter = "contract requirement"
)

// NoEligibleChainError reports that a hard filter emptied the candidate set.
// Selection never silently falls back to a chain that failed a hard filter.
type NoEligibleChainError struct {
	Filter EmptyingFilter
	Role   ContractRole // set when Filter is FilterContractRequirement
}

func (e *NoEligibleChainError) Error() string {
	if e.Filter == FilterContractRequirement {
		return fmt.Sprintf("no eligible chain: %s emptied the candidate set (role %q)", e.Filter, e.Role)
	}
	return fmt.Sprintf("no eligible chain: %s emptied the candidate set", e.Filter)
}

// IsNoEligibleChain reports whether err is a NoEligibleChainError.
func IsNoEligibleChain(err error) bool {
	var target *NoEligibleChainError
	return errors.As(err, &target)
}
