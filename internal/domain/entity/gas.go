package entity

import (
	"math/big"
	"time"
)

// FetchStatus tags a GasPriceReading with the outcome of the underlying RPC
// round-trip. Aggregate calls report one entry per chain, failed or not.
type FetchStatus string

const (
	FetchSuccess FetchStatus = "success"
	FetchFailure FetchStatus = "failure"
)

// GasPriceReading is a normalized snapshot of a chain's current fee data.
// Fee-market chains populate MaxFeePerGas/MaxPriorityFeePerGas; legacy chains
// populate GasPrice. All values are in wei.
type GasPriceReading struct {
	ChainName            string      `json:"chainName"`
	Status               FetchStatus `json:"status"`
	GasPrice             *big.Int    `json:"gasPrice,omitempty"`
	MaxFeePerGas         *big.Int    `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *big.Int    `json:"maxPriorityFeePerGas,omitempty"`
	FetchedAt            time.Time   `json:"fetchedAt"`
	Err                  string      `json:"error,omitempty"` // populated only on failure entries
}

// EffectivePrice returns the value selection compares chains by: the max fee
// for fee-market readings, the legacy gas price otherwise. Nil when the
// reading is a failure entry.
func (r GasPriceReading) EffectivePrice() *big.Int {
	if r.Status != FetchSuccess {
		return nil
	}
	if r.MaxFeePerGas != nil {
		return r.MaxFeePerGas
	}
	return r.GasPrice
}
