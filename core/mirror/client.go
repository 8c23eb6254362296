// Package mirror provides the Hedera mirror node collaborator used by format
// detection and by converters that need on-ledger lookups.
package mirror

import (
	"context"
	"errors"
)

// ErrNotFound indicates the entity does not exist in the queried namespace.
var ErrNotFound = errors.New("mirror: entity not found")

// Client is the read-only mirror node surface the engine consumes. Callers
// treat any returned error as a negative existence result.
type Client interface {
	AccountBalance(ctx context.Context, id string) (*AccountBalance, error)
	AccountInfo(ctx context.Context, id string) (*AccountInfo, error)
	TokenInfo(ctx context.Context, id string) (*TokenInfo, error)
	TopicInfo(ctx context.Context, id string) (*TopicInfo, error)
	ContractInfo(ctx context.Context, id string) (*ContractInfo, error)
}

// AccountBalance is the balance record for one account.
type AccountBalance struct {
	Account string `json:"account"`
	Balance int64  `json:"balance"`
}

// AccountInfo is the subset of the mirror account record the engine reads.
type AccountInfo struct {
	Account    string `json:"account"`
	Alias      string `json:"alias"`
	EVMAddress string `json:"evm_address"`
	Balance    struct {
		Balance int64 `json:"balance"`
	} `json:"balance"`
}

// TokenInfo is the subset of the mirror token record the engine reads.
type TokenInfo struct {
	TokenID string `json:"token_id"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Type    string `json:"type"`
}

// TopicInfo is the subset of the mirror topic record the engine reads.
type TopicInfo struct {
	TopicID string `json:"topic_id"`
	Memo    string `json:"memo"`
}

// ContractInfo is the subset of the mirror contract record the engine reads.
type ContractInfo struct {
	ContractID string `json:"contract_id"`
	EVMAddress string `json:"evm_address"`
}

type balancesResponse struct {
	Balances []AccountBalance `json:"balances"`
}
