package convert

import (
	"context"
	"fmt"

	"github.com/hashgraph-online/conversational-agent-sub001/core/entity"
	"github.com/hashgraph-online/conversational-agent-sub001/core/mirror"
)

// AccountToEVMAddress converts an account id to its EVM address via a
// mirror node lookup.
type AccountToEVMAddress struct {
	mirror mirror.Client
}

// NewAccountToEVMAddress creates the account-id to EVM address converter.
func NewAccountToEVMAddress(client mirror.Client) *AccountToEVMAddress {
	return &AccountToEVMAddress{mirror: client}
}

func (c *AccountToEVMAddress) Source() entity.Format { return entity.FormatAccountID }
func (c *AccountToEVMAddress) Target() entity.Format { return entity.FormatEVMAddress }

func (c *AccountToEVMAddress) CanConvert(source string, _ *Context) bool {
	return entity.IsID(source)
}

func (c *AccountToEVMAddress) Convert(ctx context.Context, source string, _ *Context) (string, error) {
	if !entity.IsID(source) {
		return "", fmt.Errorf("not an account id: %q", source)
	}
	if c.mirror == nil {
		return "", fmt.Errorf("no mirror client configured")
	}

	info, err := c.mirror.AccountInfo(ctx, source)
	if err != nil {
		return "", err
	}
	if info.EVMAddress == "" {
		return "", fmt.Errorf("account %s has no EVM address", source)
	}
	return info.EVMAddress, nil
}
