package convert

import (
	"context"
	"fmt"

	"github.com/hashgraph-online/conversational-agent-sub001/core/entity"
)

// TopicToHRL converts a bare topic id into an HRL using the network code of
// the context's target network. Pure, no I/O.
type TopicToHRL struct{}

// NewTopicToHRL creates the topic-id to HRL converter.
func NewTopicToHRL() *TopicToHRL {
	return &TopicToHRL{}
}

func (c *TopicToHRL) Source() entity.Format { return entity.FormatTopicID }
func (c *TopicToHRL) Target() entity.Format { return entity.FormatHRL }

// CanConvert accepts only an exact shard.realm.num id: no surrounding
// whitespace, no trailing path segments.
func (c *TopicToHRL) CanConvert(source string, _ *Context) bool {
	return entity.IsID(source)
}

func (c *TopicToHRL) Convert(_ context.Context, source string, cctx *Context) (string, error) {
	if !entity.IsID(source) {
		return "", fmt.Errorf("not a topic id: %q", source)
	}
	code := cctx.NetworkOrDefault().LedgerCode()
	return fmt.Sprintf("%s://%s/%s", entity.HRLScheme, code, source), nil
}
