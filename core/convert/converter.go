package convert

import (
	"context"

	"github.com/hashgraph-online/conversational-agent-sub001/core/entity"
)

// Converter declares a single directed edge between two entity formats.
// Implementations are immutable once registered.
//
// CanConvert must be pure and side-effect-free. Convert may perform I/O and
// must return an error on irrecoverable failure, never a sentinel value. The
// registry only invokes Convert after CanConvert reported true, but
// implementations still re-validate their input rather than assuming it.
type Converter interface {
	Source() entity.Format
	Target() entity.Format
	CanConvert(source string, cctx *Context) bool
	Convert(ctx context.Context, source string, cctx *Context) (string, error)
}
