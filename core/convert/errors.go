package convert

import (
	"fmt"

	"github.com/hashgraph-online/conversational-agent-sub001/core/entity"
)

// NoConverterError is returned when no registered converter covers the
// detected source format and requested target format.
type NoConverterError struct {
	Source entity.Format
	Target entity.Format
}

func (e *NoConverterError) Error() string {
	return fmt.Sprintf("no converter registered for %s -> %s", e.Source, e.Target)
}

// InadmissibleEntityError is returned when a converter exists for the edge
// but its admissibility check rejected the entity.
type InadmissibleEntityError struct {
	Entity string
}

func (e *InadmissibleEntityError) Error() string {
	return fmt.Sprintf("converter cannot handle entity: %s", e.Entity)
}
