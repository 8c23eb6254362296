// Package entity defines the taxonomy of Hedera entity reference formats and
// the syntax helpers shared by format detection and conversion.
package entity

// Format identifies one recognized textual encoding of an entity reference.
type Format string

const (
	FormatAccountID    Format = "account_id"
	FormatTokenID      Format = "token_id"
	FormatTopicID      Format = "topic_id"
	FormatContractID   Format = "contract_id"
	FormatFileID       Format = "file_id"
	FormatScheduleID   Format = "schedule_id"
	FormatHRL          Format = "hrl"
	FormatEVMAddress   Format = "evm_address"
	FormatAlias        Format = "alias"
	FormatSymbol       Format = "symbol"
	FormatSerialNumber Format = "serial_number"
	FormatMetadata     Format = "metadata"

	// FormatAny marks an unresolved format. It is a valid conversion target
	// (detect-then-passthrough) but never a registered conversion source.
	FormatAny Format = "any"
)

var validFormats = map[Format]bool{
	FormatAccountID:    true,
	FormatTokenID:      true,
	FormatTopicID:      true,
	FormatContractID:   true,
	FormatFileID:       true,
	FormatScheduleID:   true,
	FormatHRL:          true,
	FormatEVMAddress:   true,
	FormatAlias:        true,
	FormatSymbol:       true,
	FormatSerialNumber: true,
	FormatMetadata:     true,
	FormatAny:          true,
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is a member of the closed format set.
func (f Format) IsValid() bool {
	return validFormats[f]
}

// IsEntityID reports whether f is one of the numeric shard.realm.num id formats.
func (f Format) IsEntityID() bool {
	switch f {
	case FormatAccountID, FormatTokenID, FormatTopicID, FormatContractID, FormatFileID, FormatScheduleID:
		return true
	}
	return false
}

// ParseFormat converts a string to a Format, reporting whether it is valid.
func ParseFormat(s string) (Format, bool) {
	f := Format(s)
	return f, f.IsValid()
}

// ValidFormats returns all members of the format set.
func ValidFormats() []Format {
	return []Format{
		FormatAccountID,
		FormatTokenID,
		FormatTopicID,
		FormatContractID,
		FormatFileID,
		FormatScheduleID,
		FormatHRL,
		FormatEVMAddress,
		FormatAlias,
		FormatSymbol,
		FormatSerialNumber,
		FormatMetadata,
		FormatAny,
	}
}
