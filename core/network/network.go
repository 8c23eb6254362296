// Package network models the Hedera networks the engine can target and the
// small fixed mappings derived from them.
package network

// Type names a Hedera network.
type Type string

const (
	Mainnet    Type = "mainnet"
	Testnet    Type = "testnet"
	Previewnet Type = "previewnet"
)

// Default is the network assumed when a context carries none. Defaulting to
// a non-production network keeps accidental mainnet traffic impossible.
const Default = Testnet

// ledgerCodes maps a network to its HRL network code. Unrecognized networks
// fall back to the testnet code.
var ledgerCodes = map[Type]string{
	Mainnet:    "0",
	Testnet:    "1",
	Previewnet: "2",
}

// mirrorBaseURLs holds the public mirror node REST endpoints per network.
var mirrorBaseURLs = map[Type]string{
	Mainnet:    "https://mainnet-public.mirrornode.hedera.com",
	Testnet:    "https://testnet.mirrornode.hedera.com",
	Previewnet: "https://previewnet.mirrornode.hedera.com",
}

func (t Type) String() string {
	return string(t)
}

// IsValid reports whether t names a known network.
func (t Type) IsValid() bool {
	_, ok := ledgerCodes[t]
	return ok
}

// LedgerCode returns the HRL network code for t, or the testnet code when t
// is not a known network.
func (t Type) LedgerCode() string {
	if code, ok := ledgerCodes[t]; ok {
		return code
	}
	return ledgerCodes[Testnet]
}

// MirrorBaseURL returns the default mirror node REST endpoint for t, falling
// back to the testnet endpoint for unknown networks.
func (t Type) MirrorBaseURL() string {
	if url, ok := mirrorBaseURLs[t]; ok {
		return url
	}
	return mirrorBaseURLs[Testnet]
}

// Parse normalizes a network name, returning Default for empty input and
// reporting whether the name was recognized.
func Parse(s string) (Type, bool) {
	if s == "" {
		return Default, true
	}
	t := Type(s)
	return t, t.IsValid()
}
