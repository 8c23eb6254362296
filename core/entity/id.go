package entity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// idPattern matches a full shard.realm.num entity id with no surrounding text.
	idPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

	// idScanPattern finds entity-id shaped substrings inside free text.
	idScanPattern = regexp.MustCompile(`\b\d+\.\d+\.\d+\b`)

	// hrlPattern matches a canonical HRL: hcs://<standard>/<shard.realm.num>.
	hrlPattern = regexp.MustCompile(`^hcs://(\d+)/(\d+\.\d+\.\d+)$`)
)

// HRLScheme is the URI scheme for Hashgraph resource locators.
const HRLScheme = "hcs"

// ID is a parsed shard.realm.num entity id.
type ID struct {
	Shard int64
	Realm int64
	Num   int64
}

func (id ID) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Shard, id.Realm, id.Num)
}

// ParseID parses a strict shard.realm.num id. Surrounding whitespace or
// trailing path segments make the input invalid.
func ParseID(s string) (ID, error) {
	m := idPattern.FindStringSubmatch(s)
	if m == nil {
		return ID{}, fmt.Errorf("not an entity id: %q", s)
	}
	shard, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("entity id shard out of range: %q", s)
	}
	realm, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("entity id realm out of range: %q", s)
	}
	num, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return ID{}, fmt.Errorf("entity id num out of range: %q", s)
	}
	return ID{Shard: shard, Realm: realm, Num: num}, nil
}

// IsID reports whether s is exactly an entity id.
func IsID(s string) bool {
	return idPattern.MatchString(s)
}

// IsHRL reports whether s already carries the HRL scheme prefix.
func IsHRL(s string) bool {
	return strings.HasPrefix(s, HRLScheme+"://")
}

// HRL is a parsed Hashgraph resource locator.
type HRL struct {
	Standard string
	Target   string
}

func (h HRL) String() string {
	return fmt.Sprintf("%s://%s/%s", HRLScheme, h.Standard, h.Target)
}

// ParseHRL parses a canonical hcs://<standard>/<id> locator.
func ParseHRL(s string) (HRL, error) {
	m := hrlPattern.FindStringSubmatch(s)
	if m == nil {
		return HRL{}, fmt.Errorf("not an HRL: %q", s)
	}
	return HRL{Standard: m[1], Target: m[2]}, nil
}

// FindIDs returns every entity-id shaped substring in text, in order of
// appearance, with duplicates preserved.
func FindIDs(text string) []string {
	return idScanPattern.FindAllString(text, -1)
}
