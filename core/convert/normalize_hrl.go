package convert

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hashgraph-online/conversational-agent-sub001/core/entity"
	"github.com/hashgraph-online/conversational-agent-sub001/core/mirror"
)

// ContentRefPrefix marks a short content reference token wrapping an
// embedded entity id.
const ContentRefPrefix = "content-ref:"

// DefaultHRLStandard is the standard number used when every resolution
// avenue fails. Lookup unreliability degrades to a syntactically valid
// best-guess locator, never an error.
const DefaultHRLStandard = "1"

const standardCacheSize = 512

var (
	inscriptionPathPattern = regexp.MustCompile(`inscription-cdn/(\d+\.\d+\.\d+)`)
	memoStandardPattern    = regexp.MustCompile(`\b[a-z]+-(\d+)\b`)
)

func isContentRef(s string) bool {
	return strings.HasPrefix(s, ContentRefPrefix) && entity.IsID(strings.TrimPrefix(s, ContentRefPrefix))
}

func isInscriptionPath(s string) bool {
	return strings.Contains(s, "/") && inscriptionPathPattern.MatchString(s)
}

// ReferenceResolver resolves a content reference to its underlying locator.
// Used only by NormalizeToHRL; any failure is absorbed into the fallback
// standard number.
type ReferenceResolver interface {
	ResolveReference(ctx context.Context, ref string) (string, error)
}

// NormalizeToHRL rewrites the loose reference shapes tools emit into a
// canonical HRL: a CDN-style inscription path with an embedded id, a
// content-ref token, or a bare id when the tool's preferences ask for HRL
// output. Already-canonical HRLs are rejected so the converter stays
// idempotent.
type NormalizeToHRL struct {
	mirror   mirror.Client
	resolver ReferenceResolver
	// standards caches resolved standard numbers per topic id.
	standards *lru.Cache[string, string]
	logger    *slog.Logger
}

// NormalizeToHRLConfig configures a NormalizeToHRL converter. Both
// collaborators are optional; without them every conversion falls back to
// the configured default standard.
type NormalizeToHRLConfig struct {
	Mirror   mirror.Client
	Resolver ReferenceResolver
	Logger   *slog.Logger
}

// NewNormalizeToHRL creates the string-normalization converter.
func NewNormalizeToHRL(cfg NormalizeToHRLConfig) *NormalizeToHRL {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	standards, _ := lru.New[string, string](standardCacheSize)
	return &NormalizeToHRL{
		mirror:    cfg.Mirror,
		resolver:  cfg.Resolver,
		standards: standards,
		logger:    cfg.Logger,
	}
}

func (c *NormalizeToHRL) Source() entity.Format { return entity.FormatMetadata }
func (c *NormalizeToHRL) Target() entity.Format { return entity.FormatHRL }

// CanConvert admits the three normalizable shapes. Bare ids are admissible
// only when the tool preferences request HRL output for topic references.
func (c *NormalizeToHRL) CanConvert(source string, cctx *Context) bool {
	if entity.IsHRL(source) {
		return false
	}
	if isInscriptionPath(source) || isContentRef(source) {
		return true
	}
	if entity.IsID(source) {
		pref, ok := cctx.Preference("format." + entity.FormatTopicID.String())
		return ok && pref == entity.FormatHRL.String()
	}
	return false
}

func (c *NormalizeToHRL) Convert(ctx context.Context, source string, cctx *Context) (string, error) {
	if entity.IsHRL(source) {
		return "", fmt.Errorf("already an HRL: %q", source)
	}

	switch {
	case isInscriptionPath(source):
		id := inscriptionPathPattern.FindStringSubmatch(source)[1]
		return c.locator(c.standardFromMemo(ctx, id, cctx), id), nil

	case isContentRef(source):
		id := strings.TrimPrefix(source, ContentRefPrefix)
		return c.locator(c.standardFromReference(ctx, source, id, cctx), id), nil

	case entity.IsID(source):
		return c.locator(c.standardFromReference(ctx, source, source, cctx), source), nil
	}

	return "", fmt.Errorf("unrecognized reference shape: %q", source)
}

func (c *NormalizeToHRL) locator(standard, id string) string {
	return fmt.Sprintf("%s://%s/%s", entity.HRLScheme, standard, id)
}

// standardFromMemo resolves the standard number from the topic's on-ledger
// memo, expecting a "<prefix>-<digits>" token such as "hcs-1".
func (c *NormalizeToHRL) standardFromMemo(ctx context.Context, id string, cctx *Context) string {
	if cached, ok := c.standards.Get(id); ok {
		return cached
	}
	if c.mirror == nil {
		return c.fallbackStandard(cctx)
	}

	info, err := c.mirror.TopicInfo(ctx, id)
	if err != nil {
		c.logger.Debug("topic memo lookup failed", "topic", id, "error", err)
		return c.fallbackStandard(cctx)
	}
	m := memoStandardPattern.FindStringSubmatch(strings.ToLower(info.Memo))
	if m == nil {
		return c.fallbackStandard(cctx)
	}
	c.standards.Add(id, m[1])
	return m[1]
}

// standardFromReference resolves the reference to its underlying locator and
// parses the standard number out of it.
func (c *NormalizeToHRL) standardFromReference(ctx context.Context, ref, id string, cctx *Context) string {
	if cached, ok := c.standards.Get(id); ok {
		return cached
	}
	if c.resolver == nil {
		return c.fallbackStandard(cctx)
	}

	resolved, err := c.resolver.ResolveReference(ctx, ref)
	if err != nil {
		c.logger.Debug("reference resolution failed", "ref", ref, "error", err)
		return c.fallbackStandard(cctx)
	}
	hrl, err := entity.ParseHRL(resolved)
	if err != nil {
		return c.fallbackStandard(cctx)
	}
	c.standards.Add(id, hrl.Standard)
	return hrl.Standard
}

// fallbackStandard walks the preference chain: tool preference, then the
// inscription-specific preference, then the hard default.
func (c *NormalizeToHRL) fallbackStandard(cctx *Context) string {
	if v, ok := cctx.Preference("hrl_standard"); ok {
		return v
	}
	if v, ok := cctx.Preference("inscription_standard"); ok {
		return v
	}
	return DefaultHRLStandard
}
