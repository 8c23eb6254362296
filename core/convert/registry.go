package convert

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hashgraph-online/conversational-agent-sub001/core/entity"
	"github.com/hashgraph-online/conversational-agent-sub001/core/mirror"
)

// Edge identifies one directed converter registration.
type Edge struct {
	Source entity.Format
	Target entity.Format
}

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// Mirror is the probe collaborator for network-backed format detection.
	// Without it, id-shaped strings detect as FormatAny.
	Mirror mirror.Client

	// CacheTTL bounds positive detection staleness. Zero means the default.
	CacheTTL time.Duration

	// Clock overrides the cache clock. Nil means time.Now; tests inject a
	// fake for deterministic TTL expiry.
	Clock func() time.Time

	// Logger is optional and defaults to slog.Default().
	Logger *slog.Logger
}

// Registry owns the converter graph and format detection. Conversion is a
// single hop: if no direct edge exists for a source/target pair the
// operation fails rather than searching for an indirect path.
type Registry struct {
	mu         sync.RWMutex
	converters map[Edge]Converter

	mirror mirror.Client
	cache  *detectionCache
	flight singleflight.Group
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Registry{
		converters: make(map[Edge]Converter),
		mirror:     cfg.Mirror,
		cache:      newDetectionCache(cfg.CacheTTL, cfg.Clock),
		logger:     cfg.Logger,
	}
}

// Register inserts a converter for its source/target edge. A second
// registration for the same edge silently replaces the first: last
// registration wins.
func (r *Registry) Register(c Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	edge := Edge{Source: c.Source(), Target: c.Target()}
	if _, exists := r.converters[edge]; exists {
		r.logger.Debug("replacing converter registration",
			"source", edge.Source, "target", edge.Target)
	}
	r.converters[edge] = c
}

// FindConverter returns the converter for the directed edge, or nil. The
// reverse edge is never consulted.
func (r *Registry) FindConverter(source, target entity.Format) Converter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[Edge{Source: source, Target: target}]
}

// HasConverter reports whether a converter is registered for the edge.
func (r *Registry) HasConverter(source, target entity.Format) bool {
	return r.FindConverter(source, target) != nil
}

// RegisteredConverters returns the registered edges.
func (r *Registry) RegisteredConverters() []Edge {
	r.mu.RLock()
	defer r.mu.RUnlock()

	edges := make([]Edge, 0, len(r.converters))
	for edge := range r.converters {
		edges = append(edges, edge)
	}
	return edges
}

// Clear removes all registered converters and cached detections.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.converters = make(map[Edge]Converter)
	r.mu.Unlock()
	r.cache.clear()
}

// ConvertEntity detects the format of entityStr and converts it to target
// with a single registered converter hop. An entity already in the target
// format is returned unchanged without invoking any converter.
func (r *Registry) ConvertEntity(ctx context.Context, entityStr string, target entity.Format, cctx *Context) (string, error) {
	detected := r.DetectEntityFormat(ctx, entityStr, cctx)
	if detected == target {
		return entityStr, nil
	}

	conv := r.FindConverter(detected, target)
	if conv == nil {
		return "", &NoConverterError{Source: detected, Target: target}
	}
	if !conv.CanConvert(entityStr, cctx) {
		return "", &InadmissibleEntityError{Entity: entityStr}
	}

	// Converter failures propagate unwrapped; retry policy lives inside the
	// converter's own I/O client.
	return conv.Convert(ctx, entityStr, cctx)
}

// DetectEntityFormat classifies entityStr, using syntax alone where the
// shape is unambiguous and falling back to cached or live network probes for
// bare entity ids. Detection never fails: anything unresolvable is
// FormatAny.
func (r *Registry) DetectEntityFormat(ctx context.Context, entityStr string, cctx *Context) entity.Format {
	if entity.IsHRL(entityStr) {
		return entity.FormatHRL
	}
	if isContentRef(entityStr) || isInscriptionPath(entityStr) {
		return entity.FormatMetadata
	}
	if !entity.IsID(entityStr) {
		return entity.FormatAny
	}

	if format, ok := r.cache.get(entityStr); ok {
		return format
	}

	// Concurrent detections of the same unseen entity share one probe round.
	result, _, _ := r.flight.Do(entityStr, func() (any, error) {
		return r.probeFormat(ctx, entityStr), nil
	})
	format := result.(entity.Format)

	if format != entity.FormatAny {
		r.cache.put(entityStr, format)
	}
	return format
}

// probeFormat issues concurrent existence checks against each candidate
// namespace and waits for all of them to settle before picking the first
// success in fixed priority order. A fast negative must not pre-empt a
// slower positive, and the priority order breaks ties when an entity exists
// in more than one namespace.
func (r *Registry) probeFormat(ctx context.Context, entityStr string) entity.Format {
	if r.mirror == nil {
		return entity.FormatAny
	}

	probes := []struct {
		format entity.Format
		check  func(context.Context, string) bool
	}{
		{entity.FormatAccountID, r.accountExists},
		{entity.FormatTokenID, r.tokenExists},
		{entity.FormatTopicID, r.topicExists},
		{entity.FormatContractID, r.contractExists},
	}

	results := make([]bool, len(probes))
	var wg sync.WaitGroup
	for i, p := range probes {
		wg.Add(1)
		go func(i int, check func(context.Context, string) bool) {
			defer wg.Done()
			results[i] = check(ctx, entityStr)
		}(i, p.check)
	}
	wg.Wait()

	for i, p := range probes {
		if results[i] {
			return p.format
		}
	}
	return entity.FormatAny
}

// Probe wrappers map any error or empty result to a negative. Probe failure
// is a normal outcome, not an exceptional one.

func (r *Registry) accountExists(ctx context.Context, id string) bool {
	bal, err := r.mirror.AccountBalance(ctx, id)
	return err == nil && bal != nil
}

func (r *Registry) tokenExists(ctx context.Context, id string) bool {
	info, err := r.mirror.TokenInfo(ctx, id)
	return err == nil && info != nil
}

func (r *Registry) topicExists(ctx context.Context, id string) bool {
	info, err := r.mirror.TopicInfo(ctx, id)
	return err == nil && info != nil
}

func (r *Registry) contractExists(ctx context.Context, id string) bool {
	info, err := r.mirror.ContractInfo(ctx, id)
	return err == nil && info != nil
}
