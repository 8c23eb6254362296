package convert

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashgraph-online/conversational-agent-sub001/core/entity"
	"github.com/hashgraph-online/conversational-agent-sub001/core/network"
)

// stubConverter is a fixed-edge converter whose behavior tests control.
type stubConverter struct {
	source     entity.Format
	target     entity.Format
	admissible bool
	result     string
	err        error
	invoked    int
}

func (s *stubConverter) Source() entity.Format { return s.source }
func (s *stubConverter) Target() entity.Format { return s.target }

func (s *stubConverter) CanConvert(string, *Context) bool { return s.admissible }

func (s *stubConverter) Convert(context.Context, string, *Context) (string, error) {
	s.invoked++
	return s.result, s.err
}

func testRegistry(m *fakeMirror, clock func() time.Time) *Registry {
	cfg := RegistryConfig{Clock: clock, Logger: slog.Default()}
	if m != nil {
		cfg.Mirror = m
	}
	return NewRegistry(cfg)
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	r := testRegistry(nil, nil)

	first := &stubConverter{source: entity.FormatTopicID, target: entity.FormatHRL, admissible: true, result: "first"}
	second := &stubConverter{source: entity.FormatTopicID, target: entity.FormatHRL, admissible: true, result: "second"}

	r.Register(first)
	r.Register(second)

	// A duplicate registration silently replaces the earlier one.
	assert.Same(t, Converter(second), r.FindConverter(entity.FormatTopicID, entity.FormatHRL))
	assert.Len(t, r.RegisteredConverters(), 1)
}

func TestRegistry_DirectedEdgeOnly(t *testing.T) {
	r := testRegistry(nil, nil)
	r.Register(&stubConverter{source: entity.FormatTopicID, target: entity.FormatHRL})

	assert.True(t, r.HasConverter(entity.FormatTopicID, entity.FormatHRL))
	assert.Nil(t, r.FindConverter(entity.FormatHRL, entity.FormatTopicID))
	assert.False(t, r.HasConverter(entity.FormatHRL, entity.FormatTopicID))
}

func TestRegistry_Clear(t *testing.T) {
	m := newFakeMirror()
	m.topics["0.0.5"] = true
	r := testRegistry(m, nil)
	r.Register(&stubConverter{source: entity.FormatTopicID, target: entity.FormatHRL})

	// Populate the detection cache.
	assert.Equal(t, entity.FormatTopicID, r.DetectEntityFormat(context.Background(), "0.0.5", nil))
	require.Equal(t, 1, r.cache.len())

	r.Clear()
	assert.Empty(t, r.RegisteredConverters())
	assert.Equal(t, 0, r.cache.len())
}

func TestConvertEntity_NoOpWhenAlreadyTarget(t *testing.T) {
	m := newFakeMirror()
	m.topics["0.0.7"] = true
	r := testRegistry(m, nil)

	stub := &stubConverter{source: entity.FormatTopicID, target: entity.FormatHRL, admissible: true, result: "wrong"}
	r.Register(stub)

	got, err := r.ConvertEntity(context.Background(), "0.0.7", entity.FormatTopicID, nil)
	require.NoError(t, err)
	assert.Equal(t, "0.0.7", got)
	assert.Zero(t, stub.invoked, "no converter runs for a no-op conversion")
}

func TestConvertEntity_NoConverterError(t *testing.T) {
	m := newFakeMirror()
	m.topics["0.0.7"] = true
	r := testRegistry(m, nil)

	_, err := r.ConvertEntity(context.Background(), "0.0.7", entity.FormatEVMAddress, nil)
	require.Error(t, err)

	var ncErr *NoConverterError
	require.ErrorAs(t, err, &ncErr)
	assert.Equal(t, entity.FormatTopicID, ncErr.Source)
	assert.Equal(t, entity.FormatEVMAddress, ncErr.Target)
	assert.Contains(t, err.Error(), "topic_id")
	assert.Contains(t, err.Error(), "evm_address")
}

func TestConvertEntity_InadmissibleEntity(t *testing.T) {
	m := newFakeMirror()
	m.topics["0.0.7"] = true
	r := testRegistry(m, nil)
	r.Register(&stubConverter{source: entity.FormatTopicID, target: entity.FormatHRL, admissible: false})

	_, err := r.ConvertEntity(context.Background(), "0.0.7", entity.FormatHRL, nil)

	var inErr *InadmissibleEntityError
	require.ErrorAs(t, err, &inErr)
	assert.Contains(t, err.Error(), "0.0.7")
}

func TestConvertEntity_ConverterErrorPropagatesUnwrapped(t *testing.T) {
	m := newFakeMirror()
	m.topics["0.0.7"] = true
	r := testRegistry(m, nil)

	boom := errors.New("mirror exploded")
	r.Register(&stubConverter{source: entity.FormatTopicID, target: entity.FormatHRL, admissible: true, err: boom})

	_, err := r.ConvertEntity(context.Background(), "0.0.7", entity.FormatHRL, nil)
	assert.Same(t, boom, err)
}

func TestConvertEntity_TopicToHRLPerNetwork(t *testing.T) {
	m := newFakeMirror()
	m.topics["0.0.6624800"] = true
	r := testRegistry(m, nil)
	r.Register(NewTopicToHRL())

	got, err := r.ConvertEntity(context.Background(), "0.0.6624800", entity.FormatHRL,
		&Context{Network: network.Testnet})
	require.NoError(t, err)
	assert.Equal(t, "hcs://1/0.0.6624800", got)

	r.Clear()
	r.Register(NewTopicToHRL())
	got, err = r.ConvertEntity(context.Background(), "0.0.6624800", entity.FormatHRL,
		&Context{Network: network.Mainnet})
	require.NoError(t, err)
	assert.Equal(t, "hcs://0/0.0.6624800", got)
}

func TestDetect_SyntaxShortCircuits(t *testing.T) {
	m := newFakeMirror()
	r := testRegistry(m, nil)
	ctx := context.Background()

	assert.Equal(t, entity.FormatHRL, r.DetectEntityFormat(ctx, "hcs://1/0.0.5", nil))
	assert.Equal(t, entity.FormatMetadata, r.DetectEntityFormat(ctx, "content-ref:0.0.5", nil))
	assert.Equal(t, entity.FormatAny, r.DetectEntityFormat(ctx, "not an entity", nil))
	assert.Zero(t, m.callCount(), "syntax detection never probes the network")
}

func TestDetect_CachePolarity(t *testing.T) {
	m := newFakeMirror()
	m.tokens["0.0.400"] = true
	r := testRegistry(m, nil)
	ctx := context.Background()

	// Positive detection probes once, then serves from cache.
	assert.Equal(t, entity.FormatTokenID, r.DetectEntityFormat(ctx, "0.0.400", nil))
	probed := m.callCount()
	assert.Equal(t, 4, probed, "one probe per namespace")

	assert.Equal(t, entity.FormatTokenID, r.DetectEntityFormat(ctx, "0.0.400", nil))
	assert.Equal(t, probed, m.callCount(), "cached detection does not re-probe")

	// Unknown entities are never cached: every detection re-probes.
	assert.Equal(t, entity.FormatAny, r.DetectEntityFormat(ctx, "0.0.99999999", nil))
	assert.Equal(t, entity.FormatAny, r.DetectEntityFormat(ctx, "0.0.99999999", nil))
	assert.Equal(t, probed+8, m.callCount())
	assert.Equal(t, 1, r.cache.len(), "only the positive detection is cached")
}

func TestDetect_TTLExpiryReprobesOnce(t *testing.T) {
	clock := newFakeClock()
	m := newFakeMirror()
	m.topics["0.0.5"] = true
	r := NewRegistry(RegistryConfig{Mirror: m, CacheTTL: time.Minute, Clock: clock.Now})
	ctx := context.Background()

	assert.Equal(t, entity.FormatTopicID, r.DetectEntityFormat(ctx, "0.0.5", nil))
	first := m.callCount()

	clock.Advance(2 * time.Minute)

	assert.Equal(t, entity.FormatTopicID, r.DetectEntityFormat(ctx, "0.0.5", nil))
	assert.Equal(t, first+4, m.callCount(), "expiry triggers exactly one probe round")

	assert.Equal(t, entity.FormatTopicID, r.DetectEntityFormat(ctx, "0.0.5", nil))
	assert.Equal(t, first+4, m.callCount(), "fresh entry serves from cache again")
}

func TestDetect_SettleAllPrefersPriorityOrder(t *testing.T) {
	m := newFakeMirror()
	m.tokens["0.0.9"] = true
	m.topics["0.0.9"] = true
	r := testRegistry(m, nil)

	// The entity exists as both token and topic; token wins on priority.
	assert.Equal(t, entity.FormatTokenID, r.DetectEntityFormat(context.Background(), "0.0.9", nil))
}

func TestDetect_SlowPositiveBeatsFastNegative(t *testing.T) {
	m := newFakeMirror()
	m.topics["0.0.9"] = true
	m.topicDelay = 50 * time.Millisecond
	r := testRegistry(m, nil)

	// Account, token and contract fail immediately; the topic probe is slow
	// but correct, and must not be pre-empted.
	assert.Equal(t, entity.FormatTopicID, r.DetectEntityFormat(context.Background(), "0.0.9", nil))
}

func TestDetect_AllProbesFailingYieldsAny(t *testing.T) {
	m := newFakeMirror()
	r := testRegistry(m, nil)

	format := r.DetectEntityFormat(context.Background(), "0.0.99999999", nil)
	assert.Equal(t, entity.FormatAny, format)
	assert.Equal(t, 0, r.cache.len(), "no cache entry for an unresolved entity")
}

func TestDetect_NoMirrorMeansAny(t *testing.T) {
	r := testRegistry(nil, nil)
	assert.Equal(t, entity.FormatAny, r.DetectEntityFormat(context.Background(), "0.0.5", nil))
}
