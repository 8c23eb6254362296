package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashgraph-online/conversational-agent-sub001/core/convert"
	"github.com/hashgraph-online/conversational-agent-sub001/core/entity"
)

// classKeywords maps the word preceding an entity id to its entity class.
var classKeywords = map[string]entity.Format{
	"topic":     entity.FormatTopicID,
	"topics":    entity.FormatTopicID,
	"token":     entity.FormatTokenID,
	"tokens":    entity.FormatTokenID,
	"account":   entity.FormatAccountID,
	"accounts":  entity.FormatAccountID,
	"contract":  entity.FormatContractID,
	"contracts": entity.FormatContractID,
	"file":      entity.FormatFileID,
	"files":     entity.FormatFileID,
	"schedule":  entity.FormatScheduleID,
	"schedules": entity.FormatScheduleID,
}

const (
	keywordConfidence = 0.9
	shapeConfidence   = 0.5
)

// DetectionStage scans a message for entity-id shaped substrings and infers
// each one's class from the words around it.
type DetectionStage struct{}

// NewDetectionStage creates the entity-detection stage.
func NewDetectionStage() *DetectionStage {
	return &DetectionStage{}
}

func (s *DetectionStage) Name() string { return "entity-detection" }

// Process emits a ResolvedMessage carrying the detected entities. The
// message itself passes through unchanged.
func (s *DetectionStage) Process(_ context.Context, input any, rctx *Context) (any, error) {
	message := rctx.UserMessage
	if str, ok := input.(string); ok && str != "" {
		message = str
	}

	detected := []entity.Detected{}
	offset := 0
	for _, id := range entity.FindIDs(message) {
		pos := strings.Index(message[offset:], id)
		if pos < 0 {
			continue
		}
		pos += offset
		offset = pos + len(id)

		class, confidence := classify(message, pos)
		detected = append(detected, entity.Detected{
			Type:         class,
			Value:        id,
			OriginalText: id,
			Confidence:   confidence,
			Position:     pos,
		})
	}

	return &ResolvedMessage{
		Message:     message,
		Entities:    detected,
		Conversions: []ConversionPair{},
	}, nil
}

// classify infers the entity class from the last few words before the match.
func classify(message string, pos int) (entity.Format, float64) {
	words := strings.Fields(strings.ToLower(message[:pos]))
	start := len(words) - 3
	if start < 0 {
		start = 0
	}
	for i := len(words) - 1; i >= start; i-- {
		if class, ok := classKeywords[strings.Trim(words[i], ".,:;!?")]; ok {
			return class, keywordConfidence
		}
	}
	return entity.FormatAny, shapeConfidence
}

// EntityConverter is the registry surface the conversion stage consumes.
type EntityConverter interface {
	ConvertEntity(ctx context.Context, entityStr string, target entity.Format, cctx *convert.Context) (string, error)
}

// ConversionStage rewrites detected entities into the formats the context's
// tool prefers, substituting converted values in place. A failed conversion
// leaves the original text untouched; resolution never blocks the request.
type ConversionStage struct {
	converter EntityConverter
	logger    *slog.Logger
}

// NewConversionStage creates the format-conversion stage.
func NewConversionStage(converter EntityConverter, logger *slog.Logger) *ConversionStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversionStage{converter: converter, logger: logger}
}

func (s *ConversionStage) Name() string { return "format-conversion" }

func (s *ConversionStage) Process(ctx context.Context, input any, rctx *Context) (any, error) {
	rm, ok := input.(*ResolvedMessage)
	if !ok {
		rm = &ResolvedMessage{
			Message:     fmt.Sprint(input),
			Entities:    []entity.Detected{},
			Conversions: []ConversionPair{},
		}
	}
	if rctx.Tool == nil || len(rctx.Tool.FormatPreferences) == 0 {
		return rm, nil
	}

	cctx := &convert.Context{
		Network:   rctx.Network,
		SessionID: rctx.SessionID,
		ToolName:  rctx.Tool.Name,
	}

	// Entities are ordered by position; earlier replacements shift the
	// offsets of everything after them, so splice at position plus the
	// accumulated length delta instead of searching for the text again.
	delta := 0
	for _, ent := range rm.Entities {
		target, ok := rctx.Tool.FormatPreferences[ent.Type]
		if !ok || target == ent.Type {
			continue
		}

		converted, err := s.converter.ConvertEntity(ctx, ent.Value, target, cctx)
		if err != nil {
			s.logger.Warn("conversion failed, keeping original text",
				"entity", ent.Value, "target", target, "error", err)
			continue
		}
		if converted == ent.Value {
			continue
		}

		pos := ent.Position + delta
		end := pos + len(ent.OriginalText)
		if pos < 0 || end > len(rm.Message) || rm.Message[pos:end] != ent.OriginalText {
			continue
		}
		rm.Message = rm.Message[:pos] + converted + rm.Message[end:]
		delta += len(converted) - len(ent.OriginalText)
		rm.Conversions = append(rm.Conversions, ConversionPair{
			Original:  ent.OriginalText,
			Converted: converted,
		})
		rctx.recordConversion(ConversionRecord{
			OriginalValue:  ent.Value,
			ConvertedValue: converted,
			SourceFormat:   ent.Type,
			TargetFormat:   target,
			ConverterName:  fmt.Sprintf("%s->%s", ent.Type, target),
			Timestamp:      time.Now(),
			SessionID:      rctx.SessionID,
			ToolName:       rctx.Tool.Name,
			Network:        rctx.Network,
		})
	}

	return rm, nil
}
