package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashgraph-online/conversational-agent-sub001/core/entity"
)

// Stage is one named transformation step. Each stage receives the previous
// stage's output and the request's resolution context.
type Stage interface {
	Name() string
	Process(ctx context.Context, input any, rctx *Context) (any, error)
}

// ConversionPair records one in-place substitution the pipeline made.
type ConversionPair struct {
	Original  string `json:"original"`
	Converted string `json:"converted"`
}

// ResolvedMessage is the pipeline's normalized output.
type ResolvedMessage struct {
	Message     string            `json:"message"`
	Entities    []entity.Detected `json:"entities"`
	Conversions []ConversionPair  `json:"conversions"`
}

// Pipeline executes stages strictly in registration order, each completing
// before the next begins. A failure at any stage aborts the run; there is no
// partial-success state.
type Pipeline struct {
	mu     sync.RWMutex
	stages []Stage
	logger *slog.Logger
}

// NewPipeline creates an empty pipeline. A nil logger means slog.Default().
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger}
}

// AddStage appends a stage; stages always run in the order they were added.
func (p *Pipeline) AddStage(s Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stages = append(p.stages, s)
}

// Clear removes all stages.
func (p *Pipeline) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stages = nil
}

// Stages returns a copy of the registered stages.
func (p *Pipeline) Stages() []Stage {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Stage, len(p.stages))
	copy(out, p.stages)
	return out
}

// Process feeds input through the stages. An empty pipeline is the identity:
// the context's user message passes through with empty entity and conversion
// lists. Stage errors propagate with their original message intact.
func (p *Pipeline) Process(ctx context.Context, input any, rctx *Context) (*ResolvedMessage, error) {
	stages := p.Stages()
	if len(stages) == 0 {
		return &ResolvedMessage{
			Message:     rctx.UserMessage,
			Entities:    []entity.Detected{},
			Conversions: []ConversionPair{},
		}, nil
	}

	out := input
	for _, stage := range stages {
		next, err := stage.Process(ctx, out, rctx)
		if err != nil {
			return nil, err
		}
		p.logger.Debug("pipeline stage complete", "stage", stage.Name())
		out = next
	}

	if rm, ok := out.(*ResolvedMessage); ok {
		return rm, nil
	}
	return &ResolvedMessage{
		Message:     fmt.Sprint(out),
		Entities:    []entity.Detected{},
		Conversions: []ConversionPair{},
	}, nil
}
